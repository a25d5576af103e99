package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tapeml/tapedata/datasets"
)

func newInspectCmd() *cobra.Command {
	var task, mode, tokenizer string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Open a task dataset and report its size and batch shapes",
		Run: func(cmd *cobra.Command, _ []string) {
			opts := []datasets.Option{datasets.WithTokenizerName(tokenizer)}
			ds, err := datasets.Open(datasets.Task(task), args.dataPath, mode, opts...)
			if err != nil {
				log.Fatalf("Failed to open dataset: %v", err)
			}
			defer ds.Close()

			log.Info("dataset opened", "task", task, "mode", mode, "examples", ds.Len())
			if ds.Len() == 0 {
				return
			}

			batch, err := ds.Batch([]int{0})
			if err != nil {
				log.Fatalf("Failed to collate sample batch: %v", err)
			}
			for name, t := range batch {
				log.Info("batch field", "name", name, "shape", t.Shape())
			}
		},
	}

	cmd.Flags().StringVar(&task, "task", string(datasets.TaskPfam), "task name")
	cmd.Flags().StringVar(&mode, "mode", "train", "data split (or data file for the embed task)")
	cmd.Flags().StringVar(&tokenizer, "tokenizer", "iupac", "tokenizer name")
	return cmd
}
