package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tapeml/tapedata/datasets"
)

func newPackCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Build a record store from a FASTA file",
		Run: func(cmd *cobra.Command, _ []string) {
			fasta, err := datasets.NewFastaDataset(in, datasets.CacheAll)
			if err != nil {
				log.Fatalf("Failed to open fasta file: %v", err)
			}

			records := make([]datasets.Record, fasta.Len())
			for i := range records {
				rec, err := fasta.Get(i)
				if err != nil {
					log.Fatalf("Failed to read record %d: %v", i, err)
				}
				records[i] = rec
			}

			if err := datasets.WriteStore(out, records); err != nil {
				log.Fatalf("Failed to write record store: %v", err)
			}
			log.Info("record store written", "records", len(records), "out", out)
		},
	}

	cmd.Flags().StringVar(&in, "fasta", "", "input FASTA file")
	cmd.Flags().StringVar(&out, "out", "records.lmdb", "output record store path")
	cmd.MarkFlagRequired("fasta")
	return cmd
}
