package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tapeml/tapedata/datasets"
)

func newLengthsCmd() *cobra.Command {
	var in, out string
	var bins int

	cmd := &cobra.Command{
		Use:   "lengths",
		Short: "Plot a histogram of protein lengths in a record file",
		Run: func(cmd *cobra.Command, _ []string) {
			source, err := datasets.NewRecordSource(in, datasets.CacheNone)
			if err != nil {
				log.Fatalf("Failed to open record file: %v", err)
			}
			if closer, ok := source.(interface{ Close() error }); ok {
				defer closer.Close()
			}

			vals := make(plotter.Values, 0, source.Len())
			for i := 0; i < source.Len(); i++ {
				rec, err := source.Get(i)
				if err != nil {
					log.Fatalf("Failed to read record %d: %v", i, err)
				}
				vals = append(vals, float64(rec.ProteinLength))
			}

			p := plot.New()
			p.Title.Text = "Protein lengths"
			p.X.Label.Text = "residues"
			p.Y.Label.Text = "count"

			h, err := plotter.NewHist(vals, bins)
			if err != nil {
				log.Fatalf("Failed to build histogram: %v", err)
			}
			p.Add(h)

			if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
				log.Fatalf("Failed to save plot: %v", err)
			}
			log.Info("histogram written", "records", len(vals), "out", out)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "record file (.fasta or .lmdb)")
	cmd.Flags().StringVar(&out, "out", "lengths.png", "output image path")
	cmd.Flags().IntVar(&bins, "bins", 40, "number of histogram bins")
	cmd.MarkFlagRequired("in")
	return cmd
}
