// Command tapedata inspects and builds protein task datasets.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// rootArgs holds flags shared by the subcommands.
type rootArgs struct {
	dataPath string
	verbose  bool
}

var args rootArgs

var rootCmd = &cobra.Command{
	Use:   "tapedata",
	Short: "Inspect and build protein task datasets",
	Long: `
Inspect and build the record stores backing the protein prediction tasks.
`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if args.verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&args.dataPath, "data", ".", "path to the data root")
	rootCmd.PersistentFlags().BoolVarP(&args.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newLengthsCmd())
	rootCmd.AddCommand(newPackCmd())
}
