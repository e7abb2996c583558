package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean, validate and deduplicate the raw product table",
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	summary, err := newPipeline(newLogger()).Clean()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"cleaned %d rows: kept %d, dropped %d invalid, %d duplicates → %s\n",
		summary.Total, summary.Kept, summary.Invalid, summary.Duplicates, cfg.CleanedCSV())
	return nil
}
