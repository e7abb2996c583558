package cmd

import (
	"github.com/spf13/cobra"

	"steamscan/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the console report off the existing CSV artifacts",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	return report.Overview(cmd.OutOrStdout(), cfg.CleanedCSV(), cfg.SummaryCSV())
}
