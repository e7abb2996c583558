package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamscan/internal/progress"
	"steamscan/internal/ui"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Scrape listing pages and write the raw product table",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().Int("pages", 0, "Listing pages to scrape (default from config)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	pages, _ := cmd.Flags().GetInt("pages")

	ctx, stop := signalContext()
	defer stop()

	spinner := ui.NewSpinner()
	spinner.Start("scraping listings")
	ctx = progress.With(ctx, spinner.Update)

	records, err := newPipeline(logger).Extract(ctx, pages)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWith(fmt.Sprintf("extracted %d products → %s", len(records), cfg.RawCSV()))
	return nil
}
