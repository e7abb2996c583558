package cmd

import (
	"github.com/spf13/cobra"

	"steamscan/internal/pipeline"
	"steamscan/internal/progress"
	"steamscan/internal/ui"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full scrape → clean → analyze → report pipeline",
	RunE:  runPipeline,
}

func init() {
	pipelineCmd.Flags().Int("pages", 0, "Listing pages to scrape (default from config)")
	pipelineCmd.Flags().Int("games", 0, "Games to analyze reviews for (default from config)")
	pipelineCmd.Flags().Int("reviews", 0, "Reviews to fetch per game (default from config)")
	pipelineCmd.Flags().Bool("no-report", false, "Skip the console report stage")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	pages, _ := cmd.Flags().GetInt("pages")
	games, _ := cmd.Flags().GetInt("games")
	reviews, _ := cmd.Flags().GetInt("reviews")
	noReport, _ := cmd.Flags().GetBool("no-report")

	ctx, stop := signalContext()
	defer stop()

	spinner := ui.NewSpinner()
	spinner.Start("starting pipeline")
	defer spinner.Stop()
	ctx = progress.With(ctx, spinner.Update)

	return newPipeline(logger).Run(ctx, pipeline.Options{
		Pages:      pages,
		MaxGames:   games,
		MaxReviews: reviews,
		SkipReport: noReport,
	})
}
