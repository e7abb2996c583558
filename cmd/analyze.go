package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"steamscan/internal/threat"
	"steamscan/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [appid]",
	Short: "Fetch one game's reviews and classify them for threats",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("name", "", "Look the game up by title instead of app id")
	analyzeCmd.Flags().Int("reviews", 0, "Reviews to fetch (default from config)")
	analyzeCmd.Flags().String("format", "table", "Output format: table, json")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	maxReviews, _ := cmd.Flags().GetInt("reviews")
	format, _ := cmd.Flags().GetString("format")
	if maxReviews <= 0 {
		maxReviews = cfg.MaxReviews
	}

	if len(args) == 0 && name == "" {
		return fmt.Errorf("pass an app id or --name")
	}

	ctx, stop := signalContext()
	defer stop()

	scraper := newScraper(newLogger())

	spinner := ui.NewSpinner()
	spinner.Start("resolving game")
	defer spinner.Stop()

	appID, title := "", ""
	if len(args) > 0 {
		appID = args[0]
		title = name
	} else {
		ref, err := scraper.FindGame(ctx, name)
		if err != nil {
			spinner.Stop()
			return err
		}
		appID, title = ref.AppID, ref.Title
	}

	spinner.Update(fmt.Sprintf("fetching up to %d reviews for %s", maxReviews, appID))
	analyzer := threat.NewAnalyzer(scraper, threat.DefaultRules())
	report, err := analyzer.AnalyzeGame(ctx, appID, title, maxReviews)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()

	if format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printGameReport(cmd.OutOrStdout(), report)
	return nil
}
