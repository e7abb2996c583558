package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"steamscan/config"
	"steamscan/internal/httputil"
	"steamscan/internal/pipeline"
	"steamscan/internal/stealth"
	"steamscan/internal/steam"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "steamscan",
	Short: "SteamScan - storefront scraping and review threat analysis CLI & MCP server",
	Long: "A Go-based CLI tool and MCP server that scrapes Steam top-seller listings,\n" +
		"cleans the data and analyzes game reviews for spam, scam and cheat promotion.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("data-dir", "data", "Directory for CSV artifacts")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().String("country", "", "Store country code for pricing (e.g. US)")
	rootCmd.PersistentFlags().String("lang", "", "Store page language (e.g. english)")
	rootCmd.PersistentFlags().String("review-lang", "", "Review feed language filter (e.g. schinese)")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("country"); v != "" {
		cfg.CountryCode = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("review-lang"); v != "" {
		cfg.ReviewLanguage = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
}

// newLogger builds the shared text logger; --verbose lowers the level.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildHTTPClient creates the throttled HTTP client from config. Every remote
// fetch in the process goes through this transport, so the politeness policy
// holds no matter which command triggered the request.
func buildHTTPClient() *http.Client {
	robotsClient := httputil.NewHTTPClient(nil, cfg.ConnectTimeout, cfg.RequestTimeout)

	transport := &stealth.Transport{
		Base:    httputil.BaseTransport(cfg.ConnectTimeout),
		Robots:  stealth.NewRobotsChecker(robotsClient, cfg.RespectRobots),
		Limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Delay:   stealth.NewDelay(stealth.DelayProfile(cfg.DelayProfile)),
	}

	return httputil.NewHTTPClient(transport, cfg.ConnectTimeout, cfg.RequestTimeout)
}

// newScraper wires a storefront client off the shared throttled HTTP client.
func newScraper(logger *slog.Logger) *steam.Client {
	return steam.New(buildHTTPClient(), steam.Options{
		StoreBaseURL:     cfg.StoreBaseURL,
		CommunityBaseURL: cfg.CommunityBaseURL,
		Filter:           cfg.Filter,
		CountryCode:      cfg.CountryCode,
		Language:         cfg.Language,
		ReviewLanguage:   cfg.ReviewLanguage,
		MaxTagLength:     cfg.MaxTagLength,
		MaxRetries:       cfg.MaxRetries,
	}, logger)
}

func newPipeline(logger *slog.Logger) *pipeline.Pipeline {
	return pipeline.New(newScraper(logger), cfg, logger)
}

// signalContext returns a context cancelled on Ctrl-C or SIGTERM so in-flight
// delays and requests unwind instead of the process dying mid-write.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
