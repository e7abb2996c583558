package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Storefront endpoints
	StoreBaseURL     string // listing search + pricing endpoint host
	CommunityBaseURL string // review feed host

	// Locale / filters
	Filter         string // curated listing filter, e.g. "topsellers"
	CountryCode    string // cc parameter for the pricing endpoint
	Language       string // l parameter for detail pages
	ReviewLanguage string // filterLanguage for the review feed

	// Batch sizes
	Pages      int // listing pages to scrape
	MaxGames   int // cleaned records to run review analysis on
	MaxReviews int // reviews to accumulate per game

	// Throttling
	DelayProfile  string // "cautious", "normal", "aggressive"
	RatePerSecond float64
	RateBurst     int
	RespectRobots bool

	// HTTP timeouts (distinct connect/overall budgets)
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	MaxRetries     int

	// Output
	DataDir string

	// Extraction limits
	MaxTagLength int // detail-page tag texts at or above this are noise
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StoreBaseURL:     "https://store.steampowered.com",
		CommunityBaseURL: "https://steamcommunity.com",
		Filter:           "topsellers",
		CountryCode:      "US",
		Language:         "english",
		ReviewLanguage:   "schinese",
		Pages:            1,
		MaxGames:         5,
		MaxReviews:       20,
		DelayProfile:     "normal",
		RatePerSecond:    1.0,
		RateBurst:        1,
		RespectRobots:    true,
		ConnectTimeout:   8 * time.Second,
		RequestTimeout:   30 * time.Second,
		MaxRetries:       2,
		DataDir:          "data",
		MaxTagLength:     40,
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("STEAMSCAN_STORE_URL"); v != "" {
		c.StoreBaseURL = v
	}
	if v := os.Getenv("STEAMSCAN_COMMUNITY_URL"); v != "" {
		c.CommunityBaseURL = v
	}
	if v := os.Getenv("STEAMSCAN_FILTER"); v != "" {
		c.Filter = v
	}
	if v := os.Getenv("STEAMSCAN_COUNTRY"); v != "" {
		c.CountryCode = v
	}
	if v := os.Getenv("STEAMSCAN_LANG"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("STEAMSCAN_REVIEW_LANG"); v != "" {
		c.ReviewLanguage = v
	}
	if v := os.Getenv("STEAMSCAN_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pages = n
		}
	}
	if v := os.Getenv("STEAMSCAN_MAX_GAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxGames = n
		}
	}
	if v := os.Getenv("STEAMSCAN_MAX_REVIEWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxReviews = n
		}
	}
	if v := os.Getenv("STEAMSCAN_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("STEAMSCAN_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("STEAMSCAN_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("STEAMSCAN_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("STEAMSCAN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// Artifact paths inside DataDir. The cleaner and the reporting stage consume
// these by contract.

func (c *Config) RawCSV() string {
	return filepath.Join(c.DataDir, "steam_topsellers.csv")
}

func (c *Config) CleanedCSV() string {
	return filepath.Join(c.DataDir, "steam_topsellers_cleaned.csv")
}

func (c *Config) SummaryCSV() string {
	return filepath.Join(c.DataDir, "review_analysis.csv")
}

func (c *Config) DetailsCSV() string {
	return filepath.Join(c.DataDir, "review_analysis_details.csv")
}
