// Package pipeline sequences the four stages: extraction, cleaning, review
// analysis and reporting. Stages are isolated — a failed or skipped stage is
// reported and the run moves on, so one missing file never throws away the
// work of the stages before it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"steamscan/config"
	"steamscan/internal/clean"
	"steamscan/internal/dataio"
	"steamscan/internal/models"
	"steamscan/internal/progress"
	"steamscan/internal/report"
	"steamscan/internal/stealth"
	"steamscan/internal/steam"
	"steamscan/internal/threat"
)

// Pipeline owns the stage sequencing for one run.
type Pipeline struct {
	scraper  *steam.Client
	analyzer *threat.Analyzer
	delay    *stealth.Delay
	cfg      *config.Config
	logger   *slog.Logger
}

// Options select how much work one run does.
type Options struct {
	Pages      int
	MaxGames   int
	MaxReviews int
	SkipReport bool
}

// New wires a pipeline from an already-throttled scraper.
func New(scraper *steam.Client, cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		scraper:  scraper,
		analyzer: threat.NewAnalyzer(scraper, threat.DefaultRules()),
		delay:    stealth.NewDelay(stealth.DelayProfile(cfg.DelayProfile)),
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes all stages in order and always reports elapsed time and the
// artifacts that exist afterwards, whichever stages succeeded. A cancelled
// context (user interrupt) surfaces as a clean abort, not a crash.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	start := time.Now()
	defer func() {
		p.logger.Info("pipeline finished",
			"elapsed", time.Since(start).Round(time.Second),
			"artifacts", strings.Join(p.artifacts(), ", "))
	}()

	if _, err := p.Extract(ctx, opts.Pages); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("aborted by user: %w", err)
		}
		// Extraction failing entirely means no network or a dead storefront;
		// nothing downstream can run for the first time, but cleaning and
		// reporting may still work off files from a previous run.
		p.logger.Error("extraction failed", "error", err)
		if _, statErr := os.Stat(p.cfg.RawCSV()); statErr != nil {
			return fmt.Errorf("extract: %w", err)
		}
		p.logger.Info("continuing with raw data from a previous run", "path", p.cfg.RawCSV())
	}

	if summary, err := p.Clean(); err != nil {
		p.logger.Error("cleaning skipped", "error", err)
	} else {
		p.logger.Info("cleaning done",
			"total", summary.Total, "kept", summary.Kept,
			"invalid", summary.Invalid, "duplicates", summary.Duplicates)
	}

	if _, err := p.AnalyzeReviews(ctx, opts.MaxGames, opts.MaxReviews); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("aborted by user: %w", err)
		}
		p.logger.Error("review analysis skipped", "error", err)
	}

	if !opts.SkipReport {
		if err := p.Report(); err != nil {
			p.logger.Error("reporting skipped", "error", err)
		}
	}
	return nil
}

// Extract scrapes the configured listing pages, resolves price and tags for
// every candidate and writes the raw product table. A failed page fetch is
// skipped; only a run yielding zero candidates is an error.
func (p *Pipeline) Extract(ctx context.Context, pages int) ([]models.ProductRecord, error) {
	if pages <= 0 {
		pages = p.cfg.Pages
	}

	var candidates []models.Candidate
	failedPages := 0
	for page := 1; page <= pages; page++ {
		progress.Report(ctx, fmt.Sprintf("scraping listing page %d/%d", page, pages))
		items, err := p.scraper.SearchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failedPages++
			p.logger.Warn("listing page failed", "page", page, "error", err)
			continue
		}
		p.logger.Info("listing page scraped", "page", page, "rows", len(items))
		candidates = append(candidates, items...)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates extracted (%d/%d pages failed)", failedPages, pages)
	}

	records := make([]models.ProductRecord, 0, len(candidates))
	resolved, fellBack := 0, 0
	for i, cand := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		progress.Report(ctx, fmt.Sprintf("[%d/%d] %s", i+1, len(candidates), cand.Title))

		rec := models.ProductRecord{
			AppID:    cand.AppID,
			Title:    cand.Title,
			Released: cand.Released,
		}

		if cand.AppID != "" {
			quote, status := p.scraper.ResolvePrice(ctx, cand.AppID)
			if status == models.PriceResolved && quote.Final != nil {
				resolved++
				rec.CurrentPrice = formatPrice(*quote.Final)
				if quote.Initial != nil {
					rec.OriginalPrice = formatPrice(*quote.Initial)
					if *quote.Final > *quote.Initial {
						p.logger.Warn("price anomaly: current above original",
							"appid", cand.AppID, "current", *quote.Final, "original", *quote.Initial)
					}
				}
			} else {
				fellBack++
				p.logger.Debug("falling back to listing price text",
					"appid", cand.AppID, "status", status.String())
				rec.CurrentPrice, rec.OriginalPrice = steam.FallbackPrice(cand.PriceText)
			}
			rec.Tags = steam.MergeTags(cand.TagsText, p.scraper.PageTags(ctx, cand.AppID))
		} else {
			// bundles have no id: listing snippet is all there is
			fellBack++
			rec.CurrentPrice, rec.OriginalPrice = steam.FallbackPrice(cand.PriceText)
			rec.Tags = steam.MergeTags(cand.TagsText, "")
		}

		records = append(records, rec)
	}

	if err := dataio.WriteProducts(p.cfg.RawCSV(), records); err != nil {
		return nil, err
	}
	p.logger.Info("extraction done",
		"records", len(records), "price_api", resolved, "price_fallback", fellBack,
		"failed_pages", failedPages, "path", p.cfg.RawCSV())
	return records, nil
}

// Clean runs the cleaner over the raw table.
func (p *Pipeline) Clean() (clean.Summary, error) {
	return clean.CleanFile(p.cfg.RawCSV(), p.cfg.CleanedCSV())
}

// AnalyzeReviews runs the review threat analysis for the first maxGames
// cleaned records and writes the summary and detail tables.
func (p *Pipeline) AnalyzeReviews(ctx context.Context, maxGames, maxReviews int) ([]threat.GameReport, error) {
	if maxGames <= 0 {
		maxGames = p.cfg.MaxGames
	}
	if maxReviews <= 0 {
		maxReviews = p.cfg.MaxReviews
	}

	records, err := dataio.ReadProducts(p.cfg.CleanedCSV())
	if err != nil {
		return nil, fmt.Errorf("read cleaned products: %w", err)
	}
	if len(records) > maxGames {
		records = records[:maxGames]
	}

	var reports []threat.GameReport
	for i, rec := range records {
		if strings.TrimSpace(rec.AppID) == "" || strings.TrimSpace(rec.Title) == "" {
			continue
		}
		progress.Report(ctx, fmt.Sprintf("[%d/%d] analyzing reviews: %s", i+1, len(records), rec.Title))

		rep, err := p.analyzer.AnalyzeGame(ctx, rec.AppID, rec.Title, maxReviews)
		if err != nil {
			if ctx.Err() != nil {
				return reports, ctx.Err()
			}
			p.logger.Warn("analysis failed for game", "appid", rec.AppID, "error", err)
			continue
		}
		p.logger.Info("game analyzed",
			"appid", rep.AppID, "reviews", rep.TotalReviews,
			"suspicious", rep.SuspiciousCount,
			"threat_rate", fmt.Sprintf("%.1f%%", rep.ThreatRate*100))
		reports = append(reports, *rep)

		// the review feed throttles faster than the store pages
		if i < len(records)-1 {
			if err := p.delay.WaitLong(ctx); err != nil {
				return reports, err
			}
		}
	}

	if len(reports) == 0 {
		p.logger.Warn("no games analyzed, skipping analysis tables")
		return reports, nil
	}
	if err := dataio.WriteSummaries(p.cfg.SummaryCSV(), reports); err != nil {
		return reports, err
	}
	if err := dataio.WriteDetails(p.cfg.DetailsCSV(), reports); err != nil {
		return reports, err
	}
	p.logger.Info("review analysis done",
		"games", len(reports), "summary", p.cfg.SummaryCSV(), "details", p.cfg.DetailsCSV())
	return reports, nil
}

// Report prints the console overview off the cleaned and summary tables.
func (p *Pipeline) Report() error {
	return report.Overview(os.Stdout, p.cfg.CleanedCSV(), p.cfg.SummaryCSV())
}

// artifacts lists the output files that actually exist.
func (p *Pipeline) artifacts() []string {
	var out []string
	for _, path := range []string{p.cfg.RawCSV(), p.cfg.CleanedCSV(), p.cfg.SummaryCSV(), p.cfg.DetailsCSV()} {
		if _, err := os.Stat(path); err == nil {
			out = append(out, path)
		}
	}
	return out
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
