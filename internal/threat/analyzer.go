package threat

import (
	"context"
	"fmt"

	"steamscan/internal/models"
)

// maxDetailRows caps how many suspicious reviews are kept verbatim for
// inspection; aggregates still cover the full set.
const maxDetailRows = 5

// contentPreviewRunes bounds the quoted content in detail rows.
const contentPreviewRunes = 100

// ReviewSource fetches reviews for one product. *steam.Client satisfies it.
type ReviewSource interface {
	Reviews(ctx context.Context, appID string, max int) ([]models.Review, error)
}

// SuspiciousReview is one flagged review kept for inspection.
type SuspiciousReview struct {
	Index    int     `json:"index"` // 1-based within the fetched set
	Content  string  `json:"content"`
	Page     int     `json:"page"`
	Helpful  int     `json:"helpful"`
	Language string  `json:"language"`
	Profile  Profile `json:"threats"`
}

// GameReport aggregates the threat analysis of one game's reviews.
type GameReport struct {
	AppID           string             `json:"appid"`
	Title           string             `json:"title"`
	TotalReviews    int                `json:"total_reviews"`
	SuspiciousCount int                `json:"suspicious_reviews"`
	ThreatRate      float64            `json:"threat_rate"`
	Totals          Profile            `json:"threat_stats"`
	AvgHelpful      float64            `json:"avg_helpful"`
	ChineseReviews  int                `json:"chinese_reviews"`
	EnglishReviews  int                `json:"english_reviews"`
	Details         []SuspiciousReview `json:"details,omitempty"`
}

// Analyzer composes a review source with the classifier rules.
type Analyzer struct {
	source ReviewSource
	rules  Rules
}

// NewAnalyzer builds an analyzer; zero-value rules fall back to DefaultRules.
func NewAnalyzer(source ReviewSource, rules Rules) *Analyzer {
	if len(rules.LinkPatterns) == 0 && len(rules.Keywords) == 0 && len(rules.ContactPatterns) == 0 {
		rules = DefaultRules()
	}
	return &Analyzer{source: source, rules: rules}
}

// AnalyzeGame fetches up to maxReviews reviews for one game and classifies
// each. A game whose feed yields zero reviews produces a report with all
// counters at zero and a 0 threat rate — no division by zero, no error.
func (a *Analyzer) AnalyzeGame(ctx context.Context, appID, title string, maxReviews int) (*GameReport, error) {
	reviews, err := a.source.Reviews(ctx, appID, maxReviews)
	if err != nil {
		return nil, fmt.Errorf("reviews for %s: %w", appID, err)
	}

	report := &GameReport{AppID: appID, Title: title, TotalReviews: len(reviews)}

	helpfulSum := 0
	for i, rev := range reviews {
		helpfulSum += rev.Helpful
		switch rev.Language {
		case models.LangChinese:
			report.ChineseReviews++
		case models.LangEnglish:
			report.EnglishReviews++
		}

		profile := a.rules.Detect(rev.Content)
		report.Totals.Add(profile)
		if !profile.Suspicious() {
			continue
		}
		report.SuspiciousCount++
		if len(report.Details) < maxDetailRows {
			report.Details = append(report.Details, SuspiciousReview{
				Index:    i + 1,
				Content:  truncate(rev.Content, contentPreviewRunes),
				Page:     rev.Page,
				Helpful:  rev.Helpful,
				Language: rev.Language,
				Profile:  profile,
			})
		}
	}

	if report.TotalReviews > 0 {
		report.ThreatRate = float64(report.SuspiciousCount) / float64(report.TotalReviews)
		report.AvgHelpful = float64(helpfulSum) / float64(report.TotalReviews)
	}
	return report, nil
}

// truncate caps s at max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
