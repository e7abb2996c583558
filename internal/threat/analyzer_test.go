package threat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"steamscan/internal/models"
)

type stubSource struct {
	reviews []models.Review
	err     error
}

func (s *stubSource) Reviews(ctx context.Context, appID string, max int) ([]models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.reviews) > max {
		return s.reviews[:max], nil
	}
	return s.reviews, nil
}

func TestAnalyzeGame(t *testing.T) {
	source := &stubSource{reviews: []models.Review{
		{Content: "solid game", Page: 1, Helpful: 4, Language: models.LangEnglish},
		{Content: "卖脚本的加13812345678", Page: 1, Helpful: 0, Language: models.LangChinese},
		{Content: "很好玩", Page: 1, Helpful: 2, Language: models.LangChinese},
		{Content: "free giveaway at http://scam.example", Page: 2, Helpful: 0, Language: models.LangEnglish},
	}}

	report, err := NewAnalyzer(source, DefaultRules()).AnalyzeGame(context.Background(), "730", "CS2", 20)
	require.NoError(t, err)

	require.Equal(t, "730", report.AppID)
	require.Equal(t, "CS2", report.Title)
	require.Equal(t, 4, report.TotalReviews)
	require.Equal(t, 2, report.SuspiciousCount)
	require.InDelta(t, 0.5, report.ThreatRate, 0.001)
	require.InDelta(t, 1.5, report.AvgHelpful, 0.001)
	require.Equal(t, 2, report.ChineseReviews)
	require.Equal(t, 2, report.EnglishReviews)

	require.Len(t, report.Details, 2)
	require.Equal(t, 2, report.Details[0].Index) // 1-based, first flagged review
	require.Equal(t, 4, report.Details[1].Index)
	require.True(t, report.Details[0].Profile.Suspicious())

	require.Equal(t, 1, report.Totals.Links)
	require.GreaterOrEqual(t, report.Totals.Keywords, 2)
	require.Equal(t, 1, report.Totals.Contacts)
}

func TestAnalyzeGameNoReviews(t *testing.T) {
	report, err := NewAnalyzer(&stubSource{}, DefaultRules()).
		AnalyzeGame(context.Background(), "570", "Dota 2", 20)
	require.NoError(t, err)

	require.Equal(t, 0, report.TotalReviews)
	require.Equal(t, 0, report.SuspiciousCount)
	require.Zero(t, report.ThreatRate)
	require.Zero(t, report.AvgHelpful)
	require.Empty(t, report.Details)
}

func TestAnalyzeGameDetailCapAndTruncation(t *testing.T) {
	var reviews []models.Review
	long := strings.Repeat("好", 150)
	for i := 0; i < 8; i++ {
		reviews = append(reviews, models.Review{
			Content:  fmt.Sprintf("外挂 %d %s", i, long),
			Page:     1,
			Language: models.LangChinese,
		})
	}

	report, err := NewAnalyzer(&stubSource{reviews: reviews}, DefaultRules()).
		AnalyzeGame(context.Background(), "440", "TF2", 20)
	require.NoError(t, err)

	require.Equal(t, 8, report.SuspiciousCount)
	require.Len(t, report.Details, maxDetailRows)
	for _, d := range report.Details {
		require.LessOrEqual(t, len([]rune(d.Content)), contentPreviewRunes+3)
		require.True(t, strings.HasSuffix(d.Content, "..."))
	}
}

func TestAnalyzeGameSourceError(t *testing.T) {
	source := &stubSource{err: errors.New("feed unreachable")}

	_, err := NewAnalyzer(source, DefaultRules()).AnalyzeGame(context.Background(), "10", "", 20)
	require.Error(t, err)
	require.Contains(t, err.Error(), "feed unreachable")
}
