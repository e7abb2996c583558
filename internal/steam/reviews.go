package steam

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"steamscan/internal/models"
	"steamscan/internal/progress"
)

var digitsExpr = regexp.MustCompile(`\d+`)

// Reviews pages through the community review feed for one app until max
// reviews are accumulated or a page comes back without review cards (end of
// data). A failed page fetch aborts the walk but returns whatever was
// already collected — partial results beat empty ones against a feed this
// flaky.
func (c *Client) Reviews(ctx context.Context, appID string, max int) ([]models.Review, error) {
	if max <= 0 {
		max = 10
	}

	feedURL := fmt.Sprintf("%s/app/%s/reviews/", c.opts.CommunityBaseURL, appID)
	maxPages := max/10 + 1

	var reviews []models.Review
	for page := 1; page <= maxPages && len(reviews) < max; page++ {
		progress.Report(ctx, fmt.Sprintf("fetching reviews page %d for app %s", page, appID))

		params := url.Values{}
		params.Set("browsefilter", "mostrecent")
		params.Set("filterLanguage", c.opts.ReviewLanguage)
		params.Set("p", strconv.Itoa(page))

		doc, err := c.fetchDocument(ctx, feedURL, params)
		if err != nil {
			if ctx.Err() != nil {
				return reviews, ctx.Err()
			}
			c.logger.Warn("review page fetch failed, keeping partial result",
				"appid", appID, "page", page, "collected", len(reviews), "error", err)
			return reviews, nil
		}

		cards := doc.Find("div.apphub_Card")
		if cards.Length() == 0 {
			break
		}

		cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
			if len(reviews) >= max {
				return false
			}
			content := strings.TrimSpace(card.Find(".apphub_CardTextContent").First().Text())
			if content == "" {
				return true
			}
			reviews = append(reviews, models.Review{
				Content:  content,
				Page:     page,
				Helpful:  parseHelpful(card.Find(".found_helpful").First().Text()),
				Language: DetectLanguage(content),
			})
			return true
		})
	}
	return reviews, nil
}

// parseHelpful pulls the first numeric substring out of a "N people found
// this review helpful" blurb; absent or unparseable counts are 0.
func parseHelpful(text string) int {
	m := digitsExpr.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// DetectLanguage classifies review text by script: any Han character makes it
// chinese, any other non-ASCII rune makes it other, pure ASCII is english.
// Only the first 100 runes are inspected; that prefix is plenty to decide.
func DetectLanguage(text string) string {
	inspected := 0
	nonASCII := false
	for _, r := range text {
		if inspected >= 100 {
			break
		}
		inspected++
		if unicode.Is(unicode.Han, r) {
			return models.LangChinese
		}
		if r > unicode.MaxASCII {
			nonASCII = true
		}
	}
	if nonASCII {
		return models.LangOther
	}
	return models.LangEnglish
}
