package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"steamscan/internal/models"
)

// SearchPage fetches one page of the curated listing and extracts its rows.
func (c *Client) SearchPage(ctx context.Context, page int) ([]models.Candidate, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("filter", c.opts.Filter)
	params.Set("page", strconv.Itoa(page))

	doc, err := c.fetchDocument(ctx, c.opts.StoreBaseURL+"/search/", params)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	return parseSearchPage(doc), nil
}

// parseSearchPage extracts listing candidates in page order. No row is
// dropped for missing fields; validity filtering belongs to the cleaner.
// Malformed markup just yields fewer rows.
func parseSearchPage(doc *goquery.Document) []models.Candidate {
	var out []models.Candidate
	doc.Find("a.search_result_row").Each(func(_ int, row *goquery.Selection) {
		appID, ok := row.Attr("data-ds-appid")
		if !ok || appID == "" {
			// bundle/package rows carry a package id instead
			appID, _ = row.Attr("data-ds-packageid")
		}

		priceText := ""
		if pe := row.Find(".search_price").First(); pe.Length() > 0 {
			priceText = normalizeSpace(textWithSeparator(pe, " "))
		}

		tagsText := ""
		if te := row.Find(".search_tags").First(); te.Length() > 0 {
			var tags []string
			for _, t := range strings.Split(textWithSeparator(te, "|"), "|") {
				if t = strings.TrimSpace(t); t != "" {
					tags = append(tags, t)
				}
			}
			tagsText = strings.Join(tags, ", ")
		}

		out = append(out, models.Candidate{
			AppID:     appID,
			Title:     strings.TrimSpace(row.Find(".title").First().Text()),
			Released:  strings.TrimSpace(row.Find(".search_released").First().Text()),
			PriceText: priceText,
			TagsText:  tagsText,
		})
	})
	return out
}
