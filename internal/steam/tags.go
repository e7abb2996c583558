package steam

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// PageTags fetches the detail page for an app and returns its popular tags
// joined with ", ". Any fetch or parse failure yields "" — the listing tags
// alone are still a usable record.
func (c *Client) PageTags(ctx context.Context, appID string) string {
	params := url.Values{}
	params.Set("l", c.opts.Language)

	doc, err := c.fetchDocument(ctx, c.opts.StoreBaseURL+"/app/"+appID+"/", params)
	if err != nil {
		c.logger.Warn("detail page fetch failed", "appid", appID, "error", err)
		return ""
	}

	var tags []string
	doc.Find("div.glance_tags.popular_tags a.app_tag").Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			tags = append(tags, t)
		}
	})
	if len(tags) == 0 {
		// The tag section's structure shifts occasionally; retry with a
		// broader selector, treating oversized text nodes as noise.
		doc.Find("div.glance_tags a").Each(func(_ int, a *goquery.Selection) {
			t := strings.TrimSpace(a.Text())
			if t != "" && utf8.RuneCountInString(t) < c.opts.MaxTagLength {
				tags = append(tags, t)
			}
		})
	}

	return strings.Join(dedupe(tags), ", ")
}

// MergeTags combines a listing-page tag string and a detail-page tag string
// into one comma-separated string, first-seen order, listing tags first.
// Merging a list with itself is a no-op.
func MergeTags(searchTags, pageTags string) string {
	var merged []string
	for _, raw := range []string{searchTags, pageTags} {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				merged = append(merged, t)
			}
		}
	}
	return strings.Join(dedupe(merged), ", ")
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
