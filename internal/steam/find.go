package steam

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"steamscan/internal/models"
)

var appHrefExpr = regexp.MustCompile(`/app/(\d+)/`)

// FindGame searches the storefront by title and returns the first matching
// game. Unlike the scraping paths this does return errors: a lookup the user
// asked for by name has nothing sensible to fall back to.
func (c *Client) FindGame(ctx context.Context, name string) (*models.GameRef, error) {
	params := url.Values{}
	params.Set("term", name)
	params.Set("category1", "998") // games only, excludes DLC and hardware
	params.Set("l", c.opts.ReviewLanguage)

	doc, err := c.fetchDocument(ctx, c.opts.StoreBaseURL+"/search/", params)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}

	first := doc.Find("a.search_result_row").First()
	if first.Length() == 0 {
		return nil, fmt.Errorf("no results for %q", name)
	}

	href, _ := first.Attr("href")
	m := appHrefExpr.FindStringSubmatch(href)
	if m == nil {
		return nil, fmt.Errorf("no app id in result url %q", href)
	}

	title := strings.TrimSpace(first.Find("span.title").First().Text())
	if title == "" {
		title = name
	}

	return &models.GameRef{AppID: m[1], Title: title}, nil
}
