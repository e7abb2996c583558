// Package steam scrapes the storefront's listing, pricing, detail and review
// surfaces. All fetches are sequential and best-effort: transient remote
// failures degrade to partial or absent results instead of propagating.
package steam

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"steamscan/internal/httputil"
)

// Options configures the storefront client. Zero values fall back to the
// public endpoints and the defaults the storefront expects.
type Options struct {
	StoreBaseURL     string
	CommunityBaseURL string
	Filter           string
	CountryCode      string
	Language         string
	ReviewLanguage   string
	MaxTagLength     int
	MaxRetries       int
}

func (o *Options) applyDefaults() {
	if o.StoreBaseURL == "" {
		o.StoreBaseURL = "https://store.steampowered.com"
	}
	if o.CommunityBaseURL == "" {
		o.CommunityBaseURL = "https://steamcommunity.com"
	}
	if o.Filter == "" {
		o.Filter = "topsellers"
	}
	if o.CountryCode == "" {
		o.CountryCode = "US"
	}
	if o.Language == "" {
		o.Language = "english"
	}
	if o.ReviewLanguage == "" {
		o.ReviewLanguage = "schinese"
	}
	if o.MaxTagLength <= 0 {
		o.MaxTagLength = 40
	}
}

// Client talks to one storefront.
type Client struct {
	http   *http.Client
	opts   Options
	logger *slog.Logger
}

// New wires an HTTP client; pass a throttled client for real scraping.
func New(httpClient *http.Client, opts Options, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil, 0, 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts.applyDefaults()
	return &Client{http: httpClient, opts: opts, logger: logger}
}

func (c *Client) fetchDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vals := range httputil.BrowserHeaders() {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := httputil.DoWithRetry(c.http, req, c.opts.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront returned %s", resp.Status)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// textWithSeparator joins every non-empty text node under the selection with
// sep, so adjacent child elements don't run together the way a bare .Text()
// concatenation would.
func textWithSeparator(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// normalizeSpace collapses all interior whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
