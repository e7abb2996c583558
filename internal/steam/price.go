package steam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"steamscan/internal/httputil"
	"steamscan/internal/models"
)

// priceOverview is the nested pricing payload; amounts are integer minor
// units (cents).
type priceOverview struct {
	Currency        string `json:"currency"`
	Initial         *int64 `json:"initial"`
	Final           *int64 `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
}

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		PriceOverview *priceOverview `json:"price_overview"`
	} `json:"data"`
}

// ResolvePrice asks the pricing endpoint for a structured quote. It never
// returns an error: transport/decode problems yield PriceFailed and a missing
// or unsuccessful overview yields PriceNoData, so callers can fall back to
// the listing snippet while still telling the two cases apart.
func (c *Client) ResolvePrice(ctx context.Context, appID string) (models.PriceQuote, models.PriceStatus) {
	params := url.Values{}
	params.Set("appids", appID)
	params.Set("cc", c.opts.CountryCode)
	params.Set("l", c.opts.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.opts.StoreBaseURL+"/api/appdetails?"+params.Encode(), nil)
	if err != nil {
		return models.PriceQuote{}, models.PriceFailed
	}
	for k, vals := range httputil.APIHeaders() {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := httputil.DoWithRetry(c.http, req, c.opts.MaxRetries)
	if err != nil {
		c.logger.Warn("price lookup failed", "appid", appID, "error", err)
		return models.PriceQuote{}, models.PriceFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("price lookup status", "appid", appID, "status", resp.Status)
		return models.PriceQuote{}, models.PriceFailed
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return models.PriceQuote{}, models.PriceFailed
	}

	var payload map[string]appDetailsEntry
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("price payload decode failed", "appid", appID, "error", err)
		return models.PriceQuote{}, models.PriceFailed
	}

	entry, ok := payload[appID]
	if !ok || !entry.Success {
		return models.PriceQuote{}, models.PriceNoData
	}
	po := entry.Data.PriceOverview
	if po == nil {
		return models.PriceQuote{}, models.PriceNoData
	}

	quote := models.PriceQuote{
		Currency:        po.Currency,
		DiscountPercent: po.DiscountPercent,
	}
	if po.Initial != nil {
		v := float64(*po.Initial) / 100.0
		quote.Initial = &v
	}
	if po.Final != nil {
		v := float64(*po.Final) / 100.0
		quote.Final = &v
	}
	return quote, models.PriceResolved
}

var numberGroups = regexp.MustCompile(`[0-9.,]+`)

// FallbackPrice extracts prices from a raw listing snippet when the
// structured endpoint has nothing. Snippets render "striked original, then
// discounted current", so the last number is taken as current and the
// second-to-last as original; with more than two numeric groups (embedded
// ratings, stray digits) that assignment is best-effort and earlier groups
// are ignored. An unparseable snippet comes back verbatim as the current
// price so "could not parse" stays distinguishable from a true zero.
func FallbackPrice(priceText string) (current, original string) {
	if priceText == "" {
		return "", ""
	}
	s := strings.TrimSpace(strings.ReplaceAll(priceText, "\u2009", " "))

	for _, tok := range strings.Fields(s) {
		if strings.HasPrefix(strings.ToLower(tok), "free") {
			return "0", "0"
		}
	}

	nums := numberGroups.FindAllString(s, -1)
	switch len(nums) {
	case 0:
		return s, ""
	case 1:
		return strings.ReplaceAll(nums[0], ",", ""), ""
	default:
		current = strings.ReplaceAll(nums[len(nums)-1], ",", "")
		original = strings.ReplaceAll(nums[len(nums)-2], ",", "")
		return current, original
	}
}
