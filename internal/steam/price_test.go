package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"steamscan/internal/models"
)

func TestFallbackPrice(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		current  string
		original string
	}{
		{"empty", "", "", ""},
		{"free", "Free To Play", "0", "0"},
		{"free lowercase", "free", "0", "0"},
		{"plain", "$19.99", "19.99", ""},
		{"discounted pair", "¥68.00 ¥29.00", "29.00", "68.00"},
		{"thin space separated", "$14.99\u2009$7.49", "7.49", "14.99"},
		{"thousands separator", "$1,299.00", "1299.00", ""},
		{"no numbers", "On Demand", "On Demand", ""},
		{"three numbers keeps last two", "2024 $59.99 $39.99", "39.99", "59.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, original := FallbackPrice(tt.in)
			require.Equal(t, tt.current, current)
			require.Equal(t, tt.original, original)
		})
	}
}

func TestResolvePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appdetails", r.URL.Path)
		appID := r.URL.Query().Get("appids")
		switch appID {
		case "730":
			fmt.Fprint(w, `{"730":{"success":true,"data":{"price_overview":{
				"currency":"USD","initial":1499,"final":749,"discount_percent":50}}}}`)
		case "570":
			// free game: success but no price_overview
			fmt.Fprint(w, `{"570":{"success":true,"data":{}}}`)
		case "999":
			fmt.Fprint(w, `{"999":{"success":false}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())
	ctx := context.Background()

	quote, status := c.ResolvePrice(ctx, "730")
	require.Equal(t, models.PriceResolved, status)
	require.Equal(t, "USD", quote.Currency)
	require.Equal(t, 50, quote.DiscountPercent)
	require.NotNil(t, quote.Initial)
	require.NotNil(t, quote.Final)
	require.InDelta(t, 14.99, *quote.Initial, 0.001)
	require.InDelta(t, 7.49, *quote.Final, 0.001)

	_, status = c.ResolvePrice(ctx, "570")
	require.Equal(t, models.PriceNoData, status)

	_, status = c.ResolvePrice(ctx, "999")
	require.Equal(t, models.PriceNoData, status)

	_, status = c.ResolvePrice(ctx, "404404")
	require.Equal(t, models.PriceFailed, status)
}

func TestResolvePriceTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(nil, Options{StoreBaseURL: srv.URL, MaxRetries: 0}, testLogger())

	_, status := c.ResolvePrice(context.Background(), "730")
	require.Equal(t, models.PriceFailed, status)
}
