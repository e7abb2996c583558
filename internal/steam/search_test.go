package steam

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const listingFixture = `<!DOCTYPE html>
<html><body><div id="search_resultsRows">
<a class="search_result_row" data-ds-appid="730" href="https://store.example/app/730/CS2/">
  <span class="title">Counter-Strike 2</span>
  <div class="search_released">21 Aug, 2012</div>
  <div class="search_price_discount_combined search_price">
    <div class="discount_original_price">$14.99</div>
    <div class="discount_final_price">$7.49</div>
  </div>
  <div class="search_tags"><span>FPS</span><span>Shooter</span><span>Multiplayer</span></div>
</a>
<a class="search_result_row" data-ds-packageid="12345" href="https://store.example/sub/12345/">
  <span class="title">Valve Complete Pack</span>
  <div class="search_released"></div>
  <div class="search_price">$9.99</div>
</a>
</div></body></html>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchPage(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(listingFixture))
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	items, err := c.SearchPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, []string{"topsellers"}, gotQuery["filter"])
	require.Equal(t, []string{"2"}, gotQuery["page"])

	first := items[0]
	require.Equal(t, "730", first.AppID)
	require.Equal(t, "Counter-Strike 2", first.Title)
	require.Equal(t, "21 Aug, 2012", first.Released)
	// both price nodes survive, separated, so the fallback parser can see
	// original and discounted amounts
	require.Equal(t, "$14.99 $7.49", first.PriceText)
	require.Equal(t, "FPS, Shooter, Multiplayer", first.TagsText)

	// bundle row: package id stands in for the app id
	bundle := items[1]
	require.Equal(t, "12345", bundle.AppID)
	require.Equal(t, "Valve Complete Pack", bundle.Title)
	require.Equal(t, "", bundle.Released)
	require.Equal(t, "$9.99", bundle.PriceText)
	require.Equal(t, "", bundle.TagsText)
}

func TestSearchPageEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="search_resultsRows"></div></body></html>`))
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	items, err := c.SearchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSearchPageErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	_, err := c.SearchPage(context.Background(), 1)
	require.Error(t, err)
}
