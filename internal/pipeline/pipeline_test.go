package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"steamscan/config"
	"steamscan/internal/dataio"
	"steamscan/internal/steam"
)

// storefrontStub serves just enough of the listing, pricing, detail and
// review surfaces for a pipeline run.
func storefrontStub() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<a class="search_result_row" data-ds-appid="730" href="/app/730/">
  <span class="title">Counter-Strike 2</span>
  <div class="search_released">21 Aug, 2012</div>
  <div class="search_price">$14.99 $7.49</div>
  <div class="search_tags"><span>FPS</span><span>Shooter</span></div>
</a>
<a class="search_result_row" data-ds-packageid="12345" href="/sub/12345/">
  <span class="title">Valve Complete Pack</span>
  <div class="search_price">$9.99</div>
</a>
</body></html>`)
	})
	mux.HandleFunc("/api/appdetails", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appids") != "730" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"730":{"success":true,"data":{"price_overview":{
			"currency":"USD","initial":1499,"final":749,"discount_percent":50}}}}`)
	})
	mux.HandleFunc("/app/730/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="glance_tags popular_tags">
<a class="app_tag">FPS</a><a class="app_tag">Tactical</a>
</div></body></html>`)
	})
	mux.HandleFunc("/app/730/reviews/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, `<html><body>
<div class="apphub_Card">
  <div class="found_helpful">5 people found this review helpful</div>
  <div class="apphub_CardTextContent">solid game</div>
</div>
<div class="apphub_Card">
  <div class="found_helpful"></div>
  <div class="apphub_CardTextContent">卖脚本的加13812345678</div>
</div>
</body></html>`)
	})
	return mux
}

func testPipeline(t *testing.T, baseURL string) (*Pipeline, *config.Config) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.StoreBaseURL = baseURL
	cfg.CommunityBaseURL = baseURL
	cfg.MaxRetries = 0

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scraper := steam.New(nil, steam.Options{
		StoreBaseURL:     baseURL,
		CommunityBaseURL: baseURL,
	}, logger)
	return New(scraper, cfg, logger), cfg
}

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(storefrontStub())
	defer srv.Close()

	p, cfg := testPipeline(t, srv.URL)

	records, err := p.Extract(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 2)

	cs := records[0]
	require.Equal(t, "730", cs.AppID)
	require.Equal(t, "7.49", cs.CurrentPrice)
	require.Equal(t, "14.99", cs.OriginalPrice)
	require.Equal(t, "FPS, Shooter, Tactical", cs.Tags)

	// no structured quote for bundles: the listing snippet decides
	bundle := records[1]
	require.Equal(t, "12345", bundle.AppID)
	require.Equal(t, "9.99", bundle.CurrentPrice)
	require.Equal(t, "", bundle.OriginalPrice)

	onDisk, err := dataio.ReadProducts(cfg.RawCSV())
	require.NoError(t, err)
	require.Equal(t, records, onDisk)
}

func TestExtractNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p, _ := testPipeline(t, srv.URL)

	_, err := p.Extract(context.Background(), 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no candidates")
}

func TestAnalyzeReviews(t *testing.T) {
	srv := httptest.NewServer(storefrontStub())
	defer srv.Close()

	p, cfg := testPipeline(t, srv.URL)

	_, err := p.Extract(context.Background(), 1)
	require.NoError(t, err)
	_, err = p.Clean()
	require.NoError(t, err)

	reports, err := p.AnalyzeReviews(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	require.Equal(t, "730", r.AppID)
	require.Equal(t, 2, r.TotalReviews)
	require.Equal(t, 1, r.SuspiciousCount)
	require.InDelta(t, 0.5, r.ThreatRate, 0.001)

	rows, err := dataio.ReadSummaryRows(cfg.SummaryCSV())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, err = os.Stat(cfg.DetailsCSV())
	require.NoError(t, err)
}

func TestAnalyzeReviewsWithoutCleanedTable(t *testing.T) {
	srv := httptest.NewServer(storefrontStub())
	defer srv.Close()

	p, _ := testPipeline(t, srv.URL)

	_, err := p.AnalyzeReviews(context.Background(), 1, 10)
	require.Error(t, err)
}

func TestRunSurvivesDeadStorefront(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p, cfg := testPipeline(t, srv.URL)

	// nothing extracted, no previous raw file: the run is a hard failure
	err := p.Run(context.Background(), Options{Pages: 1, SkipReport: true})
	require.Error(t, err)

	// with a raw file from a previous run, later stages still operate
	require.NoError(t, dataio.WriteProducts(cfg.RawCSV(), nil))
	err = p.Run(context.Background(), Options{Pages: 1, SkipReport: true})
	require.NoError(t, err)
}
