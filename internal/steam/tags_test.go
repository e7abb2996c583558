package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name   string
		search string
		page   string
		want   string
	}{
		{"disjoint", "FPS, Shooter", "Co-op, Tactical", "FPS, Shooter, Co-op, Tactical"},
		{"overlap keeps first-seen order", "A, B", "B, C", "A, B, C"},
		{"self merge is a no-op", "A, B", "A, B", "A, B"},
		{"empty search", "", "X, Y", "X, Y"},
		{"empty page", "X, Y", "", "X, Y"},
		{"both empty", "", "", ""},
		{"whitespace trimmed", " A ,  B ", "B,  C ", "A, B, C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MergeTags(tt.search, tt.page))
		})
	}
}

func TestPageTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<div class="glance_tags popular_tags">
  <a class="app_tag">FPS</a>
  <a class="app_tag"> Shooter </a>
  <a class="app_tag">FPS</a>
</div>
</body></html>`))
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	tags := c.PageTags(context.Background(), "730")
	require.Equal(t, "FPS, Shooter", tags)
}

func TestPageTagsFallbackSelector(t *testing.T) {
	long := strings.Repeat("x", 60)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// no popular_tags class on the container: the broader selector
		// applies and oversized anchor text is treated as noise
		w.Write([]byte(`<html><body>
<div class="glance_tags">
  <a>Roguelike</a>
  <a>` + long + `</a>
  <a>Deckbuilder</a>
</div>
</body></html>`))
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	tags := c.PageTags(context.Background(), "1000")
	require.Equal(t, "Roguelike, Deckbuilder", tags)
}

func TestPageTagsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(nil, Options{StoreBaseURL: srv.URL}, testLogger())

	require.Equal(t, "", c.PageTags(context.Background(), "1"))
}
