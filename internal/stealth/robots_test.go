package stealth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRobotsChecker(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/robots.txt", r.URL.Path)
		fetches++
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	}))
	defer srv.Close()

	checker := NewRobotsChecker(srv.Client(), true)
	ua := "Mozilla/5.0"

	allowed, err := checker.IsAllowed(ua, srv.URL+"/public/page")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = checker.IsAllowed(ua, srv.URL+"/private/page")
	require.NoError(t, err)
	require.False(t, allowed)

	// second origin hit comes from cache
	require.Equal(t, 1, fetches)
}

func TestRobotsCheckerDisabled(t *testing.T) {
	checker := NewRobotsChecker(nil, false)

	allowed, err := checker.IsAllowed("any", "https://example.com/private/")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRobotsCheckerUnreachableAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	checker := NewRobotsChecker(&http.Client{}, true)

	allowed, err := checker.IsAllowed("any", srv.URL+"/anything")
	require.NoError(t, err)
	require.True(t, allowed)
}
