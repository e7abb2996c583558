package stealth

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// userAgents is a small desktop pool rotated per request. A consistent but
// non-unique identity keeps the storefront from serving degraded markup.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
}

// Transport is an http.RoundTripper applying the politeness pipeline:
// UserAgent → RobotsCheck → RateLimiter → Delay → Send.
// All waiting happens here so callers stay plain sequential code.
type Transport struct {
	Base    http.RoundTripper
	Robots  *RobotsChecker
	Limiter *rate.Limiter
	Delay   *Delay

	requests int
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ua := userAgents[t.requests%len(userAgents)]
	t.requests++
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ua)
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(ua, req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if t.Delay != nil {
		if err := t.Delay.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
