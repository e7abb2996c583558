package stealth

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProfile defines a named delay configuration.
type DelayProfile string

const (
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// Delay inserts jittered pauses between consecutive remote fetches. The
// storefront rate-limits aggressive clients, so the pause is deliberate
// policy, not an incidental sleep; the default profile stays non-zero.
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// NewDelay creates a delay generator for the given profile.
func NewDelay(profile DelayProfile) *Delay {
	switch profile {
	case ProfileCautious:
		return &Delay{Min: 2 * time.Second, Max: 5 * time.Second}
	case ProfileAggressive:
		return &Delay{Min: 500 * time.Millisecond, Max: time.Second}
	default: // normal, matches the 1-2s cadence the storefront tolerates
		return &Delay{Min: time.Second, Max: 2 * time.Second}
	}
}

// Wait sleeps for a random duration within the configured range, or returns
// early when the context is cancelled.
func (d *Delay) Wait(ctx context.Context) error {
	return sleep(ctx, d.randomBetween(d.Min, d.Max))
}

// WaitLong sleeps for a longer pause, used between per-product review batches
// where the feed is quicker to throttle than the listing pages.
func (d *Delay) WaitLong(ctx context.Context) error {
	return sleep(ctx, d.randomBetween(d.Max, 2*d.Max))
}

func sleep(ctx context.Context, dur time.Duration) error {
	select {
	case <-time.After(dur):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Delay) randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
