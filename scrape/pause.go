package scrape

import (
	"context"
	"math/rand/v2"
	"time"
)

// PauseFunc sleeps for a duration in [min, max]. It returns the context
// error if ctx ends first.
type PauseFunc func(ctx context.Context, min, max time.Duration) error

// RandomPause sleeps for a uniformly random duration in [min, max].
func RandomPause(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += rand.N(max - min + 1)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pauseOrDefault returns p, or RandomPause when p is nil.
func pauseOrDefault(p PauseFunc) PauseFunc {
	if p == nil {
		return RandomPause
	}
	return p
}
