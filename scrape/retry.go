package scrape

import (
	"context"

	"github.com/fwojciec/vidcat"
)

// LogFunc is the signature for a retry logging function.
type LogFunc func(attempt int, err error)

// WithRetry calls op up to attempts times. Only transient errors (see
// vidcat.IsTransient) are retried; any other error is returned at once.
// wait runs between attempts. After the last attempt the final transient
// error is returned.
func WithRetry(ctx context.Context, attempts int, op func(ctx context.Context) error, wait func(ctx context.Context) error, logger LogFunc) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !vidcat.IsTransient(err) {
			return err
		}
		lastErr = err

		if logger != nil {
			logger(attempt, err)
		}

		// Don't wait after the last attempt
		if attempt == attempts {
			break
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if wait != nil {
			if err := wait(ctx); err != nil {
				return err
			}
		}
	}

	return lastErr
}
