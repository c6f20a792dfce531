package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/vidcat/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPause(t *testing.T) {
	t.Parallel()

	t.Run("sleeps within bounds", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		err := scrape.RandomPause(context.Background(), 20*time.Millisecond, 40*time.Millisecond)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := scrape.RandomPause(ctx, time.Second, 2*time.Second)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, scrape.RandomPause(context.Background(), 0, 0))
	})
}
