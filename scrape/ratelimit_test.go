package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first page of a host loads immediately", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://www.pornhub.com/video?page=1")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("paces pages of the same host", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10) // 100ms between pages

		require.NoError(t, limiter.Wait(context.Background(), "https://www.xvideos.com/new/1"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://www.xvideos.com/new/2")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("www and bare host share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "https://www.spankbang.com/new_videos/1/"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://SpankBang.com:443/new_videos/2/")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "https://spankbang.com/new_videos/1/"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://www.redtube.com/newest?page=1")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("rejects a page URL without a host", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		for _, raw := range []string{"", "/video?page=1", "://bad"} {
			err := limiter.Wait(context.Background(), raw)
			assert.Equal(t, vidcat.EINVALID, vidcat.ErrorCode(err), raw)
		}
	})

	t.Run("zero rate does not pace", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(0)

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "https://www.tube8.com/newest.html"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "https://www.tube8.com/newest.html"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "https://www.tube8.com/newest.html?page=2"))
	})
}
