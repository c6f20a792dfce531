package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/vidcat"
	"golang.org/x/time/rate"
)

var _ vidcat.PageLimiter = (*HostLimiter)(nil)

// HostLimiter paces listing page loads with one token bucket per site host.
// "www.example.com" and "example.com" share a bucket.
type HostLimiter struct {
	perSecond float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a HostLimiter allowing perSecond page loads per
// host. A non-positive rate disables pacing.
func NewHostLimiter(perSecond float64) *HostLimiter {
	return &HostLimiter{
		perSecond: perSecond,
		buckets:   make(map[string]*rate.Limiter),
	}
}

// Wait blocks until pageURL's host may be loaded again.
func (l *HostLimiter) Wait(ctx context.Context, pageURL string) error {
	h := siteHost(pageURL)
	if h == "" {
		return vidcat.Errorf(vidcat.EINVALID, "page URL has no host: %q", pageURL)
	}
	if l.perSecond <= 0 {
		return ctx.Err()
	}
	return l.bucket(h).Wait(ctx)
}

func (l *HostLimiter) bucket(h string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[h]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.perSecond), 1)
		l.buckets[h] = b
	}
	return b
}

// siteHost returns the lowercased host of rawURL without port or "www.",
// or "" when rawURL has none.
func siteHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
