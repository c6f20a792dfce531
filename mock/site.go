package mock

import (
	"context"

	"github.com/fwojciec/vidcat"
)

var (
	_ vidcat.SiteScraper   = (*SiteScraper)(nil)
	_ vidcat.PageLimiter   = (*PageLimiter)(nil)
	_ vidcat.ItemExtractor = (*ItemExtractor)(nil)
)

// SiteScraper is a mock implementation of vidcat.SiteScraper.
type SiteScraper struct {
	ScrapeSiteFn func(ctx context.Context, browser vidcat.Browser, req vidcat.SiteRequest) ([]*vidcat.Candidate, error)
}

func (s *SiteScraper) ScrapeSite(ctx context.Context, browser vidcat.Browser, req vidcat.SiteRequest) ([]*vidcat.Candidate, error) {
	return s.ScrapeSiteFn(ctx, browser, req)
}

// PageLimiter is a mock implementation of vidcat.PageLimiter.
type PageLimiter struct {
	WaitFn func(ctx context.Context, pageURL string) error
}

func (l *PageLimiter) Wait(ctx context.Context, pageURL string) error {
	return l.WaitFn(ctx, pageURL)
}

// ItemExtractor is a mock implementation of vidcat.ItemExtractor.
type ItemExtractor struct {
	ExtractItemsFn    func(html, pageURL string, site vidcat.Site) ([]vidcat.Item, error)
	ExtractCategoryFn func(html string) string
}

func (e *ItemExtractor) ExtractItems(html, pageURL string, site vidcat.Site) ([]vidcat.Item, error) {
	return e.ExtractItemsFn(html, pageURL, site)
}

func (e *ItemExtractor) ExtractCategory(html string) string {
	return e.ExtractCategoryFn(html)
}
