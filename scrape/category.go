package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidcat"
)

// CategoryLookup reads a video's category from its embed page, opened in
// a separate tab.
type CategoryLookup struct {
	Extractor vidcat.ItemExtractor

	// Timeout bounds the whole lookup. Defaults to 10s.
	Timeout time.Duration

	Logger *slog.Logger
}

// Lookup returns the category shown at url, or vidcat.DefaultCategory on
// any failure.
func (l *CategoryLookup) Lookup(ctx context.Context, browser vidcat.Browser, url string) string {
	logger := loggerOrDiscard(l.Logger)

	ctx, cancel := context.WithTimeout(ctx, durationOr(l.Timeout, 10*time.Second))
	defer cancel()

	tab, err := browser.NewPage(ctx)
	if err != nil {
		logger.Warn("open category tab", "url", url, "err", err)
		return vidcat.DefaultCategory
	}
	defer func() {
		if err := tab.Close(); err != nil {
			logger.Warn("close category tab", "url", url, "err", err)
		}
	}()

	if err := tab.Navigate(ctx, url); err != nil {
		logger.Warn("load category page", "url", url, "err", err)
		return vidcat.DefaultCategory
	}
	if err := tab.WaitElements(ctx, "body"); err != nil {
		logger.Warn("wait for category page", "url", url, "err", err)
		return vidcat.DefaultCategory
	}
	html, err := tab.HTML(ctx)
	if err != nil {
		logger.Warn("read category page", "url", url, "err", err)
		return vidcat.DefaultCategory
	}

	if cat := l.Extractor.ExtractCategory(html); cat != "" {
		return cat
	}
	return vidcat.DefaultCategory
}
