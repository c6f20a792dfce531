// Package slog provides logging decorators for the browser driver.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidcat"
)

// Ensure the decorators implement their interfaces.
var (
	_ vidcat.BrowserLauncher = (*LoggingLauncher)(nil)
	_ vidcat.Browser         = (*LoggingBrowser)(nil)
)

// LoggingLauncher wraps a BrowserLauncher and decorates the sessions it starts.
type LoggingLauncher struct {
	next   vidcat.BrowserLauncher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next vidcat.BrowserLauncher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch delegates to the wrapped launcher and logs the outcome.
func (l *LoggingLauncher) Launch(ctx context.Context) (b vidcat.Browser, err error) {
	defer func(begin time.Time) {
		l.logger.Info("browser launch",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	b, err = l.next.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingBrowser(b, l.logger), nil
}

// LoggingBrowser wraps a Browser with debug logging of page loads.
// Methods that are not logged are delegated through the embedded Browser.
type LoggingBrowser struct {
	vidcat.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next vidcat.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{Browser: next, logger: logger}
}

// Navigate logs the URL being loaded.
func (b *LoggingBrowser) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		b.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.Browser.Navigate(ctx, url)
}

// HTML logs the size of the rendered document.
func (b *LoggingBrowser) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		b.logger.Debug("page html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.Browser.HTML(ctx)
}

// WaitElements logs how long the selector took to appear.
func (b *LoggingBrowser) WaitElements(ctx context.Context, selector string) (err error) {
	defer func(begin time.Time) {
		b.logger.Debug("wait elements",
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.Browser.WaitElements(ctx, selector)
}

// Close logs the end of the session.
func (b *LoggingBrowser) Close() (err error) {
	defer func() {
		b.logger.Info("browser close", "err", err)
	}()
	return b.Browser.Close()
}
