package scrape

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/vidcat"
)

// DefaultAgeGateTexts are matched case-insensitively against button and
// link text when no configured selector dismisses the gate.
var DefaultAgeGateTexts = []string{"Enter", "18", "Accept", "Yes, I am over 18", "I am 18 or older", "Confirm"}

// AgeGate dismisses age-verification interstitials on a loaded page.
type AgeGate struct {
	// ReadyTimeout bounds the wait for the document body. Defaults to 10s.
	ReadyTimeout time.Duration

	// SelectorTimeout bounds the wait for each configured selector.
	// Defaults to 5s.
	SelectorTimeout time.Duration

	// Texts overrides DefaultAgeGateTexts.
	Texts []string

	Pause  PauseFunc
	Logger *slog.Logger
}

// Dismiss tries to click through an age gate on page, first with the
// site's selectors, then by button and link text. Finding nothing to click
// is a success. It returns false only when the page never became ready or
// the context ended.
func (g *AgeGate) Dismiss(ctx context.Context, page vidcat.Page, url string, selectors []string) bool {
	logger := g.logger().With("url", url)

	readyCtx, cancel := context.WithTimeout(ctx, durationOr(g.ReadyTimeout, 10*time.Second))
	err := page.WaitElements(readyCtx, "body")
	cancel()
	if err != nil {
		logger.Error("page not ready for age verification", "err", err)
		return false
	}

	for _, sel := range selectors {
		if ctx.Err() != nil {
			return false
		}
		el, ok := g.findClickable(ctx, page, sel)
		if !ok {
			continue
		}
		if err := el.Click(); err != nil {
			logger.Warn("age gate click failed", "selector", sel, "err", err)
			continue
		}
		logger.Info("age gate dismissed", "selector", sel, "label", label(el))
		return g.settle(ctx)
	}

	texts := g.Texts
	if texts == nil {
		texts = DefaultAgeGateTexts
	}
	for _, text := range texts {
		for _, tag := range []string{"button", "a"} {
			if ctx.Err() != nil {
				return false
			}
			els, err := page.ElementsByText(ctx, tag, strings.ToLower(text))
			if err != nil {
				logger.Warn("age gate text lookup failed", "text", text, "tag", tag, "err", err)
				continue
			}
			for _, el := range els {
				if !clickable(el) {
					continue
				}
				_ = el.ScrollIntoView()
				if err := g.pause()(ctx, 200*time.Millisecond, 200*time.Millisecond); err != nil {
					return false
				}
				if err := el.Click(); err != nil {
					logger.Warn("age gate click failed", "text", text, "tag", tag, "err", err)
					continue
				}
				logger.Info("age gate dismissed", "text", text, "tag", tag, "label", label(el))
				return g.settle(ctx)
			}
		}
	}

	logger.Info("no age gate found")
	return true
}

// findClickable waits up to SelectorTimeout for sel, then returns the first
// match that is visible and enabled.
func (g *AgeGate) findClickable(ctx context.Context, page vidcat.Page, sel string) (vidcat.Element, bool) {
	waitCtx, cancel := context.WithTimeout(ctx, durationOr(g.SelectorTimeout, 5*time.Second))
	_, err := page.Element(waitCtx, sel)
	cancel()
	if err != nil {
		return nil, false
	}

	els, err := page.Elements(ctx, sel)
	if err != nil {
		return nil, false
	}
	for _, el := range els {
		if clickable(el) {
			return el, true
		}
	}
	return nil, false
}

// settle waits for post-gate redirects after a click.
func (g *AgeGate) settle(ctx context.Context) bool {
	return g.pause()(ctx, 3*time.Second, 5*time.Second) == nil
}

func (g *AgeGate) pause() PauseFunc {
	return pauseOrDefault(g.Pause)
}

func (g *AgeGate) logger() *slog.Logger {
	return loggerOrDiscard(g.Logger)
}

// clickable reports whether el is visible and enabled. Links styled as
// buttons are disabled through aria-disabled rather than the property.
func clickable(el vidcat.Element) bool {
	visible, err := el.Visible()
	if err != nil || !visible {
		return false
	}
	enabled, err := el.Enabled()
	if err != nil || !enabled {
		return false
	}
	aria, err := el.Attribute("aria-disabled")
	return err == nil && aria != "true"
}

func label(el vidcat.Element) string {
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
