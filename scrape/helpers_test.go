package scrape_test

import (
	"context"
	"time"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/mock"
)

func noPause(ctx context.Context, _, _ time.Duration) error {
	return ctx.Err()
}

// session records what a scraper did with a fake browser.
type session struct {
	current    string
	navigated  []string
	userAgents []string
	cleared    int
	scrolls    int
	closed     int
}

// newBrowser returns a browser that loads every URL successfully, has no
// age gate, and renders the current URL as its HTML.
func newBrowser() (*mock.Browser, *session) {
	s := &session{}
	b := &mock.Browser{
		Page: mock.Page{
			NavigateFn: func(_ context.Context, url string) error {
				s.navigated = append(s.navigated, url)
				s.current = url
				return nil
			},
			URLFn: func(context.Context) (string, error) {
				return s.current, nil
			},
			HTMLFn: func(context.Context) (string, error) {
				return "<html>" + s.current + "</html>", nil
			},
			SetUserAgentFn: func(_ context.Context, ua string) error {
				s.userAgents = append(s.userAgents, ua)
				return nil
			},
			WaitElementsFn: func(context.Context, string) error {
				return nil
			},
			ElementFn: func(_ context.Context, sel string) (vidcat.Element, error) {
				return nil, vidcat.Errorf(vidcat.ETIMEOUT, "no element %s", sel)
			},
			ElementsFn: func(context.Context, string) ([]vidcat.Element, error) {
				return nil, nil
			},
			ElementsByTextFn: func(context.Context, string, string) ([]vidcat.Element, error) {
				return nil, nil
			},
			ScrollToBottomFn: func(context.Context) error {
				s.scrolls++
				return nil
			},
			CloseFn: func() error {
				s.closed++
				return nil
			},
		},
		ClearCookiesFn: func(context.Context) error {
			s.cleared++
			return nil
		},
		NewPageFn: func(context.Context) (vidcat.Page, error) {
			return nil, vidcat.Errorf(vidcat.EDRIVER, "no tabs")
		},
	}
	return b, s
}

// itemsByURL returns an extractor serving fixed items per listing URL.
func itemsByURL(pages map[string][]vidcat.Item) *mock.ItemExtractor {
	return &mock.ItemExtractor{
		ExtractItemsFn: func(_, pageURL string, _ vidcat.Site) ([]vidcat.Item, error) {
			return pages[pageURL], nil
		},
		ExtractCategoryFn: func(string) string {
			return ""
		},
	}
}

func element(visible, enabled bool, clicked *int) *mock.Element {
	return &mock.Element{
		VisibleFn: func() (bool, error) { return visible, nil },
		EnabledFn: func() (bool, error) { return enabled, nil },
		ScrollIntoViewFn: func() error {
			return nil
		},
		ClickFn: func() error {
			*clicked++
			return nil
		},
		TextFn:      func() (string, error) { return "Enter", nil },
		AttributeFn: func(string) (string, error) { return "", nil },
	}
}
