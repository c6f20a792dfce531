package mock

import (
	"context"

	"github.com/fwojciec/vidcat"
)

// Compile-time interface verification.
var (
	_ vidcat.Page            = (*Page)(nil)
	_ vidcat.Browser         = (*Browser)(nil)
	_ vidcat.Element         = (*Element)(nil)
	_ vidcat.BrowserLauncher = (*BrowserLauncher)(nil)
)

// Page is a mock implementation of vidcat.Page.
type Page struct {
	NavigateFn       func(ctx context.Context, url string) error
	URLFn            func(ctx context.Context) (string, error)
	HTMLFn           func(ctx context.Context) (string, error)
	SetUserAgentFn   func(ctx context.Context, userAgent string) error
	WaitElementsFn   func(ctx context.Context, selector string) error
	ElementFn        func(ctx context.Context, selector string) (vidcat.Element, error)
	ElementsFn       func(ctx context.Context, selector string) ([]vidcat.Element, error)
	ElementsByTextFn func(ctx context.Context, tag, text string) ([]vidcat.Element, error)
	ScrollToBottomFn func(ctx context.Context) error
	CloseFn          func() error
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *Page) URL(ctx context.Context) (string, error) {
	return p.URLFn(ctx)
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.HTMLFn(ctx)
}

func (p *Page) SetUserAgent(ctx context.Context, userAgent string) error {
	return p.SetUserAgentFn(ctx, userAgent)
}

func (p *Page) WaitElements(ctx context.Context, selector string) error {
	return p.WaitElementsFn(ctx, selector)
}

func (p *Page) Element(ctx context.Context, selector string) (vidcat.Element, error) {
	return p.ElementFn(ctx, selector)
}

func (p *Page) Elements(ctx context.Context, selector string) ([]vidcat.Element, error) {
	return p.ElementsFn(ctx, selector)
}

func (p *Page) ElementsByText(ctx context.Context, tag, text string) ([]vidcat.Element, error) {
	return p.ElementsByTextFn(ctx, tag, text)
}

func (p *Page) ScrollToBottom(ctx context.Context) error {
	return p.ScrollToBottomFn(ctx)
}

func (p *Page) Close() error {
	return p.CloseFn()
}

// Browser is a mock implementation of vidcat.Browser. Page methods are
// served by the embedded Page.
type Browser struct {
	Page

	ClearCookiesFn func(ctx context.Context) error
	NewPageFn      func(ctx context.Context) (vidcat.Page, error)
}

func (b *Browser) ClearCookies(ctx context.Context) error {
	return b.ClearCookiesFn(ctx)
}

func (b *Browser) NewPage(ctx context.Context) (vidcat.Page, error) {
	return b.NewPageFn(ctx)
}

// Element is a mock implementation of vidcat.Element.
type Element struct {
	TextFn           func() (string, error)
	AttributeFn      func(name string) (string, error)
	VisibleFn        func() (bool, error)
	EnabledFn        func() (bool, error)
	ScrollIntoViewFn func() error
	ClickFn          func() error
}

func (e *Element) Text() (string, error) {
	return e.TextFn()
}

func (e *Element) Attribute(name string) (string, error) {
	return e.AttributeFn(name)
}

func (e *Element) Visible() (bool, error) {
	return e.VisibleFn()
}

func (e *Element) Enabled() (bool, error) {
	return e.EnabledFn()
}

func (e *Element) ScrollIntoView() error {
	return e.ScrollIntoViewFn()
}

func (e *Element) Click() error {
	return e.ClickFn()
}

// BrowserLauncher is a mock implementation of vidcat.BrowserLauncher.
type BrowserLauncher struct {
	LaunchFn func(ctx context.Context) (vidcat.Browser, error)
}

func (l *BrowserLauncher) Launch(ctx context.Context) (vidcat.Browser, error) {
	return l.LaunchFn(ctx)
}
