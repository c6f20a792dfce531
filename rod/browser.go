package rod

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/vidcat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface verification.
var (
	_ vidcat.Browser = (*Browser)(nil)
	_ vidcat.Page    = (*Page)(nil)
	_ vidcat.Element = (*Element)(nil)
)

// Browser is a running Chrome session. Its embedded Page is the main tab.
type Browser struct {
	*Page

	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// ClearCookies removes every cookie in the session.
func (b *Browser) ClearCookies(ctx context.Context) error {
	return WrapError("clear cookies", b.browser.Context(ctx).SetCookies(nil))
}

// NewPage opens a new tab.
func (b *Browser) NewPage(ctx context.Context) (vidcat.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, WrapError("new tab", err)
	}
	return &Page{page: page}, nil
}

// Close quits the browser and kills its process. Close is safe to call
// multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := b.browser.Close()
	b.launcher.Kill()
	if err != nil {
		return vidcat.Errorf(vidcat.EDRIVER, "closing browser: %v", err)
	}
	return nil
}

// PID returns the browser process ID.
func (b *Browser) PID() int {
	return b.launcher.PID()
}

// Page is a browser tab.
type Page struct {
	page *rod.Page
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return WrapError("navigate "+url, err)
	}
	return WrapError("load "+url, page.WaitLoad())
}

// URL returns the address of the current document.
func (p *Page) URL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", WrapError("page info", err)
	}
	return info.URL, nil
}

// HTML returns the rendered document markup.
func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", WrapError("page html", err)
	}
	return html, nil
}

// SetUserAgent overrides the User-Agent sent by the tab.
func (p *Page) SetUserAgent(ctx context.Context, userAgent string) error {
	err := p.page.Context(ctx).SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
	return WrapError("set user agent", err)
}

// WaitElements waits until at least one element matches selector.
func (p *Page) WaitElements(ctx context.Context, selector string) error {
	return WrapError("wait "+selector, p.page.Context(ctx).WaitElementsMoreThan(selector, 0))
}

// Element returns the first element matching selector.
func (p *Page) Element(ctx context.Context, selector string) (vidcat.Element, error) {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, WrapError("element "+selector, err)
	}
	return newElement(ctx, el), nil
}

// Elements returns all elements matching selector.
func (p *Page) Elements(ctx context.Context, selector string) ([]vidcat.Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, WrapError("elements "+selector, err)
	}
	return wrapElements(ctx, els), nil
}

// ElementsByText matches on the element's normalized text, lower-cased
// through XPath translate so the comparison ignores ASCII case.
func (p *Page) ElementsByText(ctx context.Context, tag, text string) ([]vidcat.Element, error) {
	els, err := p.page.Context(ctx).ElementsX(textXPath(tag, text))
	if err != nil {
		return nil, WrapError("elements by text "+tag, err)
	}
	return wrapElements(ctx, els), nil
}

// ScrollToBottom scrolls the document to its end.
func (p *Page) ScrollToBottom(ctx context.Context) error {
	_, err := p.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return WrapError("scroll", err)
}

// Close closes the tab.
func (p *Page) Close() error {
	return WrapError("close tab", p.page.Close())
}

const (
	upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower = "abcdefghijklmnopqrstuvwxyz"
)

func textXPath(tag, text string) string {
	return "//" + tag + "[contains(translate(normalize-space(.), '" + upper + "', '" + lower + "'), " +
		xpathLiteral(strings.ToLower(text)) + ")]"
}

// xpathLiteral quotes s for use in an XPath expression.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// Element is a DOM node in a Page.
type Element struct {
	el *rod.Element
}

// newElement detaches the element from the lookup deadline so it stays
// usable after a bounded wait returns.
func newElement(ctx context.Context, el *rod.Element) *Element {
	return &Element{el: el.Context(context.WithoutCancel(ctx))}
}

func wrapElements(ctx context.Context, els rod.Elements) []vidcat.Element {
	out := make([]vidcat.Element, 0, len(els))
	for _, el := range els {
		out = append(out, newElement(ctx, el))
	}
	return out
}

// Text returns the visible text of the element.
func (e *Element) Text() (string, error) {
	s, err := e.el.Text()
	if err != nil {
		return "", WrapError("element text", err)
	}
	return s, nil
}

// Attribute returns the named attribute, or "" when it is absent.
func (e *Element) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", WrapError("element attribute "+name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// Visible reports whether the element is rendered and visible.
func (e *Element) Visible() (bool, error) {
	ok, err := e.el.Visible()
	return ok, WrapError("element visible", err)
}

// Enabled reports whether the element is not disabled.
func (e *Element) Enabled() (bool, error) {
	res, err := e.el.Eval(`() => !this.disabled`)
	if err != nil {
		return false, WrapError("element enabled", err)
	}
	return res.Value.Bool(), nil
}

// ScrollIntoView scrolls the element into the viewport.
func (e *Element) ScrollIntoView() error {
	return WrapError("scroll into view", e.el.ScrollIntoView())
}

// Click dispatches a click on the element.
func (e *Element) Click() error {
	_, err := e.el.Eval(`() => this.click()`)
	return WrapError("click", err)
}
