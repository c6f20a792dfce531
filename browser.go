package vidcat

import "context"

// Page is a single browser tab.
//
// Blocking calls honor the context deadline; an expired deadline is reported
// as ETIMEOUT. A failed navigation is reported as ENAVIGATE. Any other
// failure means the driver is unusable and is reported as EDRIVER.
type Page interface {
	// Navigate loads the URL and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// URL returns the current location, after any redirects.
	URL(ctx context.Context) (string, error)

	// HTML returns the rendered document.
	HTML(ctx context.Context) (string, error)

	// SetUserAgent overrides the User-Agent header for subsequent requests.
	SetUserAgent(ctx context.Context, userAgent string) error

	// WaitElements blocks until at least one element matches the CSS selector.
	WaitElements(ctx context.Context, selector string) error

	// Element waits for the first element matching the CSS selector.
	Element(ctx context.Context, selector string) (Element, error)

	// Elements returns all elements currently matching the CSS selector
	// without waiting.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// ElementsByText returns elements with the given tag whose normalized
	// text contains text, compared case-insensitively.
	ElementsByText(ctx context.Context, tag, text string) ([]Element, error)

	// ScrollToBottom scrolls the window to the end of the document.
	ScrollToBottom(ctx context.Context) error

	// Close closes the tab.
	Close() error
}

// Browser is a browser-automation session. The embedded Page is the
// session's main tab; Close on a Browser quits the whole session and is
// safe to call more than once.
type Browser interface {
	Page

	// ClearCookies removes all cookies from the session.
	ClearCookies(ctx context.Context) error

	// NewPage opens an additional tab. The caller must close it.
	NewPage(ctx context.Context) (Page, error)
}

// Element is a DOM element on a Page.
type Element interface {
	Text() (string, error)

	// Attribute returns the attribute value, or "" when absent.
	Attribute(name string) (string, error)

	Visible() (bool, error)
	Enabled() (bool, error)
	ScrollIntoView() error

	// Click dispatches a click from script, bypassing overlays.
	Click() error
}

// BrowserLauncher starts fresh browser sessions.
type BrowserLauncher interface {
	Launch(ctx context.Context) (Browser, error)
}
