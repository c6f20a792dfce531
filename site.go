package vidcat

import (
	"context"
	"strconv"
	"strings"
)

// PagePlaceholder is replaced with the page number in Site.URLTemplate.
const PagePlaceholder = "{page}"

// Site describes how to scrape one source site's listing pages.
type Site struct {
	// Name identifies the source, e.g. "Pornhub". It is stored on every
	// video and selects the embed patterns used for the site.
	Name string

	// URLTemplate is the listing URL. A PagePlaceholder, if present, is
	// replaced with the 1-based page number.
	URLTemplate string

	ItemSelector      string // one match per video
	LinkSelector      string // detail page link, within the item
	ThumbnailSelector string // preview image, within the item
	TitleSelector     string // title text, within the item

	// AgeGateSelectors are tried in order to dismiss an age interstitial.
	AgeGateSelectors []string
}

// PageURL returns the listing URL for the given page number.
func (s Site) PageURL(page int) string {
	return strings.ReplaceAll(s.URLTemplate, PagePlaceholder, strconv.Itoa(page))
}

// Validate returns an error if the site configuration is incomplete.
func (s Site) Validate() error {
	switch {
	case s.Name == "":
		return Errorf(EINVALID, "site name required")
	case s.URLTemplate == "":
		return Errorf(EINVALID, "site %q URL template required", s.Name)
	case s.ItemSelector == "", s.LinkSelector == "", s.ThumbnailSelector == "", s.TitleSelector == "":
		return Errorf(EINVALID, "site %q selectors required", s.Name)
	}
	return nil
}

// SiteRequest holds the parameters of one single-site scrape.
type SiteRequest struct {
	Site       Site
	Limit      int // maximum candidates to collect
	MaxPages   int
	MaxRetries int // load attempts per page

	// Seen holds canonical page URLs already collected in this run. It is
	// shared across all sites of a run and updated in place.
	Seen SeenSet
}

// SiteScraper collects candidates from a single site.
type SiteScraper interface {
	// ScrapeSite returns the candidates collected so far. A non-nil error
	// means the browser session failed and must be replaced; the returned
	// candidates are still valid.
	ScrapeSite(ctx context.Context, browser Browser, req SiteRequest) ([]*Candidate, error)
}

// SeenSet tracks canonical keys collected during one run.
type SeenSet interface {
	Has(key string) bool
	Add(key string)
	Len() int
}

// PageLimiter paces listing page loads.
type PageLimiter interface {
	// Wait blocks until pageURL may be loaded. Returns an error if the
	// context is canceled or the URL has no host.
	Wait(ctx context.Context, pageURL string) error
}

// Item is the raw data extracted from one item container on a listing page.
// Fields are empty when the corresponding selector matched nothing.
type Item struct {
	PageURL   string // absolute when the link was resolvable
	Title     string
	Thumbnail string
}

// ItemExtractor extracts listing items from rendered HTML.
type ItemExtractor interface {
	// ExtractItems returns one Item per element matching site.ItemSelector,
	// in document order. Relative URLs are resolved against pageURL.
	ExtractItems(html, pageURL string, site Site) ([]Item, error)

	// ExtractCategory returns the category label shown on a video page,
	// or "" if none is found.
	ExtractCategory(html string) string
}
