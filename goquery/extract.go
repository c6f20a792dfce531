// Package goquery extracts listing items and categories from rendered HTML
// using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/vidcat"
)

var _ vidcat.ItemExtractor = (*Extractor)(nil)

// thumbnailAttrs are read in order when an image's src is missing or a
// data: placeholder, as lazy-loading listings keep the real URL elsewhere.
var thumbnailAttrs = []string{"data-src", "data-original", "data-thumb"}

// CategorySelectors are tried in order by ExtractCategory.
var CategorySelectors = []string{
	".category",
	"a.category-link",
	"span.category",
	"div.video-category",
	".tags .tag",
	".metadata .category",
}

// Extractor implements vidcat.ItemExtractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractItems returns one item per element matching site.ItemSelector.
// Within each item the first match of the link, title, and thumbnail
// selectors is used; missing matches leave the field empty.
func (e *Extractor) ExtractItems(html, pageURL string, site vidcat.Site) ([]vidcat.Item, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, vidcat.Errorf(vidcat.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vidcat.Errorf(vidcat.EINVALID, "failed to parse HTML: %v", err)
	}

	var items []vidcat.Item
	doc.Find(site.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		var item vidcat.Item

		if href, ok := sel.Find(site.LinkSelector).First().Attr("href"); ok && !isNonHTTPLink(href) {
			item.PageURL = resolveURL(base, href)
		}

		title := sel.Find(site.TitleSelector).First()
		item.Title = normalizeSpace(title.Text())
		if item.Title == "" {
			item.Title = normalizeSpace(title.AttrOr("title", ""))
		}

		if src := thumbnail(sel.Find(site.ThumbnailSelector).First()); src != "" {
			item.Thumbnail = resolveURL(base, src)
		}

		items = append(items, item)
	})

	return items, nil
}

// ExtractCategory returns the text of the first non-empty match among
// CategorySelectors, or "" if there is none.
func (e *Extractor) ExtractCategory(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, s := range CategorySelectors {
		if text := normalizeSpace(doc.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func thumbnail(img *goquery.Selection) string {
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src != "" && !strings.HasPrefix(strings.ToLower(src), "data:") {
		return src
	}
	for _, attr := range thumbnailAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// resolveURL resolves href against base. Returns "" if href cannot be
// parsed. Fragments are dropped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
