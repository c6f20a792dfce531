package scrape

import (
	"strings"

	"github.com/fwojciec/vidcat"
)

// DefaultSites returns the built-in listing configurations.
func DefaultSites() []vidcat.Site {
	return []vidcat.Site{
		{
			Name:              "Xvideos",
			URLTemplate:       "https://www.xvideos.com/new/{page}",
			ItemSelector:      "div.thumb-block, div.mozaique, .video-item",
			LinkSelector:      "a[href*='/video']",
			ThumbnailSelector: "img[data-src], img[src]",
			TitleSelector:     "p.title, a.title",
			AgeGateSelectors:  []string{"button.btn-primary.btn-confirm"},
		},
		{
			Name:              "EPorner",
			URLTemplate:       "https://www.eporner.com/latest-updates/{page}/",
			ItemSelector:      "div.mb",
			LinkSelector:      "div.mbimg a",
			ThumbnailSelector: "div.mbimg a img",
			TitleSelector:     "p.mbtit a",
		},
		{
			Name:              "PornRabbit",
			URLTemplate:       "https://www.pornrabbit.com/videos?page={page}",
			ItemSelector:      "div.item",
			LinkSelector:      "a[href*='/videos/']",
			ThumbnailSelector: "a[href*='/videos/'] img.thumb",
			TitleSelector:     "a[href*='/videos/'] strong.title",
			AgeGateSelectors:  []string{"button.age-verify-yes"},
		},
		{
			Name:              "SpankBang",
			URLTemplate:       "https://spankbang.com/s/newest/{page}/",
			ItemSelector:      "div.video-item, .thumb",
			LinkSelector:      "a[href*='/video/']",
			ThumbnailSelector: "img[data-src], img[src]",
			TitleSelector:     ".n, .title",
			AgeGateSelectors:  []string{"button.accept-age"},
		},
		{
			Name:              "YouPorn",
			URLTemplate:       "https://www.youporn.com/?page={page}",
			ItemSelector:      "div.video-box, div.video-item, div.grid-item",
			LinkSelector:      "a[href*='/watch/']",
			ThumbnailSelector: "img[data-src], img[src]",
			TitleSelector:     "h3, span.title, a.title, div.title",
			AgeGateSelectors:  []string{"button.enter-site", "button#age-gate-button"},
		},
		{
			Name:              "Pornhub",
			URLTemplate:       "https://www.pornhub.com/video?page={page}",
			ItemSelector:      "li.pcVideoListItem, li.videoBox",
			LinkSelector:      "a[href*='/view_video']",
			ThumbnailSelector: "img[src], img[data-src]",
			TitleSelector:     "span.title, a.title",
			AgeGateSelectors:  []string{"button#age-verification-ok", "button.agree-button"},
		},
		{
			Name:              "RedTube",
			URLTemplate:       "https://www.redtube.com/?page={page}",
			ItemSelector:      "li.video_item, div.video_item",
			LinkSelector:      "a.video_link, a[href*='/video']",
			ThumbnailSelector: "img[data-src], img[src]",
			TitleSelector:     ".title, h3",
			AgeGateSelectors:  []string{"button.accept-age"},
		},
		{
			Name:              "Tube8",
			URLTemplate:       "https://www.tube8.com/latest/?page={page}",
			ItemSelector:      "div.video-box, .thumb, .video-item, div.thumbnail",
			LinkSelector:      "a[href*='/videos/']",
			ThumbnailSelector: "img[data-src], img[src], img[data-thumb]",
			TitleSelector:     ".title, .video-title, h3",
			AgeGateSelectors:  []string{"button.confirm-btn"},
		},
	}
}

// FilterSites returns the sites whose names match one of names,
// case-insensitively, preserving the order of sites. An empty names list
// returns sites unchanged. Unknown names are returned in the second result.
func FilterSites(sites []vidcat.Site, names []string) ([]vidcat.Site, []string) {
	if len(names) == 0 {
		return sites, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = false
	}

	var out []vidcat.Site
	for _, s := range sites {
		key := strings.ToLower(s.Name)
		if _, ok := want[key]; ok {
			out = append(out, s)
			want[key] = true
		}
	}

	var unknown []string
	for _, n := range names {
		if !want[strings.ToLower(n)] {
			unknown = append(unknown, n)
		}
	}
	return out, unknown
}
