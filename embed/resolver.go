// Package embed converts video page URLs into embeddable player URLs.
package embed

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
)

// playerParams is appended to every generated embed URL, in this order.
const playerParams = "autoplay=0&controls=1&mute=0&loop=0&show_title=1&show_byline=1&show_portrait=0&color=ffffff"

// adapter recognizes one URL shape and builds the embed URL for the video ID
// it captures.
type adapter struct {
	pattern  *regexp.Regexp
	template string // contains a single %s for the ID
}

func (a adapter) match(u string) (string, bool) {
	m := a.pattern.FindStringSubmatch(u)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

func (a adapter) build(id string) string {
	u := fmt.Sprintf(a.template, id)
	if strings.Contains(u, "?") {
		return u + "&" + playerParams
	}
	return u + "?" + playerParams
}

func newAdapter(pattern, template string) adapter {
	return adapter{pattern: regexp.MustCompile(pattern), template: template}
}

// numericVideo is the common "<site>.com/video/<digits>/" layout served from
// an embed.<site>.com player host.
func numericVideo(host string) adapter {
	return newAdapter(
		`https?://(?:www\.)?`+regexp.QuoteMeta(host)+`\.com/video/([0-9]+)/`,
		"https://embed."+host+".com/embed/%s",
	)
}

// primary holds the patterns tried first, keyed by normalized source name.
var primary = map[string][]adapter{
	"pornhub":   {newAdapter(`https?://(?:www\.)?pornhub\.com/embed/([a-zA-Z0-9]+)`, "https://www.pornhub.com/embed/%s")},
	"xvideos":   {newAdapter(`https?://(?:www\.)?xvideos\.com/video([0-9]+)/`, "https://www.xvideos.com/embedframe/%s")},
	"xhamster":  {newAdapter(`https?://(?:www\.)?xhamster\.com/videos/([^/]+)/`, "https://embed.xhamster.com/embed/%s")},
	"redtube":   {newAdapter(`https?://(?:www\.)?redtube\.com/([0-9]+)`, "https://embed.redtube.com/?video_id=%s")},
	"youporn":   {newAdapter(`https?://(?:www\.)?youporn\.com/watch/([0-9]+)/`, "https://www.youporn.com/embed/%s")},
	"tube8":     {newAdapter(`https?://(?:www\.)?tube8\.com/video/([0-9]+)/`, "https://embed.tube8.com/embed/%s")},
	"drtuber":   {newAdapter(`https?://(?:www\.)?dr-tuber\.com/video/([0-9]+)/`, "https://embed.dr-tuber.com/embed/%s")},
	"tnaflix":   {newAdapter(`https?://(?:www\.)?tnaflix\.com/(?:[^/]+)/([0-9]+)/`, "https://embed.tnaflix.com/embed/%s")},
	"spankbang": {newAdapter(`https?://(?:www\.)?spankbang\.com/([a-zA-Z0-9]+)/`, "https://embed.spankbang.com/embed/%s")},
	"okxxx":     {numericVideo("okxxx")},
	"hclips":    {numericVideo("hclips")},
	"voyeurhit": {numericVideo("voyeurhit")},
	"gotporn":   {numericVideo("gotporn")},
	"videosz":   {numericVideo("videosz")},
	"bigporn":   {numericVideo("bigporn")},
	"analvids":  {numericVideo("analvids")},
	"4tube":     {numericVideo("4tube")},
	"freeones":  {numericVideo("freeones")},
	"hotmovs":   {numericVideo("hotmovs")},
	"nuvid":     {numericVideo("nuvid")},
}

// secondary holds looser, path-only patterns tried when no primary pattern
// matched.
var secondary = map[string][]adapter{
	"youporn": {
		newAdapter(`/watch/([0-9]+)/`, "https://www.youporn.com/embed/%s/"),
		newAdapter(`/embed/([0-9]+)/`, "https://www.youporn.com/embed/%s/"),
	},
	"pornhub": {
		newAdapter(`viewkey=([a-zA-Z0-9]+)`, "https://www.pornhub.com/embed/%s"),
		newAdapter(`/embed/([a-zA-Z0-9]+)(?:/|$)`, "https://www.pornhub.com/embed/%s"),
	},
	"xvideos": {
		newAdapter(`/video([0-9]+)/`, "https://www.xvideos.com/embedframe/%s"),
		newAdapter(`/embedframe/([0-9]+)/`, "https://www.xvideos.com/embedframe/%s"),
	},
}

// domains maps source names to the origin used to absolutize
// root-relative URLs.
var domains = map[string]string{
	"YouPorn":    "https://www.youporn.com",
	"Pornhub":    "https://www.pornhub.com",
	"Xvideos":    "https://www.xvideos.com",
	"RedTube":    "https://www.redtube.com",
	"Tube8":      "https://www.tube8.com",
	"SpankBang":  "https://spankbang.com",
	"HClips":     "https://hclips.com",
	"TNAFlix":    "https://www.tnaflix.com",
	"DrTuber":    "https://www.drtuber.com",
	"HotMovs":    "https://hotmovs.com",
	"VideoSZ":    "https://videosz.com",
	"NuVid":      "https://www.nuvid.com",
	"VoyeurHit":  "https://voyeurhit.com",
	"AnalVids":   "https://analvids.com",
	"BigPorn":    "https://bigporn.com",
	"OK.XXX":     "https://ok.xxx",
	"4Tube":      "https://www.4tube.com",
	"FreeOnes":   "https://www.freeones.com",
	"GotPorn":    "https://www.gotporn.com",
	"EPorner":    "https://www.eporner.com",
	"PornRabbit": "https://www.pornrabbit.com",
}

// Domain returns the origin registered for the source, or "" if unknown.
func Domain(source string) string {
	return domains[source]
}

// Resolver derives embed and player URLs for scraped videos. It never fails:
// URLs it cannot convert are returned as given.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{logger: logger}
}

// Embed converts a page URL of the given source into its embed URL.
//
// Protocol-relative and root-relative inputs are made absolute first. The
// source's primary patterns are tried, then its secondary patterns; the first
// match wins and gets the standard player parameters appended. If nothing
// matches the (absolutized) input is returned.
func (r *Resolver) Embed(source, rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u := r.absolute(source, rawURL)
	key := sourceKey(source)

	for _, group := range [][]adapter{primary[key], secondary[key]} {
		for _, a := range group {
			if id, ok := a.match(u); ok {
				return a.build(id)
			}
		}
	}

	r.logger.Debug("no embed pattern matched", "source", source, "url", u)
	return u
}

// PlayerURL returns the URL a player should load for the given page or
// embed URL. Empty input yields "". Absolute http(s) URLs are returned
// unchanged and relative ones are absolutized; anything else goes through
// Embed.
func (r *Resolver) PlayerURL(source, rawURL string) string {
	switch {
	case rawURL == "":
		return ""
	case strings.HasPrefix(rawURL, "http"):
		return rawURL
	case strings.HasPrefix(rawURL, "/"):
		if u := r.absolute(source, rawURL); u != rawURL {
			return u
		}
	}
	return r.Embed(source, rawURL)
}

// absolute resolves "//host/path" and "/path" forms. Root-relative URLs of
// unknown sources are returned unchanged.
func (r *Resolver) absolute(source, u string) string {
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "/"):
		if domain, ok := domains[source]; ok {
			return domain + u
		}
		r.logger.Warn("no domain for relative URL", "source", source, "url", u)
	}
	return u
}

// sourceKey normalizes a site name for pattern lookup: "OK.XXX" becomes
// "okxxx" and "DrTuber" becomes "drtuber".
func sourceKey(source string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(source) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
