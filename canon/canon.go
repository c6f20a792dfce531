// Package canon derives canonical deduplication keys from video URLs.
package canon

import (
	"maps"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/fwojciec/vidcat"
)

// essentialParams are the playback parameters retained in every key, with
// the value assumed when the URL does not set them.
var essentialParams = []struct {
	name, def string
}{
	{"autoplay", "0"},
	{"controls", "1"},
	{"mute", "0"},
	{"loop", "0"},
	{"start", "0"},
}

// trackingParams are dropped from keys. Names are lower-case.
var trackingParams = map[string]struct{}{}

func init() {
	for _, p := range []string{
		// campaign and click tracking
		"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
		"session_id", "ss", "ref", "referrer", "token", "h", "hash", "sig",
		"kt_utmk", "kt_st", "kt_pk", "pk_campaign", "pk_kwd", "piwik_campaign", "piwik_kwd",
		"ad_id", "campaign_id", "gclid", "fbclid", "msclkid", "mc_eid", "mc_cid",
		"expire", "expires", "validfrom", "validto", "timestamp", "ts", "t", "time",
		"_ga", "_gl", "yclid", "ysclid", "zenid",
		// player presentation
		"playlist", "share", "volume", "quality", "q", "format", "fmt", "speed",
		"stretch", "aspect_ratio", "ar", "size", "width", "height", "w",
		"color", "theme", "ui", "logo", "branding", "showinfo", "related", "iv_load_policy",
		"cc_load_policy", "hl", "language", "lang", "locale", "origin", "ps", "no_redirect",
	} {
		trackingParams[p] = struct{}{}
	}
}

// IsTrackingParam reports whether the query parameter is ignored by Canonicalize.
func IsTrackingParam(name string) bool {
	_, ok := trackingParams[strings.ToLower(name)]
	return ok
}

// Canonicalize returns the deduplication key for a page or embed URL.
//
// Tracking and presentation parameters are removed and the essential
// playback parameters are always present, so URLs that differ only in query
// noise share a key while URLs that differ in playback parameters do not.
// The scheme defaults to https, a leading "www." is removed from the host,
// paths without a file extension get a trailing slash, and the result is
// lower-cased. Returns EINVALID if the URL cannot be parsed or has no host.
func Canonicalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", vidcat.Errorf(vidcat.EINVALID, "empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", vidcat.Errorf(vidcat.EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host == "" {
		return "", vidcat.Errorf(vidcat.EINVALID, "URL %q has no host", raw)
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	p := u.EscapedPath()
	if p == "" {
		p = "/"
	} else if !strings.HasSuffix(p, "/") && path.Ext(u.Path) == "" {
		p += "/"
	}

	query := cleanQuery(u.RawQuery)

	key := scheme + "://" + host + p + "?" + query.Encode()
	return strings.ToLower(key), nil
}

// cleanQuery parses a raw query leniently, dropping empty values and tracking
// parameters, and fills in the essential parameters.
func cleanQuery(rawQuery string) url.Values {
	// ParseQuery keeps every pair it could decode alongside its error, which
	// is enough for a key.
	parsed, _ := url.ParseQuery(rawQuery)

	out := url.Values{}
	for _, raw := range slices.Sorted(maps.Keys(parsed)) {
		name := strings.ToLower(raw)
		if _, drop := trackingParams[name]; drop {
			continue
		}
		for _, v := range parsed[raw] {
			if v != "" {
				out.Add(name, v)
			}
		}
	}
	for _, p := range essentialParams {
		v := out.Get(p.name)
		if v == "" {
			v = p.def
		}
		out.Set(p.name, v)
	}
	return out
}
