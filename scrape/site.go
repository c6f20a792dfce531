package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/canon"
	"github.com/fwojciec/vidcat/embed"
)

// DefaultUserAgent is sent with every listing request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// emptyPageLimit is the number of consecutive empty or failed pages that
// ends a site.
const emptyPageLimit = 2

// scrollPasses is how many times a listing is scrolled to trigger lazy
// loading.
const scrollPasses = 3

var _ vidcat.SiteScraper = (*Scraper)(nil)

// Scraper collects candidates from one site's paginated listing.
type Scraper struct {
	Extractor vidcat.ItemExtractor
	Resolver  *embed.Resolver
	AgeGate   *AgeGate

	// Limiter paces navigations per host. Optional.
	Limiter vidcat.PageLimiter

	// Categories enriches candidates with the category from their embed
	// page. Optional; without it every candidate gets the default category.
	Categories *CategoryLookup

	UserAgent string // defaults to DefaultUserAgent

	// NavigateTimeout bounds a single navigation. Defaults to 30s.
	NavigateTimeout time.Duration

	// WaitTimeout bounds the wait for the first listing item. Defaults to 20s.
	WaitTimeout time.Duration

	Pause  PauseFunc
	Logger *slog.Logger
}

// ScrapeSite walks pages 1..req.MaxPages until req.Limit candidates are
// collected or two consecutive pages are empty or fail to load.
//
// Transient load failures are retried up to req.MaxRetries times per page.
// Any other failure ends the site: the candidates collected so far are
// returned together with the error so the caller can replace the session.
func (s *Scraper) ScrapeSite(ctx context.Context, browser vidcat.Browser, req vidcat.SiteRequest) ([]*vidcat.Candidate, error) {
	logger := s.logger().With("site", req.Site.Name)

	var out []*vidcat.Candidate
	empty := 0
	for page := 1; page <= req.MaxPages && len(out) < req.Limit; page++ {
		pageURL := req.Site.PageURL(page)
		logger.Info("loading listing", "page", page, "max_pages", req.MaxPages, "url", pageURL)

		var html, current string
		err := WithRetry(ctx, req.MaxRetries,
			func(ctx context.Context) error {
				var err error
				html, current, err = s.load(ctx, browser, req.Site, pageURL)
				return err
			},
			func(ctx context.Context) error {
				return s.pause()(ctx, 2*time.Second, 4*time.Second)
			},
			func(attempt int, err error) {
				logger.Warn("listing load failed", "url", pageURL, "attempt", attempt, "max_retries", req.MaxRetries, "err", err)
			},
		)

		var items []vidcat.Item
		switch {
		case err == nil:
			items, err = s.Extractor.ExtractItems(html, current, req.Site)
			if err != nil {
				logger.Warn("extract listing items", "url", current, "err", err)
			}
		case vidcat.IsTransient(err):
			logger.Error("giving up on listing page", "url", pageURL, "err", err)
		default:
			logger.Error("site aborted", "url", pageURL, "collected", len(out), "err", err)
			return out, err
		}

		logger.Info("listing items found", "url", current, "count", len(items))
		if len(items) == 0 {
			empty++
			if empty >= emptyPageLimit {
				logger.Info("consecutive empty pages, stopping site", "pages", empty)
				break
			}
			continue
		}
		empty = 0

		for _, item := range items {
			if len(out) >= req.Limit {
				break
			}
			c, ok := s.candidate(ctx, browser, req, item, logger)
			if !ok {
				continue
			}
			out = append(out, c)
			logger.Info("video collected", "collected", len(out), "limit", req.Limit, "title", c.Title)
		}

		if len(out) < req.Limit && page < req.MaxPages {
			if err := s.pause()(ctx, 2*time.Second, 4*time.Second); err != nil {
				return out, err
			}
		}
	}

	logger.Info("site finished", "collected", len(out))
	return out, nil
}

// load performs one attempt at loading a listing page and returns the
// rendered HTML and the final URL.
func (s *Scraper) load(ctx context.Context, browser vidcat.Browser, site vidcat.Site, pageURL string) (string, string, error) {
	logger := s.logger().With("site", site.Name)

	if err := browser.ClearCookies(ctx); err != nil {
		return "", "", err
	}
	if err := browser.SetUserAgent(ctx, s.userAgent()); err != nil {
		return "", "", err
	}
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, pageURL); err != nil {
			return "", "", err
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, durationOr(s.NavigateTimeout, 30*time.Second))
	err := browser.Navigate(navCtx, pageURL)
	cancel()
	if err != nil {
		return "", "", err
	}
	if err := s.pause()(ctx, 2*time.Second, 4*time.Second); err != nil {
		return "", "", err
	}

	current, err := browser.URL(ctx)
	if err != nil {
		return "", "", err
	}
	if current != pageURL && siteHost(current) == siteHost(pageURL) {
		logger.Info("redirected", "from", pageURL, "to", current)
	}

	if s.AgeGate != nil && !s.AgeGate.Dismiss(ctx, browser, current, site.AgeGateSelectors) {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		return "", "", vidcat.Errorf(vidcat.ETIMEOUT, "age verification failed on %s", current)
	}

	for range scrollPasses {
		if err := browser.ScrollToBottom(ctx); err != nil {
			return "", "", err
		}
		if err := s.pause()(ctx, 2*time.Second, 4*time.Second); err != nil {
			return "", "", err
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, durationOr(s.WaitTimeout, 20*time.Second))
	err = browser.WaitElements(waitCtx, site.ItemSelector)
	cancel()
	if err != nil {
		return "", "", err
	}

	html, err := browser.HTML(ctx)
	if err != nil {
		return "", "", err
	}
	if current, err = browser.URL(ctx); err != nil {
		return "", "", err
	}
	return html, current, nil
}

// candidate validates one listing item and turns it into a Candidate.
// It returns false when the item is skipped.
func (s *Scraper) candidate(ctx context.Context, browser vidcat.Browser, req vidcat.SiteRequest, item vidcat.Item, logger *slog.Logger) (*vidcat.Candidate, bool) {
	if !strings.HasPrefix(item.PageURL, "http") {
		logger.Warn("skipping item with invalid video page URL", "url", item.PageURL)
		return nil, false
	}
	key, err := canon.Canonicalize(item.PageURL)
	if err != nil {
		logger.Warn("skipping item", "url", item.PageURL, "err", err)
		return nil, false
	}
	if req.Seen.Has(key) {
		logger.Debug("skipping video already seen this run", "url", item.PageURL, "key", key)
		return nil, false
	}
	if item.Title == "" || item.Thumbnail == "" {
		logger.Warn("skipping item without title or thumbnail", "url", item.PageURL)
		return nil, false
	}

	c := &vidcat.Candidate{
		Title:           vidcat.TruncateTitle(item.Title),
		Source:          req.Site.Name,
		OriginalPageURL: item.PageURL,
		Thumbnail:       item.Thumbnail,
		Category:        vidcat.DefaultCategory,
	}
	resolver := s.resolver()
	if embedURL := resolver.Embed(req.Site.Name, item.PageURL); embedURL != item.PageURL {
		c.OriginalEmbedURL = embedURL
	}
	c.PlayerURL = resolver.PlayerURL(req.Site.Name, c.SourceURL())

	if s.Categories != nil && c.OriginalEmbedURL != "" {
		c.Category = s.Categories.Lookup(ctx, browser, c.OriginalEmbedURL)
	}

	req.Seen.Add(key)
	return c, true
}

func (s *Scraper) userAgent() string {
	if s.UserAgent == "" {
		return DefaultUserAgent
	}
	return s.UserAgent
}

func (s *Scraper) resolver() *embed.Resolver {
	if s.Resolver == nil {
		return embed.NewResolver(s.Logger)
	}
	return s.Resolver
}

func (s *Scraper) pause() PauseFunc {
	return pauseOrDefault(s.Pause)
}

func (s *Scraper) logger() *slog.Logger {
	return loggerOrDiscard(s.Logger)
}
