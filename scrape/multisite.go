// Package scrape collects video candidates from the configured listing
// sites using a browser session.
package scrape

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/fwojciec/vidcat"
)

// Orchestrator spreads one scrape run across several sites, sharing a
// single browser session and seen-set.
type Orchestrator struct {
	Launcher vidcat.BrowserLauncher
	Scraper  vidcat.SiteScraper
	Sites    []vidcat.Site

	MaxPages   int // per site, defaults to 3
	MaxRetries int // per page, defaults to 3

	// Shuffle reorders the sites of a run in place. Defaults to a uniform
	// random shuffle.
	Shuffle func(sites []vidcat.Site)

	Logger *slog.Logger
}

// Result holds the outcome of a scrape run.
type Result struct {
	Candidates []*vidcat.Candidate
	PerSite    map[string]int // candidates kept per site name
	Restarts   int            // browser sessions replaced after a site failure

	// Aborted is set when a browser session could not be started and the
	// run ended early.
	Aborted bool
}

// Scrape collects up to maxTotal candidates. Each site is asked for at most
// ceil(maxTotal/len(Sites)) candidates, bounded by the remaining budget.
// Site failures replace the browser session and move on to the next site;
// if a session cannot be started the partial result is returned. Scrape
// never fails and always closes the session it holds.
func (o *Orchestrator) Scrape(ctx context.Context, maxTotal int) *Result {
	logger := loggerOrDiscard(o.Logger)
	res := &Result{PerSite: make(map[string]int)}

	sites := o.validSites(logger)
	if maxTotal <= 0 || len(sites) == 0 {
		logger.Warn("nothing to scrape", "max_total", maxTotal, "sites", len(sites))
		return res
	}
	perSite := max(1, (maxTotal+len(sites)-1)/len(sites))
	o.shuffle(sites)
	logger.Info("scrape started", "max_total", maxTotal, "per_site", perSite, "sites", len(sites))

	browser, err := o.Launcher.Launch(ctx)
	if err != nil {
		logger.Error("browser launch failed", "err", err)
		res.Aborted = true
		return res
	}
	defer func() {
		if browser == nil {
			return
		}
		if err := browser.Close(); err != nil {
			logger.Warn("browser close failed", "err", err)
		}
	}()

	seen := NewSeenSet()
	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			logger.Warn("scrape canceled", "err", err)
			break
		}
		remaining := maxTotal - len(res.Candidates)
		if remaining <= 0 {
			logger.Info("target reached", "total", len(res.Candidates))
			break
		}
		limit := min(perSite, remaining)

		logger.Info("scraping site", "site", site.Name, "index", i+1, "sites", len(sites), "limit", limit)
		got, err := o.Scraper.ScrapeSite(ctx, browser, vidcat.SiteRequest{
			Site:       site,
			Limit:      limit,
			MaxPages:   valueOr(o.MaxPages, 3),
			MaxRetries: valueOr(o.MaxRetries, 3),
			Seen:       seen,
		})

		added := 0
		for _, c := range got {
			if added >= limit || len(res.Candidates) >= maxTotal {
				break
			}
			res.Candidates = append(res.Candidates, c)
			added++
		}
		if added > 0 {
			res.PerSite[site.Name] += added
		}
		logger.Info("site done", "site", site.Name, "added", added, "total", len(res.Candidates))

		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		logger.Error("site failed, restarting browser", "site", site.Name, "err", err)
		if err := browser.Close(); err != nil {
			logger.Warn("browser close failed", "err", err)
		}
		browser = nil

		next, err := o.Launcher.Launch(ctx)
		if err != nil {
			logger.Error("browser relaunch failed, ending run", "err", err)
			res.Aborted = true
			break
		}
		browser = next
		res.Restarts++
	}

	logger.Info("scrape finished", "total", len(res.Candidates), "per_site", res.PerSite, "restarts", res.Restarts)
	return res
}

// validSites returns a copy of Sites without invalid entries.
func (o *Orchestrator) validSites(logger *slog.Logger) []vidcat.Site {
	sites := make([]vidcat.Site, 0, len(o.Sites))
	for _, s := range o.Sites {
		if err := s.Validate(); err != nil {
			logger.Warn("skipping site", "site", s.Name, "err", vidcat.ErrorMessage(err))
			continue
		}
		sites = append(sites, s)
	}
	return slices.Clip(sites)
}

func (o *Orchestrator) shuffle(sites []vidcat.Site) {
	if o.Shuffle != nil {
		o.Shuffle(sites)
		return
	}
	rand.Shuffle(len(sites), func(i, j int) {
		sites[i], sites[j] = sites[j], sites[i]
	})
}

func valueOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
