package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/goquery"
	"github.com/fwojciec/vidcat/scrape"
)

// MaxScrapeVideos bounds a single scrape run.
const MaxScrapeVideos = 200

// Validate is called by kong after parsing.
func (c *ScrapeCmd) Validate() error {
	if c.Max < 1 || c.Max > MaxScrapeVideos {
		return vidcat.Errorf(vidcat.EINVALID, "--max must be between 1 and %d", MaxScrapeVideos)
	}
	if c.MaxPages < 1 {
		return vidcat.Errorf(vidcat.EINVALID, "--max-pages must be positive")
	}
	if c.MaxRetries < 1 {
		return vidcat.Errorf(vidcat.EINVALID, "--max-retries must be positive")
	}
	return nil
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if err := c.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidcat.ErrorMessage(err))
		return err
	}

	sites, unknown := scrape.FilterSites(deps.Sites, c.Site)
	if len(unknown) > 0 {
		fmt.Fprintf(deps.Stderr, "error: unknown site(s) %s. Use 'vidcat sites' to see available sites.\n", strings.Join(unknown, ", "))
		return vidcat.Errorf(vidcat.EINVALID, "unknown sites: %s", strings.Join(unknown, ", "))
	}

	orch := &scrape.Orchestrator{
		Launcher:   deps.Launcher,
		Scraper:    c.scraper(deps),
		Sites:      sites,
		MaxPages:   c.MaxPages,
		MaxRetries: c.MaxRetries,
		Logger:     deps.Logger,
	}
	res := orch.Scrape(deps.Ctx, c.Max)

	fmt.Fprintf(deps.Stdout, "Collected %d videos from %d sites", len(res.Candidates), len(sites))
	if res.Restarts > 0 {
		fmt.Fprintf(deps.Stdout, " (%d browser restarts)", res.Restarts)
	}
	fmt.Fprintln(deps.Stdout)
	for _, name := range slices.Sorted(maps.Keys(res.PerSite)) {
		fmt.Fprintf(deps.Stdout, "  %-12s %d\n", name, res.PerSite[name])
	}

	if res.Aborted {
		fmt.Fprintln(deps.Stderr, "warning: browser could not be started, run ended early")
		if len(res.Candidates) == 0 {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set --browser-bin")
			return vidcat.Errorf(vidcat.EDRIVER, "browser could not be started")
		}
	}
	if err := deps.Ctx.Err(); err != nil && len(res.Candidates) == 0 {
		return err
	}

	if c.DryRun {
		for _, v := range res.Candidates {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", v.Source, v.Title, v.PlayerURL)
		}
		return nil
	}

	// An interrupted run still saves what it collected.
	saved, err := deps.Writer.Save(context.WithoutCancel(deps.Ctx), res.Candidates)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: videos were not saved: %v\n", err)
	}
	fmt.Fprintf(deps.Stdout, "Collected: %d, new: %d, duplicates: %d, skipped: %d, failed: %d\n",
		len(res.Candidates), saved.Saved, saved.Duplicates, saved.Skipped, saved.Failed)
	return nil
}

func (c *ScrapeCmd) scraper(deps *Dependencies) vidcat.SiteScraper {
	if deps.Scraper != nil {
		return deps.Scraper
	}

	extractor := goquery.NewExtractor()
	s := &scrape.Scraper{
		Extractor: extractor,
		Resolver:  deps.Resolver,
		AgeGate:   &scrape.AgeGate{Logger: deps.Logger},
		Limiter:   scrape.NewHostLimiter(c.Rate),
		Logger:    deps.Logger,
	}
	if c.Categories {
		s.Categories = &scrape.CategoryLookup{Extractor: extractor, Logger: deps.Logger}
	}
	return s
}
