package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/catalog"
	"github.com/fwojciec/vidcat/embed"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Sites    []vidcat.Site
	Videos   vidcat.VideoService
	Resolver *embed.Resolver
	Writer   *catalog.Writer
	Launcher vidcat.BrowserLauncher

	// Scraper overrides the browser-driven site scraper when set.
	Scraper vidcat.SiteScraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `help:"Database path (default ~/.vidcat/vidcat.db)" env:"VIDCAT_DB" type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)" default:"info" env:"VIDCAT_LOG_LEVEL"`
	LogFormat string `help:"Log format" enum:"text,json" default:"text" env:"VIDCAT_LOG_FORMAT"`
	LogFile   string `help:"Also write logs to this rotated file" env:"VIDCAT_LOG_FILE" type:"path"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape the listing sites and save new videos"`
	List    ListCmd    `cmd:"" help:"List catalog entries"`
	Delete  DeleteCmd  `cmd:"" help:"Delete catalog entries by ID"`
	FixURLs FixURLsCmd `cmd:"" name:"fix-urls" help:"Recompute stored player URLs"`
	Sites   SitesCmd   `cmd:"" help:"Show the configured listing sites"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Max        int      `short:"n" default:"20" help:"Maximum videos to collect (1-200)"`
	MaxPages   int      `default:"3" help:"Listing pages per site"`
	MaxRetries int      `default:"3" help:"Load attempts per page"`
	Site       []string `short:"s" help:"Only scrape these sites (repeatable)"`
	Categories bool     `help:"Look up each video's category on its embed page"`
	Rate       float64  `default:"0.5" help:"Navigations per second per domain"`
	DryRun     bool     `help:"Print collected videos without saving"`
	Headless   bool     `default:"true" negatable:"" help:"Run the browser without a window"`
	BrowserBin string   `env:"VIDCAT_BROWSER_BIN" help:"Browser binary to launch"`
	NoSandbox  bool     `env:"VIDCAT_NO_SANDBOX" help:"Disable the browser sandbox"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source   string `help:"Only videos from this source"`
	Category string `help:"Only videos in this category"`
	Search   string `help:"Title substring"`
	Limit    int    `default:"50" help:"Maximum rows"`
	Offset   int    `help:"Rows to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	IDs   []string `arg:"" name:"id" help:"Video IDs"`
	Force bool     `help:"Confirm deletion"`
}

// FixURLsCmd is the "fix-urls" subcommand.
type FixURLsCmd struct{}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
