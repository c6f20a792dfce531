package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/catalog"
	"github.com/fwojciec/vidcat/embed"
	"github.com/fwojciec/vidcat/rod"
	"github.com/fwojciec/vidcat/scrape"
	vidslog "github.com/fwojciec/vidcat/slog"
	"github.com/fwojciec/vidcat/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path, used when --db and VIDCAT_DB are unset.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. Real implementations are wired when nil.
	Launcher vidcat.BrowserLauncher
	Scraper  vidcat.SiteScraper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Sites:  scrape.DefaultSites(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vidcat"),
		kong.Description("Collect embeddable videos from listing sites into a local catalog."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vidcat --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, closeLog, err := NewLogger(stderr, cli.LogLevel, cli.LogFormat, cli.LogFile)
	if err != nil {
		return err
	}
	defer closeLog.Close()
	deps.Logger = logger

	if cmd == "sites" {
		return kongCtx.Run(deps)
	}

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set VIDCAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	resolver := embed.NewResolver(logger)
	deps.Videos = sqlite.NewVideoService(m.DB)
	deps.Resolver = resolver
	deps.Writer = &catalog.Writer{
		Videos:   deps.Videos,
		Resolver: resolver,
		Logger:   logger,
	}

	if cmd == "scrape" {
		launcher := m.Launcher
		if launcher == nil {
			launcher = &rod.Launcher{
				Headless:  cli.Scrape.Headless,
				NoSandbox: cli.Scrape.NoSandbox,
				Bin:       cli.Scrape.BrowserBin,
			}
			logger.Debug("browser configured", "launcher", launcher)
		}
		deps.Launcher = vidslog.NewLoggingLauncher(launcher, logger)
		deps.Scraper = m.Scraper
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidcat.db"
	}
	dir := filepath.Join(home, ".vidcat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "vidcat.db")
}
