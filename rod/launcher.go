// Package rod implements the browser abstractions on top of Chrome via go-rod.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/vidcat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultWindowSize is the window size in pixels, as "width,height".
const DefaultWindowSize = "1920,1080"

var _ vidcat.BrowserLauncher = (*Launcher)(nil)

// Launcher starts Chrome sessions. The zero value launches a headed browser
// found or downloaded by rod; use NewLauncher for headless defaults.
type Launcher struct {
	Headless   bool
	NoSandbox  bool   // required when running as root in containers
	Bin        string // browser binary, empty to let rod locate one
	WindowSize string
}

// NewLauncher returns a Launcher for headless sessions.
func NewLauncher() *Launcher {
	return &Launcher{Headless: true}
}

// Launch starts a browser process and opens its main tab. Close on the
// returned Browser kills the process.
func (l *Launcher) Launch(ctx context.Context) (vidcat.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnchr := l.launcher()
	u, err := lnchr.Launch()
	if err != nil {
		return nil, vidcat.Errorf(vidcat.EDRIVER, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, vidcat.Errorf(vidcat.EDRIVER, "connecting to browser: %v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return nil, WrapError("opening tab", err)
	}

	return &Browser{
		Page:     &Page{page: page},
		browser:  browser,
		launcher: lnchr,
	}, nil
}

// Args returns the command-line flags the browser is started with.
func (l *Launcher) Args() []string {
	return l.launcher().FormatArgs()
}

func (l *Launcher) launcher() *launcher.Launcher {
	size := l.WindowSize
	if size == "" {
		size = DefaultWindowSize
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-gpu").
		Set("window-size", size).
		Leakless(true).
		Headless(l.Headless).
		NoSandbox(l.NoSandbox)
	if l.Bin != "" {
		lnchr = lnchr.Bin(l.Bin)
	}
	return lnchr
}

// String describes the launch configuration for logs.
func (l *Launcher) String() string {
	bin := l.Bin
	if bin == "" {
		bin = "auto"
	}
	return fmt.Sprintf("chrome(headless=%t, bin=%s)", l.Headless, bin)
}
