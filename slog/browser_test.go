package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/mock"
	vidslog "github.com/fwojciec/vidcat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingLauncher_Launch(t *testing.T) {
	t.Parallel()

	t.Run("wraps launched browser", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.BrowserLauncher{
			LaunchFn: func(ctx context.Context) (vidcat.Browser, error) {
				return &mock.Browser{}, nil
			},
		}

		b, err := vidslog.NewLoggingLauncher(inner, debugLogger(&buf)).Launch(context.Background())

		require.NoError(t, err)
		assert.IsType(t, &vidslog.LoggingBrowser{}, b)
		assert.Contains(t, buf.String(), "browser launch")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.BrowserLauncher{
			LaunchFn: func(ctx context.Context) (vidcat.Browser, error) {
				return nil, errors.New("chrome not found")
			},
		}

		b, err := vidslog.NewLoggingLauncher(inner, debugLogger(&buf)).Launch(context.Background())

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, buf.String(), "err=\"chrome not found\"")
	})
}

func TestLoggingBrowser(t *testing.T) {
	t.Parallel()

	t.Run("logs navigation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{Page: mock.Page{
			NavigateFn: func(ctx context.Context, url string) error {
				return vidcat.Errorf(vidcat.ENAVIGATE, "net::ERR_NAME_NOT_RESOLVED")
			},
		}}

		err := vidslog.NewLoggingBrowser(inner, debugLogger(&buf)).Navigate(context.Background(), "https://example.com/videos")

		require.Error(t, err)
		assert.Equal(t, vidcat.ENAVIGATE, vidcat.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "msg=navigate")
		assert.Contains(t, output, "url=https://example.com/videos")
		assert.Contains(t, output, "ERR_NAME_NOT_RESOLVED")
	})

	t.Run("logs html size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{Page: mock.Page{
			HTMLFn: func(ctx context.Context) (string, error) {
				return "<html>content</html>", nil
			},
		}}

		html, err := vidslog.NewLoggingBrowser(inner, debugLogger(&buf)).HTML(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Contains(t, buf.String(), "bytes=20")
	})

	t.Run("logs waits", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{Page: mock.Page{
			WaitElementsFn: func(ctx context.Context, selector string) error { return nil },
		}}

		err := vidslog.NewLoggingBrowser(inner, debugLogger(&buf)).WaitElements(context.Background(), "div.item")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "selector=div.item")
	})

	t.Run("delegates unlogged methods", func(t *testing.T) {
		t.Parallel()

		var cleared bool
		inner := &mock.Browser{
			ClearCookiesFn: func(ctx context.Context) error {
				cleared = true
				return nil
			},
		}

		err := vidslog.NewLoggingBrowser(inner, debugLogger(&bytes.Buffer{})).ClearCookies(context.Background())

		require.NoError(t, err)
		assert.True(t, cleared)
	})

	t.Run("delegates close", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		closeCalled := false
		inner := &mock.Browser{Page: mock.Page{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}}

		err := vidslog.NewLoggingBrowser(inner, debugLogger(&buf)).Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
		assert.Contains(t, buf.String(), "browser close")
	})
}
