package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/catalog"
	main "github.com/fwojciec/vidcat/cmd/vidcat"
	"github.com/fwojciec/vidcat/mock"
	"github.com/fwojciec/vidcat/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeCmd() *main.ScrapeCmd {
	return &main.ScrapeCmd{Max: 20, MaxPages: 3, MaxRetries: 3, Headless: true}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("dry run prints candidates without saving", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Sites:    scrape.DefaultSites(),
			Launcher: browserLauncher(),
			Scraper:  scraperFor(map[string][]*vidcat.Candidate{"Pornhub": {phCandidate("aaa")}}),
			Writer: &catalog.Writer{Videos: &mock.VideoService{
				CleanedURLsFn: func(context.Context) ([]string, error) {
					t.Error("dry run must not touch storage")
					return nil, nil
				},
			}},
		}
		cmd := scrapeCmd()
		cmd.Site = []string{"Pornhub"}
		cmd.DryRun = true

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Collected 1 videos from 1 sites")
		assert.Contains(t, stdout.String(), "https://www.pornhub.com/embed/aaa")
		assert.Empty(t, stderr.String())
	})

	t.Run("rejects unknown sites", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Sites:  scrape.DefaultSites(),
		}
		cmd := scrapeCmd()
		cmd.Site = []string{"Pornhub", "nope"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, vidcat.EINVALID, vidcat.ErrorCode(err))
		assert.Contains(t, stderr.String(), "nope")
	})

	t.Run("rejects out of range max", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
		cmd := scrapeCmd()
		cmd.Max = main.MaxScrapeVideos + 1

		err := cmd.Run(deps)

		assert.Equal(t, vidcat.EINVALID, vidcat.ErrorCode(err))
	})

	t.Run("commit failure is a warning", func(t *testing.T) {
		t.Parallel()

		tx := &mock.VideoTx{
			CreateVideoFn: func(_ context.Context, v *vidcat.Video) error {
				v.ID = "id"
				return nil
			},
			CommitFn:   func() error { return errors.New("database is locked") },
			RollbackFn: func() error { return nil },
		}
		videos := &mock.VideoService{
			CleanedURLsFn: func(context.Context) ([]string, error) { return nil, nil },
			BeginTxFn:     func(context.Context) (vidcat.VideoTx, error) { return tx, nil },
		}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Sites:    scrape.DefaultSites(),
			Launcher: browserLauncher(),
			Scraper:  scraperFor(map[string][]*vidcat.Candidate{"Pornhub": {phCandidate("aaa"), phCandidate("bbb")}}),
			Writer:   &catalog.Writer{Videos: videos},
		}
		cmd := scrapeCmd()
		cmd.Site = []string{"pornhub"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning: videos were not saved")
		assert.Contains(t, stderr.String(), "database is locked")
		assert.Contains(t, stdout.String(), "Collected: 2, new: 0")
	})

	t.Run("spreads budget across sites", func(t *testing.T) {
		t.Parallel()

		var limits []int
		scraper := &mock.SiteScraper{
			ScrapeSiteFn: func(_ context.Context, _ vidcat.Browser, req vidcat.SiteRequest) ([]*vidcat.Candidate, error) {
				limits = append(limits, req.Limit)
				assert.Equal(t, 2, req.MaxPages)
				assert.Equal(t, 4, req.MaxRetries)
				return nil, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sites:    scrape.DefaultSites(),
			Launcher: browserLauncher(),
			Scraper:  scraper,
			Writer:   &catalog.Writer{Videos: &mock.VideoService{}},
		}
		cmd := scrapeCmd()
		cmd.Max = 10
		cmd.MaxPages = 2
		cmd.MaxRetries = 4

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 2, 2, 2, 2, 2, 2}, limits)
	})
}
