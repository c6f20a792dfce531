// Package catalog persists scraped candidates as catalog entries.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/bloom"
	"github.com/fwojciec/vidcat/canon"
	"github.com/fwojciec/vidcat/embed"
)

// falsePositiveRate sizes the filter of stored keys. A false positive only
// costs one extra lookup.
const falsePositiveRate = 0.01

// Writer saves candidates to a VideoService, skipping duplicates.
type Writer struct {
	Videos   vidcat.VideoService
	Resolver *embed.Resolver
	Logger   *slog.Logger
}

// SaveResult holds the outcome of a Save.
type SaveResult struct {
	Saved      int // committed catalog entries
	Duplicates int // already stored, or repeated within the batch
	Skipped    int // invalid, no player URL, or no usable source URL
	Failed     int // storage errors on individual records
}

// Save stores the candidates in input order within a single transaction.
//
// Each candidate is keyed by the canonical form of its embed URL, or its page
// URL when there is no embed URL. Candidates whose key is already stored or
// staged earlier in the batch are counted as duplicates. If the commit fails
// nothing is saved and the error is returned with Saved == 0.
func (w *Writer) Save(ctx context.Context, candidates []*vidcat.Candidate) (*SaveResult, error) {
	logger := w.logger()
	res := &SaveResult{}

	if len(candidates) == 0 {
		logger.Info("no videos to save")
		return res, nil
	}

	existing, err := w.Videos.CleanedURLs(ctx)
	if err != nil {
		return res, fmt.Errorf("load stored keys: %w", err)
	}
	known := bloom.NewFilterFromKeys(existing, uint(len(candidates)), falsePositiveRate)
	logger.Debug("stored keys loaded", "keys", len(existing), "estimated", known.EstimatedCount())

	tx, err := w.Videos.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	staged := make(map[string]string) // canonical key -> staged video ID
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return &SaveResult{}, err
		}
		logger := logger.With("title", c.Title, "source", c.Source)

		if err := c.Validate(); err != nil {
			logger.Warn("skipping invalid video", "err", vidcat.ErrorMessage(err))
			res.Skipped++
			continue
		}
		player := w.playerURL(c)
		if player == "" {
			logger.Warn("skipping video without player URL")
			res.Skipped++
			continue
		}

		src := c.SourceURL()
		key, err := canon.Canonicalize(src)
		if err != nil {
			logger.Warn("skipping video with invalid URL", "url", src, "err", vidcat.ErrorMessage(err))
			res.Skipped++
			continue
		}

		if id, ok := staged[key]; ok {
			logger.Info("skipping video repeated in batch", "key", key, "id", id)
			res.Duplicates++
			continue
		}
		if known.Test(key) {
			v, err := tx.FindVideoByCleanedURL(ctx, key)
			if err == nil {
				logger.Info("skipping video already stored", "key", key, "id", v.ID)
				res.Duplicates++
				continue
			}
			if vidcat.ErrorCode(err) != vidcat.ENOTFOUND {
				logger.Error("duplicate lookup failed", "key", key, "err", err)
				res.Failed++
				continue
			}
		}

		category := c.Category
		if category == "" {
			category = vidcat.DefaultCategory
		}
		v := &vidcat.Video{
			Title:              vidcat.TruncateTitle(c.Title),
			Source:             c.Source,
			PlayerURL:          player,
			Thumbnail:          c.Thumbnail,
			PreviewURL:         c.PreviewURL,
			Category:           category,
			OriginalCleanedURL: key,
			OriginalPageURL:    c.OriginalPageURL,
			OriginalEmbedURL:   c.OriginalEmbedURL,
		}
		if err := tx.CreateVideo(ctx, v); err != nil {
			switch vidcat.ErrorCode(err) {
			case vidcat.ECONFLICT:
				logger.Info("skipping video already stored", "key", key)
				res.Duplicates++
			case vidcat.EINVALID:
				logger.Warn("skipping invalid video", "err", vidcat.ErrorMessage(err))
				res.Skipped++
			default:
				logger.Error("stage video failed", "key", key, "err", err)
				res.Failed++
			}
			continue
		}
		staged[key] = v.ID
	}

	if len(staged) == 0 {
		logger.Info("no new videos in batch", "duplicates", res.Duplicates, "skipped", res.Skipped, "failed", res.Failed)
		return res, nil
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed, batch rolled back", "staged", len(staged), "err", err)
		return res, fmt.Errorf("commit %d videos: %w", len(staged), err)
	}
	committed = true

	res.Saved = len(staged)
	logger.Info("videos saved", "saved", res.Saved, "duplicates", res.Duplicates, "skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

// playerURL returns the candidate's player URL, deriving it from the embed
// URL and then the page URL when it is missing.
func (w *Writer) playerURL(c *vidcat.Candidate) string {
	if c.PlayerURL != "" {
		return c.PlayerURL
	}
	r := w.resolver()
	if u := r.PlayerURL(c.Source, c.OriginalEmbedURL); u != "" {
		return u
	}
	return r.PlayerURL(c.Source, c.OriginalPageURL)
}

func (w *Writer) resolver() *embed.Resolver {
	if w.Resolver == nil {
		return embed.NewResolver(w.Logger)
	}
	return w.Resolver
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}
