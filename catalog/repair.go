package catalog

import (
	"context"

	"github.com/fwojciec/vidcat"
)

// RepairResult holds the outcome of RepairPlayerURLs.
type RepairResult struct {
	Checked int
	Updated int
	Failed  int // no URL to derive from, or update error
}

// RepairPlayerURLs recomputes the player URL of every stored video from its
// embed URL, or from its page URL when no embed URL was recorded, and
// updates the videos whose player URL changed.
func (w *Writer) RepairPlayerURLs(ctx context.Context) (*RepairResult, error) {
	logger := w.logger()
	r := w.resolver()

	videos, err := w.Videos.FindVideos(ctx, vidcat.VideoFilter{})
	if err != nil {
		return nil, err
	}

	res := &RepairResult{}
	for _, v := range videos {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++

		src := v.OriginalEmbedURL
		if src == "" {
			src = r.Embed(v.Source, v.OriginalPageURL)
		}
		player := r.PlayerURL(v.Source, src)
		if player == "" {
			logger.Warn("no URL to derive player URL from", "id", v.ID)
			res.Failed++
			continue
		}
		if player == v.PlayerURL {
			continue
		}

		if _, err := w.Videos.UpdateVideo(ctx, v.ID, vidcat.VideoUpdate{PlayerURL: &player}); err != nil {
			logger.Error("update player URL", "id", v.ID, "err", err)
			res.Failed++
			continue
		}
		logger.Info("player URL updated", "id", v.ID, "from", v.PlayerURL, "to", player)
		res.Updated++
	}

	return res, nil
}
