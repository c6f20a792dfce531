package mock

import (
	"context"

	"github.com/fwojciec/vidcat"
)

var (
	_ vidcat.VideoService = (*VideoService)(nil)
	_ vidcat.VideoTx      = (*VideoTx)(nil)
)

// VideoService is a mock implementation of vidcat.VideoService.
type VideoService struct {
	BeginTxFn       func(ctx context.Context) (vidcat.VideoTx, error)
	FindVideoByIDFn func(ctx context.Context, id string) (*vidcat.Video, error)
	FindVideosFn    func(ctx context.Context, filter vidcat.VideoFilter) ([]*vidcat.Video, error)
	CleanedURLsFn   func(ctx context.Context) ([]string, error)
	UpdateVideoFn   func(ctx context.Context, id string, upd vidcat.VideoUpdate) (*vidcat.Video, error)
	DeleteVideoFn   func(ctx context.Context, id string) error
}

func (s *VideoService) BeginTx(ctx context.Context) (vidcat.VideoTx, error) {
	return s.BeginTxFn(ctx)
}

func (s *VideoService) FindVideoByID(ctx context.Context, id string) (*vidcat.Video, error) {
	return s.FindVideoByIDFn(ctx, id)
}

func (s *VideoService) FindVideos(ctx context.Context, filter vidcat.VideoFilter) ([]*vidcat.Video, error) {
	return s.FindVideosFn(ctx, filter)
}

func (s *VideoService) CleanedURLs(ctx context.Context) ([]string, error) {
	return s.CleanedURLsFn(ctx)
}

func (s *VideoService) UpdateVideo(ctx context.Context, id string, upd vidcat.VideoUpdate) (*vidcat.Video, error) {
	return s.UpdateVideoFn(ctx, id, upd)
}

func (s *VideoService) DeleteVideo(ctx context.Context, id string) error {
	return s.DeleteVideoFn(ctx, id)
}

// VideoTx is a mock implementation of vidcat.VideoTx.
type VideoTx struct {
	FindVideoByCleanedURLFn func(ctx context.Context, cleanedURL string) (*vidcat.Video, error)
	CreateVideoFn           func(ctx context.Context, video *vidcat.Video) error
	CommitFn                func() error
	RollbackFn              func() error
}

func (tx *VideoTx) FindVideoByCleanedURL(ctx context.Context, cleanedURL string) (*vidcat.Video, error) {
	return tx.FindVideoByCleanedURLFn(ctx, cleanedURL)
}

func (tx *VideoTx) CreateVideo(ctx context.Context, video *vidcat.Video) error {
	return tx.CreateVideoFn(ctx, video)
}

func (tx *VideoTx) Commit() error {
	return tx.CommitFn()
}

func (tx *VideoTx) Rollback() error {
	return tx.RollbackFn()
}
