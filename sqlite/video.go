package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/vidcat"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var (
	_ vidcat.VideoService = (*VideoService)(nil)
	_ vidcat.VideoTx      = (*videoTx)(nil)
)

const videoColumns = `id, title, source, player_url, thumbnail, preview_url, category,
	original_cleaned_url, original_page_url, original_embed_url, created_at`

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// VideoService implements vidcat.VideoService using SQLite.
type VideoService struct {
	db *DB
}

// NewVideoService creates a new VideoService.
func NewVideoService(db *DB) *VideoService {
	return &VideoService{db: db}
}

// BeginTx starts a transaction for staging new videos.
func (s *VideoService) BeginTx(ctx context.Context) (vidcat.VideoTx, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &videoTx{tx: tx}, nil
}

// FindVideoByID retrieves a video by ID.
func (s *VideoService) FindVideoByID(ctx context.Context, id string) (*vidcat.Video, error) {
	return findVideo(ctx, s.db, "id", id)
}

// FindVideos retrieves videos matching the filter, newest first.
func (s *VideoService) FindVideos(ctx context.Context, filter vidcat.VideoFilter) ([]*vidcat.Video, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + videoColumns + " FROM videos WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Search != nil {
		query.WriteString(` AND title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*vidcat.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}

// CleanedURLs returns the canonical keys of all stored videos.
func (s *VideoService) CleanedURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT original_cleaned_url FROM videos")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// UpdateVideo updates an existing video.
func (s *VideoService) UpdateVideo(ctx context.Context, id string, upd vidcat.VideoUpdate) (*vidcat.Video, error) {
	v, err := s.FindVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		v.Title = vidcat.TruncateTitle(*upd.Title)
	}
	if upd.PlayerURL != nil {
		v.PlayerURL = *upd.PlayerURL
	}
	if upd.Category != nil {
		v.Category = *upd.Category
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE videos
		SET title = ?, player_url = ?, category = ?
		WHERE id = ?
	`, v.Title, v.PlayerURL, v.Category, id)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// DeleteVideo permanently removes a video.
func (s *VideoService) DeleteVideo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return vidcat.Errorf(vidcat.ENOTFOUND, "video not found")
	}
	return nil
}

// videoTx implements vidcat.VideoTx over a SQL transaction.
type videoTx struct {
	tx *sql.Tx
}

func (t *videoTx) FindVideoByCleanedURL(ctx context.Context, cleanedURL string) (*vidcat.Video, error) {
	return findVideo(ctx, t.tx, "original_cleaned_url", cleanedURL)
}

func (t *videoTx) CreateVideo(ctx context.Context, v *vidcat.Video) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.Category == "" {
		v.Category = vidcat.DefaultCategory
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO videos (`+videoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, v.Title, v.Source, v.PlayerURL, v.Thumbnail, v.PreviewURL, v.Category,
		v.OriginalCleanedURL, v.OriginalPageURL, v.OriginalEmbedURL, createdAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return vidcat.Errorf(vidcat.ECONFLICT, "video with cleaned URL %q already exists", v.OriginalCleanedURL)
	}
	if err != nil {
		return err
	}

	v.ID = id
	v.CreatedAt = createdAt
	return nil
}

func (t *videoTx) Commit() error {
	return t.tx.Commit()
}

func (t *videoTx) Rollback() error {
	return t.tx.Rollback()
}

func findVideo(ctx context.Context, q querier, column, value string) (*vidcat.Video, error) {
	row := q.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM videos WHERE "+column+" = ?", value)
	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, vidcat.Errorf(vidcat.ENOTFOUND, "video not found")
	}
	return v, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner) (*vidcat.Video, error) {
	var v vidcat.Video
	var createdAt string

	if err := row.Scan(&v.ID, &v.Title, &v.Source, &v.PlayerURL, &v.Thumbnail, &v.PreviewURL, &v.Category,
		&v.OriginalCleanedURL, &v.OriginalPageURL, &v.OriginalEmbedURL, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if v.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &v, nil
}

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
