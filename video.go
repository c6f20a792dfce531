package vidcat

import (
	"context"
	"time"
	"unicode/utf8"
)

// DefaultCategory is assigned when a video's category is unknown.
const DefaultCategory = "General"

// MaxTitleLength is the maximum number of characters kept from a scraped title.
const MaxTitleLength = 250

// Candidate is a scraped video that has not been persisted yet.
type Candidate struct {
	Title            string `json:"title"`
	Source           string `json:"source"`
	OriginalPageURL  string `json:"originalPageUrl"`
	OriginalEmbedURL string `json:"originalEmbedUrl,omitempty"`
	PlayerURL        string `json:"playerUrl"`
	Thumbnail        string `json:"thumbnail"`
	PreviewURL       string `json:"previewUrl,omitempty"`
	Category         string `json:"category"`
}

// Validate returns an error if the candidate cannot become a catalog entry.
func (c *Candidate) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "candidate title required")
	}
	if c.Thumbnail == "" {
		return Errorf(EINVALID, "candidate thumbnail required")
	}
	if c.OriginalPageURL == "" && c.OriginalEmbedURL == "" {
		return Errorf(EINVALID, "candidate page or embed URL required")
	}
	return nil
}

// SourceURL returns the URL used to derive the candidate's canonical key:
// the embed URL when known, otherwise the page URL.
func (c *Candidate) SourceURL() string {
	if c.OriginalEmbedURL != "" {
		return c.OriginalEmbedURL
	}
	return c.OriginalPageURL
}

// TruncateTitle shortens s to at most MaxTitleLength characters.
func TruncateTitle(s string) string {
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}
	return string([]rune(s)[:MaxTitleLength])
}

// Video is a persisted catalog entry.
type Video struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Source             string    `json:"source"`
	PlayerURL          string    `json:"playerUrl"`
	Thumbnail          string    `json:"thumbnail"`
	PreviewURL         string    `json:"previewUrl"`
	Category           string    `json:"category"`
	OriginalCleanedURL string    `json:"originalCleanedUrl"`
	OriginalPageURL    string    `json:"originalPageUrl"`
	OriginalEmbedURL   string    `json:"originalEmbedUrl"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Validate returns an error if the video contains invalid fields.
func (v *Video) Validate() error {
	if v.Title == "" {
		return Errorf(EINVALID, "video title required")
	}
	if v.PlayerURL == "" {
		return Errorf(EINVALID, "video player URL required")
	}
	if v.Thumbnail == "" {
		return Errorf(EINVALID, "video thumbnail required")
	}
	if v.OriginalCleanedURL == "" {
		return Errorf(EINVALID, "video cleaned URL required")
	}
	return nil
}

// VideoService represents a service for managing catalog entries.
type VideoService interface {
	// BeginTx starts a transaction used to stage new videos.
	BeginTx(ctx context.Context) (VideoTx, error)

	// FindVideoByID retrieves a video by ID.
	// Returns ENOTFOUND if video does not exist.
	FindVideoByID(ctx context.Context, id string) (*Video, error)

	// FindVideos retrieves videos matching the filter, newest first.
	FindVideos(ctx context.Context, filter VideoFilter) ([]*Video, error)

	// CleanedURLs returns the canonical keys of all stored videos.
	CleanedURLs(ctx context.Context) ([]string, error)

	// UpdateVideo updates an existing video.
	// Returns ENOTFOUND if video does not exist.
	UpdateVideo(ctx context.Context, id string, upd VideoUpdate) (*Video, error)

	// DeleteVideo permanently removes a video.
	// Returns ENOTFOUND if video does not exist.
	DeleteVideo(ctx context.Context, id string) error
}

// VideoTx stages catalog entries inside a single transaction.
// Exactly one of Commit or Rollback must be called.
type VideoTx interface {
	// FindVideoByCleanedURL retrieves a video by its canonical key,
	// including videos staged earlier in this transaction.
	// Returns ENOTFOUND if no video has the key.
	FindVideoByCleanedURL(ctx context.Context, cleanedURL string) (*Video, error)

	// CreateVideo stages a new video, assigning its ID and timestamp.
	// Returns ECONFLICT if the canonical key is already taken.
	CreateVideo(ctx context.Context, video *Video) error

	Commit() error
	Rollback() error
}

// VideoFilter represents a filter for FindVideos.
type VideoFilter struct {
	Source   *string `json:"source"`
	Category *string `json:"category"`
	Search   *string `json:"search"` // substring of title

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// VideoUpdate represents fields that can be updated on a video.
type VideoUpdate struct {
	Title     *string `json:"title"`
	PlayerURL *string `json:"playerUrl"`
	Category  *string `json:"category"`
}
