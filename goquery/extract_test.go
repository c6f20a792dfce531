package goquery_test

import (
	"testing"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/goquery"
	"github.com/fwojciec/vidcat/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func site(name string) vidcat.Site {
	for _, s := range scrape.DefaultSites() {
		if s.Name == name {
			return s
		}
	}
	panic("unknown site " + name)
}

func TestExtractor_ExtractItems(t *testing.T) {
	t.Parallel()

	t.Run("extracts pornhub listing items in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<ul id="videoCategory">
	<li class="pcVideoListItem">
		<a href="/view_video.php?viewkey=ph111" title="First">
			<img src="https://ci.phncdn.com/videos/111.jpg" alt="">
		</a>
		<span class="title"><a href="/view_video.php?viewkey=ph111">
			First   video
		</a></span>
	</li>
	<li class="pcVideoListItem">
		<a href="https://www.pornhub.com/view_video.php?viewkey=ph222#comments">
			<img src="data:image/gif;base64,R0lGOD" data-src="//ci.phncdn.com/videos/222.jpg">
		</a>
		<span class="title">Second</span>
	</li>
</ul>
</body>
</html>`

		items, err := goquery.NewExtractor().ExtractItems(html, "https://www.pornhub.com/video?page=1", site("Pornhub"))

		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, vidcat.Item{
			PageURL:   "https://www.pornhub.com/view_video.php?viewkey=ph111",
			Title:     "First video",
			Thumbnail: "https://ci.phncdn.com/videos/111.jpg",
		}, items[0])
		assert.Equal(t, vidcat.Item{
			PageURL:   "https://www.pornhub.com/view_video.php?viewkey=ph222",
			Title:     "Second",
			Thumbnail: "https://ci.phncdn.com/videos/222.jpg",
		}, items[1])
	})

	t.Run("extracts eporner listing items", func(t *testing.T) {
		t.Parallel()

		html := `<div id="vidresults">
	<div class="mb">
		<div class="mbimg"><a href="/video-AbC123/some-title/"><img src="https://static-eu-cdn.eporner.com/thumbs/1.jpg"></a></div>
		<p class="mbtit"><a href="/video-AbC123/some-title/">Some Title</a></p>
	</div>
</div>`

		items, err := goquery.NewExtractor().ExtractItems(html, "https://www.eporner.com/latest-updates/1/", site("EPorner"))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "https://www.eporner.com/video-AbC123/some-title/", items[0].PageURL)
		assert.Equal(t, "Some Title", items[0].Title)
		assert.Equal(t, "https://static-eu-cdn.eporner.com/thumbs/1.jpg", items[0].Thumbnail)
	})

	t.Run("leaves missing fields empty", func(t *testing.T) {
		t.Parallel()

		html := `<div class="thumb-block"><p class="title">Only a title</p></div>
<div class="thumb-block"><a href="javascript:void(0)">x</a><img src="data:image/png;base64,AAAA"></div>`

		items, err := goquery.NewExtractor().ExtractItems(html, "https://www.xvideos.com/new/1", site("Xvideos"))

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, vidcat.Item{Title: "Only a title"}, items[0])
		assert.Equal(t, vidcat.Item{}, items[1])
	})

	t.Run("uses title attribute when text is empty", func(t *testing.T) {
		t.Parallel()

		html := `<div class="video-item"><a href="/video/9/" class="title" title="From attribute"></a><img src="" data-thumb="/t/9.jpg"></div>`

		s := site("SpankBang")
		items, err := goquery.NewExtractor().ExtractItems(html, "https://spankbang.com/s/newest/1/", s)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "From attribute", items[0].Title)
		assert.Equal(t, "https://spankbang.com/video/9/", items[0].PageURL)
		assert.Equal(t, "https://spankbang.com/t/9.jpg", items[0].Thumbnail)
	})

	t.Run("no matches returns no items", func(t *testing.T) {
		t.Parallel()

		items, err := goquery.NewExtractor().ExtractItems("<html><body>Blocked</body></html>", "https://www.redtube.com/?page=1", site("RedTube"))

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("rejects invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().ExtractItems("<html></html>", "http://[::1", site("RedTube"))

		assert.Equal(t, vidcat.EINVALID, vidcat.ErrorCode(err))
	})
}

func TestExtractor_ExtractCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "category class",
			html: `<div class="category"> Amateur </div>`,
			want: "Amateur",
		},
		{
			name: "skips empty matches for later selectors",
			html: `<div class="category"></div><div class="tags"><span class="tag">Outdoor</span><span class="tag">POV</span></div>`,
			want: "Outdoor",
		},
		{
			name: "metadata category",
			html: `<div class="metadata"><a class="category">Vintage</a></div>`,
			want: "Vintage",
		},
		{
			name: "none",
			html: `<html><body><video></video></body></html>`,
			want: "",
		},
	}

	e := goquery.NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.ExtractCategory(tt.html))
		})
	}
}
