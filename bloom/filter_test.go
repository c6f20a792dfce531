package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/vidcat/bloom"
	"github.com/stretchr/testify/assert"
)

const keyA = "https://pornhub.com/view_video.php?autoplay=0&controls=1&loop=0&mute=0&start=0&viewkey=a"

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.False(t, f.Test(keyA))

	f.Add(keyA)

	assert.True(t, f.Test(keyA))
	assert.False(t, f.Test("https://xvideos.com/video1/?autoplay=0&controls=1&loop=0&mute=0&start=0"))
}

func TestFilter_ZeroCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add(keyA)

	assert.True(t, f.Test(keyA))
}

func TestNewFilterFromKeys(t *testing.T) {
	t.Parallel()

	keys := make([]string, 500)
	for i := range keys {
		keys[i] = fmt.Sprintf("https://example.com/v/%d/?autoplay=0&controls=1&loop=0&mute=0&start=0", i)
	}

	f := bloom.NewFilterFromKeys(keys, 100, 0.01)

	for _, k := range keys {
		assert.True(t, f.Test(k), "no false negatives")
	}
	count := f.EstimatedCount()
	assert.True(t, count >= 450 && count <= 550, "expected count near 500, got %d", count)

	empty := bloom.NewFilterFromKeys(nil, 0, 0.01)
	assert.False(t, empty.Test(keyA))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	f.Add(keyA)
	countAfterFirst := f.EstimatedCount()

	f.Add(keyA)
	f.Add(keyA)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems      = 10000
		fpRate        = 0.01
		sampleLookups = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d/", i))
	}

	falsePositives := 0
	for i := range sampleLookups {
		if f.Test(fmt.Sprintf("https://example.com/notadded/%d/", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% for statistical variance
	actualRate := float64(falsePositives) / float64(sampleLookups)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
