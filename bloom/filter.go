// Package bloom provides a probabilistic membership filter for canonical
// video keys.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over canonical keys.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected keys with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// NewFilterFromKeys creates a filter holding keys, with room for extra
// additional keys.
func NewFilterFromKeys(keys []string, extra uint, fpRate float64) *Filter {
	f := NewFilter(uint(len(keys))+extra, fpRate)
	for _, k := range keys {
		f.Add(k)
	}
	return f
}

// Add adds a key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
