package scrape

import (
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/vidcat"
)

var _ vidcat.SeenSet = (*SeenSet)(nil)

// SeenSet records the canonical keys collected during one run. Keys are
// stored as 64-bit xxhash fingerprints. It is not safe for concurrent use.
type SeenSet struct {
	keys map[uint64]struct{}
}

// NewSeenSet returns an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{keys: make(map[uint64]struct{})}
}

// Has reports whether key was added before.
func (s *SeenSet) Has(key string) bool {
	_, ok := s.keys[xxhash.Sum64String(key)]
	return ok
}

// Add records key.
func (s *SeenSet) Add(key string) {
	s.keys[xxhash.Sum64String(key)] = struct{}{}
}

// Len returns the number of recorded keys.
func (s *SeenSet) Len() int {
	return len(s.keys)
}
