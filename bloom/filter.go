// Package bloom provides constant-space visited-set tracking for the
// crawl frontier using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL. False positives (a fresh
// URL reported as seen) occur at the configured rate; false negatives
// cannot occur, so a URL added once is never reported fresh again.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
