package crawl

import (
	"sync"

	"github.com/mailsift/mailsift/bloom"
)

// Frontier sizing. The Bloom filter trades a small false-positive rate
// (a fresh URL wrongly reported as visited is skipped) for
// constant-space dedup; false negatives cannot occur, so no URL is
// ever admitted twice.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Frontier is an in-memory FIFO crawl queue with Bloom filter
// deduplication. A URL joins the visited set at admission time and is
// never removed, even if its fetch later fails. Safe for concurrent
// use.
type Frontier struct {
	mu       sync.Mutex
	visited  *bloom.Filter
	queue    []string
	accepted int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		visited: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
}

// Push admits a URL into the frontier.
// Returns false if the URL has already been visited.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visited.Test(url) {
		return false
	}
	f.visited.Add(url)
	f.accepted++
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the next queued URL in admission order.
// The bool result is false if nothing is queued.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen reports whether a URL has ever been admitted.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Test(url)
}

// Visited returns the number of URLs ever admitted, whether queued,
// in flight, or completed. It is the upper bound the page-budget guard
// compares against the configured maximum.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accepted
}
