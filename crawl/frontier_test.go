package crawl_test

import (
	"fmt"
	"testing"

	"github.com/mailsift/mailsift/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_RejectsDuplicateURLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.True(t, f.Push("https://a.com/page1"), "first push should succeed")
	assert.False(t, f.Push("https://a.com/page1"), "duplicate URL should be rejected")
}

func TestFrontier_Pop_ReturnsAdmissionOrder(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://a.com/1")
	f.Push("https://a.com/2")
	f.Push("https://a.com/3")

	for i := 1; i <= 3; i++ {
		url, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://a.com/%d", i), url)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_SeenSurvivesPop(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://a.com/1")
	f.Pop()

	assert.True(t, f.Seen("https://a.com/1"), "popped URL stays visited")
	assert.False(t, f.Push("https://a.com/1"), "popped URL is never re-admitted")
}

func TestFrontier_VisitedCountsUniqueAdmissions(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.Equal(t, 0, f.Visited())

	f.Push("https://a.com/1")
	f.Push("https://a.com/1") // rejected, not counted
	f.Push("https://a.com/2")
	assert.Equal(t, 2, f.Visited())

	f.Pop()
	assert.Equal(t, 2, f.Visited(), "visited only grows; popping does not shrink it")
	assert.Equal(t, 1, f.Len())
}
