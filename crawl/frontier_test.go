package crawl_test

import (
	"testing"

	"github.com/jmilosz/sitechat/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Push("https://example.com/about"), "first push should succeed")
	assert.False(t, f.Push("https://example.com/about"), "duplicate URL should be rejected")
}

func TestFrontier_Push_deduplicates_by_fragment(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Push("https://example.com/docs#intro"))
	assert.False(t, f.Push("https://example.com/docs#usage"), "URLs differing only by fragment are duplicates")

	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/docs", url, "stored URL has the fragment stripped")
}

func TestFrontier_Pop_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Push("https://example.com/")
	f.Push("https://example.com/a")
	f.Push("https://example.com/b")

	for _, want := range []string{"https://example.com/", "https://example.com/a", "https://example.com/b"} {
		url, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, url)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Seen_covers_popped_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Push("https://example.com/a")
	f.Pop()

	assert.True(t, f.Seen("https://example.com/a"), "a popped URL is still seen")
	assert.Equal(t, 0, f.Len())
}
