package sitechat_test

import (
	"testing"

	"github.com/jmilosz/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderRecords(t *testing.T) {
	t.Parallel()

	records := sitechat.PlaceholderRecords("https://example.com/")
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "https://example.com/", rec.URL)
	assert.Equal(t, "example.com", rec.Title)
	assert.NotEmpty(t, rec.CombinedText)
	assert.Greater(t, rec.WordCount, 0)
	assert.Equal(t, sitechat.Fingerprint("https://example.com/"), rec.Fingerprint)

	// Placeholder text must survive the degenerate-content filter.
	assert.GreaterOrEqual(t, len(rec.CombinedText), 10)
}
