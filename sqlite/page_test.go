package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmilosz/sitechat"
	"github.com/jmilosz/sitechat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_CreatePages_and_FindPagesBySite(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	sites := sqlite.NewSiteService(db)
	pages := sqlite.NewPageService(db)
	ctx := context.Background()

	site := createTestSite(t, sites, "https://example.com/")

	batch := []*sitechat.PageRecord{
		{
			SiteID:          site.ID,
			URL:             "https://example.com/",
			Title:           "Example Domain",
			MetaDescription: "An example",
			Headings:        "Welcome",
			Paragraphs:      "This domain is for use in examples.",
			ListItems:       "One | Two",
			CombinedText:    "Example Domain An example Welcome This domain is for use in examples. One Two",
			WordCount:       14,
			Fingerprint:     sitechat.Fingerprint("https://example.com/"),
		},
		{
			SiteID:       site.ID,
			URL:          "https://example.com/about",
			CombinedText: "about page content",
			WordCount:    3,
			Fingerprint:  sitechat.Fingerprint("https://example.com/about"),
		},
	}
	require.NoError(t, pages.CreatePages(ctx, batch))

	found, err := pages.FindPagesBySite(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "https://example.com/", found[0].URL, "creation order is preserved")
	assert.Equal(t, "Example Domain", found[0].Title)
	assert.Equal(t, 14, found[0].WordCount)
	assert.Equal(t, "https://example.com/about", found[1].URL)
	assert.NotEmpty(t, found[0].ID)
}

func TestPageService_CreatePages_rejects_invalid_record(t *testing.T) {
	t.Parallel()

	pages := sqlite.NewPageService(mustOpenDB(t))

	err := pages.CreatePages(context.Background(), []*sitechat.PageRecord{
		{URL: "https://example.com/"},
	})
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestPageService_DeletePagesBySite(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	sites := sqlite.NewSiteService(db)
	pages := sqlite.NewPageService(db)
	ctx := context.Background()

	site := createTestSite(t, sites, "https://example.com/")
	require.NoError(t, pages.CreatePages(ctx, []*sitechat.PageRecord{
		{SiteID: site.ID, URL: "https://example.com/", CombinedText: "some content"},
		{SiteID: site.ID, URL: "https://example.com/a", CombinedText: "more content"},
	}))

	n, err := pages.DeletePagesBySite(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Deleting again is a no-op, not an error.
	n, err = pages.DeletePagesBySite(ctx, site.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
