package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmilosz/sitechat"
	"github.com/jmilosz/sitechat/crawl"
	"github.com/jmilosz/sitechat/fs"
	"github.com/jmilosz/sitechat/mock"
	"github.com/jmilosz/sitechat/sqlite"
	"github.com/jmilosz/sitechat/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), nil, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "scrape")
	assert.Contains(t, stdout.String(), "ask")
}

func TestRun_List_Empty(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No sites found")
}

func TestScrapeCmd_EndToEnd(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.Crawler = &crawl.Crawler{
		Gate: &mock.CrawlGate{AllowedFn: func(context.Context, string) bool { return true }},
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
			return `<html><head><title>Example Shop</title></head>
<body><p>We sell bicycles and accessories for the whole family.</p></body></html>`, nil
		}},
		Extractor: newTestExtractor(),
		MaxPages:  5,
	}

	cmd := &ScrapeCmd{URL: "https://example.com"}
	require.NoError(t, cmd.Run(deps))

	out := stdoutOf(deps)
	assert.Contains(t, out, "Added site")
	assert.Contains(t, out, "1 pages saved")

	site, err := deps.Sites.FindSiteByURL(deps.Ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Example Shop", site.Title)
	assert.NotEmpty(t, site.VectorIndexID)
	assert.True(t, deps.Store.Valid(site.VectorIndexID))

	pages, err := deps.Pages.FindPagesBySite(deps.Ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].CombinedText, "bicycles")
}

func TestScrapeCmd_PlaceholderWhenNothingCrawled(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	deps.Crawler = &crawl.Crawler{
		Gate:      &mock.CrawlGate{AllowedFn: func(context.Context, string) bool { return false }},
		Fetcher:   &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { t.Fatal("denied URL fetched"); return "", nil }},
		Extractor: newTestExtractor(),
		MaxPages:  5,
	}

	cmd := &ScrapeCmd{URL: "https://blocked.example"}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdoutOf(deps), "placeholder")

	site, err := deps.Sites.FindSiteByURL(deps.Ctx, "https://blocked.example")
	require.NoError(t, err)
	assert.NotEmpty(t, site.VectorIndexID)

	pages, err := deps.Pages.FindPagesBySite(deps.Ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Paragraphs, "No pages could be crawled")
}

func TestAskCmd(t *testing.T) {
	t.Parallel()

	t.Run("SiteNotFound", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		cmd := &AskCmd{URL: "https://nowhere.example", Question: "anything?"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})

	t.Run("AnswersFromIndex", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		deps.Completer = &mock.Completer{
			CompleteFn: func(context.Context, string) (string, error) {
				return "<think>reasoning</think>Bicycles.", nil
			},
		}

		site := &sitechat.Site{URL: "https://example.com"}
		require.NoError(t, deps.Sites.CreateSite(deps.Ctx, site))

		indexID, err := deps.Pipeline.Index(deps.Ctx, site, []*sitechat.PageRecord{
			{SiteID: site.ID, URL: "https://example.com/", CombinedText: "We sell bicycles and parts."},
		})
		require.NoError(t, err)
		require.NotEmpty(t, indexID)

		cmd := &AskCmd{URL: "https://example.com", Question: "what do you sell?"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdoutOf(deps), "Bicycles.")
		assert.NotContains(t, stdoutOf(deps), "<think>")
	})
}

func TestDeleteCmd(t *testing.T) {
	t.Parallel()

	t.Run("RequiresForce", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		cmd := &DeleteCmd{URL: "https://example.com"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})

	t.Run("RemovesEverything", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		site := &sitechat.Site{URL: "https://example.com"}
		require.NoError(t, deps.Sites.CreateSite(deps.Ctx, site))

		records := []*sitechat.PageRecord{
			{SiteID: site.ID, URL: "https://example.com/", CombinedText: "We sell bicycles and parts."},
		}
		require.NoError(t, deps.Pages.CreatePages(deps.Ctx, records))
		indexID, err := deps.Pipeline.Index(deps.Ctx, site, records)
		require.NoError(t, err)
		_, err = deps.Exports.Export(records, indexID)
		require.NoError(t, err)

		cmd := &DeleteCmd{URL: "https://example.com", Force: true}
		require.NoError(t, cmd.Run(deps))

		assert.False(t, deps.Store.Valid(indexID))
		_, err = deps.Sites.FindSiteByURL(deps.Ctx, "https://example.com")
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})
}

func TestReconcileCmd(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	site := &sitechat.Site{URL: "https://example.com"}
	require.NoError(t, deps.Sites.CreateSite(deps.Ctx, site))
	require.NoError(t, deps.Sites.SetVectorIndexID(deps.Ctx, site.ID, "gone"))

	cmd := &ReconcileCmd{}
	require.NoError(t, cmd.Run(deps))
	assert.Contains(t, stdoutOf(deps), "Cleared 1 stale index reference")

	got, err := deps.Sites.FindSiteByID(deps.Ctx, site.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VectorIndexID)
}

// newTestMain returns a Main backed by throwaway paths.
func newTestMain(t *testing.T) *Main {
	t.Helper()
	m := NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.DataDir = t.TempDir()
	return m
}

// newTestDeps wires Dependencies against a real database and vector store
// in temp directories, with a deterministic embedder.
func newTestDeps(t *testing.T) *Dependencies {
	t.Helper()

	db := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	embedder := &mock.Embedder{
		EmbedFn: func(_ context.Context, text string) ([]float32, error) {
			return []float32{float32(len(text)), 1}, nil
		},
	}

	dataDir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)
	sites := sqlite.NewSiteService(db)
	pages := sqlite.NewPageService(db)
	store := fs.NewStore(filepath.Join(dataDir, "vectors"), embedder)
	exports := fs.NewExporter(filepath.Join(dataDir, "exports"))

	return &Dependencies{
		Ctx:      context.Background(),
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Logger:   logger,
		DB:       db,
		Sites:    sites,
		Pages:    pages,
		Store:    store,
		Exports:  exports,
		Pipeline: vectorize.NewPipeline(sites, store, logger),
		Auditor:  vectorize.NewAuditor(sites, store, logger),
		Deleter:  vectorize.NewDeleter(sites, pages, store, exports, logger),
		Completer: &mock.Completer{
			CompleteFn: func(context.Context, string) (string, error) { return "ok", nil },
		},
	}
}

func newTestExtractor() sitechat.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html, pageURL, baseHost string) (*sitechat.PageContent, error) {
			content := sitechat.Normalize("Example Shop We sell bicycles and accessories for the whole family.")
			return &sitechat.PageContent{
				Title:        "Example Shop",
				Paragraphs:   "We sell bicycles and accessories for the whole family.",
				CombinedText: content,
				WordCount:    sitechat.WordCount(content),
			}, nil
		},
	}
}

func stdoutOf(deps *Dependencies) string {
	return deps.Stdout.(*bytes.Buffer).String()
}
