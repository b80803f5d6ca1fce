package crawl_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jmilosz/sitechat"
	"github.com/jmilosz/sitechat/crawl"
	"github.com/jmilosz/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite builds an extractor serving a static page graph keyed by URL.
// Each entry maps a URL to the links it exposes.
func fakeSite(graph map[string][]string) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html, pageURL, baseHost string) (*sitechat.PageContent, error) {
			return &sitechat.PageContent{
				Title:        "Page " + pageURL,
				CombinedText: "content of " + pageURL,
				WordCount:    3,
				Links:        graph[pageURL],
			}, nil
		},
	}
}

func okFetcher(fetched *[]string) *mock.Fetcher {
	var mu sync.Mutex
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if fetched != nil {
				*fetched = append(*fetched, url)
			}
			return "<html></html>", nil
		},
	}
}

func TestCrawler_visits_breadth_first_without_revisits(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{
		"https://x.com/":  {"https://x.com/a", "https://x.com/b"},
		"https://x.com/a": {"https://x.com/b", "https://x.com/"},
		"https://x.com/b": {"https://x.com/a"},
	}

	var fetched []string
	c := &crawl.Crawler{
		Fetcher:   okFetcher(&fetched),
		Extractor: fakeSite(graph),
	}

	result, err := c.Crawl(context.Background(), "https://x.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://x.com/", "https://x.com/a", "https://x.com/b"}, fetched,
		"traversal must be breadth-first with no URL visited twice")
	assert.Len(t, result.Records, 3)
	assert.Equal(t, 3, result.Claimed)
}

func TestCrawler_respects_page_budget(t *testing.T) {
	t.Parallel()

	// Every page links to a fresh URL, so the frontier never drains.
	extractor := &mock.Extractor{
		ExtractFn: func(html, pageURL, baseHost string) (*sitechat.PageContent, error) {
			return &sitechat.PageContent{
				CombinedText: "page content here",
				WordCount:    3,
				Links:        []string{fmt.Sprintf("%s/next", pageURL)},
			}, nil
		},
	}

	var fetched []string
	c := &crawl.Crawler{
		Fetcher:   okFetcher(&fetched),
		Extractor: extractor,
		MaxPages:  5,
	}

	result, err := c.Crawl(context.Background(), "https://x.com")
	require.NoError(t, err)

	assert.Len(t, fetched, 5)
	assert.Equal(t, 5, result.Claimed)
}

func TestCrawler_never_fetches_gate_denied_URLs(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{
		"https://x.com/": {"https://x.com/private", "https://x.com/public"},
	}

	var fetched []string
	c := &crawl.Crawler{
		Gate: &mock.CrawlGate{
			AllowedFn: func(ctx context.Context, rawURL string) bool {
				return rawURL != "https://x.com/private"
			},
		},
		Fetcher:   okFetcher(&fetched),
		Extractor: fakeSite(graph),
	}

	result, err := c.Crawl(context.Background(), "https://x.com/")
	require.NoError(t, err)

	assert.NotContains(t, fetched, "https://x.com/private")
	assert.Contains(t, fetched, "https://x.com/public")
	assert.Equal(t, 1, result.Denied)
	assert.Equal(t, 3, result.Claimed, "a denied URL still consumes budget")
}

func TestCrawler_absorbs_single_page_failures(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{
		"https://x.com/": {"https://x.com/broken", "https://x.com/fine"},
	}

	c := &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://x.com/broken" {
					return "", fmt.Errorf("HTTP 500 for %s", url)
				}
				return "<html></html>", nil
			},
		},
		Extractor: fakeSite(graph),
	}

	result, err := c.Crawl(context.Background(), "https://x.com/")
	require.NoError(t, err, "a failed page must not abort the run")

	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Records, 2)
}

func TestCrawler_zero_extracted_pages_is_not_an_error(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Gate: &mock.CrawlGate{
			AllowedFn: func(ctx context.Context, rawURL string) bool { return false },
		},
		Fetcher:   okFetcher(nil),
		Extractor: fakeSite(nil),
	}

	result, err := c.Crawl(context.Background(), "https://x.com/")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.Denied)
}

func TestCrawler_waits_on_limiter_before_every_fetch(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{
		"https://x.com/": {"https://x.com/a"},
	}

	var waits []string
	c := &crawl.Crawler{
		Fetcher:   okFetcher(nil),
		Extractor: fakeSite(graph),
		Limiter: &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				waits = append(waits, domain)
				return nil
			},
		},
	}

	_, err := c.Crawl(context.Background(), "https://x.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"x.com", "x.com"}, waits)
}

func TestCrawler_rejects_invalid_base_URL(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{Fetcher: okFetcher(nil), Extractor: fakeSite(nil)}

	_, err := c.Crawl(context.Background(), "not-a-url")
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestResult_Words(t *testing.T) {
	t.Parallel()

	r := &crawl.Result{Records: []*sitechat.PageRecord{
		{WordCount: 3},
		{WordCount: 7},
	}}
	assert.Equal(t, 10, r.Words())
}
