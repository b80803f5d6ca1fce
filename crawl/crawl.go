// Package crawl provides the breadth-first website crawling engine.
// It coordinates the politeness gate, fetching, and content extraction,
// and emits page records in extraction order.
package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/jmilosz/sitechat"
)

const (
	// DefaultMaxPages bounds how many URLs a single run may claim.
	DefaultMaxPages = 50

	// Frontier sizing for Bloom filter deduplication.
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Crawler traverses a website breadth-first from its base URL.
//
// A run is single-threaded: one fetch in flight at a time, which keeps the
// inter-request delay honest and the frontier access trivially safe.
// Independent runs for different sites may execute concurrently; each run
// owns its frontier and robots cache.
type Crawler struct {
	Gate      sitechat.CrawlGate
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Limiter   sitechat.DomainLimiter

	// MaxPages is the page budget. Defaults to DefaultMaxPages.
	// The budget counts claimed URLs, including gate-denied and failed
	// ones; a claimed URL is never retried within the run.
	MaxPages int

	Logger *slog.Logger
}

// Result holds the outcome of one crawl run.
type Result struct {
	// Records are the successfully extracted pages in extraction order.
	Records []*sitechat.PageRecord

	Claimed int // URLs dequeued from the frontier
	Denied  int // URLs skipped by the politeness gate
	Failed  int // fetch or extraction failures
}

// Words returns the total word count across all records.
func (r *Result) Words() int {
	total := 0
	for _, rec := range r.Records {
		total += rec.WordCount
	}
	return total
}

// Crawl traverses the site starting from baseURL until the frontier is
// exhausted or the page budget is reached. Single-page failures are logged
// and absorbed; they never abort the run. A run that extracts zero pages
// returns an empty result, not an error.
func (c *Crawler) Crawl(ctx context.Context, baseURL string) (*Result, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL %q", baseURL)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(baseURL)

	var result Result
	for frontier.Len() > 0 && result.Claimed < maxPages {
		u, ok := frontier.Pop()
		if !ok {
			break
		}

		// Claiming happens before any outcome is known: a denied or
		// failed URL still consumes budget and is never retried.
		result.Claimed++

		if c.Gate != nil && !c.Gate.Allowed(ctx, u) {
			result.Denied++
			c.log().Info("skipping URL disallowed by robots.txt", "url", u)
			continue
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, hostOf(u)); err != nil {
				return &result, err
			}
		}

		c.log().Info("crawling", "url", u)
		html, err := c.Fetcher.Fetch(ctx, u)
		if err != nil {
			result.Failed++
			c.log().Warn("fetch failed", "url", u, "error", err)
			continue
		}

		content, err := c.Extractor.Extract(html, u, base.Host)
		if err != nil {
			result.Failed++
			c.log().Warn("extraction failed", "url", u, "error", err)
			continue
		}

		result.Records = append(result.Records, &sitechat.PageRecord{
			URL:             u,
			Title:           content.Title,
			MetaDescription: content.MetaDescription,
			Headings:        content.Headings,
			Paragraphs:      content.Paragraphs,
			ListItems:       content.ListItems,
			CombinedText:    content.CombinedText,
			WordCount:       content.WordCount,
			Fingerprint:     sitechat.Fingerprint(u),
		})

		for _, link := range content.Links {
			frontier.Push(link)
		}
	}

	return &result, nil
}

func (c *Crawler) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return rawURL
}
