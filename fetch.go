package sitechat

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch performs a bounded-timeout GET and returns the response body.
	// Non-2xx responses are errors.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// CrawlGate decides whether a URL may be fetched at all.
// A gate never fails: if the policy itself cannot be evaluated it reports
// the URL as allowed (fail-open) and logs the problem.
type CrawlGate interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// DomainLimiter provides per-domain pacing between requests.
type DomainLimiter interface {
	// Wait blocks until the next request to the domain may proceed.
	// Returns an error only if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
