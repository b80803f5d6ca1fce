package mock

import (
	"context"

	"github.com/jmilosz/sitechat"
)

var _ sitechat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitechat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

var _ sitechat.CrawlGate = (*CrawlGate)(nil)

// CrawlGate is a mock implementation of sitechat.CrawlGate.
type CrawlGate struct {
	AllowedFn func(ctx context.Context, rawURL string) bool
}

func (g *CrawlGate) Allowed(ctx context.Context, rawURL string) bool {
	return g.AllowedFn(ctx, rawURL)
}

var _ sitechat.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of sitechat.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
