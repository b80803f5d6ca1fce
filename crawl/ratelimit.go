package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/jmilosz/sitechat"
	"golang.org/x/time/rate"
)

var _ sitechat.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per domain using token buckets. Each domain
// gets its own limiter with a burst of 1, which enforces a fixed interval
// before every request to the same domain, including the first.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a DomainLimiter with the given minimum interval
// between requests to any one domain.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until a request to the domain may proceed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		// The bucket starts full; drain it so the first request to a
		// domain waits the interval like every later one.
		limiter.Allow()
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
