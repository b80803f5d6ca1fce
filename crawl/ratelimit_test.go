package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmilosz/sitechat/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_delays_first_request(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "example.com"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond, "first request to a domain must also wait the interval")
}

func TestDomainLimiter_enforces_interval_per_domain(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "example.com"))
	require.NoError(t, limiter.Wait(ctx, "example.com"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond, "each request to the same domain must wait the interval")
}

func TestDomainLimiter_domains_are_independent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(250 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	var wg sync.WaitGroup
	for _, domain := range []string{"a.example.com", "b.example.com"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, limiter.Wait(ctx, domain))
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 450*time.Millisecond, "different domains should not block each other")
}

func TestDomainLimiter_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx, "example.com")
	assert.Error(t, err)
}
