package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jmilosz/sitechat"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTimeout bounds a robots.txt fetch. Kept short so an
// unresponsive robots endpoint does not stall the crawl.
const DefaultRobotsTimeout = 5 * time.Second

// robotsAgent is the user agent the rules are evaluated for.
const robotsAgent = "*"

// Ensure RobotsGate implements sitechat.CrawlGate at compile time.
var _ sitechat.CrawlGate = (*RobotsGate)(nil)

// RobotsGate decides whether URLs may be fetched based on each origin's
// robots.txt. Rules are fetched once per origin and cached for the gate's
// lifetime; a gate is meant to live for one crawl run.
//
// The gate fails open: if robots.txt cannot be fetched or parsed, fetching
// is allowed and a warning is logged. Allowed never returns an error.
type RobotsGate struct {
	client *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData // keyed by origin; nil means fail-open
}

// GateOption configures a RobotsGate.
type GateOption func(*RobotsGate)

// WithRobotsTimeout sets the timeout for robots.txt fetches.
func WithRobotsTimeout(d time.Duration) GateOption {
	return func(g *RobotsGate) {
		g.client.Timeout = d
	}
}

// NewRobotsGate creates a gate for one crawl run.
func NewRobotsGate(logger *slog.Logger, opts ...GateOption) *RobotsGate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &RobotsGate{
		client: &http.Client{Timeout: DefaultRobotsTimeout},
		logger: logger,
		cache:  make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allowed reports whether rawURL may be fetched under its origin's
// robots.txt rules, evaluated for the generic "*" agent.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		// Not the gate's call: the fetcher will reject it.
		return true
	}

	data := g.rules(ctx, u.Scheme+"://"+u.Host)
	if data == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	// Rules can match on the query string too.
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, robotsAgent)
}

// rules returns the cached robots data for an origin, fetching it on first
// use. A nil return means no usable rules exist and the origin is fail-open.
func (g *RobotsGate) rules(ctx context.Context, origin string) *robotstxt.RobotsData {
	g.mu.Lock()
	defer g.mu.Unlock()

	if data, ok := g.cache[origin]; ok {
		return data
	}

	data := g.fetch(ctx, origin)
	g.cache[origin] = data
	return data
}

func (g *RobotsGate) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	robotsURL := origin + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		g.logger.Warn("could not build robots.txt request, assuming allowed", "url", robotsURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("could not fetch robots.txt, assuming allowed", "url", robotsURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("robots.txt returned non-2xx, assuming allowed", "url", robotsURL, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Warn("could not read robots.txt, assuming allowed", "url", robotsURL, "error", err)
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		g.logger.Warn("could not parse robots.txt, assuming allowed", "url", robotsURL, "error", err)
		return nil
	}
	return data
}
