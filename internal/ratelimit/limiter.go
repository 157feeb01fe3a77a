// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles page fetches, typically per host so that the
// listing site and the fund pages share one budget.
type RateLimiter interface {
	// Wait blocks until a request for the given URL may proceed or ctx is done.
	Wait(ctx context.Context, urlStr string) error

	// Allow reports whether a request for the given URL may proceed immediately.
	Allow(urlStr string) bool
}

// DomainLimiter is a token-bucket limiter keyed by URL host
type DomainLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	perHost  rate.Limit
	burst    int
}

// NewDomainLimiter creates a limiter allowing requestsPerSecond per host.
// A negative rate disables limiting entirely.
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	limit := rate.Limit(requestsPerSecond)
	switch {
	case requestsPerSecond < 0:
		limit = rate.Inf
	case requestsPerSecond == 0:
		limit = 5.0
	}
	if burst <= 0 {
		burst = 10
	}

	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  limit,
		burst:    burst,
	}
}

// Wait blocks until the host of urlStr has a free token
func (dl *DomainLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	host := hostOf(urlStr)
	if host == "" {
		// Unparseable URLs fail later in the fetcher
		return nil
	}
	return dl.limiterFor(host).Wait(ctx)
}

// Allow checks if a request can proceed without blocking
func (dl *DomainLimiter) Allow(urlStr string) bool {
	host := hostOf(urlStr)
	if host == "" {
		return true
	}
	return dl.limiterFor(host).Allow()
}

// Hosts returns the number of hosts seen so far
func (dl *DomainLimiter) Hosts() int {
	dl.mu.RLock()
	defer dl.mu.RUnlock()
	return len(dl.limiters)
}

func (dl *DomainLimiter) limiterFor(host string) *rate.Limiter {
	dl.mu.RLock()
	l, ok := dl.limiters[host]
	dl.mu.RUnlock()
	if ok {
		return l
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := dl.limiters[host]; ok {
		return l
	}
	l = rate.NewLimiter(dl.perHost, dl.burst)
	dl.limiters[host] = l
	return l
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
