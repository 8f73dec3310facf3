package crawler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces fetches per host. An audit usually touches a single
// domain, but subdomains get their own limiter so one slow host does not
// gate the others.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	delay    time.Duration
}

// NewRateLimiter creates a limiter enforcing delay between requests to the
// same host. A non-positive delay disables limiting.
func NewRateLimiter(delay time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until a request to urlStr may proceed or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if r.delay <= 0 {
		return nil
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return err
	}
	return r.limiterFor(u.Host).Wait(ctx)
}

func (r *RateLimiter) limiterFor(host string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limiter, ok := r.limiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Every(r.delay), 1)
	r.limiters[host] = limiter
	return limiter
}
