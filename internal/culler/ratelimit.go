package culler

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// domainLimiter rate limits requests per host with one token bucket each,
// so different hosts are checked in parallel.
type domainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

func newDomainLimiter(rps float64) *domainLimiter {
	return &domainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *domainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
