package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/recipeset"
	"golang.org/x/time/rate"
)

var _ recipeset.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRate is the number of page fetches per second allowed against one
// recipe site unless --rate says otherwise.
const DefaultRate = 1.0

// DomainLimiter spaces page fetches to the same recipe site. Scraper waits
// on the page host before every fetch, so reference URLs that share a site
// are fetched one bucket token apart while other sites are not held up.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps fetches per second
// to each host, with a burst of 1. A non-positive rps disables limiting and
// Wait only reports context cancellation.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a fetch from the host is allowed.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
