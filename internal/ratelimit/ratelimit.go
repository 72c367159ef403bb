// Package ratelimit bounds how often a runner hits the Kubernetes API server
// while polling for status changes, so a fleet of concurrently running build
// Jobs can't overwhelm it with GET requests.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps golang.org/x/time/rate.Limiter with the handful of
// constructors this operator needs; it exists mainly so callers depend on
// this package's narrow surface instead of threading *rate.Limiter directly
// through every constructor.
type Limiter struct {
	l *rate.Limiter
}

// New returns a Limiter allowing qps requests per second, with burst as the
// maximum number of requests it will let through in a single instant.
func New(qps float64, burst int) *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Limit(qps), burst)}
}

// Unlimited returns a Limiter that never blocks, for callers (tests, or
// configurations that explicitly disable throttling) that want the same
// call shape without the wait.
func Unlimited() *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Inf, 1)}
}

// Wait blocks until a token is available or ctx is done, whichever comes
// first. A nil *Limiter is treated as Unlimited so callers can leave the
// field zero-valued in tests without crashing.
func (lim *Limiter) Wait(ctx context.Context) error {
	if lim == nil || lim.l == nil {
		return nil
	}
	return lim.l.Wait(ctx)
}
