package build

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter caps summarizer API calls across a rebuild using a token bucket.
// A nil *Limiter means no limit, so callers can leave the field unset.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps calls per second with the
// given burst.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until the limiter allows another call. Returns an error if
// the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.l.Wait(ctx)
}
