package kite

import (
	"context"
	"math"
	"time"
)

const (
	// DefaultMaxRetries is the number of re-attempts after the first try.
	DefaultMaxRetries = 3
	// DefaultBaseDelay seeds the backoff schedule.
	DefaultBaseDelay = 200 * time.Millisecond
	// DefaultMaxDelay caps any single backoff sleep.
	DefaultMaxDelay = 5 * time.Second
)

// RetryPolicy controls how failed requests are re-attempted. Only errors
// classified as retryable are ever re-attempted; auth failures, validation
// errors and other caller mistakes fail immediately regardless of policy.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	// Zero disables retries entirely.
	MaxRetries int
	// BaseDelay is the sleep before the first re-attempt.
	BaseDelay time.Duration
	// MaxDelay caps the backoff. The schedule never sleeps longer than
	// this, no matter the attempt number.
	MaxDelay time.Duration
	// ExponentialBackoff doubles the delay each attempt. When false every
	// re-attempt waits BaseDelay.
	ExponentialBackoff bool
	// RetryWrites opts mutating operations (order placement, cancellation)
	// into automatic retries. Off by default: a timed-out write may have
	// been accepted by the exchange, and re-sending it places a second
	// order. Reads are always eligible.
	RetryWrites bool
}

// DefaultRetryPolicy returns the stock policy: three retries with
// exponential backoff from 200ms capped at 5s, writes excluded.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:         DefaultMaxRetries,
		BaseDelay:          DefaultBaseDelay,
		MaxDelay:           DefaultMaxDelay,
		ExponentialBackoff: true,
	}
}

// applyDefaults fills unset fields so a partially configured policy still
// behaves sanely.
func (p RetryPolicy) applyDefaults() RetryPolicy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	return p
}

// backoff returns the sleep before re-attempt number attempt (0-based).
func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.BaseDelay
	if p.ExponentialBackoff {
		d = time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt)))
	}
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d
}

// allows reports whether the policy permits retrying the given endpoint.
func (p RetryPolicy) allows(e Endpoint) bool {
	if p.MaxRetries <= 0 {
		return false
	}
	return e.ReadOnly() || p.RetryWrites
}

// sleepContext sleeps for d or until ctx is cancelled, whichever comes
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
