package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Category groups remote operations that share one throughput ceiling.
// The ceilings are fixed by the remote service's published limits and are
// known at build time.
type Category int

const (
	// Quote covers real-time market data (quotes, OHLC, LTP): 1 req/s.
	Quote Category = iota
	// Historical covers historical candle data: 3 req/s.
	Historical
	// Orders covers order placement and modification: 10 req/s.
	Orders
	// Standard covers all other operations: 10 req/s.
	Standard

	categoryCount
)

// Categories returns all declared categories.
func Categories() []Category {
	return []Category{Quote, Historical, Orders, Standard}
}

// RequestsPerSecond returns the documented ceiling for the category.
func (c Category) RequestsPerSecond() int {
	switch c {
	case Quote:
		return 1
	case Historical:
		return 3
	default:
		return 10
	}
}

// MinDelay returns the minimum time that must elapse between two requests
// in this category, derived from the ceiling.
func (c Category) MinDelay() time.Duration {
	return time.Second / time.Duration(c.RequestsPerSecond())
}

// String implements fmt.Stringer. The values double as metric label values.
func (c Category) String() string {
	switch c {
	case Quote:
		return "quote"
	case Historical:
		return "historical"
	case Orders:
		return "orders"
	case Standard:
		return "standard"
	}
	return "unknown"
}

// categoryState tracks the pacing state for one category. Each category has
// its own lock so a long wait for a quote slot never blocks order traffic.
//
// lastRequest is the fire time of the most recently admitted request. Under
// concurrent waiters it can sit in the future: Wait reserves the next free
// slot under the lock and sleeps outside it, which keeps the check-then-record
// sequence atomic without serializing sleeps.
type categoryState struct {
	mu          sync.Mutex
	lastRequest time.Time
	count       uint64
}

// Limiter enforces the per-category minimum delay between requests. It never
// rejects a request; it only delays. All category states are created at
// construction and live as long as the limiter.
//
// The per-category request count is cumulative and informational only. It is
// never reset on a wall-clock boundary and enforcement only ever compares
// against the time since the last request, not a sliding window; this is the
// remote service's documented pacing model, not a token bucket.
type Limiter struct {
	enabled bool
	now     func() time.Time
	states  [categoryCount]*categoryState
}

// New creates a limiter with a state for every declared category.
// When enabled is false every operation is a no-op that reports
// "immediately available".
func New(enabled bool) *Limiter {
	l := &Limiter{
		enabled: enabled,
		now:     time.Now,
	}
	for i := range l.states {
		l.states[i] = &categoryState{}
	}
	return l
}

// Enabled reports whether rate limiting is active.
func (l *Limiter) Enabled() bool {
	return l.enabled
}

// CanRequest reports whether a request in the category could fire right now
// without waiting. Read-only and non-blocking.
func (l *Limiter) CanRequest(c Category) bool {
	return l.Delay(c) == 0
}

// Delay returns how long a request in the category would have to wait before
// firing. Zero means immediately available. Read-only.
func (l *Limiter) Delay(c Category) time.Duration {
	if !l.enabled {
		return 0
	}
	s := l.states[c]
	s.mu.Lock()
	defer s.mu.Unlock()
	return l.delayLocked(s, c, l.now())
}

func (l *Limiter) delayLocked(s *categoryState, c Category, now time.Time) time.Duration {
	if s.lastRequest.IsZero() {
		return 0
	}
	next := s.lastRequest.Add(c.MinDelay())
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Wait blocks until a request in the category may fire, then records it.
// This is the mandatory gate before any wire call.
//
// The next free slot is reserved and the timestamp recorded atomically under
// the category lock, so two concurrent callers can never both observe "no
// wait needed" and fire inside the same instant. The sleep itself happens
// outside the lock. Waiting in one category never delays another.
//
// Wait returns early only when ctx is cancelled; the already-reserved slot
// is not rolled back.
func (l *Limiter) Wait(ctx context.Context, c Category) error {
	if !l.enabled {
		return ctx.Err()
	}

	s := l.states[c]
	s.mu.Lock()
	now := l.now()
	fireAt := now
	if !s.lastRequest.IsZero() {
		if next := s.lastRequest.Add(c.MinDelay()); next.After(now) {
			fireAt = next
		}
	}
	s.lastRequest = fireAt
	s.count++
	s.mu.Unlock()

	if d := fireAt.Sub(now); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// CategoryStats is an observability snapshot of one category's state.
type CategoryStats struct {
	// RequestCount is the cumulative number of requests admitted in this
	// category since construction. Informational only.
	RequestCount uint64
	// RequestsPerSecond is the category's fixed ceiling.
	RequestsPerSecond int
	// LastRequest is the fire time of the most recently admitted request,
	// zero if none.
	LastRequest time.Time
	// NextAvailable is when the next request may fire, zero if none recorded.
	NextAvailable time.Time
}

// AtLimit reports whether the category is currently pacing, i.e. a request
// made now would have to wait.
func (cs CategoryStats) AtLimit() bool {
	return !cs.NextAvailable.IsZero() && cs.NextAvailable.After(time.Now())
}

// Stats holds a point-in-time snapshot of every category.
type Stats struct {
	Enabled    bool
	Categories map[Category]CategoryStats
}

// Stats returns an observability snapshot of the limiter. The snapshot is
// taken category by category; it is not a single atomic cut across all four.
func (l *Limiter) Stats() Stats {
	stats := Stats{
		Enabled:    l.enabled,
		Categories: make(map[Category]CategoryStats, categoryCount),
	}
	for _, c := range Categories() {
		s := l.states[c]
		s.mu.Lock()
		cs := CategoryStats{
			RequestCount:      s.count,
			RequestsPerSecond: c.RequestsPerSecond(),
			LastRequest:       s.lastRequest,
		}
		if !s.lastRequest.IsZero() {
			cs.NextAvailable = s.lastRequest.Add(c.MinDelay())
		}
		s.mu.Unlock()
		stats.Categories[c] = cs
	}
	return stats
}
