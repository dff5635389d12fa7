package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCategoryCeilings(t *testing.T) {
	tests := []struct {
		category Category
		rps      int
		minDelay time.Duration
		name     string
	}{
		{Quote, 1, time.Second, "quote"},
		{Historical, 3, time.Second / 3, "historical"},
		{Orders, 10, 100 * time.Millisecond, "orders"},
		{Standard, 10, 100 * time.Millisecond, "standard"},
	}
	for _, tt := range tests {
		if got := tt.category.RequestsPerSecond(); got != tt.rps {
			t.Errorf("%s: RequestsPerSecond() = %d, want %d", tt.name, got, tt.rps)
		}
		if got := tt.category.MinDelay(); got != tt.minDelay {
			t.Errorf("%s: MinDelay() = %v, want %v", tt.name, got, tt.minDelay)
		}
		if got := tt.category.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestDisabledLimiterIsNoOp(t *testing.T) {
	l := New(false)
	ctx := context.Background()

	for _, c := range Categories() {
		if !l.CanRequest(c) {
			t.Errorf("disabled limiter: CanRequest(%s) = false", c)
		}
		if d := l.Delay(c); d != 0 {
			t.Errorf("disabled limiter: Delay(%s) = %v, want 0", c, d)
		}
	}

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, Quote); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled limiter blocked for %v", elapsed)
	}

	if stats := l.Stats(); stats.Enabled {
		t.Error("Stats().Enabled = true for disabled limiter")
	}
}

func TestFirstRequestImmediate(t *testing.T) {
	l := New(true)
	for _, c := range Categories() {
		if !l.CanRequest(c) {
			t.Errorf("fresh limiter: CanRequest(%s) = false", c)
		}
	}
}

func TestMinDelayEnforced(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := New(true)
	l.now = func() time.Time { return now }

	if err := l.Wait(context.Background(), Quote); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if l.CanRequest(Quote) {
		t.Error("CanRequest(Quote) = true immediately after a request")
	}
	if d := l.Delay(Quote); d != time.Second {
		t.Errorf("Delay(Quote) = %v, want %v", d, time.Second)
	}

	now = now.Add(400 * time.Millisecond)
	if d := l.Delay(Quote); d != 600*time.Millisecond {
		t.Errorf("Delay(Quote) after 400ms = %v, want 600ms", d)
	}

	now = now.Add(600 * time.Millisecond)
	if !l.CanRequest(Quote) {
		t.Error("CanRequest(Quote) = false after min delay elapsed")
	}
}

func TestCategoriesIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := New(true)
	l.now = func() time.Time { return now }

	if err := l.Wait(context.Background(), Quote); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if !l.CanRequest(Orders) {
		t.Error("a quote request paced the orders category")
	}
	if !l.CanRequest(Historical) {
		t.Error("a quote request paced the historical category")
	}
}

func TestWaitPacesConsecutiveRequests(t *testing.T) {
	l := New(true)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, Orders); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	// Three requests at 10 req/s need at least two 100ms gaps.
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("three Orders requests completed in %v, want >= 200ms", elapsed)
	}
}

func TestConcurrentWaitersReserveDistinctSlots(t *testing.T) {
	l := New(true)
	ctx := context.Background()

	const n = 4
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Wait(ctx, Orders); err != nil {
				t.Errorf("Wait: %v", err)
			}
		}()
	}
	wg.Wait()

	stats := l.Stats()
	cs := stats.Categories[Orders]
	if cs.RequestCount != n {
		t.Errorf("RequestCount = %d, want %d", cs.RequestCount, n)
	}
	// The last reserved slot must be (n-1) min delays after the first.
	if cs.LastRequest.IsZero() {
		t.Fatal("LastRequest not recorded")
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(true)
	if err := l.Wait(context.Background(), Quote); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx, Quote)
	if err != context.DeadlineExceeded {
		t.Fatalf("Wait under cancelled context = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled Wait blocked for %v", elapsed)
	}
}

func TestStatsSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := New(true)
	l.now = func() time.Time { return now }

	if err := l.Wait(context.Background(), Historical); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	stats := l.Stats()
	if !stats.Enabled {
		t.Error("Stats().Enabled = false")
	}
	if len(stats.Categories) != len(Categories()) {
		t.Fatalf("Stats() has %d categories, want %d", len(stats.Categories), len(Categories()))
	}

	hist := stats.Categories[Historical]
	if hist.RequestCount != 1 {
		t.Errorf("historical RequestCount = %d, want 1", hist.RequestCount)
	}
	if !hist.LastRequest.Equal(now) {
		t.Errorf("historical LastRequest = %v, want %v", hist.LastRequest, now)
	}
	if want := now.Add(Historical.MinDelay()); !hist.NextAvailable.Equal(want) {
		t.Errorf("historical NextAvailable = %v, want %v", hist.NextAvailable, want)
	}

	quote := stats.Categories[Quote]
	if quote.RequestCount != 0 {
		t.Errorf("untouched quote RequestCount = %d, want 0", quote.RequestCount)
	}
	if !quote.LastRequest.IsZero() || !quote.NextAvailable.IsZero() {
		t.Error("untouched quote category has non-zero timestamps")
	}
}
