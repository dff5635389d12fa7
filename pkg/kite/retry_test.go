package kite

import (
	"context"
	"testing"
	"time"
)

func TestBackoffSchedule(t *testing.T) {
	p := DefaultRetryPolicy()

	want := []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
		5 * time.Second, // capped
		5 * time.Second,
	}
	for attempt, wantDelay := range want {
		if got := p.backoff(attempt); got != wantDelay {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, wantDelay)
		}
	}
}

func TestBackoffConstantWhenNotExponential(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: 150 * time.Millisecond, MaxDelay: time.Second}
	for attempt := 0; attempt < 5; attempt++ {
		if got := p.backoff(attempt); got != 150*time.Millisecond {
			t.Errorf("backoff(%d) = %v, want constant 150ms", attempt, got)
		}
	}
}

func TestBackoffNeverExceedsMaxDelay(t *testing.T) {
	p := RetryPolicy{BaseDelay: time.Second, MaxDelay: 2 * time.Second, ExponentialBackoff: true}
	// Large attempt numbers overflow the doubling; the cap must hold.
	for _, attempt := range []int{10, 32, 63, 100} {
		if got := p.backoff(attempt); got != 2*time.Second {
			t.Errorf("backoff(%d) = %v, want capped 2s", attempt, got)
		}
	}
}

func TestPolicyAllows(t *testing.T) {
	read := OpHoldings.Endpoint()
	write := OpPlaceOrder.Endpoint()

	p := DefaultRetryPolicy()
	if !p.allows(read) {
		t.Error("default policy should retry reads")
	}
	if p.allows(write) {
		t.Error("default policy must not retry writes")
	}

	p.RetryWrites = true
	if !p.allows(write) {
		t.Error("RetryWrites did not enable write retries")
	}

	p = RetryPolicy{MaxRetries: 0, RetryWrites: true}
	if p.allows(read) || p.allows(write) {
		t.Error("zero MaxRetries should disable retries entirely")
	}
}

func TestApplyDefaults(t *testing.T) {
	p := RetryPolicy{MaxRetries: 2}.applyDefaults()
	if p.BaseDelay != DefaultBaseDelay {
		t.Errorf("BaseDelay = %v", p.BaseDelay)
	}
	if p.MaxDelay != DefaultMaxDelay {
		t.Errorf("MaxDelay = %v", p.MaxDelay)
	}
	if p.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, defaults must not touch it", p.MaxRetries)
	}
}

func TestSleepContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := sleepContext(ctx, time.Minute); err != context.Canceled {
		t.Fatalf("sleepContext = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("cancelled sleep took %v", elapsed)
	}
}
