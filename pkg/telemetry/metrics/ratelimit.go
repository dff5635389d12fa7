package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RateLimitMetrics tracks how much the per-category pacing actually costs.
//
// Metrics:
//   - kite_rate_limit_wait_seconds: observed pre-request waits by category
//   - kite_rate_limit_delayed_total: requests that had to wait at all
type RateLimitMetrics struct {
	waits   *prometheus.HistogramVec
	delayed *prometheus.CounterVec
}

func newRateLimitMetrics(namespace string, registry *prometheus.Registry) *RateLimitMetrics {
	rl := &RateLimitMetrics{
		waits: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for a rate limit slot before each request",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"category"},
		),
		delayed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_delayed_total",
				Help:      "Requests that could not fire immediately",
			},
			[]string{"category"},
		),
	}

	registry.MustRegister(rl.waits, rl.delayed)
	return rl
}

// RecordWait records the time one request spent waiting for its slot.
func (rl *RateLimitMetrics) RecordWait(category string, seconds float64) {
	if rl == nil {
		return
	}
	rl.waits.WithLabelValues(category).Observe(seconds)
	if seconds > 0 {
		rl.delayed.WithLabelValues(category).Inc()
	}
}
