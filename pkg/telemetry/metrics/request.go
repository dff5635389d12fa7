package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks the request pipeline.
//
// Metrics:
//   - kite_requests_total: attempts by operation, category and outcome
//   - kite_request_retries_total: re-attempts by operation
//   - kite_request_duration_seconds: wall time of a full dispatch
//   - kite_request_errors_total: classified failures by exception type
type RequestMetrics struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

func newRequestMetrics(namespace string, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total request attempts by operation, rate limit category and outcome",
			},
			[]string{"operation", "category", "outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_retries_total",
				Help:      "Total re-attempts after a retryable failure",
			},
			[]string{"operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Wall time of a full dispatch including rate limit waits and retries",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_errors_total",
				Help:      "Total failed dispatches by exception type",
			},
			[]string{"error_type"},
		),
	}

	registry.MustRegister(rm.requests, rm.retries, rm.duration, rm.errors)
	return rm
}

// RecordAttempt records one wire attempt. outcome is "success" or "error".
func (rm *RequestMetrics) RecordAttempt(operation, category, outcome string) {
	if rm == nil {
		return
	}
	rm.requests.WithLabelValues(operation, category, outcome).Inc()
}

// RecordRetry records a re-attempt of an operation.
func (rm *RequestMetrics) RecordRetry(operation string) {
	if rm == nil {
		return
	}
	rm.retries.WithLabelValues(operation).Inc()
}

// RecordDuration records the wall time of a completed dispatch.
func (rm *RequestMetrics) RecordDuration(operation string, seconds float64) {
	if rm == nil {
		return
	}
	rm.duration.WithLabelValues(operation).Observe(seconds)
}

// RecordError records a dispatch that ultimately failed.
func (rm *RequestMetrics) RecordError(errorType string) {
	if rm == nil {
		return
	}
	rm.errors.WithLabelValues(errorType).Inc()
}
