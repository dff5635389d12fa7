// Package metrics provides Prometheus instrumentation for the API client:
// request attempts and durations, retry counts, rate limit waits, cache
// effectiveness and classified error totals.
//
// All record methods are safe on nil receivers, so instrumentation can be
// switched off by simply not constructing a Collector.
package metrics
