package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "kite"

// Collector owns the Prometheus registry and every metric group the client
// records into. A nil *Collector is valid and records nothing, so callers
// that do not care about metrics pass nil and forget about it.
type Collector struct {
	registry *prometheus.Registry

	request   *RequestMetrics
	rateLimit *RateLimitMetrics
	cache     *CacheMetrics
}

// NewCollector creates a collector and registers all metric groups with the
// given registry. If registry is nil a fresh one is created.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Collector{
		registry:  registry,
		request:   newRequestMetrics(namespace, registry),
		rateLimit: newRateLimitMetrics(namespace, registry),
		cache:     newCacheMetrics(namespace, registry),
	}
}

// Registry returns the underlying registry, nil on a nil collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Request returns the request metric group. Safe on a nil collector.
func (c *Collector) Request() *RequestMetrics {
	if c == nil {
		return nil
	}
	return c.request
}

// RateLimit returns the rate limit metric group. Safe on a nil collector.
func (c *Collector) RateLimit() *RateLimitMetrics {
	if c == nil {
		return nil
	}
	return c.rateLimit
}

// Cache returns the cache metric group. Safe on a nil collector.
func (c *Collector) Cache() *CacheMetrics {
	if c == nil {
		return nil
	}
	return c.cache
}

// Handler returns an http.Handler exposing the registry in the Prometheus
// text format, for embedding into an application's mux.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
