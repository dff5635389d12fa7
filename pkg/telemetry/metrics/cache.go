package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks response cache effectiveness.
//
// Metrics:
//   - kite_cache_hits_total: cache hits by operation
//   - kite_cache_misses_total: cache misses by operation
//   - kite_cache_entries: entries currently stored
type CacheMetrics struct {
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
	entries prometheus.Gauge
}

func newCacheMetrics(namespace string, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Responses served from the in-memory cache",
			},
			[]string{"operation"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Cacheable requests that went to the wire",
			},
			[]string{"operation"},
		),
		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_entries",
				Help:      "Entries currently stored in the response cache",
			},
		),
	}

	registry.MustRegister(cm.hits, cm.misses, cm.entries)
	return cm
}

// RecordHit records a response served from cache.
func (cm *CacheMetrics) RecordHit(operation string) {
	if cm == nil {
		return
	}
	cm.hits.WithLabelValues(operation).Inc()
}

// RecordMiss records a cacheable request that had to go to the wire.
func (cm *CacheMetrics) RecordMiss(operation string) {
	if cm == nil {
		return
	}
	cm.misses.WithLabelValues(operation).Inc()
}

// SetEntries updates the stored-entry gauge.
func (cm *CacheMetrics) SetEntries(n int) {
	if cm == nil {
		return
	}
	cm.entries.Set(float64(n))
}
