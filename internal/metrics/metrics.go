// Package metrics exposes Prometheus collectors for the feed client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cosmicwatch"

// FeedMetrics records feed client cache, fallback and upstream latency
// events. It satisfies neo.Recorder.
type FeedMetrics struct {
	registry  *prometheus.Registry
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	upstream  *prometheus.HistogramVec
}

// New registers the feed collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *FeedMetrics {
	m := &FeedMetrics{
		registry: prometheus.NewRegistry(),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "cache_hits_total",
			Help:      "Feed client lookups served from cache.",
		}, []string{"key_kind"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "cache_misses_total",
			Help:      "Feed client lookups that went to a source.",
		}, []string{"key_kind"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fallbacks_total",
			Help:      "Primary source failures masked with fallback data.",
		}, []string{"op"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "upstream_seconds",
			Help:      "Latency of primary source calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		m.hits, m.misses, m.fallbacks, m.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *FeedMetrics) CacheHit(kind string)  { m.hits.WithLabelValues(kind).Inc() }
func (m *FeedMetrics) CacheMiss(kind string) { m.misses.WithLabelValues(kind).Inc() }
func (m *FeedMetrics) Fallback(op string)    { m.fallbacks.WithLabelValues(op).Inc() }

func (m *FeedMetrics) ObserveUpstream(op string, d time.Duration) {
	m.upstream.WithLabelValues(op).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *FeedMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
