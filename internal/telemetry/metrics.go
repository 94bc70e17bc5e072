// Package telemetry exposes Prometheus metrics for matching runs and the
// result cache.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "talentscope"

// Metrics holds the service collectors, registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	rankedCounts prometheus.Histogram
	topRate      prometheus.Gauge
	cacheLookups *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runs: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "runs_total",
			Help:      "Matching runs by final status.",
		}, []string{"status"}),
		runDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a matching run, including data load and persistence.",
			Buckets:   prometheus.DefBuckets,
		}),
		rankedCounts: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "ranked_employees",
			Help:      "Employees ranked per completed run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		topRate: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "last_top_match_rate",
			Help:      "Top final match rate of the most recent completed run.",
		}),
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "result_cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(status string, d time.Duration, ranked int, topRate float64) {
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(d.Seconds())
	if ranked > 0 {
		m.rankedCounts.Observe(float64(ranked))
		m.topRate.Set(topRate)
	}
}

// CacheHit records a result cache hit.
func (m *Metrics) CacheHit() { m.cacheLookups.WithLabelValues("hit").Inc() }

// CacheMiss records a result cache miss.
func (m *Metrics) CacheMiss() { m.cacheLookups.WithLabelValues("miss").Inc() }

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
