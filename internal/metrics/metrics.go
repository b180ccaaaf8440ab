// Package metrics exposes Prometheus collectors for the lookup service.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/i2p/internal/domain"
)

const namespace = "i2p"

// Metrics implements ports.LookupRecorder and owns its own registry so tests
// and multiple instances do not collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	lookups      *prometheus.CounterVec
	entries      *prometheus.GaugeVec
	loadDuration prometheus.Histogram
	loadFailures prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Packet lookups by direction and outcome.",
		}, []string{"direction", "result"}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_entries",
			Help:      "Registered packets per direction.",
		}, []string{"direction"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_load_duration_seconds",
			Help:      "Time taken to fetch and load the source document.",
			Buckets:   prometheus.DefBuckets,
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_load_failures_total",
			Help:      "Failed source document loads.",
		}),
	}

	m.registry.MustRegister(
		m.lookups,
		m.entries,
		m.loadDuration,
		m.loadFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLookup implements ports.LookupRecorder.
func (m *Metrics) ObserveLookup(dir domain.Direction, result string) {
	m.lookups.WithLabelValues(label(dir), result).Inc()
}

// SetEntries records the registry size for dir.
func (m *Metrics) SetEntries(dir domain.Direction, n int) {
	m.entries.WithLabelValues(label(dir)).Set(float64(n))
}

// ObserveLoad records one source load attempt.
func (m *Metrics) ObserveLoad(took time.Duration, err error) {
	m.loadDuration.Observe(took.Seconds())
	if err != nil {
		m.loadFailures.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func label(dir domain.Direction) string {
	if !dir.Valid() {
		return "unknown"
	}
	return strings.ToLower(dir.String())
}
