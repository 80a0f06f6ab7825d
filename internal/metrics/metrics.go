// Package metrics exposes the Prometheus instrumentation shared by the
// backend gateway and the development stub server. Each Metrics value owns
// its registry so tests can build isolated instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weathervibes"

// durationBuckets covers the 5ms..10s range typical for local analysis
// calls and remote backend round-trips alike.
var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds every instrument the application registers.
type Metrics struct {
	registry *prometheus.Registry

	// Gateway-side: one series per backend endpoint and outcome.
	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec

	// Stub-server side: one series per route and HTTP status.
	StubRequests *prometheus.CounterVec
	StubDuration *prometheus.HistogramVec
}

// New builds a Metrics value backed by a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.GatewayRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Backend requests issued by the gateway, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	m.GatewayDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Round-trip latency of backend requests.",
		Buckets:   durationBuckets,
	}, []string{"endpoint"})

	m.StubRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stub",
		Name:      "requests_total",
		Help:      "HTTP requests served by the development stub, by route and status.",
	}, []string{"route", "status"})

	m.StubDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stub",
		Name:      "request_duration_seconds",
		Help:      "Handler latency of the development stub.",
		Buckets:   durationBuckets,
	}, []string{"route"})

	m.registry.MustRegister(
		m.GatewayRequests,
		m.GatewayDuration,
		m.StubRequests,
		m.StubDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
