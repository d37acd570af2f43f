package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	AnalysisTotal *prometheus.CounterVec

	NetworkNodes prometheus.Gauge
	NetworkEdges prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{registry: registry}

	m.RequestsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_route_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	m.RequestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_route_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"method", "route"},
	)

	m.AnalysisTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_route_analysis_total",
			Help: "Route analysis pipeline runs by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.NetworkNodes = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "traffic_route_network_nodes",
			Help: "Node count of the currently loaded road network",
		},
	)

	m.NetworkEdges = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "traffic_route_network_edges",
			Help: "Edge count of the currently loaded road network",
		},
	)

	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
