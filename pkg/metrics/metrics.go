package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service counters on a private registry, so independent
// instances (e.g. per test) never fight over the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	LinksCreated    prometheus.Counter
	RedirectsServed prometheus.Counter
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		LinksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinylink_links_created_total",
			Help: "Number of short links created.",
		}),
		RedirectsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinylink_redirects_total",
			Help: "Number of successful redirects served.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tinylink_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tinylink_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(m.LinksCreated, m.RedirectsServed, m.RequestsTotal, m.RequestDuration)
	return m
}

// Handler returns the text exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
