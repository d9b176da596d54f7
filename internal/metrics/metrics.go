// Package metrics exposes the Prometheus collectors of the document server.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DocumentWrites      *prometheus.CounterVec
	Registrations       prometheus.Counter
	Logins              *prometheus.CounterVec
	Clicks              prometheus.Counter
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bio_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DocumentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bio_document_writes_total",
			Help: "Document writes by source (save, import, seed) and outcome",
		}, []string{"source", "status"}),

		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bio_registrations_total",
			Help: "Accounts created",
		}),

		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bio_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"status"}),

		Clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bio_link_clicks_total",
			Help: "Link clicks recorded",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.DocumentWrites,
		m.Registrations,
		m.Logins,
		m.Clicks,
	)
	return m
}

// Register adds an extra collector, returning the existing one when an
// identical collector is already registered.
func (m *Metrics) Register(c prometheus.Collector) prometheus.Collector {
	if err := m.registry.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Outcome labels an operation result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
