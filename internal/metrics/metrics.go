// Package metrics exposes Prometheus instrumentation for the HTTP server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// Metrics owns a private registry with the HTTP and auth collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	authOutcomes        *prometheus.CounterVec
	tasksEnqueued       *prometheus.CounterVec
}

// New creates and registers all collectors, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		authOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_bearer_resolutions_total",
				Help: "Bearer token resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		tasksEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "background_tasks_enqueued_total",
				Help: "Background tasks enqueued by name and result.",
			},
			[]string{"task", "result"},
		),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.authOutcomes,
		m.tasksEnqueued,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count, latency and in-flight gauge. Routes are
// labelled by their template so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.httpInFlight.Inc()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		m.httpRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
		m.httpInFlight.Dec()
	}
}

// ObserveAuth counts a bearer resolution outcome.
func (m *Metrics) ObserveAuth(outcome string) {
	m.authOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveTaskEnqueued counts a background task submission.
func (m *Metrics) ObserveTaskEnqueued(task string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.tasksEnqueued.WithLabelValues(task, result).Inc()
}
