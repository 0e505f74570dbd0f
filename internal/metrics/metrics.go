// Package metrics exposes Prometheus instrumentation for the relay.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatrelay"

// Upstream outcomes recorded by RecordUpstream.
const (
	UpstreamSuccess        = "success"
	UpstreamAPIError       = "api_error"
	UpstreamSafetyFiltered = "safety_filtered"
	UpstreamUnreachable    = "unreachable"
)

// Collector owns the Prometheus registry and all metrics for the service.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	rateLimitedTotal prometheus.Counter
	upstreamTotal    *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
}

// NewCollector creates a collector with all metrics registered on a private
// registry, so the /metrics endpoint only exposes what this service records.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Inbound HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Inbound request latency.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"path"}),
		rateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Gemini API calls by outcome.",
		}, []string{"outcome"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_latency_seconds",
			Help:      "Gemini API call latency.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.rateLimitedTotal,
		c.upstreamTotal,
		c.upstreamLatency,
	)

	return c
}

// Handler returns the Prometheus exposition handler for this collector.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// RecordRequest records a completed inbound request.
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordRateLimited records a 429 rejection.
func (c *Collector) RecordRateLimited() {
	c.rateLimitedTotal.Inc()
}

// RecordUpstream records a Gemini API call.
func (c *Collector) RecordUpstream(outcome string, duration time.Duration) {
	c.upstreamTotal.WithLabelValues(outcome).Inc()
	c.upstreamLatency.Observe(duration.Seconds())
}
