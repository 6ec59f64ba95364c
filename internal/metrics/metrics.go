// Package metrics collects and exposes Prometheus metrics for the
// dashboard backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records application metrics.
type Collector struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	queryLatency prometheus.Histogram
	planCreated  prometheus.Counter
	planPartial  prometheus.Counter
	loginFailed  prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachdash_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coachdash_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coachdash_db_query_duration_seconds",
			Help:    "Database query latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		planCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachdash_plan_created_total",
			Help: "Development plans created (including replacements)",
		}),
		planPartial: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachdash_plan_lifecycle_partial_total",
			Help: "Plan lifecycle sequences that stopped partway",
		}),
		loginFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachdash_login_failed_total",
			Help: "Failed sign-in attempts",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.queryLatency,
		c.planCreated,
		c.planPartial,
		c.loginFailed,
	)
	return c
}

// RecordHTTPRequest records one handled request.
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordQuery records one database query duration.
func (c *Collector) RecordQuery(duration time.Duration) {
	c.queryLatency.Observe(duration.Seconds())
}

// RecordPlanCreated increments the plan creation counter.
func (c *Collector) RecordPlanCreated() {
	c.planCreated.Inc()
}

// RecordPlanPartialFailure increments the partial lifecycle counter.
func (c *Collector) RecordPlanPartialFailure() {
	c.planPartial.Inc()
}

// RecordLoginFailed increments the failed login counter.
func (c *Collector) RecordLoginFailed() {
	c.loginFailed.Inc()
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
