// Package metrics instruments backend calls made through the API facade.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds the portal's metrics.
type Registry struct {
	APIRequests *prometheus.CounterVec
	APIErrors   *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
	ViewLoads   *prometheus.CounterVec

	gatherer prometheus.Gatherer
	calls    atomic.Int64
	failures atomic.Int64
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = New(prometheus.NewRegistry())
	})
	return registry
}

// New creates a registry whose collectors are registered with reg.
func New(reg *prometheus.Registry) *Registry {
	factory := promauto.With(reg)
	r := &Registry{gatherer: reg}

	r.APIRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "langportal_api_requests_total",
		Help: "Total backend calls made through the API facade",
	}, []string{"operation", "mode", "outcome"})

	r.APIErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "langportal_api_errors_total",
		Help: "Total failed backend calls",
	}, []string{"operation"})

	r.APILatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "langportal_api_request_duration_seconds",
		Help:    "Backend call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "mode"})

	r.ViewLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "langportal_view_loads_total",
		Help: "Total view loads by route",
	}, []string{"view"})

	return r
}

// RecordAPICall records one facade call.
func (r *Registry) RecordAPICall(operation, mode string, duration time.Duration, err error) {
	outcome := "ok"
	r.calls.Add(1)
	if err != nil {
		outcome = "error"
		r.failures.Add(1)
		r.APIErrors.WithLabelValues(operation).Inc()
	}
	r.APIRequests.WithLabelValues(operation, mode, outcome).Inc()
	r.APILatency.WithLabelValues(operation, mode).Observe(duration.Seconds())
}

// RecordViewLoad records a view being (re)loaded.
func (r *Registry) RecordViewLoad(view string) {
	r.ViewLoads.WithLabelValues(view).Inc()
}

// Totals returns the number of calls and failures recorded so far.
func (r *Registry) Totals() (calls, failures int64) {
	return r.calls.Load(), r.failures.Load()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
