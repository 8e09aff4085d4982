// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bloomviewer"

// Outcome labels for location operations.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the counters, gauges and histograms for the service.
type Metrics struct {
	LocationOps     *prometheus.CounterVec   // labels: op={create,list,get,update,delete}, outcome
	LocationsStored prometheus.Gauge         // current size of the location store
	RequestDuration *prometheus.HistogramVec // labels: method, route, status
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LocationOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_operations_total",
			Help:      "Location store operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		LocationsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locations_stored",
			Help:      "Number of locations currently held by the store.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route pattern and status.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}

	if reg != nil {
		reg.MustRegister(m.LocationOps, m.LocationsStored, m.RequestDuration)
	}
	return m
}

// NewForTesting returns unregistered collectors so tests can build as many as they like.
func NewForTesting() *Metrics {
	return New(nil)
}

// Observe records one location operation.
func (m *Metrics) Observe(op, outcome string) {
	if m == nil {
		return
	}
	m.LocationOps.WithLabelValues(op, outcome).Inc()
}

// SetStored updates the store size gauge.
func (m *Metrics) SetStored(n int) {
	if m == nil {
		return
	}
	m.LocationsStored.Set(float64(n))
}

// Middleware times each request and labels it with the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
