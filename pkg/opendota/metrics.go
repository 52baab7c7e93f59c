package opendota

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks exports client events as Prometheus metrics.
//
// Metrics:
//   - opendota_requests_total{method, status}
//   - opendota_requests_in_flight
//   - opendota_request_duration_seconds{method}
//   - opendota_request_errors_total{method}
//   - opendota_cache_events_total{family, event} with event hit|miss|write
//   - opendota_rate_limit_wait_seconds_total
//
// Labels stay low-cardinality: endpoint paths carry resource ids, so cache
// metrics are labeled by endpoint family instead.
//
// A nil *PrometheusHooks is safe to use; all methods become no-ops.
type PrometheusHooks struct {
	requests *prometheus.CounterVec
	inFlight prometheus.Gauge
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	cache    *prometheus.CounterVec
	rateWait prometheus.Counter
}

// NewPrometheusHooks registers the client metrics with reg and returns the
// hook set. Pass prometheus.DefaultRegisterer to use the process-wide
// registry.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	factory := promauto.With(reg)

	return &PrometheusHooks{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opendota_requests_total",
			Help: "Total API requests by method and status code.",
		}, []string{"method", "status"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "opendota_requests_in_flight",
			Help: "API requests currently awaiting a response.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "opendota_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opendota_request_errors_total",
			Help: "API requests that produced no response.",
		}, []string{"method"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opendota_cache_events_total",
			Help: "Response cache activity by endpoint family.",
		}, []string{"family", "event"}),
		rateWait: factory.NewCounter(prometheus.CounterOpts{
			Name: "opendota_rate_limit_wait_seconds_total",
			Help: "Cumulative time spent waiting on the rate-limit gate.",
		}),
	}
}

// OnRequest tracks the in-flight gauge.
func (h *PrometheusHooks) OnRequest(_ context.Context, method, endpoint string) {
	if h == nil {
		return
	}
	h.inFlight.Inc()
}

// OnResponse records the request counter and latency histogram.
func (h *PrometheusHooks) OnResponse(_ context.Context, method, endpoint string, statusCode int, duration time.Duration) {
	if h == nil {
		return
	}
	h.inFlight.Dec()
	h.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	h.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// OnError records a transport-level failure.
func (h *PrometheusHooks) OnError(_ context.Context, method, endpoint string, err error) {
	if h == nil {
		return
	}
	h.inFlight.Dec()
	h.errors.WithLabelValues(method).Inc()
}

// OnCacheHit records a cache hit for the family.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, family string) {
	if h == nil {
		return
	}
	h.cache.WithLabelValues(family, "hit").Inc()
}

// OnCacheMiss records a cache miss for the family.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, family string) {
	if h == nil {
		return
	}
	h.cache.WithLabelValues(family, "miss").Inc()
}

// OnCacheWrite records a cache write for the family.
func (h *PrometheusHooks) OnCacheWrite(_ context.Context, family string, size int) {
	if h == nil {
		return
	}
	h.cache.WithLabelValues(family, "write").Inc()
}

// OnRateLimitWait accumulates rate-limit wait time.
func (h *PrometheusHooks) OnRateLimitWait(_ context.Context, d time.Duration) {
	if h == nil {
		return
	}
	h.rateWait.Add(d.Seconds())
}

// Ensure PrometheusHooks implements Hooks.
var _ Hooks = (*PrometheusHooks)(nil)
