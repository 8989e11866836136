package infrastructure

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_provider_requests_total",
			Help: "Total number of upstream forecast provider calls by outcome status",
		},
		[]string{"provider", "status"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forecast_provider_request_duration_seconds",
			Help:    "Upstream forecast provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_cache_hits_total",
			Help: "Total number of forecast cache hits",
		},
		[]string{"cache_type"},
	)

	cacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_cache_misses_total",
			Help: "Total number of forecast cache misses",
		},
		[]string{"cache_type"},
	)

	cacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forecast_cache_operation_duration_seconds",
			Help:    "Forecast cache operation duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"cache_type", "operation"},
	)
)

// PrometheusMetrics records provider and cache events into the default registry
type PrometheusMetrics struct{}

func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

func (m *PrometheusMetrics) ObserveProviderCall(provider string, statusCode int, duration time.Duration) {
	providerRequestsTotal.WithLabelValues(provider, strconv.Itoa(statusCode)).Inc()
	providerRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordCacheHit(cacheType string) {
	cacheHitsTotal.WithLabelValues(cacheType).Inc()
}

func (m *PrometheusMetrics) RecordCacheMiss(cacheType string) {
	cacheMissesTotal.WithLabelValues(cacheType).Inc()
}

func (m *PrometheusMetrics) RecordCacheLatency(cacheType, operation string, duration time.Duration) {
	cacheOperationDuration.WithLabelValues(cacheType, operation).Observe(duration.Seconds())
}
