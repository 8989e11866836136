package infrastructure

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"zipforecast.app/internal/ports"
)

var (
	_ ports.ProviderMetricsRecorder = (*PrometheusMetrics)(nil)
	_ ports.CacheMetricsRecorder    = (*PrometheusMetrics)(nil)
)

func TestPrometheusMetrics_ObserveProviderCall(t *testing.T) {
	metrics := NewPrometheusMetrics()

	before := testutil.ToFloat64(providerRequestsTotal.WithLabelValues("metrics-test-provider", "408"))
	metrics.ObserveProviderCall("metrics-test-provider", 408, 150*time.Millisecond)
	metrics.ObserveProviderCall("metrics-test-provider", 408, 90*time.Millisecond)
	metrics.ObserveProviderCall("metrics-test-provider", 200, 20*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(providerRequestsTotal.WithLabelValues("metrics-test-provider", "408")))
	assert.Equal(t, float64(1), testutil.ToFloat64(providerRequestsTotal.WithLabelValues("metrics-test-provider", "200")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(providerRequestDuration), 1)
}

func TestPrometheusMetrics_CacheCounters(t *testing.T) {
	metrics := NewPrometheusMetrics()

	metrics.RecordCacheHit("metrics-test-cache")
	metrics.RecordCacheHit("metrics-test-cache")
	metrics.RecordCacheMiss("metrics-test-cache")
	metrics.RecordCacheLatency("metrics-test-cache", "get", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(cacheHitsTotal.WithLabelValues("metrics-test-cache")))
	assert.Equal(t, float64(1), testutil.ToFloat64(cacheMissesTotal.WithLabelValues("metrics-test-cache")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(cacheOperationDuration), 1)
}
