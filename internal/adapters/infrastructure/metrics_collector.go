package infrastructure

import (
	"context"

	"zipforecast.app/internal/ports"
)

// MetricsCollectorAdapter aggregates provider chain info and cache statistics for the JSON metrics endpoint
type MetricsCollectorAdapter struct {
	providerInfo ports.ProviderInfoSource
	cacheMetrics ports.CacheMetrics
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	ProviderInfo ports.ProviderInfoSource
	CacheMetrics ports.CacheMetrics
}

func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		providerInfo: config.ProviderInfo,
		cacheMetrics: config.CacheMetrics,
	}
}

// GetMetrics returns aggregated metrics from all monitored services
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := make(map[string]interface{})

	if m.providerInfo != nil {
		metrics["providers"] = m.providerInfo.GetProviderInfo()
	}

	if m.cacheMetrics != nil {
		stats := m.cacheMetrics.GetStats()
		metrics["cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"updated":   stats.LastUpdated,
		}
	}

	return metrics, nil
}
