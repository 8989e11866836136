package infrastructure

import (
	"context"

	"zipforecast.app/internal/ports"
)

// CacheHealthChecker pings the configured cache backend
type CacheHealthChecker struct {
	pinger    ports.Pinger
	cacheType string
}

func NewCacheHealthChecker(pinger ports.Pinger, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{pinger: pinger, cacheType: cacheType}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.HealthStatusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.pinger == nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "cache backend is not available"
		return status
	}

	if err := c.pinger.Ping(ctx); err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = err.Error()
	}

	return status
}

// ProviderChainHealthChecker reports whether any forecast provider is configured.
// It never calls upstream.
type ProviderChainHealthChecker struct {
	info ports.ProviderInfoSource
}

func NewProviderChainHealthChecker(info ports.ProviderInfoSource) *ProviderChainHealthChecker {
	return &ProviderChainHealthChecker{info: info}
}

func (p *ProviderChainHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "providers",
		Status:    ports.HealthStatusHealthy,
	}

	if p.info == nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "provider chain is not available"
		return status
	}

	info := p.info.GetProviderInfo()
	status.Details = map[string]interface{}{
		"provider_order": info["provider_order"],
	}

	if total, _ := info["total_providers"].(int); total == 0 {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "no forecast providers configured"
	}

	return status
}
