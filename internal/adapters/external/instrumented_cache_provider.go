package external

import (
	"context"
	"sync"
	"time"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

// InstrumentedCacheProvider counts hits and misses for a backend and forwards
// events to an optional recorder
type InstrumentedCacheProvider struct {
	ports.CacheProvider
	cacheType string
	recorder  ports.CacheMetricsRecorder

	mutex  sync.RWMutex
	hits   int64
	misses int64
}

func NewInstrumentedCacheProvider(provider ports.CacheProvider, cacheType string, recorder ports.CacheMetricsRecorder) *InstrumentedCacheProvider {
	return &InstrumentedCacheProvider{
		CacheProvider: provider,
		cacheType:     cacheType,
		recorder:      recorder,
	}
}

func (c *InstrumentedCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := c.CacheProvider.Get(ctx, key)
	c.observe("get", time.Since(start))

	switch {
	case err == nil:
		c.recordHit()
	case errors.IsNotFoundError(err):
		c.recordMiss()
	}

	return value, err
}

func (c *InstrumentedCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := c.CacheProvider.Set(ctx, key, value, ttl)
	c.observe("set", time.Since(start))
	return err
}

// Ping delegates to the backend when it supports connectivity checks
func (c *InstrumentedCacheProvider) Ping(ctx context.Context) error {
	if pinger, ok := c.CacheProvider.(ports.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Close delegates to the backend when it holds resources
func (c *InstrumentedCacheProvider) Close() error {
	if closer, ok := c.CacheProvider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (c *InstrumentedCacheProvider) CacheType() string {
	return c.cacheType
}

func (c *InstrumentedCacheProvider) GetStats() ports.CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	total := c.hits + c.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(c.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        c.hits,
		Misses:      c.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}

func (c *InstrumentedCacheProvider) recordHit() {
	c.mutex.Lock()
	c.hits++
	c.mutex.Unlock()

	if c.recorder != nil {
		c.recorder.RecordCacheHit(c.cacheType)
	}
}

func (c *InstrumentedCacheProvider) recordMiss() {
	c.mutex.Lock()
	c.misses++
	c.mutex.Unlock()

	if c.recorder != nil {
		c.recorder.RecordCacheMiss(c.cacheType)
	}
}

func (c *InstrumentedCacheProvider) observe(operation string, duration time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordCacheLatency(c.cacheType, operation, duration)
	}
}
