package external

import (
	"context"
	"sync"
	"time"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

// MemoryCacheProvider is a process-local TTL store. Expired entries are treated as absent on
// read and removed by Sweep.
type MemoryCacheProvider struct {
	data  map[string]memoryCacheItem
	mutex sync.RWMutex
	now   func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures a MemoryCacheProvider
type MemoryCacheOptions struct {
	// SweepInterval starts a background sweeper when positive
	SweepInterval time.Duration
	// Clock defaults to time.Now
	Clock  func() time.Time
	Logger ports.Logger
}

func NewMemoryCacheProvider(opts MemoryCacheOptions) *MemoryCacheProvider {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	c := &MemoryCacheProvider{
		data: make(map[string]memoryCacheItem),
		now:  clock,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	if opts.SweepInterval > 0 {
		go c.sweepLoop(opts.SweepInterval, opts.Logger)
	} else {
		close(c.done)
	}

	return c
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists || !c.live(item) {
		return nil, errors.NewNotFoundError("cache miss")
	}

	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = memoryCacheItem{
		data:      value,
		expiresAt: c.now().Add(ttl),
	}

	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	return exists && c.live(item), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// Ping always succeeds for the in-process store
func (c *MemoryCacheProvider) Ping(ctx context.Context) error {
	return nil
}

// Len counts stored entries including expired ones not yet swept
func (c *MemoryCacheProvider) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Sweep drops expired entries and returns how many were removed
func (c *MemoryCacheProvider) Sweep() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, item := range c.data {
		if !c.live(item) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Close stops the background sweeper and waits for it to exit
func (c *MemoryCacheProvider) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
	return nil
}

func (c *MemoryCacheProvider) live(item memoryCacheItem) bool {
	return c.now().Before(item.expiresAt)
}

func (c *MemoryCacheProvider) sweepLoop(interval time.Duration, logger ports.Logger) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 && logger != nil {
				logger.Debug("Swept expired cache entries", ports.F("removed", removed))
			}
		}
	}
}
