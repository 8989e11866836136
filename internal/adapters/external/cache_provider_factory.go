package external

import (
	"fmt"
	"time"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

type CacheProviderFactory struct {
	sweepInterval time.Duration
	logger        ports.Logger
}

func NewCacheProviderFactory(sweepInterval time.Duration, logger ports.Logger) *CacheProviderFactory {
	return &CacheProviderFactory{sweepInterval: sweepInterval, logger: logger}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg ports.CacheConfig) (ports.CacheProvider, error) {
	switch cfg.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheProvider(MemoryCacheOptions{
			SweepInterval: f.sweepInterval,
			Logger:        f.logger,
		}), nil
	case CacheTypeRedis:
		provider, err := NewRedisCacheProviderAdapter(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
