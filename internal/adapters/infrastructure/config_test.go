package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zipforecast.app/internal/config"
)

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 9090},
		Weather: config.WeatherConfig{
			CacheTTLMinutes: 30,
		},
		Cache: config.CacheConfig{
			Type: config.CacheTypeRedis,
			Redis: config.RedisConfig{
				Addr:         "redis:6379",
				Password:     "secret",
				DB:           2,
				DialTimeout:  5,
				ReadTimeout:  3,
				WriteTimeout: 4,
			},
		},
	}

	adapter := NewConfigProviderAdapter(cfg)

	assert.Equal(t, 9090, adapter.GetServerConfig().Port)
	assert.Equal(t, 30*time.Minute, adapter.GetForecastConfig().CacheTTL)

	cacheConfig := adapter.GetCacheConfig()
	assert.Equal(t, "redis", cacheConfig.Type)
	assert.Equal(t, "redis:6379", cacheConfig.Redis.Addr)
	assert.Equal(t, "secret", cacheConfig.Redis.Password)
	assert.Equal(t, 2, cacheConfig.Redis.DB)
	assert.Equal(t, 5, cacheConfig.Redis.DialTimeout)
	assert.Equal(t, 3, cacheConfig.Redis.ReadTimeout)
	assert.Equal(t, 4, cacheConfig.Redis.WriteTimeout)
}
