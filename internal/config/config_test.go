package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zipforecast.app/pkg/errors"
)

var configEnvVars = []string{
	"SERVER_PORT", "LOG_LEVEL",
	"WEATHER_API_KEY", "WEATHER_API_BASE_URL", "OPENWEATHERMAP_API_KEY", "OPENWEATHERMAP_API_BASE_URL",
	"WEATHER_PROVIDER_ORDER", "WEATHER_HTTP_TIMEOUT_SECONDS", "WEATHER_FORECAST_DAYS", "WEATHER_CACHE_TTL_MINUTES",
	"WEATHER_ENABLE_LOGGING", "WEATHER_LOG_FILE_PATH",
	"WEATHER_CIRCUIT_BREAKER_ENABLED", "WEATHER_CIRCUIT_BREAKER_FAILURES", "WEATHER_CIRCUIT_BREAKER_TIMEOUT_SECONDS",
	"CACHE_TYPE", "CACHE_SWEEP_INTERVAL_SECONDS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_WRITE_TIMEOUT",
	"WARMUP_ZIPS", "WARMUP_INTERVAL_MINUTES",
}

// clearConfigEnv unsets every variable the loader reads and restores them after the test
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WEATHER_API_KEY", "primary-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "primary-key", cfg.Weather.APIKey)
	assert.Equal(t, "http://api.weatherapi.com/v1", cfg.Weather.BaseURL)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.OpenWeatherMapBaseURL)
	assert.Equal(t, []string{"weatherapi", "openweathermap"}, cfg.Weather.ProviderOrder)
	assert.Equal(t, 10, cfg.Weather.HTTPTimeoutSeconds)
	assert.Equal(t, 5, cfg.Weather.ForecastDays)
	assert.Equal(t, 30, cfg.Weather.CacheTTLMinutes)
	assert.True(t, cfg.Weather.EnableLogging)
	assert.False(t, cfg.Weather.CircuitBreakerEnabled)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, 300, cfg.Cache.SweepIntervalSeconds)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Empty(t, cfg.Warmup.Zips)
	assert.Equal(t, 25, cfg.Warmup.IntervalMinutes)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENWEATHERMAP_API_KEY", "secondary-key")
	t.Setenv("WEATHER_PROVIDER_ORDER", " OpenWeatherMap , weatherapi")
	t.Setenv("WEATHER_CACHE_TTL_MINUTES", "15")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("WARMUP_ZIPS", "90210, 10001")
	t.Setenv("WARMUP_INTERVAL_MINUTES", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"openweathermap", "weatherapi"}, cfg.Weather.ProviderOrder)
	assert.Equal(t, 15, cfg.Weather.CacheTTLMinutes)
	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, []string{"90210", "10001"}, cfg.Warmup.Zips)
	assert.Equal(t, 10, cfg.Warmup.IntervalMinutes)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "NoProviderKeys", env: map[string]string{}},
		{name: "UnknownProvider", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_PROVIDER_ORDER": "weatherapi,accuweather"}},
		{name: "BadBaseURL", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_API_BASE_URL": "ftp://example.com"}},
		{name: "TTLTooLarge", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_CACHE_TTL_MINUTES": "1441"}},
		{name: "TTLZero", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_CACHE_TTL_MINUTES": "0"}},
		{name: "TimeoutTooLarge", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_HTTP_TIMEOUT_SECONDS": "121"}},
		{name: "TooManyDays", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_FORECAST_DAYS": "15"}},
		{name: "UnknownCacheType", env: map[string]string{"WEATHER_API_KEY": "k", "CACHE_TYPE": "memcached"}},
		{name: "RedisDBOutOfRange", env: map[string]string{"WEATHER_API_KEY": "k", "CACHE_TYPE": "redis", "REDIS_DB": "16"}},
		{name: "InvalidWarmupZip", env: map[string]string{"WEATHER_API_KEY": "k", "WARMUP_ZIPS": "90210,9021"}},
		{name: "BreakerWithoutFailures", env: map[string]string{"WEATHER_API_KEY": "k", "WEATHER_CIRCUIT_BREAKER_ENABLED": "true", "WEATHER_CIRCUIT_BREAKER_FAILURES": "0"}},
		{name: "BadPort", env: map[string]string{"WEATHER_API_KEY": "k", "SERVER_PORT": "70000"}},
		{name: "Unparseable", env: map[string]string{"WEATHER_API_KEY": "k", "SERVER_PORT": "eighty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			assert.Nil(t, cfg)
			assert.True(t, errors.IsConfigurationError(err), "expected configuration error, got %v", err)
		})
	}
}

func TestCacheTypeFromString(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, CacheTypeFromString("memory"))
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString(" Redis "))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("disk"))
	assert.Equal(t, "unknown", CacheTypeUnknown.String())
}
