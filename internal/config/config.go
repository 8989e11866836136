package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"zipforecast.app/pkg/errors"
	"zipforecast.app/pkg/validation"
)

const (
	maxRedisDB              = 15
	maxCacheTTLMinutes      = 1440
	maxHTTPTimeoutSeconds   = 120
	maxForecastDays         = 14
	maxWarmupIntervalMinute = 1440
	maxPortNumber           = 65535
)

var knownProviders = map[string]bool{
	"weatherapi":     true,
	"openweathermap": true,
}

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Warmup  WarmupConfig  `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type WeatherConfig struct {
	APIKey                string   `envconfig:"WEATHER_API_KEY"`
	BaseURL               string   `envconfig:"WEATHER_API_BASE_URL" default:"http://api.weatherapi.com/v1"`
	OpenWeatherMapKey     string   `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string   `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	ProviderOrder         []string `envconfig:"WEATHER_PROVIDER_ORDER" default:"weatherapi,openweathermap"`
	HTTPTimeoutSeconds    int      `envconfig:"WEATHER_HTTP_TIMEOUT_SECONDS" default:"10"`
	ForecastDays          int      `envconfig:"WEATHER_FORECAST_DAYS" default:"5"`
	CacheTTLMinutes       int      `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"30"`
	EnableLogging         bool     `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string   `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_providers.log"`

	CircuitBreakerEnabled        bool `envconfig:"WEATHER_CIRCUIT_BREAKER_ENABLED" default:"false"`
	CircuitBreakerFailures       int  `envconfig:"WEATHER_CIRCUIT_BREAKER_FAILURES" default:"5"`
	CircuitBreakerTimeoutSeconds int  `envconfig:"WEATHER_CIRCUIT_BREAKER_TIMEOUT_SECONDS" default:"60"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type                 CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	SweepIntervalSeconds int         `envconfig:"CACHE_SWEEP_INTERVAL_SECONDS" default:"300"`
	Redis                RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// WarmupConfig lists zips refreshed in the background. An empty list disables the warmer.
type WarmupConfig struct {
	Zips            []string `envconfig:"WARMUP_ZIPS"`
	IntervalMinutes int      `envconfig:"WARMUP_INTERVAL_MINUTES" default:"25"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// normalize trims list entries so "weatherapi, openweathermap" is accepted
func (c *Config) normalize() {
	c.Weather.ProviderOrder = trimList(c.Weather.ProviderOrder, true)
	c.Warmup.Zips = trimList(c.Warmup.Zips, false)
}

func trimList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Warmup.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" && w.OpenWeatherMapKey == "" {
		return errors.NewConfigurationError("at least one weather provider API key must be configured", nil)
	}

	if w.APIKey != "" {
		if err := validateBaseURL("WEATHER_API_BASE_URL", w.BaseURL); err != nil {
			return err
		}
	}
	if w.OpenWeatherMapKey != "" {
		if err := validateBaseURL("OPENWEATHERMAP_API_BASE_URL", w.OpenWeatherMapBaseURL); err != nil {
			return err
		}
	}

	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.HTTPTimeoutSeconds < 1 || w.HTTPTimeoutSeconds > maxHTTPTimeoutSeconds {
		return errors.NewConfigurationError("WEATHER_HTTP_TIMEOUT_SECONDS must be between 1 and 120 seconds", nil)
	}
	if w.ForecastDays < 1 || w.ForecastDays > maxForecastDays {
		return errors.NewConfigurationError("WEATHER_FORECAST_DAYS must be between 1 and 14", nil)
	}

	for _, provider := range w.ProviderOrder {
		if !knownProviders[provider] {
			return errors.NewConfigurationError(fmt.Sprintf("invalid weather provider in order: %s", provider), nil)
		}
	}

	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when provider logging is enabled", nil)
	}

	if w.CircuitBreakerEnabled {
		if w.CircuitBreakerFailures < 1 {
			return errors.NewConfigurationError("WEATHER_CIRCUIT_BREAKER_FAILURES must be at least 1", nil)
		}
		if w.CircuitBreakerTimeoutSeconds < 1 {
			return errors.NewConfigurationError("WEATHER_CIRCUIT_BREAKER_TIMEOUT_SECONDS must be at least 1 second", nil)
		}
	}

	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.SweepIntervalSeconds < 0 {
		return errors.NewConfigurationError("CACHE_SWEEP_INTERVAL_SECONDS cannot be negative", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (w *WarmupConfig) Validate() error {
	if invalid := validation.InvalidZips(w.Zips); len(invalid) > 0 {
		return errors.NewConfigurationError(
			fmt.Sprintf("WARMUP_ZIPS contains invalid zip codes: %s", strings.Join(invalid, ", ")), nil)
	}
	if len(w.Zips) > 0 && (w.IntervalMinutes < 1 || w.IntervalMinutes > maxWarmupIntervalMinute) {
		return errors.NewConfigurationError("WARMUP_INTERVAL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	return nil
}
