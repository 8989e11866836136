package app

import (
	"fmt"
	"log/slog"
	"time"

	"zipforecast.app/internal/adapters/external"
	"zipforecast.app/internal/adapters/infrastructure"
	"zipforecast.app/internal/config"
	"zipforecast.app/internal/ports"
)

type DependencyContainer struct {
	config *config.Config
	ports  *ports.ApplicationPorts

	chain      *external.ProviderChain
	cache      *external.InstrumentedCacheProvider
	fileLogger *infrastructure.FileLoggerAdapter
}

// DependencyOptions overrides pieces of the container, mostly for tests
type DependencyOptions struct {
	// HTTPClient replaces the default per-provider client
	HTTPClient external.HTTPClient
	// Logger replaces the slog-backed application logger
	Logger ports.Logger
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
	}

	if err := container.initializePorts(opts); err != nil {
		container.Close()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	slog.Info("Initializing ports...")

	logger := opts.Logger
	if logger == nil {
		logger = infrastructure.NewSlogLoggerAdapter(slog.Default())
	}

	var providerLogger ports.Logger
	if c.config.Weather.EnableLogging {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			logger.Warn("Failed to create file logger, falling back to application logger", ports.F("error", err))
			providerLogger = logger
		} else {
			c.fileLogger = fileLogger
			providerLogger = infrastructure.NewMultiLogger(logger, fileLogger)
			logger.Info("Provider file logging enabled", ports.F("path", c.config.Weather.LogFilePath))
		}
	}

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	metrics := infrastructure.NewPrometheusMetrics()

	cacheConfig := configProvider.GetCacheConfig()
	cacheFactory := external.NewCacheProviderFactory(
		time.Duration(c.config.Cache.SweepIntervalSeconds)*time.Second, logger)
	backend, err := cacheFactory.CreateCacheProvider(cacheConfig)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = external.NewInstrumentedCacheProvider(backend, cacheConfig.Type, metrics)

	logger.Info("Cache provider initialized",
		ports.F("type", cacheConfig.Type),
		ports.F("redis_addr", cacheConfig.Redis.Addr))

	chain, err := external.NewProviderChain(external.ProviderChainConfig{
		WeatherAPIKey:          c.config.Weather.APIKey,
		WeatherAPIBaseURL:      c.config.Weather.BaseURL,
		OpenWeatherKey:         c.config.Weather.OpenWeatherMapKey,
		OpenWeatherURL:         c.config.Weather.OpenWeatherMapBaseURL,
		ProviderOrder:          c.config.Weather.ProviderOrder,
		ForecastDays:           c.config.Weather.ForecastDays,
		Timeout:                time.Duration(c.config.Weather.HTTPTimeoutSeconds) * time.Second,
		Client:                 opts.HTTPClient,
		CircuitBreakerEnabled:  c.config.Weather.CircuitBreakerEnabled,
		CircuitBreakerFailures: uint32(c.config.Weather.CircuitBreakerFailures),
		CircuitBreakerTimeout:  time.Duration(c.config.Weather.CircuitBreakerTimeoutSeconds) * time.Second,
		Metrics:                metrics,
		ProviderLogger:         providerLogger,
		Logger:                 logger,
	})
	if err != nil {
		return fmt.Errorf("create provider chain: %w", err)
	}
	c.chain = chain

	c.ports = &ports.ApplicationPorts{
		Providers:     chain.Providers(),
		ProviderInfo:  chain,
		ForecastCache: external.NewForecastCacheAdapter(c.cache),

		CacheProvider: c.cache,
		CacheMetrics:  c.cache,

		ConfigProvider: configProvider,
		Logger:         logger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Close releases the cache backend and the provider log file
func (c *DependencyContainer) Close() error {
	var firstErr error

	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			firstErr = fmt.Errorf("close cache: %w", err)
		}
	}

	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close provider log: %w", err)
		}
	}

	return firstErr
}
