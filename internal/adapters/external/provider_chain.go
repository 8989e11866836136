package external

import (
	"strings"
	"time"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

// DefaultProviderOrder is used when no order is configured
var DefaultProviderOrder = []string{WeatherAPIProviderKey, OpenWeatherMapProviderKey}

// ProviderChain holds the decorated providers in fallback order. The aggregator walks
// Providers() itself; the chain only builds and describes it.
type ProviderChain struct {
	keys      []string
	providers []ports.ForecastProvider
	breakers  map[string]*CircuitBreakerDecorator
	logging   bool
}

// ProviderChainConfig holds configuration for creating the provider chain
type ProviderChainConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	OpenWeatherKey    string
	OpenWeatherURL    string
	ProviderOrder     []string
	ForecastDays      int
	Timeout           time.Duration
	Client            HTTPClient

	CircuitBreakerEnabled  bool
	CircuitBreakerFailures uint32
	CircuitBreakerTimeout  time.Duration

	// Metrics is optional
	Metrics ports.ProviderMetricsRecorder
	// ProviderLogger receives per-call request/response events when set
	ProviderLogger ports.Logger
	Logger         ports.Logger
}

func NewProviderChain(config ProviderChainConfig) (*ProviderChain, error) {
	if config.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	order := config.ProviderOrder
	if len(order) == 0 {
		order = DefaultProviderOrder
	}

	chain := &ProviderChain{
		breakers: make(map[string]*CircuitBreakerDecorator),
		logging:  config.ProviderLogger != nil,
	}

	seen := make(map[string]bool)
	for _, raw := range order {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		base, err := chain.createProvider(key, config)
		if err != nil {
			return nil, err
		}
		if base == nil {
			config.Logger.Warn("Skipping forecast provider without API key", ports.F("provider", key))
			continue
		}

		chain.keys = append(chain.keys, key)
		chain.providers = append(chain.providers, chain.decorate(key, base, config))
		config.Logger.Debug("Registered forecast provider",
			ports.F("provider", key),
			ports.F("position", len(chain.providers)))
	}

	return chain, nil
}

// createProvider returns nil when the provider has no key configured
func (c *ProviderChain) createProvider(key string, config ProviderChainConfig) (ports.ForecastProvider, error) {
	switch key {
	case WeatherAPIProviderKey:
		if config.WeatherAPIKey == "" {
			return nil, nil
		}
		return NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
			APIKey:  config.WeatherAPIKey,
			BaseURL: config.WeatherAPIBaseURL,
			Days:    config.ForecastDays,
			Timeout: config.Timeout,
			Client:  config.Client,
			Logger:  config.Logger,
		}), nil
	case OpenWeatherMapProviderKey:
		if config.OpenWeatherKey == "" {
			return nil, nil
		}
		return NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			APIKey:  config.OpenWeatherKey,
			BaseURL: config.OpenWeatherURL,
			Timeout: config.Timeout,
			Client:  config.Client,
			Logger:  config.Logger,
		}), nil
	default:
		return nil, errors.NewConfigurationError("unknown forecast provider: "+key, nil)
	}
}

// decorate wraps base as breaker, then metrics, then logging
func (c *ProviderChain) decorate(key string, base ports.ForecastProvider, config ProviderChainConfig) ports.ForecastProvider {
	provider := base

	if config.CircuitBreakerEnabled {
		breaker := NewCircuitBreakerDecorator(provider, CircuitBreakerSettings{
			ConsecutiveFailures: config.CircuitBreakerFailures,
			OpenTimeout:         config.CircuitBreakerTimeout,
			Logger:              config.Logger,
		})
		c.breakers[key] = breaker
		provider = breaker
	}

	if config.Metrics != nil {
		provider = NewProviderMetricsDecorator(provider, config.Metrics)
	}

	if config.ProviderLogger != nil {
		provider = NewProviderLoggingDecorator(provider, config.ProviderLogger)
	}

	return provider
}

// Providers returns the decorated providers in fallback order
func (c *ProviderChain) Providers() []ports.ForecastProvider {
	providers := make([]ports.ForecastProvider, len(c.providers))
	copy(providers, c.providers)
	return providers
}

// GetProviderInfo returns information about configured providers
func (c *ProviderChain) GetProviderInfo() map[string]interface{} {
	names := make([]string, len(c.providers))
	for i, provider := range c.providers {
		names[i] = provider.GetProviderName()
	}
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)

	info := map[string]interface{}{
		"total_providers":  len(c.providers),
		"provider_order":   keys,
		"provider_names":   names,
		"chain_enabled":    true,
		"fallback_enabled": len(c.providers) > 1,
		"logging_enabled":  c.logging,
	}

	if len(c.breakers) > 0 {
		states := make(map[string]string, len(c.breakers))
		for key, breaker := range c.breakers {
			states[key] = breaker.State()
		}
		info["circuit_breakers"] = states
	}

	return info
}
