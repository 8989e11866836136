package ports

import (
	"context"
	"time"
)

// ForecastProvider is one upstream weather source. Call never panics or returns a Go error:
// every failure is reported through the outcome's status code and error payload.
type ForecastProvider interface {
	Call(ctx context.Context, zip string) ProviderOutcome
	GetProviderName() string
}

// ProviderInfoSource describes the configured provider chain
type ProviderInfoSource interface {
	GetProviderInfo() map[string]interface{}
}

// ForecastCache stores canonical forecasts keyed by zip code.
// Get returns a NotFound AppError when no live entry exists.
type ForecastCache interface {
	Get(ctx context.Context, zip string) (*Forecast, error)
	Set(ctx context.Context, zip string, forecast *Forecast, ttl time.Duration) error
}
