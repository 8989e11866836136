package external

import (
	"context"
	"time"

	"zipforecast.app/internal/ports"
)

// ProviderLoggingDecorator emits request, response and error events around a provider call
type ProviderLoggingDecorator struct {
	provider ports.ForecastProvider
	logger   ports.Logger
}

func NewProviderLoggingDecorator(provider ports.ForecastProvider, logger ports.Logger) *ProviderLoggingDecorator {
	return &ProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

func (d *ProviderLoggingDecorator) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Forecast provider request started",
		ports.F("provider", providerName),
		ports.F("zip", zip),
		ports.F("event", "request"))

	startTime := time.Now()
	outcome := d.provider.Call(ctx, zip)
	duration := time.Since(startTime)

	if !outcome.IsSuccess() {
		message := ""
		if outcome.Error != nil {
			message = outcome.Error.Message
		}
		d.logger.Error("Forecast provider request failed",
			ports.F("provider", providerName),
			ports.F("zip", zip),
			ports.F("event", "error"),
			ports.F("status", outcome.StatusCode),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", message))
		return outcome
	}

	fields := []ports.Field{
		ports.F("provider", providerName),
		ports.F("zip", zip),
		ports.F("event", "response"),
		ports.F("status", outcome.StatusCode),
		ports.F("duration_ms", duration.Milliseconds()),
	}
	if outcome.Forecast != nil {
		fields = append(fields,
			ports.F("temperature_f", outcome.Forecast.Now.TemperatureF),
			ports.F("description", outcome.Forecast.Now.Description),
			ports.F("days", outcome.Forecast.Daily.Len()))
	}
	d.logger.Info("Forecast provider request completed", fields...)

	return outcome
}

// GetProviderName returns the wrapped provider's name unchanged so failure messages keep it
func (d *ProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
