package external

import (
	"context"
	"time"

	"zipforecast.app/internal/ports"
)

// ProviderMetricsDecorator records one observation per provider call
type ProviderMetricsDecorator struct {
	provider ports.ForecastProvider
	recorder ports.ProviderMetricsRecorder
}

func NewProviderMetricsDecorator(provider ports.ForecastProvider, recorder ports.ProviderMetricsRecorder) *ProviderMetricsDecorator {
	return &ProviderMetricsDecorator{provider: provider, recorder: recorder}
}

func (d *ProviderMetricsDecorator) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	start := time.Now()
	outcome := d.provider.Call(ctx, zip)
	d.recorder.ObserveProviderCall(d.provider.GetProviderName(), outcome.StatusCode, time.Since(start))
	return outcome
}

func (d *ProviderMetricsDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
