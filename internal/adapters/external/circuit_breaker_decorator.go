package external

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"zipforecast.app/internal/ports"
)

// CircuitBreakerSettings configures a per-provider breaker
type CircuitBreakerSettings struct {
	// ConsecutiveFailures opens the breaker once reached
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a half-open probe
	OpenTimeout time.Duration
	Logger      ports.Logger
}

// errTransportFailure marks outcomes the breaker should count against the provider
type errTransportFailure struct {
	outcome ports.ProviderOutcome
}

func (e errTransportFailure) Error() string {
	return fmt.Sprintf("provider transport failure: status %d", e.outcome.StatusCode)
}

// CircuitBreakerDecorator short-circuits a provider after repeated timeouts or transport errors.
// Errors the upstream reports itself, an unknown zip or its own 500, never trip it.
type CircuitBreakerDecorator struct {
	provider ports.ForecastProvider
	breaker  *gobreaker.CircuitBreaker
}

func NewCircuitBreakerDecorator(provider ports.ForecastProvider, settings CircuitBreakerSettings) *CircuitBreakerDecorator {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	timeout := settings.OpenTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	logger := settings.Logger

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider.GetProviderName(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Forecast provider circuit state changed",
					ports.F("provider", name),
					ports.F("from", from.String()),
					ports.F("to", to.String()))
			}
		},
	})

	return &CircuitBreakerDecorator{provider: provider, breaker: breaker}
}

func (d *CircuitBreakerDecorator) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		outcome := d.provider.Call(ctx, zip)
		if outcome.Unreachable {
			return nil, errTransportFailure{outcome: outcome}
		}
		return outcome, nil
	})

	if err != nil {
		if failure, ok := err.(errTransportFailure); ok {
			return failure.outcome
		}
		// open or half-open with the probe already in flight
		return parseFailure(d.provider.GetProviderName())
	}

	return result.(ports.ProviderOutcome)
}

func (d *CircuitBreakerDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// State exposes the breaker state for provider info
func (d *CircuitBreakerDecorator) State() string {
	return d.breaker.State().String()
}
