package forecast

import (
	"context"
	"net/http"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

type UseCase struct {
	providers []ports.ForecastProvider
	cache     ports.ForecastCache
	config    ports.ConfigProvider
	logger    ports.Logger
}

type UseCaseDependencies struct {
	// Providers are tried in slice order
	Providers []ports.ForecastProvider
	Cache     ports.ForecastCache
	Config    ports.ConfigProvider
	Logger    ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	for _, p := range deps.Providers {
		if p == nil {
			return nil, errors.NewValidationError("provider list contains a nil provider")
		}
	}

	providers := make([]ports.ForecastProvider, len(deps.Providers))
	copy(providers, deps.Providers)

	return &UseCase{
		providers: providers,
		cache:     deps.Cache,
		config:    deps.Config,
		logger:    deps.Logger,
	}, nil
}

// Fetch validates zip, serves a live cache entry when present, otherwise walks the provider
// chain and caches a successful result.
func (uc *UseCase) Fetch(ctx context.Context, zip string) Result {
	if !IsValidZip(zip) {
		uc.logger.Debug("Rejected invalid zip", ports.F("zip", zip))
		return invalidZipResult()
	}

	cached, err := uc.cache.Get(ctx, zip)
	if err == nil && cached != nil {
		uc.logger.Debug("Forecast found in cache", ports.F("zip", zip))
		return Result{Forecast: cached, StatusCode: http.StatusOK, Cached: true}
	}
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Warn("Failed to read forecast cache",
			ports.F("zip", zip),
			ports.F("error", err))
	}

	return uc.fetchAndStore(ctx, zip)
}

// Refresh is Fetch without the cache read. A successful result overwrites the cached entry.
func (uc *UseCase) Refresh(ctx context.Context, zip string) Result {
	if !IsValidZip(zip) {
		return invalidZipResult()
	}
	return uc.fetchAndStore(ctx, zip)
}

func (uc *UseCase) fetchAndStore(ctx context.Context, zip string) Result {
	outcome, attempted := uc.callProviders(ctx, zip)
	result := uc.resolve(outcome, attempted)

	if result.IsSuccess() {
		ttl := uc.config.GetForecastConfig().CacheTTL
		if err := uc.cache.Set(ctx, zip, result.Forecast, ttl); err != nil {
			uc.logger.Warn("Failed to cache forecast",
				ports.F("zip", zip),
				ports.F("error", err))
		}
	}

	return result
}

// callProviders stops at the first 200 carrying a forecast and otherwise returns the last provider's outcome
func (uc *UseCase) callProviders(ctx context.Context, zip string) (ports.ProviderOutcome, bool) {
	var outcome ports.ProviderOutcome
	attempted := false

	for i, provider := range uc.providers {
		outcome = provider.Call(ctx, zip)
		attempted = true

		if outcome.IsSuccess() {
			uc.logger.Debug("Forecast provider succeeded",
				ports.F("provider", provider.GetProviderName()),
				ports.F("attempt", i+1),
				ports.F("zip", zip))
			return outcome, true
		}

		fields := []ports.Field{
			ports.F("provider", provider.GetProviderName()),
			ports.F("attempt", i+1),
			ports.F("zip", zip),
			ports.F("status", outcome.StatusCode),
		}
		if outcome.Error != nil {
			fields = append(fields, ports.F("error", outcome.Error.Message))
		}
		uc.logger.Warn("Forecast provider failed", fields...)
	}

	return outcome, attempted
}

func (uc *UseCase) resolve(outcome ports.ProviderOutcome, attempted bool) Result {
	if !attempted {
		uc.logger.Error("No forecast providers configured")
		return maintenanceResult(http.StatusServiceUnavailable)
	}

	if outcome.IsEmpty() {
		code := outcome.StatusCode
		if code == http.StatusOK || code == 0 {
			code = http.StatusServiceUnavailable
		}
		return maintenanceResult(code)
	}

	if outcome.IsSuccess() {
		return Result{Forecast: outcome.Forecast, StatusCode: http.StatusOK}
	}

	// a 200 without a forecast must never reach the client as a success
	if outcome.StatusCode == http.StatusOK {
		return maintenanceResult(http.StatusServiceUnavailable)
	}

	return Result{Error: outcome.Error, StatusCode: outcome.StatusCode}
}
