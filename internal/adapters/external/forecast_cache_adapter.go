package external

import (
	"context"
	"encoding/json"
	"time"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

const forecastKeyPrefix = "forecast:"

// ForecastCacheAdapter stores forecasts as JSON in a generic CacheProvider under "forecast:<zip>"
type ForecastCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

func NewForecastCacheAdapter(cacheProvider ports.CacheProvider) *ForecastCacheAdapter {
	return &ForecastCacheAdapter{cacheProvider: cacheProvider}
}

// ForecastCacheKey returns the backend key for zip
func ForecastCacheKey(zip string) string {
	return forecastKeyPrefix + zip
}

func (a *ForecastCacheAdapter) Get(ctx context.Context, zip string) (*ports.Forecast, error) {
	data, err := a.cacheProvider.Get(ctx, ForecastCacheKey(zip))
	if err != nil {
		return nil, err
	}

	var forecast ports.Forecast
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, errors.NewCacheError("failed to deserialize cached forecast", err)
	}

	return &forecast, nil
}

func (a *ForecastCacheAdapter) Set(ctx context.Context, zip string, forecast *ports.Forecast, ttl time.Duration) error {
	if forecast == nil {
		return errors.NewValidationError("forecast cannot be nil")
	}

	data, err := json.Marshal(forecast)
	if err != nil {
		return errors.NewCacheError("failed to serialize forecast", err)
	}

	return a.cacheProvider.Set(ctx, ForecastCacheKey(zip), data, ttl)
}
