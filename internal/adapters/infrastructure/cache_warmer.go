package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"zipforecast.app/internal/core/forecast"
	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

const warmupRefreshTimeout = 30 * time.Second

// Refresher re-fetches a forecast and overwrites its cache entry
type Refresher interface {
	Refresh(ctx context.Context, zip string) forecast.Result
}

// CacheWarmer periodically refreshes the forecasts of a fixed set of zip codes
type CacheWarmer struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	zips      []string
	interval  time.Duration
	logger    ports.Logger
}

// CacheWarmerConfig holds the dependencies for the cache warmer
type CacheWarmerConfig struct {
	Refresher Refresher
	Zips      []string
	Interval  time.Duration
	Logger    ports.Logger
}

func NewCacheWarmer(config CacheWarmerConfig) (*CacheWarmer, error) {
	if config.Refresher == nil {
		return nil, errors.NewValidationError("refresher cannot be nil")
	}
	if config.Logger == nil {
		return nil, errors.NewValidationError("logger cannot be nil")
	}

	zips := make([]string, len(config.Zips))
	copy(zips, config.Zips)

	return &CacheWarmer{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: config.Refresher,
		zips:      zips,
		interval:  config.Interval,
		logger:    config.Logger,
	}, nil
}

// Start schedules the refresh job. The first run happens immediately.
func (w *CacheWarmer) Start() error {
	if len(w.zips) == 0 {
		w.logger.Info("Cache warmer disabled: no zip codes configured")
		return nil
	}

	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 25
	}

	w.scheduler.SingletonModeAll()
	if _, err := w.scheduler.Every(minutes).Minutes().Do(func() {
		w.RunOnce(context.Background())
	}); err != nil {
		return errors.NewConfigurationError("failed to schedule cache warmer", err)
	}

	w.scheduler.StartAsync()
	w.logger.Info("Cache warmer started",
		ports.F("zips", len(w.zips)),
		ports.F("interval_minutes", minutes))
	return nil
}

// RunOnce refreshes every configured zip concurrently and returns how many succeeded
func (w *CacheWarmer) RunOnce(ctx context.Context) int {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		refreshed int
	)

	for _, zip := range w.zips {
		zip := zip
		wg.Add(1)
		go func() {
			defer wg.Done()

			refreshCtx, cancel := context.WithTimeout(ctx, warmupRefreshTimeout)
			defer cancel()

			result := w.refresher.Refresh(refreshCtx, zip)
			if !result.IsSuccess() {
				fields := []ports.Field{ports.F("zip", zip), ports.F("status", result.StatusCode)}
				if result.Error != nil {
					fields = append(fields, ports.F("error", result.Error.Message))
				}
				w.logger.Warn("Cache warmup failed", fields...)
				return
			}

			mu.Lock()
			refreshed++
			mu.Unlock()
		}()
	}
	wg.Wait()

	w.logger.Debug("Cache warmup completed",
		ports.F("refreshed", refreshed),
		ports.F("total", len(w.zips)))
	return refreshed
}

func (w *CacheWarmer) Stop() {
	if w.scheduler != nil && w.scheduler.IsRunning() {
		w.scheduler.Stop()
	}
}
