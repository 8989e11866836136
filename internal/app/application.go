package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"zipforecast.app/internal/adapters/api"
	"zipforecast.app/internal/adapters/infrastructure"
	"zipforecast.app/internal/config"
	"zipforecast.app/internal/core/forecast"
	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/logger"
)

type Application struct {
	config *config.Config

	// Use Cases
	forecastUseCase *forecast.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
	warmer     *infrastructure.CacheWarmer

	// Infrastructure
	deps         *DependencyContainer
	ports        *ports.ApplicationPorts
	shutdownOnce sync.Once
}

// NewApplication loads configuration from the environment and installs the
// configured log level as the default slog logger before wiring anything
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Log.Level))

	return NewApplicationWithConfig(cfg, DependencyOptions{})
}

// NewApplicationWithConfig builds the application from an already loaded configuration
func NewApplicationWithConfig(cfg *config.Config, opts DependencyOptions) (*Application, error) {
	deps, err := NewDependencyContainer(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		deps.Close()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		deps.Close()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	forecastUseCase, err := forecast.NewUseCase(forecast.UseCaseDependencies{
		Providers: a.ports.Providers,
		Cache:     a.ports.ForecastCache,
		Config:    a.ports.ConfigProvider,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create forecast use case: %w", err)
	}
	a.forecastUseCase = forecastUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		ProviderInfo: a.ports.ProviderInfo,
		CacheMetrics: a.ports.CacheMetrics,
	})

	cachePinger, _ := a.ports.CacheProvider.(ports.Pinger)
	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		CacheChecker:    infrastructure.NewCacheHealthChecker(cachePinger, a.config.Cache.Type.String()),
		ProviderChecker: infrastructure.NewProviderChainHealthChecker(a.ports.ProviderInfo),
		ConfigProvider:  a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		ForecastUseCase:  a.forecastUseCase,
		ProviderInfo:     a.ports.ProviderInfo,
		MetricsCollector: metricsCollector,
		HealthChecker:    systemHealthChecker,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	warmer, err := infrastructure.NewCacheWarmer(infrastructure.CacheWarmerConfig{
		Refresher: a.forecastUseCase,
		Zips:      a.config.Warmup.Zips,
		Interval:  time.Duration(a.config.Warmup.IntervalMinutes) * time.Minute,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create cache warmer: %w", err)
	}
	a.warmer = warmer

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.ports.ConfigProvider.GetServerConfig().Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start runs the cache warmer and blocks serving HTTP until Shutdown
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.warmer.Start(); err != nil {
		return fmt.Errorf("start cache warmer: %w", err)
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	var shutdownErr error

	a.shutdownOnce.Do(func() {
		slog.Info("Shutting down application...")

		a.warmer.Stop()

		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down HTTP server", "error", err)
			shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
		}

		if err := a.deps.Close(); err != nil {
			slog.Warn("Error releasing resources", "error", err)
		}

		slog.Info("Application shutdown complete")
	})

	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetForecastUseCase returns the forecast use case for testing
func (a *Application) GetForecastUseCase() *forecast.UseCase {
	return a.forecastUseCase
}

// GetCacheWarmer returns the cache warmer for testing
func (a *Application) GetCacheWarmer() *infrastructure.CacheWarmer {
	return a.warmer
}
