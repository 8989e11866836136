// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zipforecast.app/internal/core/forecast"
	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/errors"
)

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	forecastUseCase  ForecastUseCase
	providerInfo     ports.ProviderInfoSource
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	logger           ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type ForecastUseCase interface {
	Fetch(ctx context.Context, zip string) forecast.Result
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	ForecastUseCase  ForecastUseCase
	ProviderInfo     ports.ProviderInfoSource
	MetricsCollector MetricsCollector
	HealthChecker    ports.SystemHealthChecker
	Logger           ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID, RequestLogger(opts.Logger), PrometheusMetrics)

	server := &HTTPServerAdapter{
		router:           router,
		forecastUseCase:  opts.ForecastUseCase,
		providerInfo:     opts.ProviderInfo,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.HealthChecker,
		logger:           opts.Logger,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.ForecastUseCase == nil {
		return errors.NewValidationError("forecast use case is required")
	}
	if opts.ProviderInfo == nil {
		return errors.NewValidationError("provider info is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// RegisterValidators installs the "zipcode" binding tag on gin's validator engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
	}
	return v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return forecast.IsValidZip(fl.Field().String())
	})
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/forecast", s.getForecast)
		api.POST("/forecast", s.getForecast)
		api.GET("/providers", s.getProviders)
		api.GET("/metrics", s.getMetrics)
		api.GET("/health", s.getHealth)
	}

	s.router.POST("/weather", s.getForecast)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
