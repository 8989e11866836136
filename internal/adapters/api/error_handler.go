package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zipforecast.app/internal/adapters/infrastructure"
	"zipforecast.app/internal/ports"
	errorspkg "zipforecast.app/pkg/errors"
)

// handleError maps plumbing errors to a status and an ErrorPayload body.
// Forecast outcomes never go through here.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, ports.ErrorPayload{Message: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.ErrorTypeCache:
		statusCode = http.StatusServiceUnavailable
		message = "Cache unavailable"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ports.ErrorPayload{Message: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.logger.Error("Error getting metrics", ports.F("error", err))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	response := HealthResponse{Status: ports.HealthStatusHealthy, Components: results}
	statusCode := http.StatusOK
	if !infrastructure.IsHealthy(results) {
		response.Status = ports.HealthStatusUnhealthy
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
