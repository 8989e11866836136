package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zipforecast.app/internal/core/forecast"
	"zipforecast.app/internal/ports"
)

const ForecastCacheHeader = "X-Forecast-Cache"

// ForecastRequest binds the zip from the query string, a form body or a JSON body
type ForecastRequest struct {
	Zip string `form:"zip" json:"zip" binding:"zipcode"`
}

// getForecast handles GET/POST /api/forecast and the legacy POST /weather
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBind(&req); err != nil {
		s.logger.Debug("Rejected forecast request", ports.F("error", err))
		c.JSON(http.StatusBadRequest, ports.ErrorPayload{Message: forecast.InvalidZipMessage})
		return
	}

	result := s.forecastUseCase.Fetch(c.Request.Context(), req.Zip)
	writeResult(c, result)
}

func writeResult(c *gin.Context, result forecast.Result) {
	status := responseStatus(result.StatusCode)

	if result.IsSuccess() {
		cache := "miss"
		if result.Cached {
			cache = "hit"
		}
		c.Header(ForecastCacheHeader, cache)
	}

	c.JSON(status, result.Payload())
}

// responseStatus passes upstream codes through unless they cannot be written as a final HTTP status
func responseStatus(code int) int {
	if code < 200 || code > 599 {
		return http.StatusBadGateway
	}
	return code
}

// getProviders handles GET /api/providers
func (s *HTTPServerAdapter) getProviders(c *gin.Context) {
	c.JSON(http.StatusOK, s.providerInfo.GetProviderInfo())
}
