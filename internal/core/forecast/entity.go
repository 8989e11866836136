package forecast

import (
	"net/http"

	"zipforecast.app/internal/ports"
	"zipforecast.app/pkg/validation"
)

const (
	InvalidZipMessage  = "Invalid zipcode"
	MaintenanceMessage = "Weather service is currently down for maintenance"
)

// IsValidZip is the only gate before any cache or network access
func IsValidZip(zip string) bool {
	return validation.IsValidZip(zip)
}

// Result is the outcome of one Fetch: exactly one of Forecast and Error is set.
// Cached marks a payload served from the cache and is not part of the JSON body.
type Result struct {
	Forecast   *ports.Forecast
	Error      *ports.ErrorPayload
	StatusCode int
	Cached     bool
}

// Payload returns the value to serialize as the response body
func (r Result) Payload() interface{} {
	if r.Forecast != nil {
		return r.Forecast
	}
	return r.Error
}

func (r Result) IsSuccess() bool {
	return r.StatusCode == http.StatusOK && r.Forecast != nil
}

func invalidZipResult() Result {
	return Result{
		Error:      &ports.ErrorPayload{Message: InvalidZipMessage},
		StatusCode: http.StatusBadRequest,
	}
}

func maintenanceResult(statusCode int) Result {
	return Result{
		Error:      &ports.ErrorPayload{Message: MaintenanceMessage},
		StatusCode: statusCode,
	}
}
