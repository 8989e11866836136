package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zipforecast.app/internal/mocks"
	"zipforecast.app/internal/ports"
)

const weatherAPIForecastBody = `{
	"location": {"name": "Beverly Hills"},
	"current": {"temp_f": 75.6, "condition": {"text": "Partly Cloudy"}},
	"forecast": {"forecastday": [
		{"date": "2024-09-26", "day": {"maxtemp_f": 78.4, "mintemp_f": 64.5}},
		{"date": "2024-09-27", "day": {"maxtemp_f": 81.0, "mintemp_f": 66.2}},
		{"date": "2024-09-28", "day": {"maxtemp_f": 79.5, "mintemp_f": 65.4}}
	]}
}`

func newWeatherAPIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestWeatherAPIProvider_Call_Success(t *testing.T) {
	server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "90210", query.Get("q"))
		assert.Equal(t, "test-key", query.Get("key"))
		assert.Equal(t, "5", query.Get("days"))
		assert.Equal(t, "no", query.Get("aqi"))
		assert.Equal(t, "no", query.Get("alerts"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(weatherAPIForecastBody))
	})

	provider := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Logger:  mocks.NewLogger(),
	})

	outcome := provider.Call(context.Background(), "90210")

	require.Equal(t, http.StatusOK, outcome.StatusCode)
	require.NotNil(t, outcome.Forecast)
	assert.Nil(t, outcome.Error)
	assert.Equal(t, ports.CurrentConditions{TemperatureF: 76, Description: "partly cloudy"}, outcome.Forecast.Now)
	assert.Equal(t, []string{"09-26", "09-27", "09-28"}, outcome.Forecast.Daily.Keys())

	day, ok := outcome.Forecast.Daily.Get("09-26")
	require.True(t, ok)
	assert.Equal(t, ports.DailyRange{High: 78, Low: 65}, day)
}

func TestWeatherAPIProvider_Call_UpstreamError(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "CodePassedThrough",
			status:         http.StatusBadRequest,
			body:           `{"error": {"code": 1006, "message": "No matching location found."}}`,
			expectedStatus: 1006,
			expectedError:  "No matching location found.",
		},
		{
			name:           "MissingCodeDefaultsTo404",
			status:         http.StatusBadRequest,
			body:           `{"error": {"message": "Parameter q is missing."}}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Parameter q is missing.",
		},
		{
			name:           "ZeroCodeDefaultsTo404",
			status:         http.StatusOK,
			body:           `{"error": {"code": 0, "message": "Unknown"}}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Unknown",
		},
		{
			name:           "StringCode",
			status:         http.StatusUnauthorized,
			body:           `{"error": {"code": "2006", "message": "API key is invalid."}}`,
			expectedStatus: 2006,
			expectedError:  "API key is invalid.",
		},
		{
			name:           "SuccessCodeOnErrorBodyBecomes502",
			status:         http.StatusOK,
			body:           `{"error": {"code": 200, "message": "weird"}}`,
			expectedStatus: http.StatusBadGateway,
			expectedError:  "weird",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			provider := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{APIKey: "k", BaseURL: server.URL})

			outcome := provider.Call(context.Background(), "00000")

			assert.Equal(t, tt.expectedStatus, outcome.StatusCode)
			require.NotNil(t, outcome.Error)
			assert.Equal(t, tt.expectedError, outcome.Error.Message)
			assert.Nil(t, outcome.Forecast)
			assert.False(t, outcome.IsSuccess())
			assert.False(t, outcome.Unreachable)
		})
	}
}

func TestWeatherAPIProvider_Call_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	provider := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
		APIKey:  "k",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})

	outcome := provider.Call(context.Background(), "90210")

	assert.Equal(t, http.StatusRequestTimeout, outcome.StatusCode)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, "Timeout connecting to WeatherAPI", outcome.Error.Message)
	assert.True(t, outcome.Unreachable)
}

func TestWeatherAPIProvider_Call_TransportAndParseFailures(t *testing.T) {
	t.Run("InvalidJSON", func(t *testing.T) {
		server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		})
		outcome := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{APIKey: "k", BaseURL: server.URL}).
			Call(context.Background(), "90210")

		assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
		assert.Equal(t, "Error from WeatherAPI", outcome.Error.Message)
	})

	t.Run("MissingCurrent", func(t *testing.T) {
		server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"forecast": {"forecastday": []}}`))
		})
		outcome := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{APIKey: "k", BaseURL: server.URL}).
			Call(context.Background(), "90210")

		assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
		assert.Equal(t, "Error from WeatherAPI", outcome.Error.Message)
	})

	t.Run("ConnectionRefused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		outcome := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{APIKey: "k", BaseURL: url}).
			Call(context.Background(), "90210")

		assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
		assert.Equal(t, "Error from WeatherAPI", outcome.Error.Message)
		assert.True(t, outcome.Unreachable)
	})
}

func TestWeatherAPIProvider_CustomDaysAndTrailingSlash(t *testing.T) {
	server := newWeatherAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(weatherAPIForecastBody))
	})

	provider := NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{APIKey: "k", BaseURL: server.URL + "/", Days: 3})
	assert.True(t, provider.Call(context.Background(), "90210").IsSuccess())
	assert.Equal(t, "WeatherAPI", provider.GetProviderName())
}

func TestNormalizeWeatherAPIForecast(t *testing.T) {
	var resp WeatherAPIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"current": {"temp_f": -0.5, "condition": {"text": "Heavy SNOW"}}}`), &resp))

	forecast, err := NormalizeWeatherAPIForecast(resp)
	require.NoError(t, err)
	assert.Equal(t, -1, forecast.Now.TemperatureF)
	assert.Equal(t, "heavy snow", forecast.Now.Description)
	assert.Equal(t, 0, forecast.Daily.Len())

	_, err = NormalizeWeatherAPIForecast(WeatherAPIResponse{})
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"current": {"temp_f": 70}, "forecast": {"forecastday": [{"date": "09/26/2024"}]}}`), &resp))
	_, err = NormalizeWeatherAPIForecast(resp)
	assert.Error(t, err)
}
