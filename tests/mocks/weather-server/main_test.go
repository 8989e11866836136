package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 9, 26, 13, 30, 0, 0, time.UTC) }

func serve(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	newRouter(10*time.Millisecond, fixedNow).ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestWeatherAPIForecast(t *testing.T) {
	w := serve(t, "/v1/forecast.json?q=90210&key=k&days=3")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Current struct {
			TempF float64 `json:"temp_f"`
		} `json:"current"`
		Forecast struct {
			Forecastday []struct {
				Date string `json:"date"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 75.6, body.Current.TempF)
	require.Len(t, body.Forecast.Forecastday, 3)
	assert.Equal(t, "2024-09-26", body.Forecast.Forecastday[0].Date)
}

func TestWeatherAPIErrors(t *testing.T) {
	w := serve(t, "/v1/forecast.json?q=99999&key=k")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"code":1006,"message":"No matching location found."}}`, w.Body.String())

	w = serve(t, "/v1/forecast.json?q=90210")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOpenWeatherMapForecast(t *testing.T) {
	w := serve(t, "/data/2.5/forecast?zip=10001,US&appid=k&units=imperial")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cod  string            `json:"cod"`
		List []json.RawMessage `json:"list"`
		City struct {
			Timezone int `json:"timezone"`
		} `json:"city"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "200", body.Cod)
	assert.Len(t, body.List, 40)
	assert.Equal(t, -14400, body.City.Timezone)
}

func TestOpenWeatherMapErrors(t *testing.T) {
	w := serve(t, "/data/2.5/forecast?zip=99999,US&appid=k")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"cod":"404","message":"city not found"}`, w.Body.String())
}

func TestSlowZipStalls(t *testing.T) {
	start := time.Now()
	w := serve(t, "/v1/forecast.json?q=00000&key=k")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
