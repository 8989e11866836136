package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zipforecast.app/internal/ports"
)

const (
	OpenWeatherMapProviderKey  = "openweathermap"
	OpenWeatherMapProviderName = "OpenWeatherMap"

	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	openWeatherMapTimeLayout     = "2006-01-02 15:04:05"
)

// OpenWeatherMapProviderAdapter is the secondary provider backed by the 5 day / 3 hour forecast API
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	fetcher httpFetcher
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// OpenWeatherMapResponse represents the response from the OpenWeatherMap forecast endpoint
type OpenWeatherMapResponse struct {
	Cod     flexibleInt            `json:"cod"`
	Message flexibleString         `json:"message"`
	List    []OpenWeatherMapSample `json:"list"`
	City    OpenWeatherMapCity     `json:"city"`
}

// OpenWeatherMapSample is one three-hour step
type OpenWeatherMapSample struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// OpenWeatherMapCity carries the location's offset from UTC in seconds
type OpenWeatherMapCity struct {
	Timezone int `json:"timezone"`
}

func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		fetcher: newHTTPFetcher(params.Client, params.Timeout, params.Logger),
	}
}

func (p *OpenWeatherMapProviderAdapter) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	query := url.Values{}
	query.Set("zip", zip+",US")
	query.Set("appid", p.apiKey)
	query.Set("units", "imperial")

	var resp OpenWeatherMapResponse
	if err := p.fetcher.getJSON(ctx, p.baseURL+"/forecast?"+query.Encode(), &resp); err != nil {
		return transportFailure(OpenWeatherMapProviderName, err)
	}

	if int(resp.Cod) != http.StatusOK {
		return upstreamError(string(resp.Message), int(resp.Cod))
	}

	forecast, err := NormalizeOpenWeatherMapForecast(resp)
	if err != nil {
		return parseFailure(OpenWeatherMapProviderName)
	}
	return ports.SuccessOutcome(forecast)
}

func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return OpenWeatherMapProviderName
}

// NormalizeOpenWeatherMapForecast folds the three-hour samples into local calendar days.
// The first sample supplies current conditions.
func NormalizeOpenWeatherMapForecast(resp OpenWeatherMapResponse) (*ports.Forecast, error) {
	if len(resp.List) == 0 {
		return nil, fmt.Errorf("openweathermap response has an empty list")
	}

	first := resp.List[0]
	if len(first.Weather) == 0 {
		return nil, fmt.Errorf("openweathermap sample has no weather description")
	}

	forecast := &ports.Forecast{
		Now: ports.CurrentConditions{
			TemperatureF: round(first.Main.Temp),
			Description:  strings.ToLower(first.Weather[0].Description),
		},
	}

	local := time.FixedZone("city", resp.City.Timezone)
	for _, sample := range resp.List {
		at, err := sample.utcTime()
		if err != nil {
			return nil, err
		}
		forecast.Daily.Fold(at.In(local).Format("01-02"), round(sample.Main.TempMax), round(sample.Main.TempMin))
	}

	return forecast, nil
}

func (s OpenWeatherMapSample) utcTime() (time.Time, error) {
	if s.DtTxt != "" {
		at, err := time.ParseInLocation(openWeatherMapTimeLayout, s.DtTxt, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("openweathermap dt_txt %q: %w", s.DtTxt, err)
		}
		return at, nil
	}
	if s.Dt != 0 {
		return time.Unix(s.Dt, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("openweathermap sample has no timestamp")
}
