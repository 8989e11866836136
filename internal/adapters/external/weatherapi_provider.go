package external

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"zipforecast.app/internal/ports"
)

const (
	WeatherAPIProviderKey  = "weatherapi"
	WeatherAPIProviderName = "WeatherAPI"

	defaultWeatherAPIBaseURL = "http://api.weatherapi.com/v1"
	defaultForecastDays      = 5
)

// WeatherAPIProviderAdapter is the primary provider backed by WeatherAPI.com forecast.json
type WeatherAPIProviderAdapter struct {
	apiKey  string
	baseURL string
	days    int
	fetcher httpFetcher
}

// WeatherAPIProviderParams holds parameters for creating WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Days    int
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// WeatherAPIResponse is the subset of forecast.json that the normalizer reads
type WeatherAPIResponse struct {
	Current *struct {
		TempF     float64 `json:"temp_f"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date string `json:"date"`
			Day  struct {
				MaxtempF float64 `json:"maxtemp_f"`
				MintempF float64 `json:"mintemp_f"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
	Error *WeatherAPIError `json:"error"`
}

// WeatherAPIError is the error object WeatherAPI.com returns instead of a forecast
type WeatherAPIError struct {
	Code    flexibleInt    `json:"code"`
	Message flexibleString `json:"message"`
}

func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) *WeatherAPIProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultWeatherAPIBaseURL
	}
	days := params.Days
	if days <= 0 {
		days = defaultForecastDays
	}

	return &WeatherAPIProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		days:    days,
		fetcher: newHTTPFetcher(params.Client, params.Timeout, params.Logger),
	}
}

func (p *WeatherAPIProviderAdapter) Call(ctx context.Context, zip string) ports.ProviderOutcome {
	query := url.Values{}
	query.Set("q", zip)
	query.Set("key", p.apiKey)
	query.Set("days", strconv.Itoa(p.days))
	query.Set("aqi", "no")
	query.Set("alerts", "no")

	var resp WeatherAPIResponse
	if err := p.fetcher.getJSON(ctx, p.baseURL+"/forecast.json?"+query.Encode(), &resp); err != nil {
		return transportFailure(WeatherAPIProviderName, err)
	}

	if resp.Error != nil {
		return upstreamError(string(resp.Error.Message), int(resp.Error.Code))
	}

	forecast, err := NormalizeWeatherAPIForecast(resp)
	if err != nil {
		return parseFailure(WeatherAPIProviderName)
	}
	return ports.SuccessOutcome(forecast)
}

func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return WeatherAPIProviderName
}

// NormalizeWeatherAPIForecast converts a successful forecast.json body. Daily keys follow
// the order of forecastday entries.
func NormalizeWeatherAPIForecast(resp WeatherAPIResponse) (*ports.Forecast, error) {
	if resp.Current == nil {
		return nil, fmt.Errorf("weatherapi response has no current conditions")
	}

	forecast := &ports.Forecast{
		Now: ports.CurrentConditions{
			TemperatureF: round(resp.Current.TempF),
			Description:  strings.ToLower(resp.Current.Condition.Text),
		},
	}

	for _, day := range resp.Forecast.Forecastday {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("weatherapi forecast date %q: %w", day.Date, err)
		}
		forecast.Daily.Set(date.Format("01-02"), ports.DailyRange{
			High: round(day.Day.MaxtempF),
			Low:  round(day.Day.MintempF),
		})
	}

	return forecast, nil
}
