package ports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Forecast is the canonical, provider-agnostic forecast
type Forecast struct {
	Now   CurrentConditions `json:"now"`
	Daily DailyForecast     `json:"daily"`
}

// CurrentConditions holds the rounded Fahrenheit temperature and a lower-case description
type CurrentConditions struct {
	TemperatureF int    `json:"temperatureF"`
	Description  string `json:"description"`
}

// DailyRange is the high/low for one local calendar day
type DailyRange struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// DailyForecast maps "MM-DD" day keys to ranges and remembers the order keys were first added.
// JSON encoding emits an object whose members follow that order.
type DailyForecast struct {
	keys   []string
	ranges map[string]DailyRange
}

// Set stores r for day, overwriting any existing range without changing the day's position
func (d *DailyForecast) Set(day string, r DailyRange) {
	if d.ranges == nil {
		d.ranges = make(map[string]DailyRange)
	}
	if _, exists := d.ranges[day]; !exists {
		d.keys = append(d.keys, day)
	}
	d.ranges[day] = r
}

// Fold merges one sample into day. The first sample initializes both bounds; later
// samples only raise the high or lower the low.
func (d *DailyForecast) Fold(day string, high, low int) {
	current, exists := d.Get(day)
	if !exists {
		d.Set(day, DailyRange{High: high, Low: low})
		return
	}
	if high > current.High {
		current.High = high
	}
	if low < current.Low {
		current.Low = low
	}
	d.Set(day, current)
}

// Get returns the range for day
func (d DailyForecast) Get(day string) (DailyRange, bool) {
	r, ok := d.ranges[day]
	return r, ok
}

// Keys returns day keys in insertion order
func (d DailyForecast) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d DailyForecast) Len() int {
	return len(d.keys)
}

func (d DailyForecast) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.ranges[day])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *DailyForecast) UnmarshalJSON(data []byte) error {
	*d = DailyForecast{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("daily forecast must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		day, ok := tok.(string)
		if !ok {
			return fmt.Errorf("daily forecast key must be a string")
		}
		var r DailyRange
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("decode daily range %s: %w", day, err)
		}
		d.Set(day, r)
	}

	_, err = dec.Token()
	return err
}

// ErrorPayload is the body returned for every non-success outcome
type ErrorPayload struct {
	Message string `json:"error"`
}

// ProviderOutcome is what a provider call produces: Forecast is set when StatusCode is 200,
// Error otherwise.
type ProviderOutcome struct {
	Forecast   *Forecast
	Error      *ErrorPayload
	StatusCode int

	// Unreachable is set when the provider produced no usable answer: a timeout,
	// a connection error or an undecodable body. Upstream-reported errors leave it false.
	Unreachable bool
}

// SuccessOutcome wraps a normalized forecast
func SuccessOutcome(forecast *Forecast) ProviderOutcome {
	return ProviderOutcome{Forecast: forecast, StatusCode: http.StatusOK}
}

// ErrorOutcome builds a failed outcome
func ErrorOutcome(message string, statusCode int) ProviderOutcome {
	return ProviderOutcome{Error: &ErrorPayload{Message: message}, StatusCode: statusCode}
}

// IsSuccess reports a 200 outcome that actually carries a forecast
func (o ProviderOutcome) IsSuccess() bool {
	return o.StatusCode == http.StatusOK && o.Forecast != nil
}

// IsEmpty reports whether the outcome carries neither a forecast nor an error message
func (o ProviderOutcome) IsEmpty() bool {
	if o.Forecast != nil {
		return false
	}
	return o.Error == nil || o.Error.Message == ""
}
