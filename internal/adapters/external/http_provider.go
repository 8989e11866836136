// Package external provides adapters for upstream forecast providers and cache backends
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"zipforecast.app/internal/ports"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxResponseBytes   = 4 << 20
)

// HTTPClient is satisfied by *http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// httpFetcher performs one GET per provider call and decodes the JSON body whatever the HTTP status
type httpFetcher struct {
	client  HTTPClient
	timeout time.Duration
	logger  ports.Logger
}

func newHTTPFetcher(client HTTPClient, timeout time.Duration, logger ports.Logger) httpFetcher {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return httpFetcher{client: client, timeout: timeout, logger: logger}
}

func (f httpFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && f.logger != nil {
			f.logger.Warn("Failed to close upstream response body", ports.F("error", closeErr))
		}
	}()

	return json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out)
}

// isTimeout reports deadline expiry from the context or the transport
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// transportFailure maps a request or decode error to the provider's outcome
func transportFailure(providerName string, err error) ports.ProviderOutcome {
	if isTimeout(err) {
		return unreachable(ports.ErrorOutcome("Timeout connecting to "+providerName, http.StatusRequestTimeout))
	}
	return parseFailure(providerName)
}

func parseFailure(providerName string) ports.ProviderOutcome {
	return unreachable(ports.ErrorOutcome("Error from "+providerName, http.StatusInternalServerError))
}

func unreachable(outcome ports.ProviderOutcome) ports.ProviderOutcome {
	outcome.Unreachable = true
	return outcome
}

// upstreamError passes the upstream message and code through. A missing code becomes 404;
// a 2xx code on an error body becomes 502 so it can never read as success.
func upstreamError(message string, code int) ports.ProviderOutcome {
	switch {
	case code == 0:
		code = http.StatusNotFound
	case code >= 200 && code < 300:
		code = http.StatusBadGateway
	}
	return ports.ErrorOutcome(message, code)
}

// round returns the nearest integer, halves away from zero
func round(v float64) int {
	return int(math.Round(v))
}

// flexibleInt decodes a JSON number or a numeric string. Anything else decodes as 0.
type flexibleInt int

func (n *flexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			*n = 0
			return nil
		}
		*n = flexibleInt(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = flexibleInt(int(f))
	return nil
}

// flexibleString decodes a JSON string, or renders a number or boolean as text
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexibleString(v)
		return nil
	}
	*s = flexibleString(data)
	return nil
}
