package providers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-mcp/internal/metrics"
	"github.com/i474232898/weather-mcp/internal/weather"
)

// HTTPClientConfig bundles the HTTP client used for one upstream.
type HTTPClientConfig struct {
	Client *http.Client
}

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes a single GET. Requests are never retried and no state is
// shared between calls. Non-2xx responses are closed and returned as
// *weather.UpstreamError labelled with api ("Geocoding" or "Weather").
func doRequest(ctx context.Context, cfg HTTPClientConfig, api, rawURL string) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := cfg.Client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(api, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(api, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &weather.UpstreamError{
			API:        api,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}
	return resp, nil
}

// statusText returns the reason phrase of a response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
