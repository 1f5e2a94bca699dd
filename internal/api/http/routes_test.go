package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i474232898/weather-mcp/internal/scheduler"
	"github.com/i474232898/weather-mcp/internal/tool"
	"github.com/i474232898/weather-mcp/internal/weather"
)

type stubReporter struct {
	text string
	err  error
}

func (s stubReporter) Report(context.Context, string) (string, error) {
	return s.text, s.err
}

type stubProber struct {
	status scheduler.ProbeStatus
}

func (s stubProber) Status() scheduler.ProbeStatus {
	return s.status
}

func newTestApp(deps Deps) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, deps)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestWeatherEndpoint(t *testing.T) {
	app := newTestApp(Deps{Reporter: stubReporter{text: "Weather for Paris"}})

	code, body := doGet(t, app, "/api/v1/weather?location=Paris")
	if code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if body != "Weather for Paris" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestWeatherEndpointValidation(t *testing.T) {
	app := newTestApp(Deps{Reporter: stubReporter{text: "unused"}})

	// Missing location parameter should return 400.
	code, body := doGet(t, app, "/api/v1/weather")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, code)
	}
	if body != "Error: location must be a non-empty string" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestWeatherEndpointErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "no match",
			err:  &weather.GeocodingFailedError{Err: &weather.NoMatchError{Query: "Paris"}},
			code: http.StatusNotFound,
			body: "Error: Geocoding failed: No results found for location: Paris",
		},
		{
			name: "upstream status",
			err: &weather.WeatherFetchFailedError{Err: &weather.UpstreamError{
				API: "Weather", StatusCode: 500, Status: "Internal Server Error",
			}},
			code: http.StatusBadGateway,
			body: "Error: Weather data fetch failed: Weather API error: 500 Internal Server Error",
		},
		{
			name: "other",
			err:  &weather.WeatherFetchFailedError{Err: errors.New("connection refused")},
			code: http.StatusInternalServerError,
			body: "Error: Weather data fetch failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(Deps{Reporter: stubReporter{err: tt.err}})
			code, body := doGet(t, app, "/api/v1/weather?location=Paris")
			if code != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, code)
			}
			if body != tt.body {
				t.Errorf("unexpected body %q", body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	prober := stubProber{status: scheduler.ProbeStatus{
		LastRun: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
		OK:      false,
		Error:   "Geocoding failed: Geocoding API error: 503 Service Unavailable",
	}}
	app := newTestApp(Deps{Reporter: stubReporter{}, Prober: prober})

	code, body := doGet(t, app, "/health")
	if code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}

	var payload struct {
		Status string                `json:"status"`
		Probe  scheduler.ProbeStatus `json:"probe"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Status != "degraded" {
		t.Errorf("expected degraded status, got %q", payload.Status)
	}
	if payload.Probe.Error != prober.status.Error {
		t.Errorf("unexpected probe %+v", payload.Probe)
	}
}

func TestMetrics(t *testing.T) {
	app := newTestApp(Deps{Reporter: stubReporter{}})

	code, _ := doGet(t, app, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
}

func postMCP(t *testing.T, app *fiber.App, sessionID, payload string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
		req.Header.Set("Mcp-Protocol-Version", "2025-06-18")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestMCPEndpoint(t *testing.T) {
	server := tool.NewServer(tool.NewHandler(stubReporter{text: "Weather for Paris"}))
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	app := newTestApp(Deps{Reporter: stubReporter{}, MCP: handler})

	resp, body := postMCP(t, app, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("initialize: expected status %d, got %d: %s", http.StatusOK, resp.StatusCode, body)
	}
	sessionID := resp.Header.Get("Mcp-Session-Id")
	if sessionID == "" {
		t.Fatal("initialize: expected Mcp-Session-Id header")
	}
	if !strings.Contains(body, `"serverInfo"`) || !strings.Contains(body, tool.ServerName) {
		t.Errorf("initialize: unexpected body %q", body)
	}

	resp, body = postMCP(t, app, sessionID, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("initialized: expected status %d, got %d: %s", http.StatusAccepted, resp.StatusCode, body)
	}

	resp, body = postMCP(t, app, sessionID, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_weather","arguments":{"location":"Paris"}}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tools/call: expected status %d, got %d: %s", http.StatusOK, resp.StatusCode, body)
	}
	if !strings.Contains(body, `"type":"text"`) || !strings.Contains(body, `"text":"Weather for Paris"`) {
		t.Errorf("tools/call: unexpected body %q", body)
	}
	if strings.Contains(body, `"isError":true`) {
		t.Errorf("tools/call: unexpected error result %q", body)
	}
}

func TestMCPEndpointNotMounted(t *testing.T) {
	app := newTestApp(Deps{Reporter: stubReporter{}})

	resp, _ := postMCP(t, app, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status %d without an MCP handler, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
