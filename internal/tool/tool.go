// Package tool exposes the weather pipeline as the get_weather MCP tool.
//
// The tool never reports a protocol-level failure for business errors: every
// error from the pipeline is rendered as "Error: <message>" inside a normal
// text result, so the calling agent always receives readable content.
package tool

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i474232898/weather-mcp/internal/metrics"
)

const (
	ServerName    = "Weather MCP"
	ServerVersion = "1.0.0"

	Name        = "get_weather"
	Description = "Get weather information for a specific location"

	// FallbackText is returned when a failure carries no message.
	FallbackText = "Failed to retrieve weather data"
)

var validate = validator.New()

// Reporter produces the text report for a location.
type Reporter interface {
	Report(ctx context.Context, location string) (string, error)
}

// Input is the get_weather argument object.
type Input struct {
	Location string `json:"location" jsonschema:"Location name in English (city, address, etc)." validate:"required,min=1"`
}

// Handler runs the weather pipeline for tool calls.
type Handler struct {
	reporter Reporter
}

// NewHandler creates a new Handler.
func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

// Handle returns the report text for location, or the uniform error text.
// It never fails.
func (h *Handler) Handle(ctx context.Context, location string) (text string) {
	requestID := uuid.NewString()
	log.Printf("INFO: [%s] executing %s for location %q", requestID, Name, location)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: [%s] panic while fetching weather for %q: %v", requestID, location, r)
			metrics.RecordToolInvocation(metrics.OutcomeError)
			text = FallbackText
		}
	}()

	if err := validate.Struct(Input{Location: location}); err != nil {
		metrics.RecordToolInvocation(metrics.OutcomeInvalid)
		log.Printf("ERROR: [%s] invalid input: %v", requestID, err)
		return ErrorText(fmt.Errorf("location must be a non-empty string"))
	}

	report, err := h.reporter.Report(ctx, location)
	if err != nil {
		metrics.RecordToolInvocation(metrics.OutcomeError)
		text = ErrorText(err)
		log.Printf("ERROR: [%s] failed to fetch weather for %s: %s", requestID, location, text)
		return text
	}

	metrics.RecordToolInvocation(metrics.OutcomeSuccess)
	log.Printf("INFO: [%s] successfully fetched weather for %s", requestID, location)
	return report
}

// ErrorText renders err the way tool results report failures.
func ErrorText(err error) string {
	if err == nil || err.Error() == "" {
		return FallbackText
	}
	return "Error: " + err.Error()
}

// Call is the typed MCP handler for get_weather.
func (h *Handler) Call(ctx context.Context, _ *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: h.Handle(ctx, in.Location)},
		},
	}, nil, nil
}

// NewServer returns an MCP server with get_weather registered.
func NewServer(h *Handler) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: ServerVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: Name, Description: Description}, h.Call)
	return server
}
