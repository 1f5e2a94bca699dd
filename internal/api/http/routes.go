package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-mcp/internal/scheduler"
	"github.com/i474232898/weather-mcp/internal/tool"
	"github.com/i474232898/weather-mcp/internal/weather"
)

var validate = validator.New()

// Reporter produces the text report for a location.
type Reporter interface {
	Report(ctx context.Context, location string) (string, error)
}

// Prober exposes the last upstream probe result.
type Prober interface {
	Status() scheduler.ProbeStatus
}

// Deps bundles what the HTTP surface serves.
type Deps struct {
	Reporter Reporter
	Prober   Prober       // optional
	MCP      http.Handler // optional, mounted at /mcp
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "weather-mcp",
		}
		if deps.Prober != nil {
			probe := deps.Prober.Status()
			if !probe.LastRun.IsZero() {
				body["probe"] = probe
				if !probe.OK {
					body["status"] = "degraded"
				}
			}
		}
		return c.JSON(body)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.MCP != nil {
		app.All("/mcp", adaptor.HTTPHandler(deps.MCP))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req := weatherQuery{Location: c.Query("location")}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).
				SendString(tool.ErrorText(errors.New("location must be a non-empty string")))
		}

		report, err := deps.Reporter.Report(c.UserContext(), req.Location)
		if err != nil {
			return c.Status(statusFor(err)).SendString(tool.ErrorText(err))
		}
		return c.SendString(report)
	})
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	Location string `validate:"required,min=1"`
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	var noMatch *weather.NoMatchError
	var upstream *weather.UpstreamError
	switch {
	case errors.As(err, &noMatch):
		return fiber.StatusNotFound
	case errors.As(err, &upstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
