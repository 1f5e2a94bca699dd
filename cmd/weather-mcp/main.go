package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	httpapi "github.com/i474232898/weather-mcp/internal/api/http"
	"github.com/i474232898/weather-mcp/internal/config"
	"github.com/i474232898/weather-mcp/internal/scheduler"
	"github.com/i474232898/weather-mcp/internal/tool"
	"github.com/i474232898/weather-mcp/internal/weather"
	"github.com/i474232898/weather-mcp/internal/weather/providers"
)

func main() {
	// stdout carries the stdio MCP transport; keep logs on stderr.
	log.SetOutput(os.Stderr)

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	service := weather.NewService(
		providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingBaseURL),
		providers.NewOpenMeteoProvider(httpClient, cfg.ForecastBaseURL),
	)
	server := tool.NewServer(tool.NewHandler(service))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport == config.TransportStdio {
		log.Printf("INFO: serving %s over stdio", tool.ServerName)
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			log.Fatalf("mcp server stopped: %v", err)
		}
		log.Println("INFO: shutting down")
		return
	}

	serveHTTP(ctx, cfg, service, server)
}

func serveHTTP(ctx context.Context, cfg *config.AppConfig, service *weather.Service, server *mcp.Server) {
	// Upstream probe backing /health.
	sched := scheduler.New(cfg.ProbeLocation, cfg.ProbeInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-mcp",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware; the access log shares stderr with the rest of the logs.
	app.Use(logger.New(logger.Config{Output: os.Stderr}))
	app.Use(recover.New())

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Reporter: service,
		Prober:   sched,
		MCP:      mcpHandler,
	})

	go func() {
		log.Printf("INFO: serving %s over http on :%s", tool.ServerName, cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
