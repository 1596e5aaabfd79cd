// Package router wires the Fiber application: middlewares and routes.
package router

import (
	"github.com/crawltrends/crawltrends/internal/config"
	"github.com/crawltrends/crawltrends/internal/handlers"
	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/middleware"
	"github.com/crawltrends/crawltrends/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, fetcher services.Fetcher, cache services.StatsCache, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, fetcher, cache, cfg.Data.CommonCrawl.StatsURL)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Trend Analysis Routes
	v1.Get("/trends/declining", h.DecliningTrends)

	// Forecast Routes (wildcard because MIME types contain a slash)
	v1.Get("/trends/declining/+/forecast", h.Forecast)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, fetcher services.Fetcher, cache services.StatsCache, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Crawltrends Analyzer",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, fetcher, cache, cfg)

	return app
}
