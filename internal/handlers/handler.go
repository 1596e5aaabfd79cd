// Package handlers contains the HTTP handlers of the analyzer service.
package handlers

import (
	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	analysisService *services.AnalysisService
	forecastService *services.ForecastService
	statsURL        string
}

// New creates a new handler instance
func New(logger *logging.Logger, fetcher services.Fetcher, cache services.StatsCache, statsURL string) *Handler {
	analysisService := services.NewAnalysisService(logger, fetcher, cache, statsURL)
	forecastService := services.NewForecastService(logger, analysisService)

	return &Handler{
		logger:          logger,
		analysisService: analysisService,
		forecastService: forecastService,
		statsURL:        statsURL,
	}
}
