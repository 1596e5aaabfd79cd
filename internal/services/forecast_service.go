package services

import (
	"context"
	"time"

	"github.com/crawltrends/crawltrends/internal/analytics/forecast"
	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/models"
)

// ForecastRequest represents a forecast request for one MIME type
type ForecastRequest struct {
	MimeType string
	Method   string
	Horizon  int
}

// MimeForecast is the forecast outcome for one declining MIME type
type MimeForecast struct {
	MimeType    string
	Method      string
	History     models.MimeHistory
	Predictions []models.ForecastPointView
	ModelInfo   forecast.ModelInfo
}

// ForecastService forecasts the future usage of a declining MIME type
type ForecastService struct {
	logger   *logging.Logger
	analysis *AnalysisService
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, analysis *AnalysisService) *ForecastService {
	return &ForecastService{
		logger:   logger,
		analysis: analysis,
	}
}

// Execute runs the decline analysis and forecasts the requested MIME
// type's usage curve. Only MIME types classified as declining can be
// forecast; the history of anything else is not retained.
func (s *ForecastService) Execute(ctx context.Context, req *ForecastRequest) (*MimeForecast, error) {
	startExec := time.Now()

	forecaster, err := forecast.GetForecaster(req.Method)
	if err != nil {
		return nil, NewServiceErrorWithDetails("INVALID_METHOD", err.Error(),
			map[string]interface{}{"available_methods": forecast.ListForecasters()})
	}

	result, err := s.analysis.Execute(ctx)
	if err != nil {
		return nil, err
	}

	history, ok := result.Declining[req.MimeType]
	if !ok {
		return nil, NewServiceError("MIME_NOT_DECLINING",
			"MIME type is not classified as declining: "+req.MimeType)
	}

	config := forecast.DefaultForecastConfig()
	if req.Horizon > 0 {
		config.Horizon = req.Horizon
	}

	forecastResult, err := forecaster.Forecast(toDataPoints(history, config.Interval), config)
	if err != nil {
		return nil, NewServiceErrorWithDetails("INSUFFICIENT_DATA", err.Error(),
			map[string]interface{}{"mime_type": req.MimeType, "crawls": len(history)})
	}

	predictions := make([]models.ForecastPointView, len(forecastResult.Predictions))
	for i, p := range forecastResult.Predictions {
		predictions[i] = models.ForecastPointView{
			Period:     len(history) + 1 + i,
			Value:      p.Value,
			LowerBound: p.LowerBound,
			UpperBound: p.UpperBound,
		}
	}

	s.logger.Info("Forecast completed",
		"mime_type", req.MimeType,
		"method", req.Method,
		"horizon", config.Horizon,
		"latency_ms", time.Since(startExec).Milliseconds())

	return &MimeForecast{
		MimeType:    req.MimeType,
		Method:      req.Method,
		History:     history,
		Predictions: predictions,
		ModelInfo:   forecastResult.ModelInfo,
	}, nil
}

// toDataPoints places the history on a synthetic time axis: one crawl is
// one period. Crawl ids only embed year and week, so equal spacing at the
// configured interval stands in for exact crawl dates.
func toDataPoints(history models.MimeHistory, interval time.Duration) []forecast.DataPoint {
	base := time.Unix(0, 0).UTC()

	points := make([]forecast.DataPoint, len(history))
	for i, stat := range history {
		points[i] = forecast.DataPoint{
			Time:  base.Add(interval * time.Duration(i)),
			Value: stat.Percentage,
		}
	}
	return points
}
