// Package forecast provides adoption-curve forecasting for usage time
// series. Forecasters register themselves by name; callers look them up
// through the registry.
package forecast

import (
	"fmt"
	"math"
	"time"
)

// DataPoint is a single observation of the series being forecast.
type DataPoint struct {
	Time  time.Time
	Value float64
}

// ForecastPoint represents a single forecast prediction
type ForecastPoint struct {
	Time       time.Time
	Value      float64
	LowerBound float64
	UpperBound float64
}

// ModelInfo contains metadata about the forecast model
type ModelInfo struct {
	Algorithm  string                 `json:"algorithm"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	MAPE       float64                `json:"mape,omitempty"` // Mean Absolute Percentage Error
	MAE        float64                `json:"mae,omitempty"`  // Mean Absolute Error
	RMSE       float64                `json:"rmse,omitempty"` // Root Mean Squared Error
	DataPoints int                    `json:"data_points"`    // Number of data points used
}

// ForecastResult contains the forecast predictions and model information
type ForecastResult struct {
	Predictions []ForecastPoint `json:"predictions"`
	Fitted      []float64       `json:"fitted,omitempty"`    // Fitted values for historical data
	Residuals   []float64       `json:"residuals,omitempty"` // Residuals (actual - fitted)
	ModelInfo   ModelInfo       `json:"model_info"`
}

// ForecastConfig holds configuration for forecasting
type ForecastConfig struct {
	Horizon       int           // Number of periods to forecast
	Confidence    float64       // Confidence level for prediction intervals (0-1)
	MinDataPoints int           // Minimum data points required
	Interval      time.Duration // Time interval between data points
}

// DefaultForecastConfig returns default forecast configuration. One period
// corresponds to one crawl, which Common Crawl publishes roughly monthly.
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		Horizon:       6,
		Confidence:    0.95,
		MinDataPoints: 5,
		Interval:      30 * 24 * time.Hour,
	}
}

// Forecaster interface for all forecasting algorithms
type Forecaster interface {
	// Name returns the algorithm name
	Name() string
	// Forecast generates predictions for future time periods
	Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error)
}

// Registry holds available forecasters
var forecasterRegistry = make(map[string]Forecaster)

// RegisterForecaster adds a forecaster to the registry
func RegisterForecaster(name string, forecaster Forecaster) {
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name
func GetForecaster(name string) (Forecaster, error) {
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns list of available forecaster names
func ListForecasters() []string {
	names := make([]string, 0, len(forecasterRegistry))
	for name := range forecasterRegistry {
		names = append(names, name)
	}
	return names
}

// CalculateMAPE calculates Mean Absolute Percentage Error
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}

// calculatePredictionInterval calculates prediction interval bounds
func calculatePredictionInterval(value, stdError, confidence float64) (lower, upper float64) {
	// Z-score for confidence level (approximate)
	var z float64
	switch {
	case confidence >= 0.99:
		z = 2.576
	case confidence >= 0.95:
		z = 1.96
	case confidence >= 0.90:
		z = 1.645
	default:
		z = 1.96
	}

	margin := z * stdError
	return value - margin, value + margin
}

// residualStdError computes the standard error of the fit residuals with
// the given degrees of freedom consumed by the model.
func residualStdError(residuals []float64, params int) float64 {
	if len(residuals) <= params {
		return 0
	}

	sumSq := 0.0
	for _, r := range residuals {
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(residuals)-params))
}

// dataInterval resolves the spacing between predictions: the configured
// interval, or the observed spacing of the input series.
func dataInterval(data []DataPoint, config ForecastConfig) time.Duration {
	if config.Interval > 0 {
		return config.Interval
	}
	if len(data) >= 2 {
		return data[1].Time.Sub(data[0].Time)
	}
	return 30 * 24 * time.Hour
}
