package forecast

import (
	"fmt"
	"math"
	"time"
)

// LinearForecaster fits an ordinary least-squares trend line to the series.
type LinearForecaster struct{}

// NewLinearForecaster creates a new linear trend forecaster
func NewLinearForecaster() *LinearForecaster {
	return &LinearForecaster{}
}

func init() {
	RegisterForecaster("linear", NewLinearForecaster())
}

// Name returns the algorithm name
func (f *LinearForecaster) Name() string {
	return "linear"
}

// Forecast generates predictions by extrapolating the fitted trend line.
func (f *LinearForecaster) Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error) {
	if len(data) < config.MinDataPoints {
		return nil, fmt.Errorf("insufficient data points: need %d, have %d", config.MinDataPoints, len(data))
	}

	n := float64(len(data))
	sumX, sumY, sumXY, sumX2 := 0.0, 0.0, 0.0, 0.0
	for i, p := range data {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return nil, fmt.Errorf("cannot fit trend line to a single-point series")
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	fitted := make([]float64, len(data))
	residuals := make([]float64, len(data))
	values := make([]float64, len(data))
	for i := range data {
		fitted[i] = intercept + slope*float64(i)
		values[i] = data[i].Value
		residuals[i] = values[i] - fitted[i]
	}
	stdError := residualStdError(residuals, 2)

	predictions := make([]ForecastPoint, config.Horizon)
	lastTime := data[len(data)-1].Time
	interval := dataInterval(data, config)
	meanX := sumX / n

	for i := 0; i < config.Horizon; i++ {
		x := float64(len(data) + i)
		value := intercept + slope*x

		// Prediction error widens the further the extrapolation
		// leaves the observed range.
		xDiff := x - meanX
		predStdError := stdError * math.Sqrt(1+1/n+xDiff*xDiff/(sumX2-sumX*sumX/n))
		lower, upper := calculatePredictionInterval(value, predStdError, config.Confidence)

		predictions[i] = ForecastPoint{
			Time:       lastTime.Add(interval * time.Duration(1+i)),
			Value:      value,
			LowerBound: lower,
			UpperBound: upper,
		}
	}

	return &ForecastResult{
		Predictions: predictions,
		Fitted:      fitted,
		Residuals:   residuals,
		ModelInfo: ModelInfo{
			Algorithm: "linear",
			Parameters: map[string]interface{}{
				"slope":     slope,
				"intercept": intercept,
			},
			MAPE:       CalculateMAPE(values, fitted),
			MAE:        CalculateMAE(values, fitted),
			RMSE:       CalculateRMSE(values, fitted),
			DataPoints: len(data),
		},
	}, nil
}
