package forecast

import (
	"fmt"
	"math"
	"time"
)

// BassModel is the Bass diffusion model of technology adoption. P is the
// coefficient of innovation, Q the coefficient of imitation and M the
// ultimate market size. The model describes adoption per period as
//
//	f(t) = M * (P+Q)^2/P * exp(-(P+Q)t) / (1 + Q/P * exp(-(P+Q)t))^2
type BassModel struct {
	P float64
	Q float64
	M float64
}

// AdoptionRate returns the modeled adoptions in period t (the
// non-cumulative sales curve).
func (m BassModel) AdoptionRate(t float64) float64 {
	pq := m.P + m.Q
	e := math.Exp(-pq * t)
	denom := 1 + (m.Q/m.P)*e
	return m.M * (pq * pq / m.P) * e / (denom * denom)
}

// CumulativeAdoption returns the modeled total adoptions through period t.
func (m BassModel) CumulativeAdoption(t float64) float64 {
	pq := m.P + m.Q
	e := math.Exp(-pq * t)
	return m.M * (1 - e) / (1 + (m.Q/m.P)*e)
}

// PeakTime returns the period of maximum adoption rate.
func (m BassModel) PeakTime() float64 {
	return math.Log(m.Q/m.P) / (m.P + m.Q)
}

// sse is the sum of squared errors of the model against observations.
func (m BassModel) sse(times, values []float64) float64 {
	sum := 0.0
	for i, t := range times {
		diff := m.AdoptionRate(t) - values[i]
		sum += diff * diff
	}
	return sum
}

// FitBass estimates Bass model parameters from an observed adoption-rate
// series by least squares: a coarse grid over plausible P, Q and M values
// followed by coordinate refinement. Times and values must have equal
// length with at least minBassPoints observations.
func FitBass(times, values []float64) (BassModel, error) {
	if len(times) != len(values) {
		return BassModel{}, fmt.Errorf("times and values length mismatch: %d vs %d", len(times), len(values))
	}
	if len(values) < minBassPoints {
		return BassModel{}, fmt.Errorf("insufficient data points: need %d, have %d", minBassPoints, len(values))
	}

	total := 0.0
	for _, v := range values {
		total += v
		if v < 0 {
			return BassModel{}, fmt.Errorf("adoption rates must be non-negative")
		}
	}
	if total <= 0 {
		return BassModel{}, fmt.Errorf("series is all zeros, nothing to fit")
	}

	best := gridSearch(times, values, total)
	best = refine(best, times, values)

	return best, nil
}

const minBassPoints = 5

// gridSearch scans plausible parameter combinations. Innovation
// coefficients cluster well below imitation coefficients in published
// Bass fits, so P gets a log-spaced sweep under 0.5 and Q a linear sweep
// up to 1. Market size is anchored on the observed cumulative total.
func gridSearch(times, values []float64, total float64) BassModel {
	best := BassModel{P: 0.01, Q: 0.3, M: total}
	bestSSE := math.Inf(1)

	for p := 0.0005; p < 0.5; p *= 1.8 {
		for q := 0.05; q <= 1.0; q += 0.05 {
			for _, scale := range []float64{0.8, 1.0, 1.3, 1.8, 2.5} {
				m := BassModel{P: p, Q: q, M: total * scale}
				if s := m.sse(times, values); s < bestSSE {
					bestSSE = s
					best = m
				}
			}
		}
	}

	return best
}

// refine polishes the grid winner with a shrinking-step pattern search
// over each parameter in turn.
func refine(model BassModel, times, values []float64) BassModel {
	bestSSE := model.sse(times, values)
	step := 0.25

	for iter := 0; iter < 40; iter++ {
		improved := false

		for _, candidate := range []BassModel{
			{P: model.P * (1 + step), Q: model.Q, M: model.M},
			{P: model.P / (1 + step), Q: model.Q, M: model.M},
			{P: model.P, Q: model.Q * (1 + step), M: model.M},
			{P: model.P, Q: model.Q / (1 + step), M: model.M},
			{P: model.P, Q: model.Q, M: model.M * (1 + step)},
			{P: model.P, Q: model.Q, M: model.M / (1 + step)},
		} {
			if candidate.P <= 0 || candidate.Q <= 0 || candidate.M <= 0 {
				continue
			}
			if s := candidate.sse(times, values); s < bestSSE {
				bestSSE = s
				model = candidate
				improved = true
			}
		}

		if !improved {
			step /= 2
			if step < 1e-4 {
				break
			}
		}
	}

	return model
}

// BassForecaster fits a Bass diffusion model to the observed series and
// extrapolates the adoption curve.
type BassForecaster struct{}

// NewBassForecaster creates a new Bass diffusion forecaster
func NewBassForecaster() *BassForecaster {
	return &BassForecaster{}
}

func init() {
	RegisterForecaster("bass", NewBassForecaster())
}

// Name returns the algorithm name
func (f *BassForecaster) Name() string {
	return "bass"
}

// Forecast fits the Bass model and predicts future adoption rates. The
// series index (1-based) serves as the model's time axis; one index step
// is one period.
func (f *BassForecaster) Forecast(data []DataPoint, config ForecastConfig) (*ForecastResult, error) {
	if len(data) < config.MinDataPoints {
		return nil, fmt.Errorf("insufficient data points: need %d, have %d", config.MinDataPoints, len(data))
	}

	times := make([]float64, len(data))
	values := make([]float64, len(data))
	for i, p := range data {
		times[i] = float64(i + 1)
		values[i] = p.Value
	}

	model, err := FitBass(times, values)
	if err != nil {
		return nil, err
	}

	fitted := make([]float64, len(data))
	residuals := make([]float64, len(data))
	for i, t := range times {
		fitted[i] = model.AdoptionRate(t)
		residuals[i] = values[i] - fitted[i]
	}
	stdError := residualStdError(residuals, 3)

	predictions := make([]ForecastPoint, config.Horizon)
	lastTime := data[len(data)-1].Time
	interval := dataInterval(data, config)

	for i := 0; i < config.Horizon; i++ {
		t := float64(len(data) + 1 + i)
		value := model.AdoptionRate(t)
		lower, upper := calculatePredictionInterval(value, stdError, config.Confidence)
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
			Algorithm: "bass",
			Parameters: map[string]interface{}{
				"p":         model.P,
				"q":         model.Q,
				"m":         model.M,
				"peak_time": model.PeakTime(),
			},
			MAPE:       CalculateMAPE(values, fitted),
			MAE:        CalculateMAE(values, fitted),
			RMSE:       CalculateRMSE(values, fitted),
			DataPoints: len(data),
		},
	}, nil
}
