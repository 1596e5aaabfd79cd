package trend

// SmoothingWindow is the moving average window applied to raw usage series.
// Three consecutive crawls even out single-crawl sampling noise without
// hiding a year-scale trend.
const SmoothingWindow = 3

// MovingAverage computes a sliding moving average over consecutive values
// with the given window (step 1), producing len(values)-window+1 points.
// Returns nil when the series is shorter than the window.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}

	smoothed := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			smoothed = append(smoothed, sum/float64(window))
		}
	}

	return smoothed
}

// TrimTrailingZeros drops trailing points equal to exactly 0.0, which mark
// crawls where the MIME type was no longer observed. May return an empty
// slice when every point is zero.
func TrimTrailingZeros(values []float64) []float64 {
	end := len(values)
	for end > 0 && values[end-1] == 0.0 {
		end--
	}
	return values[:end]
}

// Diffs computes consecutive first differences (length-2 sliding window).
func Diffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	return diffs
}

// Mean averages the values; zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
