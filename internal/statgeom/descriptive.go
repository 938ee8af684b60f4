package statgeom

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"vitalens/domain/core"
)

// StatisticalResult holds descriptive statistics for one value array.
// Derived and stateless - recomputed on demand, never persisted.
type StatisticalResult struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// BasicStats computes descriptive statistics over values.
//
// Quartiles use floor-index selection against the sorted copy (index n/4 and
// 3n/4), not interpolation; the median averages the two middle elements when
// n is even. Downstream outlier fences depend on this exact quantile method.
func BasicStats(values []float64) (StatisticalResult, error) {
	if len(values) == 0 {
		return StatisticalResult{}, core.NewEmptyInputError("basic stats")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return StatisticalResult{
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
		Q25:    sorted[n/4],
		Q75:    sorted[3*n/4],
	}, nil
}

// ZScores returns the absolute z-score of each element.
//
// When the series has zero variance every output is NaN; callers that need a
// finite fallback should use pipeline.Standardize, which maps the same
// degenerate case to zeros instead. The two conventions are intentionally
// kept separate.
func ZScores(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, core.NewEmptyInputError("z-scores")
	}

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Abs((v - mean) / std)
	}
	return out, nil
}

// MovingAverage computes the simple moving average with the given window.
// Output length is len(values)-window+1.
func MovingAverage(values []float64, window int) ([]float64, error) {
	if window <= 0 || window > len(values) {
		return nil, core.NewInvalidWindowError(window, len(values))
	}

	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// ExponentialMovingAverage computes the EMA with smoothing factor alpha in
// (0,1]. The first output element equals values[0].
func ExponentialMovingAverage(values []float64, alpha float64) ([]float64, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, core.NewInvalidAlphaError(alpha)
	}
	if len(values) == 0 {
		return nil, core.NewEmptyInputError("exponential moving average")
	}

	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
