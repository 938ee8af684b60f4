package timeseries

import (
	"math"

	"vitalens/internal/statgeom"
)

// Trend classifies the direction of a series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// TrendAnalysis is a pure function of one series snapshot.
type TrendAnalysis struct {
	Slope       float64 `json:"slope"`
	Correlation float64 `json:"correlation"`
	PValue      float64 `json:"p_value"`
	Trend       Trend   `json:"trend"`
}

// SeasonalityResult reports lag-period autocorrelation strength.
type SeasonalityResult struct {
	HasSeasonality bool    `json:"has_seasonality"`
	Strength       float64 `json:"strength"`
}

// DefaultSeasonalPeriod assumes daily samples with a weekly cycle.
const DefaultSeasonalPeriod = 7

// DefaultIQRMultiplier is the classic Tukey fence factor.
const DefaultIQRMultiplier = 1.5

// DetectTrend regresses values against their index and classifies direction.
//
// The p-value is a coarse screening heuristic, not a significance test:
// 0.01 when |correlation| > 0.5, else 0.1. Classification thresholds
// (|slope| > 0.1 together with p < 0.05) are load-bearing for downstream
// consumers; do not swap in a real t-test.
func DetectTrend(values []float64) TrendAnalysis {
	if len(values) < 3 {
		return TrendAnalysis{Slope: 0, Correlation: 0, PValue: 1, Trend: TrendStable}
	}

	idx := make([]float64, len(values))
	for i := range idx {
		idx[i] = float64(i)
	}

	fit, err := statgeom.LinearRegression(idx, values)
	if err != nil {
		return TrendAnalysis{Slope: 0, Correlation: 0, PValue: 1, Trend: TrendStable}
	}
	r := statgeom.Correlation(idx, values)

	pValue := 0.1
	if math.Abs(r) > 0.5 {
		pValue = 0.01
	}

	trend := TrendStable
	switch {
	case fit.Slope > 0.1 && pValue < 0.05:
		trend = TrendIncreasing
	case fit.Slope < -0.1 && pValue < 0.05:
		trend = TrendDecreasing
	}

	return TrendAnalysis{Slope: fit.Slope, Correlation: r, PValue: pValue, Trend: trend}
}

// DetectSeasonality computes the lag-period autocorrelation of values.
// Fewer than 2*period samples yields {false, 0}. A non-positive period
// falls back to DefaultSeasonalPeriod.
func DetectSeasonality(values []float64, period int) SeasonalityResult {
	if period <= 0 {
		period = DefaultSeasonalPeriod
	}
	n := len(values)
	if n < 2*period {
		return SeasonalityResult{}
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	// Unnormalized lag product over the total sum of squares.
	var numerator, denominator float64
	for i := 0; i < n-period; i++ {
		numerator += (values[i] - mean) * (values[i+period] - mean)
	}
	for _, v := range values {
		denominator += (v - mean) * (v - mean)
	}

	if denominator == 0 {
		return SeasonalityResult{}
	}

	ac := numerator / denominator
	return SeasonalityResult{
		HasSeasonality: math.Abs(ac) > 0.3,
		Strength:       math.Abs(ac),
	}
}

// RemoveOutliers partitions values by the IQR fence
// [q25 - m*iqr, q75 + m*iqr]. Both slices preserve original input order.
// A non-positive multiplier falls back to DefaultIQRMultiplier.
func RemoveOutliers(values []float64, multiplier float64) (cleaned, outliers []float64, err error) {
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}

	basic, err := statgeom.BasicStats(values)
	if err != nil {
		return nil, nil, err
	}

	iqr := basic.Q75 - basic.Q25
	lower := basic.Q25 - multiplier*iqr
	upper := basic.Q75 + multiplier*iqr

	cleaned = make([]float64, 0, len(values))
	outliers = make([]float64, 0)
	for _, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		} else {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned, outliers, nil
}

// InterpolateMissing fills nil entries by linear interpolation between the
// nearest non-nil neighbors, weighted by index distance. Leading and trailing
// nil runs copy the nearest available value; an all-nil input returns zeros.
func InterpolateMissing(values []*float64) []float64 {
	out := make([]float64, len(values))

	for i := 0; i < len(values); i++ {
		if values[i] != nil {
			out[i] = *values[i]
			continue
		}

		prev, next := -1, -1
		for j := i - 1; j >= 0; j-- {
			if values[j] != nil {
				prev = j
				break
			}
		}
		for j := i + 1; j < len(values); j++ {
			if values[j] != nil {
				next = j
				break
			}
		}

		switch {
		case prev >= 0 && next >= 0:
			span := float64(next - prev)
			frac := float64(i-prev) / span
			out[i] = *values[prev] + frac*(*values[next]-*values[prev])
		case prev >= 0:
			out[i] = *values[prev]
		case next >= 0:
			out[i] = *values[next]
		default:
			out[i] = 0
		}
	}
	return out
}
