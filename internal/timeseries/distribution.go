package timeseries

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DistributionProfile captures the shape of a series beyond its summary
// statistics. Supplemental context for data-quality reporting; nothing in the
// scoring path depends on it.
type DistributionProfile struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// ProfileDistribution computes skewness, kurtosis, and a coarse normality
// check combining both into a chi-squared statistic.
func ProfileDistribution(values []float64) DistributionProfile {
	if len(values) < 3 {
		return DistributionProfile{Kurtosis: 3, NormalP: 1}
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)

	skewness := calcSkewness(values, mean, stdDev)
	kurtosis := calcKurtosis(values, mean, stdDev)

	// Jarque-Bera-style approximation: large skew or excess kurtosis pushes
	// the statistic up and the p-value down.
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chi := distuv.ChiSquared{K: 2}
	p := 1 - chi.CDF(testStat*testStat)

	return DistributionProfile{
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: p > 0.05,
		NormalP:  p,
	}
}

func calcSkewness(values []float64, mean, stdDev float64) float64 {
	if len(values) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(values))
	sum := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	// Adjusted Fisher-Pearson coefficient
	skew := sum / n
	return skew * math.Sqrt(n*(n-1)) / (n - 2)
}

func calcKurtosis(values []float64, mean, stdDev float64) float64 {
	if len(values) < 4 || stdDev == 0 {
		return 3.0 // Normal kurtosis
	}

	n := float64(len(values))
	sum := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	kurtosis := sum / n
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}
	return kurtosis + 3
}
