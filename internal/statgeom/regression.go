package statgeom

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"vitalens/domain/core"
)

// RegressionResult holds an ordinary-least-squares fit.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// Correlation computes the Pearson correlation of x and y.
//
// Degenerate input (mismatched lengths, fewer than two points, or a constant
// series) returns 0 rather than an error. That saturation policy is
// contractual: constant vitals are common and must read as "no relationship",
// not as a failure.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// LinearRegression fits y = intercept + slope*x by ordinary least squares.
// R2 follows 1 - SSres/SStot, with a flat target series yielding 0.
func LinearRegression(x, y []float64) (RegressionResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return RegressionResult{}, core.NewEmptyInputError("linear regression")
	}
	if len(x) != len(y) {
		return RegressionResult{}, core.NewEmptyInputError("linear regression (length mismatch)")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		// Constant x: no fit exists, report a flat line through the mean.
		slope = 0
		intercept = stat.Mean(y, nil)
	}

	meanY := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i := range y {
		pred := intercept + slope*x[i]
		ssRes += (y[i] - pred) * (y[i] - pred)
		ssTot += (y[i] - meanY) * (y[i] - meanY)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return RegressionResult{Slope: slope, Intercept: intercept, R2: r2}, nil
}
