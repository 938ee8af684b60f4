package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"vitalens/domain/core"
	"vitalens/domain/health"
	"vitalens/internal/timeseries"
)

// DefaultResampleInterval is the anchor spacing used when none is given.
const DefaultResampleInterval = 60 * time.Minute

// QualityReport scores a point stream on three axes plus their mean.
type QualityReport struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Accuracy     float64 `json:"accuracy"`
	Overall      float64 `json:"overall"`
}

// metricRange bounds plausible values for a known metric.
type metricRange struct {
	Lo, Hi float64
}

// Plausibility ranges per normalized metric name. Unknown metrics get the
// wide catch-all so accuracy never penalizes novel device channels.
var plausibleRanges = map[string]metricRange{
	"heart_rate":     {30, 220},
	"bp_systolic":    {70, 250},
	"bp_diastolic":   {40, 150},
	"temperature":    {35, 42},
	"steps":          {0, 50000},
	"sleep_duration": {0, 24},
}

var catchAllRange = metricRange{-1000, 1_000_000}

// GroupByMetric buckets points by normalized metric name and sorts each
// bucket by ascending timestamp. Duplicate timestamps keep input order.
func GroupByMetric(points []health.HealthDataPoint) map[string]health.Series {
	groups := make(map[string]health.Series)
	for _, p := range points {
		key := health.NormalizeMetricName(p.Metric)
		groups[key] = append(groups[key], p)
	}
	for _, series := range groups {
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
	}
	return groups
}

// Resample collapses an irregular stream onto interval-spaced anchors from
// the first to the last timestamp. Each populated window (centered on its
// anchor) emits one synthetic point carrying the window's first point's
// non-value fields, the anchor as timestamp, and the window mean as value.
// Empty windows emit nothing - the result is not a complete regular grid.
func Resample(points []health.HealthDataPoint, interval time.Duration) []health.HealthDataPoint {
	if interval <= 0 {
		interval = DefaultResampleInterval
	}
	if len(points) == 0 {
		return nil
	}

	sorted := make([]health.HealthDataPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	first := sorted[0].Timestamp.Time()
	last := sorted[len(sorted)-1].Timestamp.Time()
	half := interval / 2

	out := make([]health.HealthDataPoint, 0, len(sorted))
	cursor := 0
	for anchor := first; !anchor.Add(-half).After(last); anchor = anchor.Add(interval) {
		windowEnd := anchor.Add(half)

		start := cursor
		sum := 0.0
		for cursor < len(sorted) && sorted[cursor].Timestamp.Time().Before(windowEnd) {
			sum += sorted[cursor].Value
			cursor++
		}
		if cursor == start {
			continue
		}

		lead := sorted[start]
		out = append(out, health.HealthDataPoint{
			UserID:    lead.UserID,
			Metric:    lead.Metric,
			Timestamp: core.NewTimestamp(anchor),
			Value:     sum / float64(cursor-start),
			Unit:      lead.Unit,
			Source:    lead.Source,
			Metadata:  lead.Metadata,
		})
	}
	return out
}

// Normalize min-max scales values into [0,1]. A flat series maps every
// element to 0.5 - an explicit convention, not an error.
func Normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}

// Standardize maps values to signed z-scores. A zero-variance series maps to
// all zeros, unlike statgeom.ZScores which propagates NaN; both conventions
// are contractual and deliberately not unified.
func Standardize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values)

	out := make([]float64, len(values))
	if std == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// DataQuality scores a point stream: completeness is the finite-value
// fraction, consistency is one minus the IQR-outlier fraction, accuracy is
// the fraction inside the metric's plausibility range. Overall is their
// unweighted mean.
func DataQuality(points []health.HealthDataPoint) (QualityReport, error) {
	if len(points) == 0 {
		return QualityReport{}, core.NewEmptyInputError("data quality")
	}

	finite := make([]float64, 0, len(points))
	inRange := 0
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		finite = append(finite, p.Value)

		bounds, ok := plausibleRanges[health.NormalizeMetricName(p.Metric)]
		if !ok {
			bounds = catchAllRange
		}
		if p.Value >= bounds.Lo && p.Value <= bounds.Hi {
			inRange++
		}
	}

	completeness := float64(len(finite)) / float64(len(points))

	consistency := 0.0
	if len(finite) > 0 {
		_, outliers, err := timeseries.RemoveOutliers(finite, timeseries.DefaultIQRMultiplier)
		if err != nil {
			return QualityReport{}, err
		}
		consistency = 1 - float64(len(outliers))/float64(len(finite))
	}

	accuracy := 0.0
	if len(finite) > 0 {
		accuracy = float64(inRange) / float64(len(finite))
	}

	return QualityReport{
		Completeness: completeness,
		Consistency:  consistency,
		Accuracy:     accuracy,
		Overall:      (completeness + consistency + accuracy) / 3,
	}, nil
}
