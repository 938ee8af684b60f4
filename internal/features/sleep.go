package features

import (
	"math"

	"github.com/montanaflynn/stats"
)

var sleepDefaults = FeatureVector{
	"sleep_duration_mean": 7,
	"sleep_duration_std":  1,
	"bedtime_consistency": 0.5,
	"sleep_efficiency":    0.85,
	"awakenings":          1,
}

// extractSleep summarizes nightly durations and bedtime spread.
// bedtime_consistency = max(0, 1 - std(bedtimeMinutes)/60): an hour of
// bedtime jitter zeroes the feature.
func extractSleep(raw map[string]interface{}) FeatureVector {
	fv := cloneDefaults(sleepDefaults)

	if durations := floatSlice(raw, "durations"); len(durations) > 0 {
		mean, _ := stats.Mean(durations)
		std, _ := stats.StandardDeviation(durations)
		fv["sleep_duration_mean"] = mean
		fv["sleep_duration_std"] = std
	}

	if bedtimes := floatSlice(raw, "bedtime_minutes"); len(bedtimes) > 0 {
		std, _ := stats.StandardDeviation(bedtimes)
		fv["bedtime_consistency"] = math.Max(0, 1-std/60)
	}

	fv["sleep_efficiency"] = floatField(raw, "efficiency", fv["sleep_efficiency"])
	fv["awakenings"] = floatField(raw, "awakenings", fv["awakenings"])

	return fv
}
