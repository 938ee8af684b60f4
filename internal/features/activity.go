package features

import (
	"math"

	"github.com/montanaflynn/stats"
)

var activityDefaults = FeatureVector{
	"steps_mean":          5000,
	"steps_max":           8000,
	"step_consistency":    0.5,
	"activity_regularity": 0.5,
	"active_minutes":      30,
	"calories_burned":     2000,
}

// extractActivity summarizes daily step counts and the hourly activity
// distribution. step_consistency is an inverse coefficient of variation
// mapped into (0,1]; activity_regularity is one minus the normalized Shannon
// entropy of the hourly distribution (1 = all activity in one hour).
func extractActivity(raw map[string]interface{}) FeatureVector {
	fv := cloneDefaults(activityDefaults)

	if daily := floatSlice(raw, "daily_steps"); len(daily) > 0 {
		mean, _ := stats.Mean(daily)
		max, _ := stats.Max(daily)
		std, _ := stats.StandardDeviation(daily)

		fv["steps_mean"] = mean
		fv["steps_max"] = max
		if mean > 0 {
			cv := std / mean
			fv["step_consistency"] = 1 / (1 + cv)
		}
	}

	if hourly := floatSlice(raw, "hourly_distribution"); len(hourly) > 1 {
		if regularity, ok := entropyRegularity(hourly); ok {
			fv["activity_regularity"] = regularity
		}
	}

	fv["active_minutes"] = floatField(raw, "active_minutes", fv["active_minutes"])
	fv["calories_burned"] = floatField(raw, "calories_burned", fv["calories_burned"])

	return fv
}

// entropyRegularity returns 1 - H/Hmax over the distribution, where Hmax is
// log2 of the bucket count. A zero-total or negative distribution reports
// not-ok so the caller keeps the default.
func entropyRegularity(buckets []float64) (float64, bool) {
	total := 0.0
	for _, b := range buckets {
		if b < 0 {
			return 0, false
		}
		total += b
	}
	if total == 0 {
		return 0, false
	}

	entropy := 0.0
	for _, b := range buckets {
		p := b / total
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	return 1 - entropy/math.Log2(float64(len(buckets))), true
}
