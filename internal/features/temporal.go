package features

import (
	"github.com/montanaflynn/stats"
)

var temporalDefaults = FeatureVector{
	"hour_coverage":  0.5,
	"weekend_ratio":  2.0 / 7.0,
	"mean_gap_hours": 24,
	"gap_std_hours":  0,
	"gap_regularity": 0.5,
}

// extractTemporal characterizes when measurements arrive: how much of the
// day is covered, the weekday/weekend mix, and inter-reading gap regularity.
func extractTemporal(raw map[string]interface{}) FeatureVector {
	fv := cloneDefaults(temporalDefaults)

	if hours := floatSlice(raw, "hours"); len(hours) > 0 {
		seen := make(map[int]bool)
		for _, h := range hours {
			bucket := int(h) % 24
			if bucket < 0 {
				bucket += 24
			}
			seen[bucket] = true
		}
		fv["hour_coverage"] = float64(len(seen)) / 24
	}

	if weekdays := floatSlice(raw, "weekdays"); len(weekdays) > 0 {
		weekend := 0
		for _, d := range weekdays {
			// Saturday=6, Sunday=0 in time.Weekday numbering.
			if int(d)%7 == 0 || int(d)%7 == 6 {
				weekend++
			}
		}
		fv["weekend_ratio"] = float64(weekend) / float64(len(weekdays))
	}

	if gaps := floatSlice(raw, "gap_hours"); len(gaps) > 0 {
		mean, _ := stats.Mean(gaps)
		std, _ := stats.StandardDeviation(gaps)
		fv["mean_gap_hours"] = mean
		fv["gap_std_hours"] = std
		if mean > 0 {
			fv["gap_regularity"] = 1 / (1 + std/mean)
		}
	}

	return fv
}
