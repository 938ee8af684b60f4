package features

import (
	"vitalens/internal/statgeom"
)

// Voice feature defaults. Values approximate a typical adult speaker so a
// sparse bag still yields a usable vector.
var voiceDefaults = FeatureVector{
	"f0_mean":     120,
	"f0_std":      20,
	"f0_range":    50,
	"jitter":      0.01,
	"shimmer":     0.04,
	"hnr":         15,
	"speech_rate": 4.5,
}

// extractVoice derives pitch statistics from the f0 sample array and copies
// the acoustic scalars through, defaulting anything absent.
func extractVoice(raw map[string]interface{}) FeatureVector {
	fv := cloneDefaults(voiceDefaults)

	if samples := floatSlice(raw, "f0_samples"); len(samples) > 0 {
		if basic, err := statgeom.BasicStats(samples); err == nil {
			fv["f0_mean"] = basic.Mean
			fv["f0_std"] = basic.Std
			fv["f0_range"] = basic.Max - basic.Min
		}
	}

	fv["jitter"] = floatField(raw, "jitter", fv["jitter"])
	fv["shimmer"] = floatField(raw, "shimmer", fv["shimmer"])
	fv["hnr"] = floatField(raw, "hnr", fv["hnr"])
	fv["speech_rate"] = floatField(raw, "speech_rate", fv["speech_rate"])

	return fv
}

func cloneDefaults(defaults FeatureVector) FeatureVector {
	fv := make(FeatureVector, len(defaults))
	for k, v := range defaults {
		fv[k] = v
	}
	return fv
}
