package features

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalens/domain/core"
)

func TestExtract_DefaultsFillEveryKey(t *testing.T) {
	declared := map[Domain][]string{
		DomainVoice:    {"f0_mean", "f0_std", "f0_range", "jitter", "shimmer", "hnr", "speech_rate"},
		DomainActivity: {"steps_mean", "steps_max", "step_consistency", "activity_regularity", "active_minutes", "calories_burned"},
		DomainSleep:    {"sleep_duration_mean", "sleep_duration_std", "bedtime_consistency", "sleep_efficiency", "awakenings"},
		DomainTemporal: {"hour_coverage", "weekend_ratio", "mean_gap_hours", "gap_std_hours", "gap_regularity"},
	}

	for domain, keys := range declared {
		fv, err := Extract(domain, nil)
		require.NoError(t, err, domain)
		require.Len(t, fv, len(keys), domain)
		for _, key := range keys {
			_, ok := fv[key]
			assert.True(t, ok, "%s missing key %s", domain, key)
		}
	}
}

func TestExtract_UnknownDomain(t *testing.T) {
	_, err := Extract(Domain("genome"), nil)
	assert.ErrorIs(t, err, core.ErrUnknownDomain)
}

func TestExtractVoice_F0Statistics(t *testing.T) {
	fv, err := Extract(DomainVoice, map[string]interface{}{
		"f0_samples": []float64{100, 120, 140},
		"jitter":     0.02,
	})
	require.NoError(t, err)

	assert.InDelta(t, 120, fv["f0_mean"], 1e-9)
	assert.InDelta(t, 40, fv["f0_range"], 1e-9)
	assert.InDelta(t, 16.3299, fv["f0_std"], 1e-3)
	assert.Equal(t, 0.02, fv["jitter"])
	assert.Equal(t, voiceDefaults["shimmer"], fv["shimmer"], "absent scalar keeps default")
}

func TestExtractVoice_NonFiniteRawFallsBack(t *testing.T) {
	fv, err := Extract(DomainVoice, map[string]interface{}{
		"jitter": math.NaN(),
		"hnr":    math.Inf(1),
	})
	require.NoError(t, err)
	assert.Equal(t, voiceDefaults["jitter"], fv["jitter"])
	assert.Equal(t, voiceDefaults["hnr"], fv["hnr"])
}

func TestExtractActivity(t *testing.T) {
	fv, err := Extract(DomainActivity, map[string]interface{}{
		"daily_steps":         []float64{5000, 5000, 5000},
		"hourly_distribution": []float64{0, 0, 10, 0},
	})
	require.NoError(t, err)

	assert.InDelta(t, 5000, fv["steps_mean"], 1e-9)
	assert.InDelta(t, 1, fv["step_consistency"], 1e-9, "zero CV is perfect consistency")
	assert.InDelta(t, 1, fv["activity_regularity"], 1e-9, "single-bucket activity is fully regular")
}

func TestExtractActivity_UniformDistributionIsIrregular(t *testing.T) {
	fv, err := Extract(DomainActivity, map[string]interface{}{
		"hourly_distribution": []float64{1, 1, 1, 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, fv["activity_regularity"], 1e-9)
}

func TestExtractSleep(t *testing.T) {
	fv, err := Extract(DomainSleep, map[string]interface{}{
		"durations":       []float64{6, 8},
		"bedtime_minutes": []float64{1380, 1380},
	})
	require.NoError(t, err)

	assert.InDelta(t, 7, fv["sleep_duration_mean"], 1e-9)
	assert.InDelta(t, 1, fv["sleep_duration_std"], 1e-9)
	assert.InDelta(t, 1, fv["bedtime_consistency"], 1e-9, "identical bedtimes")
}

func TestExtractSleep_BedtimeJitterFloorsAtZero(t *testing.T) {
	// Std far beyond 60 minutes: consistency clamps at 0, never negative.
	fv, err := Extract(DomainSleep, map[string]interface{}{
		"bedtime_minutes": []float64{1200, 1440, 120, 600},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fv["bedtime_consistency"])
}

func TestExtractTemporal(t *testing.T) {
	fv, err := Extract(DomainTemporal, map[string]interface{}{
		"hours":     []float64{1, 2, 3},
		"weekdays":  []float64{0, 6, 3},
		"gap_hours": []float64{10, 10},
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.0/24.0, fv["hour_coverage"], 1e-9)
	assert.InDelta(t, 2.0/3.0, fv["weekend_ratio"], 1e-9)
	assert.InDelta(t, 10, fv["mean_gap_hours"], 1e-9)
	assert.InDelta(t, 1, fv["gap_regularity"], 1e-9)
}

func TestExtract_MixedTypeArrays(t *testing.T) {
	fv, err := Extract(DomainActivity, map[string]interface{}{
		"daily_steps": []interface{}{4000, 6000.0, "bad", nil},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5000, fv["steps_mean"], 1e-9, "non-numeric elements skipped")
}

func TestValidateFeatures(t *testing.T) {
	assert.NoError(t, ValidateFeatures(FeatureVector{"a": 1, "b": -2}))
	assert.ErrorIs(t, ValidateFeatures(FeatureVector{"a": math.NaN()}), core.ErrInvalidFeature)
	assert.ErrorIs(t, ValidateFeatures(FeatureVector{"a": math.Inf(-1)}), core.ErrInvalidFeature)
}

func TestExtractAll(t *testing.T) {
	results, err := ExtractAll(context.Background(), map[Domain]map[string]interface{}{
		DomainSleep: {"durations": []float64{7, 7.5}},
	})
	require.NoError(t, err)
	require.Len(t, results, len(AllDomains), "every domain runs even without raw data")

	for _, domain := range AllDomains {
		assert.NotEmpty(t, results[domain], domain)
	}
	assert.InDelta(t, 7.25, results[DomainSleep]["sleep_duration_mean"], 1e-9)
}
