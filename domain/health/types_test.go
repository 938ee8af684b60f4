package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMetricName(t *testing.T) {
	cases := map[string]string{
		"Heart Rate":     "heart_rate",
		"heart_rate":     "heart_rate",
		"BP / Systolic":  "bp_systolic",
		"SpO2 (%)":       "spo2",
		"  sleep score ": "sleep_score",
		"steps":          "steps",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeMetricName(in), "input %q", in)
	}
}

func TestFamilyHistoryContains(t *testing.T) {
	snap := &UserHealthSnapshot{
		UserID:        "user-1",
		FamilyHistory: []string{"Type 2 Diabetes", "maternal breast carcinoma"},
	}

	assert.True(t, snap.FamilyHistoryContains("diabetes"))
	assert.True(t, snap.FamilyHistoryContains("cancer", "carcinoma", "tumor"))
	assert.False(t, snap.FamilyHistoryContains("hypertension"))

	empty := &UserHealthSnapshot{UserID: "user-2"}
	assert.False(t, empty.FamilyHistoryContains("diabetes"))
}

func TestSeriesValues(t *testing.T) {
	s := Series{
		{Metric: "steps", Value: 100},
		{Metric: "steps", Value: 200},
	}
	assert.Equal(t, []float64{100, 200}, s.Values())
}
