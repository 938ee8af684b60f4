package health

import (
	"strings"

	"vitalens/domain/core"
)

// ============================================================================
// RAW MEASUREMENTS
// ============================================================================

// HealthDataPoint is a single time-stamped measurement for one user/metric.
// Immutable once recorded; duplicate timestamps are allowed and never deduplicated.
type HealthDataPoint struct {
	UserID    core.UserID            `json:"user_id"`
	Metric    string                 `json:"metric"`
	Timestamp core.Timestamp         `json:"timestamp"`
	Value     float64                `json:"value"`
	Unit      string                 `json:"unit"`
	Source    string                 `json:"source,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Series is the time-ordered sequence of points for one (user, metric) pair.
type Series []HealthDataPoint

// Values extracts the raw value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// NormalizeMetricName canonicalizes a free-form metric name to [a-z0-9_].
// Runs of disallowed characters collapse into a single underscore.
func NormalizeMetricName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ============================================================================
// SCORING SNAPSHOT
// ============================================================================

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

type AlcoholConsumption string

const (
	AlcoholNone     AlcoholConsumption = "none"
	AlcoholLight    AlcoholConsumption = "light"
	AlcoholModerate AlcoholConsumption = "moderate"
	AlcoholHeavy    AlcoholConsumption = "heavy"
)

// BloodPressure is a single mmHg reading.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// Cholesterol is a standard lipid panel in mg/dL.
type Cholesterol struct {
	Total         float64 `json:"total"`
	HDL           float64 `json:"hdl"`
	LDL           float64 `json:"ldl"`
	Triglycerides float64 `json:"triglycerides"`
}

// UserHealthSnapshot is the risk engine's input: a point-in-time bundle of
// demographics, vitals, lifestyle, and mental-health fields. Treat as a value
// object - constructed fresh per scoring request and never mutated.
//
// Every field except UserID is optional. Unrecorded numeric fields stay at
// their zero value; each model skips factors whose inputs read as unrecorded
// (e.g. SleepHoursPerNight == 0 means "not tracked", not zero sleep).
type UserHealthSnapshot struct {
	UserID core.UserID `json:"user_id"`

	// Demographics
	Age    int    `json:"age,omitempty"`
	Gender Gender `json:"gender,omitempty"`

	// Body metrics
	BMI      float64 `json:"bmi,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
	HeightCm float64 `json:"height_cm,omitempty"`

	// Vitals
	BloodPressure  BloodPressure `json:"blood_pressure,omitempty"`
	Cholesterol    Cholesterol   `json:"cholesterol,omitempty"`
	FastingGlucose float64       `json:"fasting_glucose,omitempty"`
	A1C            float64       `json:"a1c,omitempty"`

	// Lifestyle
	Smoking                SmokingStatus      `json:"smoking_status,omitempty"`
	Alcohol                AlcoholConsumption `json:"alcohol_consumption,omitempty"`
	ExerciseMinutesPerWeek float64            `json:"exercise_minutes_per_week,omitempty"`

	// History
	FamilyHistory []string `json:"family_history,omitempty"`
	Medications   []string `json:"medications,omitempty"`

	// Mental health
	PHQ9Score          int     `json:"phq9_score,omitempty"`
	GAD7Score          int     `json:"gad7_score,omitempty"`
	SleepHoursPerNight float64 `json:"sleep_hours_per_night,omitempty"`
	StressLevel        int     `json:"stress_level,omitempty"`
}

// FamilyHistoryContains reports whether any family-history entry contains one
// of the given terms (case-insensitive substring match).
func (s *UserHealthSnapshot) FamilyHistoryContains(terms ...string) bool {
	for _, entry := range s.FamilyHistory {
		lower := strings.ToLower(entry)
		for _, term := range terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				return true
			}
		}
	}
	return false
}
