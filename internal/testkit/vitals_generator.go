package testkit

import (
	"math"
	"math/rand"
	"time"

	"vitalens/domain/core"
	"vitalens/domain/health"
)

// VitalsGeneratorConfig configures the synthetic vitals generator
type VitalsGeneratorConfig struct {
	UserID        string    `json:"user_id"`
	Metric        string    `json:"metric"`
	Baseline      float64   `json:"baseline"`
	DailyDrift    float64   `json:"daily_drift"`
	NoiseStd      float64   `json:"noise_std"`
	WeeklySwing   float64   `json:"weekly_swing"`
	PointsPerDay  int       `json:"points_per_day"`
	Days          int       `json:"days"`
	StartDate     time.Time `json:"start_date"`
	Seed          int64     `json:"seed"`
	OutlierEvery  int       `json:"outlier_every"`
	OutlierOffset float64   `json:"outlier_offset"`
}

// DefaultVitalsConfig returns a week of hourly heart-rate readings
func DefaultVitalsConfig() VitalsGeneratorConfig {
	return VitalsGeneratorConfig{
		UserID:       "user-test",
		Metric:       "heart_rate",
		Baseline:     72,
		DailyDrift:   0,
		NoiseStd:     3,
		WeeklySwing:  0,
		PointsPerDay: 24,
		Days:         7,
		StartDate:    time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

// VitalsGenerator produces deterministic synthetic measurement streams
type VitalsGenerator struct {
	config VitalsGeneratorConfig
	rng    *rand.Rand
}

// NewVitalsGenerator creates a generator with a seeded RNG
func NewVitalsGenerator(config VitalsGeneratorConfig) *VitalsGenerator {
	return &VitalsGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate emits the configured stream in timestamp order
func (g *VitalsGenerator) Generate() []health.HealthDataPoint {
	cfg := g.config
	total := cfg.Days * cfg.PointsPerDay
	points := make([]health.HealthDataPoint, 0, total)

	step := 24 * time.Hour / time.Duration(cfg.PointsPerDay)
	for i := 0; i < total; i++ {
		ts := cfg.StartDate.Add(time.Duration(i) * step)
		dayFrac := float64(i) / float64(cfg.PointsPerDay)

		value := cfg.Baseline +
			cfg.DailyDrift*dayFrac +
			cfg.WeeklySwing*math.Sin(2*math.Pi*dayFrac/7) +
			g.rng.NormFloat64()*cfg.NoiseStd

		if cfg.OutlierEvery > 0 && i%cfg.OutlierEvery == cfg.OutlierEvery-1 {
			value += cfg.OutlierOffset
		}

		points = append(points, health.HealthDataPoint{
			UserID:    core.UserID(cfg.UserID),
			Metric:    cfg.Metric,
			Timestamp: core.NewTimestamp(ts),
			Value:     value,
			Unit:      "bpm",
			Source:    "testkit",
		})
	}
	return points
}

// HighRiskSnapshot returns a snapshot that trips most diabetes and
// cardiovascular factors - handy for exercising CRITICAL paths
func HighRiskSnapshot() *health.UserHealthSnapshot {
	return &health.UserHealthSnapshot{
		UserID: "user-high-risk",
		Age:    62,
		Gender: health.GenderMale,
		BMI:    33,
		BloodPressure: health.BloodPressure{
			Systolic:  162,
			Diastolic: 98,
		},
		Cholesterol: health.Cholesterol{
			Total: 285,
			HDL:   34,
		},
		FastingGlucose:         132,
		A1C:                    7.1,
		Smoking:                health.SmokingCurrent,
		Alcohol:                health.AlcoholHeavy,
		ExerciseMinutesPerWeek: 30,
		FamilyHistory:          []string{"type 2 diabetes", "lung cancer"},
		PHQ9Score:              12,
		GAD7Score:              8,
		SleepHoursPerNight:     5.5,
		StressLevel:            8,
	}
}

// LowRiskSnapshot returns a snapshot with no notable risk factors
func LowRiskSnapshot() *health.UserHealthSnapshot {
	return &health.UserHealthSnapshot{
		UserID: "user-low-risk",
		Age:    28,
		Gender: health.GenderFemale,
		BMI:    22,
		BloodPressure: health.BloodPressure{
			Systolic:  112,
			Diastolic: 72,
		},
		Cholesterol: health.Cholesterol{
			Total: 170,
			HDL:   65,
		},
		FastingGlucose:         88,
		A1C:                    5.1,
		Smoking:                health.SmokingNever,
		Alcohol:                health.AlcoholLight,
		ExerciseMinutesPerWeek: 220,
		SleepHoursPerNight:     7.5,
		StressLevel:            3,
	}
}
