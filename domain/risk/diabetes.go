package risk

import (
	"fmt"
	"time"

	"vitalens/domain/health"
)

// DiabetesModel scores type-2 diabetes risk from additive factor buckets.
type DiabetesModel struct{}

func (DiabetesModel) Disease() Disease { return DiseaseDiabetes }

func (m DiabetesModel) Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment {
	score := 0
	details := make(map[string]interface{})
	add := func(factor string, points int) {
		score += points
		details[factor] = points
	}

	switch {
	case snap.Age >= 45:
		add("age", 15)
	case snap.Age >= 35:
		add("age", 10)
	}

	switch {
	case snap.BMI >= 30:
		add("bmi", 25)
	case snap.BMI >= 25:
		add("bmi", 15)
	}

	if snap.FamilyHistoryContains("diabetes") {
		add("family_history", 20)
	}

	switch {
	case snap.FastingGlucose >= 126:
		add("fasting_glucose", 20)
	case snap.FastingGlucose >= 100:
		add("fasting_glucose", 15)
	}

	switch {
	case snap.A1C >= 6.5:
		add("a1c", 20)
	case snap.A1C >= 5.7:
		add("a1c", 15)
	}

	if snap.ExerciseMinutesPerWeek < 150 {
		add("insufficient_exercise", 10)
	}

	if snap.BloodPressure.Systolic >= 140 {
		add("elevated_bp", 10)
	}

	return newAssessment(snap, DiseaseDiabetes, "10-year", score,
		m.recommendations(snap, clampScore(score)), details, now)
}

func (m DiabetesModel) recommendations(snap *health.UserHealthSnapshot, score int) []string {
	recs := tierRecommendations(GetRiskLevel(score),
		"Schedule an HbA1c and fasting glucose panel with your physician",
		"Discuss diabetes prevention strategies at your next checkup")

	if snap.BMI >= 25 {
		recs = append(recs, fmt.Sprintf(
			"Weight management: a 5-7%% reduction from BMI %.1f significantly lowers diabetes risk", snap.BMI))
	}
	if snap.ExerciseMinutesPerWeek < 150 {
		recs = append(recs, "Build up to at least 150 minutes of moderate exercise per week")
	}
	if snap.FastingGlucose >= 100 || snap.A1C >= 5.7 {
		recs = append(recs, "Limit refined sugars and monitor carbohydrate intake")
	}

	return recs
}
