package risk

import (
	"time"

	"vitalens/domain/health"
)

// HypertensionModel scores hypertension risk, weighting the current reading
// by ACC/AHA stage bands before the usual demographic and lifestyle factors.
type HypertensionModel struct{}

func (HypertensionModel) Disease() Disease { return DiseaseHypertension }

func (m HypertensionModel) Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment {
	score := 0
	details := make(map[string]interface{})
	add := func(factor string, points int) {
		score += points
		details[factor] = points
	}

	sys, dia := snap.BloodPressure.Systolic, snap.BloodPressure.Diastolic
	switch {
	case sys >= 180 || dia >= 120:
		add("bp_reading_crisis", 40)
	case sys >= 140 || dia >= 90:
		add("bp_reading_stage2", 30)
	case sys >= 130 || dia >= 80:
		add("bp_reading_stage1", 20)
	case sys >= 120:
		add("bp_reading_elevated", 10)
	}

	switch {
	case snap.Age >= 65:
		add("age", 15)
	case snap.Age >= 45:
		add("age", 10)
	}

	switch {
	case snap.BMI >= 30:
		add("bmi", 15)
	case snap.BMI >= 25:
		add("bmi", 10)
	}

	if snap.FamilyHistoryContains("hypertension", "high blood pressure") {
		add("family_history", 15)
	}

	if snap.ExerciseMinutesPerWeek < 150 {
		add("insufficient_exercise", 8)
	}

	if snap.Alcohol == health.AlcoholModerate || snap.Alcohol == health.AlcoholHeavy {
		add("alcohol", 7)
	}

	return newAssessment(snap, DiseaseHypertension, "5-year", score,
		m.recommendations(snap, clampScore(score)), details, now)
}

func (m HypertensionModel) recommendations(snap *health.UserHealthSnapshot, score int) []string {
	recs := tierRecommendations(GetRiskLevel(score),
		"Start regular home blood pressure monitoring and share readings with your physician",
		"Check blood pressure at least every 6 months")

	if snap.BloodPressure.Systolic >= 130 || snap.BloodPressure.Diastolic >= 80 {
		recs = append(recs, "Adopt the DASH eating pattern and keep sodium under 2300mg per day")
	}
	if snap.BMI >= 25 {
		recs = append(recs, "Weight reduction lowers systolic pressure roughly 1mmHg per kg lost")
	}
	if snap.Alcohol == health.AlcoholModerate || snap.Alcohol == health.AlcoholHeavy {
		recs = append(recs, "Reduce alcohol consumption")
	}
	if snap.ExerciseMinutesPerWeek < 150 {
		recs = append(recs, "Regular aerobic exercise helps control blood pressure")
	}

	return recs
}
