package risk

import (
	"time"

	"vitalens/domain/health"
)

// CardiovascularModel scores heart-disease risk. HDL is subtractive, so the
// total floors at 0 before capping at 100.
type CardiovascularModel struct{}

func (CardiovascularModel) Disease() Disease { return DiseaseCardiovascular }

func (m CardiovascularModel) Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment {
	score := 0
	details := make(map[string]interface{})
	add := func(factor string, points int) {
		score += points
		details[factor] = points
	}

	switch {
	case snap.Age >= 70:
		add("age", 30)
	case snap.Age >= 60:
		add("age", 20)
	case snap.Age >= 50:
		add("age", 15)
	case snap.Age >= 40:
		add("age", 10)
	}

	switch {
	case snap.Cholesterol.Total >= 280:
		add("total_cholesterol", 20)
	case snap.Cholesterol.Total >= 240:
		add("total_cholesterol", 15)
	}

	// HDL is protective above 60; only recorded readings count.
	switch {
	case snap.Cholesterol.HDL >= 60:
		add("hdl_protective", -5)
	case snap.Cholesterol.HDL > 0 && snap.Cholesterol.HDL < 40:
		add("low_hdl", 10)
	}

	switch snap.Smoking {
	case health.SmokingCurrent:
		add("smoking", 20)
	case health.SmokingFormer:
		add("smoking", 5)
	}

	switch {
	case snap.BloodPressure.Systolic >= 160:
		add("systolic_bp", 20)
	case snap.BloodPressure.Systolic >= 140:
		add("systolic_bp", 15)
	case snap.BloodPressure.Systolic >= 130:
		add("systolic_bp", 10)
	}

	if snap.FamilyHistoryContains("diabetes") || snap.A1C >= 6.5 {
		add("diabetes_indicator", 15)
	}

	return newAssessment(snap, DiseaseCardiovascular, "10-year", score,
		m.recommendations(snap, clampScore(score)), details, now)
}

func (m CardiovascularModel) recommendations(snap *health.UserHealthSnapshot, score int) []string {
	recs := tierRecommendations(GetRiskLevel(score),
		"Schedule a lipid panel and cardiovascular workup",
		"Keep up heart-healthy diet and regular aerobic exercise")

	if snap.Smoking == health.SmokingCurrent {
		recs = append(recs, "Smoking cessation is the single most effective step to cut cardiovascular risk")
	}
	if snap.Cholesterol.Total >= 240 {
		recs = append(recs, "Discuss cholesterol management options with your physician")
	}
	if snap.BloodPressure.Systolic >= 130 {
		recs = append(recs, "Monitor blood pressure at home and reduce sodium intake")
	}
	if snap.BMI >= 25 {
		recs = append(recs, "Weight management through diet and exercise supports heart health")
	}

	return recs
}
