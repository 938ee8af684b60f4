package risk

import (
	"time"

	"vitalens/domain/health"
)

// CancerScreeningModel differs from the other four: the score is
// informational (age + history + smoking) and the actionable output is the
// guideline-driven screening list keyed by age, gender, and smoking status.
type CancerScreeningModel struct{}

func (CancerScreeningModel) Disease() Disease { return DiseaseCancer }

func (m CancerScreeningModel) Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment {
	score := 0
	details := make(map[string]interface{})
	add := func(factor string, points int) {
		score += points
		details[factor] = points
	}

	switch {
	case snap.Age >= 65:
		add("age", 20)
	case snap.Age >= 50:
		add("age", 10)
	}

	if snap.FamilyHistoryContains("cancer", "carcinoma", "tumor") {
		add("family_history", 25)
	}

	switch snap.Smoking {
	case health.SmokingCurrent:
		add("smoking", 20)
	case health.SmokingFormer:
		add("smoking", 10)
	}

	return newAssessment(snap, DiseaseCancer, "lifetime", score,
		m.guidelines(snap), details, now)
}

// guidelines builds the screening list. Entries follow USPSTF-style age and
// gender thresholds; order is the display order.
func (m CancerScreeningModel) guidelines(snap *health.UserHealthSnapshot) []string {
	var recs []string

	if snap.Gender == health.GenderFemale && snap.Age >= 40 {
		recs = append(recs, "Annual mammogram")
	}
	if snap.Gender == health.GenderFemale && snap.Age >= 21 {
		recs = append(recs, "Pap smear every 3 years")
	}
	if snap.Gender == health.GenderMale && snap.Age >= 50 {
		recs = append(recs, "Discuss PSA testing with your physician")
	}
	if snap.Age >= 45 {
		recs = append(recs, "Colonoscopy every 10 years")
	}
	if (snap.Smoking == health.SmokingCurrent || snap.Smoking == health.SmokingFormer) && snap.Age >= 55 {
		recs = append(recs, "Annual low-dose CT lung cancer screening")
	}
	recs = append(recs, "Annual skin check for new or changing moles")

	return recs
}
