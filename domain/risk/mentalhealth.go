package risk

import (
	"time"

	"vitalens/domain/health"
)

// MentalHealthModel scores depression/anxiety risk from screening
// instruments (PHQ-9, GAD-7) plus sleep and stress.
type MentalHealthModel struct{}

func (MentalHealthModel) Disease() Disease { return DiseaseMentalHealth }

func (m MentalHealthModel) Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment {
	score := 0
	details := make(map[string]interface{})
	add := func(factor string, points int) {
		score += points
		details[factor] = points
	}

	switch {
	case snap.PHQ9Score >= 20:
		add("phq9", 40)
	case snap.PHQ9Score >= 15:
		add("phq9", 30)
	case snap.PHQ9Score >= 10:
		add("phq9", 20)
	case snap.PHQ9Score >= 5:
		add("phq9", 10)
	}

	switch {
	case snap.GAD7Score >= 15:
		add("gad7", 30)
	case snap.GAD7Score >= 10:
		add("gad7", 20)
	case snap.GAD7Score >= 5:
		add("gad7", 10)
	}

	// Zero means sleep was not tracked, not zero sleep.
	if snap.SleepHoursPerNight > 0 {
		switch {
		case snap.SleepHoursPerNight < 6:
			add("short_sleep", 15)
		case snap.SleepHoursPerNight < 7:
			add("short_sleep", 8)
		}
	}

	switch {
	case snap.StressLevel >= 8:
		add("stress", 15)
	case snap.StressLevel >= 6:
		add("stress", 10)
	}

	return newAssessment(snap, DiseaseMentalHealth, "current", score,
		m.recommendations(snap, clampScore(score)), details, now)
}

func (m MentalHealthModel) recommendations(snap *health.UserHealthSnapshot, score int) []string {
	recs := tierRecommendations(GetRiskLevel(score),
		"Connect with a mental health professional for a full evaluation",
		"Re-take the PHQ-9 and GAD-7 screens in 3 months")

	if snap.PHQ9Score >= 10 {
		recs = append(recs, "Your depression screen suggests follow-up; therapy and support groups help")
	}
	if snap.GAD7Score >= 10 {
		recs = append(recs, "Anxiety-reduction practice such as breathing exercises or mindfulness")
	}
	if snap.SleepHoursPerNight > 0 && snap.SleepHoursPerNight < 7 {
		recs = append(recs, "Prioritize 7-9 hours of sleep with a consistent bedtime")
	}
	if snap.StressLevel >= 6 {
		recs = append(recs, "Build daily stress-management time: exercise, meditation, or time outdoors")
	}

	return recs
}
