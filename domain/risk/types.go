package risk

import (
	"math"
	"time"

	"vitalens/domain/core"
	"vitalens/domain/health"
)

// Disease identifies one of the five scored conditions.
type Disease string

const (
	DiseaseDiabetes       Disease = "diabetes"
	DiseaseCardiovascular Disease = "cardiovascular"
	DiseaseHypertension   Disease = "hypertension"
	DiseaseMentalHealth   Disease = "mental_health"
	DiseaseCancer         Disease = "cancer_screening"
)

// RiskLevel is the tier derived from a 0-100 score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Urgency orders screening entries for display.
type Urgency string

const (
	UrgencyUrgent  Urgency = "URGENT"
	UrgencySoon    Urgency = "SOON"
	UrgencyRoutine Urgency = "ROUTINE"
)

// RiskAssessment is one model's output for one snapshot. Produced once per
// (user, disease, snapshot) and never mutated; a newer assessment supersedes.
type RiskAssessment struct {
	ID              core.AssessmentID      `json:"id"`
	UserID          core.UserID            `json:"user_id"`
	Disease         Disease                `json:"disease"`
	RiskScore       int                    `json:"risk_score"`
	RiskLevel       RiskLevel              `json:"risk_level"`
	Probability     float64                `json:"probability"`
	Timeframe       string                 `json:"timeframe"`
	Recommendations []string               `json:"recommendations"`
	NextScreening   core.Timestamp         `json:"next_screening"`
	Details         map[string]interface{} `json:"details,omitempty"`
	CreatedAt       core.Timestamp         `json:"created_at"`
}

// TopRisk is a compact ranking entry in the comprehensive report.
type TopRisk struct {
	Disease   Disease   `json:"disease"`
	RiskScore int       `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// ScreeningEntry is one row of the derived screening schedule.
type ScreeningEntry struct {
	Test            string         `json:"test"`
	Reason          string         `json:"reason"`
	Urgency         Urgency        `json:"urgency"`
	RecommendedDate core.Timestamp `json:"recommended_date"`
	Frequency       string         `json:"frequency"`
}

// ComprehensiveRiskReport aggregates exactly the five assessments for one
// snapshot plus the derived rankings, insights, and schedule.
type ComprehensiveRiskReport struct {
	ID                 core.ReportID    `json:"id"`
	UserID             core.UserID      `json:"user_id"`
	Assessments        []RiskAssessment `json:"assessments"`
	OverallRiskScore   int              `json:"overall_risk_score"`
	TopRisks           []TopRisk        `json:"top_risks"`
	ActionableInsights []string         `json:"actionable_insights"`
	ScreeningSchedule  []ScreeningEntry `json:"screening_schedule"`
	GeneratedAt        core.Timestamp   `json:"generated_at"`
}

// Model is a pure scoring function over an immutable snapshot. now anchors
// next-screening dates so results stay reproducible in tests.
type Model interface {
	Disease() Disease
	Assess(snap *health.UserHealthSnapshot, now time.Time) RiskAssessment
}

// GetRiskLevel maps a 0-100 score to its tier.
func GetRiskLevel(score int) RiskLevel {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// scoreProbability maps a score through sigmoid(0.1*(score-50)), clamped.
func scoreProbability(score int) float64 {
	p := 1 / (1 + math.Exp(-0.1*(float64(score)-50)))
	return math.Min(1, math.Max(0, p))
}

// nextScreeningDate offsets now by 1/3/6/12 months for scores
// >=75 / >=50 / >=25 / below.
func nextScreeningDate(score int, now time.Time) time.Time {
	switch {
	case score >= 75:
		return now.AddDate(0, 1, 0)
	case score >= 50:
		return now.AddDate(0, 3, 0)
	case score >= 25:
		return now.AddDate(0, 6, 0)
	default:
		return now.AddDate(0, 12, 0)
	}
}

// clampScore caps an additive score into [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// screeningUrgency derives display urgency from the risk tier.
func screeningUrgency(level RiskLevel) Urgency {
	switch level {
	case RiskCritical:
		return UrgencyUrgent
	case RiskHigh:
		return UrgencySoon
	default:
		return UrgencyRoutine
	}
}

// screeningFrequency derives the repeat cadence from the risk tier.
func screeningFrequency(level RiskLevel) string {
	switch level {
	case RiskCritical, RiskHigh:
		return "Every 3 months"
	case RiskModerate:
		return "Every 6 months"
	default:
		return "Annually"
	}
}

// newAssessment assembles the common envelope around a clamped score.
func newAssessment(snap *health.UserHealthSnapshot, disease Disease, timeframe string,
	score int, recommendations []string, details map[string]interface{}, now time.Time) RiskAssessment {

	score = clampScore(score)
	return RiskAssessment{
		ID:              core.AssessmentID(core.NewID()),
		UserID:          snap.UserID,
		Disease:         disease,
		RiskScore:       score,
		RiskLevel:       GetRiskLevel(score),
		Probability:     scoreProbability(score),
		Timeframe:       timeframe,
		Recommendations: recommendations,
		NextScreening:   core.NewTimestamp(nextScreeningDate(score, now)),
		Details:         details,
		CreatedAt:       core.NewTimestamp(now),
	}
}
