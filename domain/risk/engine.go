package risk

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vitalens/domain/core"
	"vitalens/domain/health"
)

// Engine runs the five risk models over one snapshot. The model list is
// fixed at construction - declaration order is the tie-break order for
// TopRisks - and the engine itself holds no mutable state between calls.
type Engine struct {
	models []Model

	// Now anchors screening dates; override in tests for fixed outputs.
	Now func() time.Time
}

// NewEngine wires the five models in their canonical declaration order:
// diabetes, cardiovascular, hypertension, mental health, cancer screening.
func NewEngine() *Engine {
	return &Engine{
		models: []Model{
			DiabetesModel{},
			CardiovascularModel{},
			HypertensionModel{},
			MentalHealthModel{},
			CancerScreeningModel{},
		},
		Now: time.Now,
	}
}

// Models returns the model list in declaration order.
func (e *Engine) Models() []Model {
	out := make([]Model, len(e.models))
	copy(out, e.models)
	return out
}

// Assess runs a single model by disease name.
func (e *Engine) Assess(disease Disease, snap *health.UserHealthSnapshot) (RiskAssessment, error) {
	for _, m := range e.models {
		if m.Disease() == disease {
			return m.Assess(snap, e.Now()), nil
		}
	}
	return RiskAssessment{}, core.NewUnknownModelError(string(disease))
}

// ComprehensiveReport fans the snapshot out to all five models concurrently
// and assembles the aggregate report. The models are pure over an immutable
// snapshot, so the fan-out is an optimization only - a sequential run yields
// identical results.
func (e *Engine) ComprehensiveReport(ctx context.Context, snap *health.UserHealthSnapshot) (*ComprehensiveRiskReport, error) {
	now := e.Now()
	assessments := make([]RiskAssessment, len(e.models))

	g, _ := errgroup.WithContext(ctx)
	for i, m := range e.models {
		i, m := i, m
		g.Go(func() error {
			assessments[i] = m.Assess(snap, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, a := range assessments {
		total += a.RiskScore
	}
	overall := int(math.Round(float64(total) / float64(len(assessments))))

	return &ComprehensiveRiskReport{
		ID:                 core.ReportID(core.NewID()),
		UserID:             snap.UserID,
		Assessments:        assessments,
		OverallRiskScore:   overall,
		TopRisks:           topRisks(assessments),
		ActionableInsights: actionableInsights(assessments),
		ScreeningSchedule:  screeningSchedule(assessments),
		GeneratedAt:        core.NewTimestamp(now),
	}, nil
}

// topRisks ranks the top 3 by score descending. The sort is stable over the
// declaration-ordered slice, which is exactly the documented tie-break.
func topRisks(assessments []RiskAssessment) []TopRisk {
	ranked := make([]RiskAssessment, len(assessments))
	copy(ranked, assessments)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RiskScore > ranked[j].RiskScore
	})

	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	out := make([]TopRisk, n)
	for i := 0; i < n; i++ {
		out[i] = TopRisk{
			Disease:   ranked[i].Disease,
			RiskScore: ranked[i].RiskScore,
			RiskLevel: ranked[i].RiskLevel,
		}
	}
	return out
}

// actionableInsights derives cross-model heuristics plus two constant
// insights. Order is the display order.
func actionableInsights(assessments []RiskAssessment) []string {
	var insights []string

	// Highest-scoring disease, flagged when it reaches HIGH.
	top := assessments[0]
	for _, a := range assessments[1:] {
		if a.RiskScore > top.RiskScore {
			top = a
		}
	}
	if top.RiskLevel == RiskHigh || top.RiskLevel == RiskCritical {
		insights = append(insights, fmt.Sprintf(
			"Your highest risk area is %s (score %d) - prioritize its recommendations",
			top.Disease, top.RiskScore))
	}

	moderatePlus := 0
	exerciseMentions := 0
	weightMentions := 0
	for _, a := range assessments {
		if a.RiskLevel != RiskLow {
			moderatePlus++
		}
		if mentionsAny(a.Recommendations, "exercise", "aerobic") {
			exerciseMentions++
		}
		if mentionsAny(a.Recommendations, "weight") {
			weightMentions++
		}
	}

	if moderatePlus >= 3 {
		insights = append(insights, fmt.Sprintf(
			"%d of 5 risk areas are at moderate level or above - a broad lifestyle review is warranted",
			moderatePlus))
	}
	if exerciseMentions >= 3 {
		insights = append(insights, "Regular exercise would improve several risk areas at once")
	}
	if weightMentions >= 2 {
		insights = append(insights, "Weight management appears across multiple risk areas")
	}

	insights = append(insights,
		"Schedule an annual comprehensive checkup",
		"Track blood pressure, weight, and activity regularly to keep risk scores current")

	return insights
}

func mentionsAny(recommendations []string, terms ...string) bool {
	for _, rec := range recommendations {
		lower := strings.ToLower(rec)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

var screeningTests = map[Disease]string{
	DiseaseDiabetes:       "HbA1c and fasting glucose panel",
	DiseaseCardiovascular: "Lipid panel and cardiovascular exam",
	DiseaseHypertension:   "Blood pressure check",
	DiseaseMentalHealth:   "PHQ-9 / GAD-7 screen",
	DiseaseCancer:         "Age-appropriate cancer screening",
}

// screeningSchedule turns each assessment's next-screening date into a
// schedule row, sorted URGENT < SOON < ROUTINE with the declaration order
// preserved inside each band.
func screeningSchedule(assessments []RiskAssessment) []ScreeningEntry {
	entries := make([]ScreeningEntry, 0, len(assessments))
	for _, a := range assessments {
		entries = append(entries, ScreeningEntry{
			Test:            screeningTests[a.Disease],
			Reason:          fmt.Sprintf("%s risk level %s", a.Disease, a.RiskLevel),
			Urgency:         screeningUrgency(a.RiskLevel),
			RecommendedDate: a.NextScreening,
			Frequency:       screeningFrequency(a.RiskLevel),
		})
	}

	rank := map[Urgency]int{UrgencyUrgent: 0, UrgencySoon: 1, UrgencyRoutine: 2}
	sort.SliceStable(entries, func(i, j int) bool {
		return rank[entries[i].Urgency] < rank[entries[j].Urgency]
	})
	return entries
}
