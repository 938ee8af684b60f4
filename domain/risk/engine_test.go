package risk

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalens/domain/health"
)

func fixedEngine() *Engine {
	e := NewEngine()
	e.Now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func TestGetRiskLevel_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{24, RiskLow},
		{25, RiskModerate},
		{49, RiskModerate},
		{50, RiskHigh},
		{74, RiskHigh},
		{75, RiskCritical},
		{100, RiskCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GetRiskLevel(tc.score), "score %d", tc.score)
	}
}

func TestDiabetesModel_SaturatedScenario(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:                 "user-1",
		Age:                    50,
		BMI:                    32,
		FamilyHistory:          []string{"diabetes"},
		FastingGlucose:         130,
		A1C:                    7.0,
		ExerciseMinutesPerWeek: 50,
		BloodPressure:          health.BloodPressure{Systolic: 145},
	}

	a := DiabetesModel{}.Assess(snap, time.Now())

	// 15+25+20+20+20+10+10 = 120, capped to 100.
	assert.Equal(t, 100, a.RiskScore)
	assert.Equal(t, RiskCritical, a.RiskLevel)
	assert.Equal(t, DiseaseDiabetes, a.Disease)
	assert.NotEmpty(t, a.Recommendations)
}

func TestDiabetesModel_Buckets(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:                 "user-1",
		Age:                    36,
		BMI:                    26,
		FastingGlucose:         105,
		A1C:                    5.8,
		ExerciseMinutesPerWeek: 200,
	}

	a := DiabetesModel{}.Assess(snap, time.Now())
	// 10 (age>=35) + 15 (bmi>=25) + 15 (glucose>=100) + 15 (a1c>=5.7)
	assert.Equal(t, 55, a.RiskScore)
	assert.Equal(t, RiskHigh, a.RiskLevel)
}

func TestCardiovascularModel_HDLProtective(t *testing.T) {
	base := &health.UserHealthSnapshot{
		UserID:      "user-1",
		Age:         52,
		Cholesterol: health.Cholesterol{Total: 250, HDL: 65},
	}
	a := CardiovascularModel{}.Assess(base, time.Now())
	// 15 (age>=50) + 15 (chol>=240) - 5 (HDL>=60)
	assert.Equal(t, 25, a.RiskScore)

	lowHDL := &health.UserHealthSnapshot{
		UserID:      "user-1",
		Cholesterol: health.Cholesterol{HDL: 35},
	}
	b := CardiovascularModel{}.Assess(lowHDL, time.Now())
	assert.Equal(t, 10, b.RiskScore, "low HDL adds 10")

	unrecorded := &health.UserHealthSnapshot{UserID: "user-1"}
	c := CardiovascularModel{}.Assess(unrecorded, time.Now())
	assert.Equal(t, 0, c.RiskScore, "HDL zero means unrecorded, floors at 0")
}

func TestHypertensionModel_CrisisBand(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:                 "user-1",
		BloodPressure:          health.BloodPressure{Systolic: 185, Diastolic: 95},
		ExerciseMinutesPerWeek: 200,
	}
	a := HypertensionModel{}.Assess(snap, time.Now())
	assert.Equal(t, 40, a.RiskScore, "crisis band wins over stage 2")
}

func TestMentalHealthModel_UnrecordedSleepSkipped(t *testing.T) {
	snap := &health.UserHealthSnapshot{UserID: "user-1", PHQ9Score: 16}
	a := MentalHealthModel{}.Assess(snap, time.Now())
	assert.Equal(t, 30, a.RiskScore, "zero sleep hours must not add short-sleep points")
}

func TestCancerScreeningModel_Guidelines(t *testing.T) {
	now := time.Now()

	woman := &health.UserHealthSnapshot{
		UserID: "user-1",
		Age:    45,
		Gender: health.GenderFemale,
	}
	a := CancerScreeningModel{}.Assess(woman, now)
	assert.Contains(t, a.Recommendations, "Annual mammogram")
	assert.Contains(t, a.Recommendations, "Pap smear every 3 years")
	assert.Contains(t, a.Recommendations, "Colonoscopy every 10 years")
	assert.NotContains(t, a.Recommendations, "Discuss PSA testing with your physician")

	smoker := &health.UserHealthSnapshot{
		UserID:  "user-2",
		Age:     58,
		Gender:  health.GenderMale,
		Smoking: health.SmokingFormer,
	}
	b := CancerScreeningModel{}.Assess(smoker, now)
	assert.Contains(t, b.Recommendations, "Annual low-dose CT lung cancer screening")
	assert.Contains(t, b.Recommendations, "Discuss PSA testing with your physician")

	// Skin check is universal, even for an empty snapshot.
	c := CancerScreeningModel{}.Assess(&health.UserHealthSnapshot{UserID: "user-3"}, now)
	assert.Contains(t, c.Recommendations, "Annual skin check for new or changing moles")
}

func TestCancerScreeningModel_HistorySubstringMatch(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:        "user-1",
		FamilyHistory: []string{"maternal breast carcinoma"},
	}
	a := CancerScreeningModel{}.Assess(snap, time.Now())
	assert.Equal(t, 25, a.RiskScore)
}

func TestProbability_SigmoidAtMidpoint(t *testing.T) {
	snap := &health.UserHealthSnapshot{UserID: "user-1", PHQ9Score: 20, GAD7Score: 5}
	a := MentalHealthModel{}.Assess(snap, time.Now())
	require.Equal(t, 50, a.RiskScore)
	assert.InDelta(t, 0.5, a.Probability, 1e-9, "sigmoid(0) at score 50")
}

func TestNextScreening_Offsets(t *testing.T) {
	e := fixedEngine()
	now := e.Now()

	critical, err := e.Assess(DiseaseDiabetes, &health.UserHealthSnapshot{
		UserID:         "user-1",
		Age:            50,
		BMI:            32,
		FamilyHistory:  []string{"diabetes"},
		FastingGlucose: 130,
		A1C:            7.0,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, critical.RiskScore, 75)
	assert.Equal(t, now.AddDate(0, 1, 0), critical.NextScreening.Time())

	low, err := e.Assess(DiseaseMentalHealth, &health.UserHealthSnapshot{UserID: "user-1"})
	require.NoError(t, err)
	require.Less(t, low.RiskScore, 25)
	assert.Equal(t, now.AddDate(0, 12, 0), low.NextScreening.Time())
}

func TestEngine_UnknownModel(t *testing.T) {
	_, err := fixedEngine().Assess(Disease("phrenology"), &health.UserHealthSnapshot{UserID: "u"})
	assert.Error(t, err)
}

func TestComprehensiveReport_OverallAndTopRisks(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:         "user-1",
		Age:            62,
		BMI:            33,
		BloodPressure:  health.BloodPressure{Systolic: 162, Diastolic: 98},
		Cholesterol:    health.Cholesterol{Total: 285, HDL: 34},
		FastingGlucose: 132,
		A1C:            7.1,
		Smoking:        health.SmokingCurrent,
		Alcohol:        health.AlcoholHeavy,
		FamilyHistory:  []string{"type 2 diabetes", "lung cancer"},
		PHQ9Score:      12,
		GAD7Score:      8,
	}

	report, err := fixedEngine().ComprehensiveReport(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, report.Assessments, 5)

	total := 0
	for _, a := range report.Assessments {
		total += a.RiskScore
	}
	want := int(math.Round(float64(total) / 5))
	assert.Equal(t, want, report.OverallRiskScore)

	require.Len(t, report.TopRisks, 3)
	assert.GreaterOrEqual(t, report.TopRisks[0].RiskScore, report.TopRisks[1].RiskScore)
	assert.GreaterOrEqual(t, report.TopRisks[1].RiskScore, report.TopRisks[2].RiskScore)

	require.Len(t, report.ScreeningSchedule, 5)
	assert.NotEmpty(t, report.ActionableInsights)
}

func TestComprehensiveReport_TieBreakByDeclarationOrder(t *testing.T) {
	// Near-empty snapshot: diabetes 10 (exercise), hypertension 8 (exercise),
	// and a three-way zero tie resolved by declaration order.
	snap := &health.UserHealthSnapshot{UserID: "user-1"}

	report, err := fixedEngine().ComprehensiveReport(context.Background(), snap)
	require.NoError(t, err)

	require.Len(t, report.TopRisks, 3)
	assert.Equal(t, DiseaseDiabetes, report.TopRisks[0].Disease)
	assert.Equal(t, DiseaseHypertension, report.TopRisks[1].Disease)
	assert.Equal(t, DiseaseCardiovascular, report.TopRisks[2].Disease, "zero tie broken by model order")
}

func TestComprehensiveReport_ScheduleSortedByUrgency(t *testing.T) {
	snap := &health.UserHealthSnapshot{
		UserID:         "user-1",
		Age:            62,
		BMI:            33,
		FamilyHistory:  []string{"diabetes"},
		FastingGlucose: 132,
		A1C:            7.1,
	}

	report, err := fixedEngine().ComprehensiveReport(context.Background(), snap)
	require.NoError(t, err)

	rank := map[Urgency]int{UrgencyUrgent: 0, UrgencySoon: 1, UrgencyRoutine: 2}
	for i := 1; i < len(report.ScreeningSchedule); i++ {
		prev := rank[report.ScreeningSchedule[i-1].Urgency]
		cur := rank[report.ScreeningSchedule[i].Urgency]
		assert.LessOrEqual(t, prev, cur, "schedule out of urgency order at %d", i)
	}

	// Diabetes is CRITICAL here, so the first entry must be URGENT.
	assert.Equal(t, UrgencyUrgent, report.ScreeningSchedule[0].Urgency)
	assert.Equal(t, "Every 3 months", report.ScreeningSchedule[0].Frequency)
}

func TestComprehensiveReport_SequentialMatchesConcurrent(t *testing.T) {
	e := fixedEngine()
	snap := &health.UserHealthSnapshot{
		UserID:         "user-1",
		Age:            48,
		BMI:            27,
		FastingGlucose: 110,
	}

	report, err := e.ComprehensiveReport(context.Background(), snap)
	require.NoError(t, err)

	for i, m := range e.Models() {
		sequential := m.Assess(snap, e.Now())
		concurrent := report.Assessments[i]
		assert.Equal(t, sequential.RiskScore, concurrent.RiskScore, m.Disease())
		assert.Equal(t, sequential.RiskLevel, concurrent.RiskLevel, m.Disease())
		assert.Equal(t, sequential.Recommendations, concurrent.Recommendations, m.Disease())
	}
}
