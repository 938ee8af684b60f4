package app

import (
	"context"
	"time"

	"vitalens/domain/health"
	"vitalens/domain/risk"
	"vitalens/internal"
	"vitalens/internal/explain"
	"vitalens/internal/features"
	"vitalens/internal/pipeline"
	"vitalens/internal/timeseries"
)

// AssessmentService orchestrates the full analytics pass: vitals quality and
// trend context, feature extraction, the five-model scoring fan-out, and
// post-hoc explanations. It composes pure components and holds no state of
// its own beyond its collaborators.
type AssessmentService struct {
	engine   *risk.Engine
	registry *explain.Registry
	logger   *internal.Logger
}

// AssessmentRequest carries everything one pass needs: the scoring snapshot,
// the raw vitals stream, and optional per-domain raw feature bags.
type AssessmentRequest struct {
	Snapshot    *health.UserHealthSnapshot
	VitalPoints []health.HealthDataPoint
	RawFeatures map[features.Domain]map[string]interface{}

	// ResampleInterval for the vitals stream; zero means the 60-minute default.
	ResampleInterval time.Duration
}

// MetricContext is the per-metric diagnostic bundle attached to a result.
type MetricContext struct {
	Metric      string                         `json:"metric"`
	Quality     pipeline.QualityReport         `json:"quality"`
	Trend       timeseries.TrendAnalysis       `json:"trend"`
	Seasonality timeseries.SeasonalityResult   `json:"seasonality"`
	Profile     timeseries.DistributionProfile `json:"profile"`
}

// AssessmentResult is the complete output of one pass.
type AssessmentResult struct {
	Report         *risk.ComprehensiveRiskReport              `json:"report"`
	Explanations   map[risk.Disease]*explain.Explanation      `json:"explanations"`
	MetricContexts map[string]MetricContext                   `json:"metric_contexts"`
	Features       map[features.Domain]features.FeatureVector `json:"features"`
}

// NewAssessmentService wires the default engine and explanation registry.
func NewAssessmentService(logger *internal.Logger) *AssessmentService {
	return &AssessmentService{
		engine:   risk.NewEngine(),
		registry: explain.DefaultRegistry(),
		logger:   logger,
	}
}

// Engine exposes the underlying risk engine (tests pin its clock).
func (s *AssessmentService) Engine() *risk.Engine { return s.engine }

// Run executes the full pass.
func (s *AssessmentService) Run(ctx context.Context, req AssessmentRequest) (*AssessmentResult, error) {
	contexts := s.metricContexts(req)

	extracted, err := features.ExtractAll(ctx, req.RawFeatures)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.ComprehensiveReport(ctx, req.Snapshot)
	if err != nil {
		return nil, err
	}
	s.logger.Info("scored %s: overall %d", req.Snapshot.UserID, report.OverallRiskScore)

	explanations := make(map[risk.Disease]*explain.Explanation, len(report.Assessments))
	for _, a := range report.Assessments {
		exp, err := s.registry.Explain(string(a.Disease), explanationInput(req.Snapshot), a.RiskLevel)
		if err != nil {
			return nil, err
		}
		explanations[a.Disease] = exp
	}

	return &AssessmentResult{
		Report:         report,
		Explanations:   explanations,
		MetricContexts: contexts,
		Features:       extracted,
	}, nil
}

// metricContexts groups and resamples the vitals stream, then attaches
// quality and time-series diagnostics per metric. Metrics whose streams are
// too short simply get degenerate diagnostics; nothing here fails the pass.
func (s *AssessmentService) metricContexts(req AssessmentRequest) map[string]MetricContext {
	contexts := make(map[string]MetricContext)

	for metric, series := range pipeline.GroupByMetric(req.VitalPoints) {
		quality, err := pipeline.DataQuality(series)
		if err != nil {
			s.logger.Warn("skipping metric %s: %v", metric, err)
			continue
		}

		resampled := pipeline.Resample(series, req.ResampleInterval)
		values := health.Series(resampled).Values()

		contexts[metric] = MetricContext{
			Metric:      metric,
			Quality:     quality,
			Trend:       timeseries.DetectTrend(values),
			Seasonality: timeseries.DetectSeasonality(values, timeseries.DefaultSeasonalPeriod),
			Profile:     timeseries.ProfileDistribution(values),
		}
	}
	return contexts
}

// explanationInput projects the snapshot onto the feature names the default
// registry declares.
func explanationInput(snap *health.UserHealthSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"glucose":        snap.FastingGlucose,
		"bmi":            snap.BMI,
		"age":            snap.Age,
		"family_history": len(snap.FamilyHistory) > 0,
		"blood_pressure": snap.BloodPressure.Systolic,
		"cholesterol":    snap.Cholesterol.Total,
		"hdl":            snap.Cholesterol.HDL,
		"smoking":        snap.Smoking == health.SmokingCurrent,
		"lifestyle":      snap.ExerciseMinutesPerWeek,
		"phq9":           snap.PHQ9Score,
		"gad7":           snap.GAD7Score,
		"sleep":          snap.SleepHoursPerNight,
		"stress":         snap.StressLevel,
		"gender":         string(snap.Gender) != "",
	}
}
