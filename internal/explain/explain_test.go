package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalens/domain/core"
)

func diabetesInput() map[string]interface{} {
	return map[string]interface{}{
		"glucose":        130.0,
		"bmi":            32.0,
		"age":            50,
		"family_history": true,
		"blood_pressure": 145.0,
	}
}

func TestExplain_TopFeatureByImportance(t *testing.T) {
	r := DefaultRegistry()

	exp, err := r.Explain("diabetes", diabetesInput(), "CRITICAL")
	require.NoError(t, err)
	require.Len(t, exp.Features, 5)

	assert.Equal(t, "glucose", exp.Features[0].Name)
	assert.Equal(t, "bmi", exp.Features[1].Name)
	assert.Equal(t, "age", exp.Features[2].Name)
}

func TestExplain_ContributionRules(t *testing.T) {
	r := NewRegistry()
	r.Register(ModelMetadata{
		Name:         "toy",
		FeatureNames: []string{"numeric", "flag_on", "flag_off", "text"},
		Importance: map[string]float64{
			"numeric":  0.4,
			"flag_on":  0.3,
			"flag_off": 0.2,
			"text":     0.1,
		},
		Accuracy: 0.9,
	})

	exp, err := r.Explain("toy", map[string]interface{}{
		"numeric":  50.0,
		"flag_on":  true,
		"flag_off": false,
		"text":     "n/a",
	}, nil)
	require.NoError(t, err)

	byName := make(map[string]FeatureContribution)
	for _, f := range exp.Features {
		byName[f.Name] = f
	}

	assert.InDelta(t, 0.2, byName["numeric"].Contribution, 1e-9, "(50/100)*0.4")
	assert.InDelta(t, 0.3, byName["flag_on"].Contribution, 1e-9, "boolean true contributes importance")
	assert.Equal(t, 0.0, byName["flag_off"].Contribution)
	assert.Equal(t, 0.0, byName["text"].Contribution, "non-numeric, non-boolean contributes nothing")
}

func TestExplain_UnlistedFeatureGetsUniformWeight(t *testing.T) {
	r := NewRegistry()
	r.Register(ModelMetadata{
		Name:         "partial",
		FeatureNames: []string{"a", "b", "c", "d"},
		Importance:   map[string]float64{"a": 0.7},
		Accuracy:     0.8,
	})

	exp, err := r.Explain("partial", map[string]interface{}{"b": 10.0}, nil)
	require.NoError(t, err)

	for _, f := range exp.Features {
		if f.Name == "b" {
			assert.InDelta(t, 0.25, f.Importance, 1e-9, "uniform 1/n for unlisted features")
		}
	}
}

func TestExplain_StableTieOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(ModelMetadata{
		Name:         "ties",
		FeatureNames: []string{"first", "second", "third"},
		Importance:   map[string]float64{"first": 0.4, "second": 0.3, "third": 0.3},
		Accuracy:     0.8,
	})

	exp, err := r.Explain("ties", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "first", exp.Features[0].Name)
	assert.Equal(t, "second", exp.Features[1].Name, "tie keeps feature-name order")
	assert.Equal(t, "third", exp.Features[2].Name)
}

func TestExplain_Reasoning(t *testing.T) {
	r := DefaultRegistry()

	exp, err := r.Explain("diabetes", diabetesInput(), "HIGH")
	require.NoError(t, err)

	assert.Contains(t, exp.Reasoning, "glucose (35% importance)")
	assert.Contains(t, exp.Reasoning, "bmi (25% importance)")
	assert.Contains(t, exp.Reasoning, "age (20% importance)")
	assert.Contains(t, exp.Reasoning, "87%")
	assert.Contains(t, exp.Reasoning, "HIGH")
	assert.Equal(t, 0.87, exp.Confidence)
}

func TestExplain_UnknownModel(t *testing.T) {
	_, err := DefaultRegistry().Explain("astrology", nil, nil)
	assert.ErrorIs(t, err, core.ErrUnknownModel)
}

func TestExplain_ExtraInputKeysRanked(t *testing.T) {
	r := NewRegistry()
	r.Register(ModelMetadata{
		Name:         "narrow",
		FeatureNames: []string{"a"},
		Importance:   map[string]float64{"a": 1},
		Accuracy:     0.8,
	})

	exp, err := r.Explain("narrow", map[string]interface{}{"a": 1.0, "zz_extra": 2.0}, nil)
	require.NoError(t, err)
	require.Len(t, exp.Features, 2)
	assert.Equal(t, "a", exp.Features[0].Name)
	assert.Equal(t, "zz_extra", exp.Features[1].Name)
}
