package explain

import (
	"vitalens/domain/core"
)

// ModelMetadata is the static description backing explanations for one
// model: a display ordering, a feature-importance table (weights summing to
// about 1), and the model's published accuracy figure. Importance is a fixed
// model-level weight, not anything learned from data.
type ModelMetadata struct {
	Name         string             `json:"name"`
	FeatureNames []string           `json:"feature_names"`
	Importance   map[string]float64 `json:"importance"`
	Accuracy     float64            `json:"accuracy"`
}

// Registry maps model names to their metadata. Construct one explicitly and
// pass it where needed - there is no package-level registry to mutate.
type Registry struct {
	models map[string]ModelMetadata
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]ModelMetadata)}
}

// Register adds or replaces a model's metadata.
func (r *Registry) Register(meta ModelMetadata) {
	r.models[meta.Name] = meta
}

// Lookup resolves a model by name.
func (r *Registry) Lookup(name string) (ModelMetadata, error) {
	meta, ok := r.models[name]
	if !ok {
		return ModelMetadata{}, core.NewUnknownModelError(name)
	}
	return meta, nil
}

// DefaultRegistry preloads metadata for the five disease models.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ModelMetadata{
		Name:         "diabetes",
		FeatureNames: []string{"glucose", "bmi", "age", "family_history", "blood_pressure"},
		Importance: map[string]float64{
			"glucose":        0.35,
			"bmi":            0.25,
			"age":            0.20,
			"family_history": 0.12,
			"blood_pressure": 0.08,
		},
		Accuracy: 0.87,
	})

	r.Register(ModelMetadata{
		Name:         "cardiovascular",
		FeatureNames: []string{"age", "cholesterol", "blood_pressure", "smoking", "hdl"},
		Importance: map[string]float64{
			"age":            0.30,
			"cholesterol":    0.25,
			"blood_pressure": 0.20,
			"smoking":        0.15,
			"hdl":            0.10,
		},
		Accuracy: 0.84,
	})

	r.Register(ModelMetadata{
		Name:         "hypertension",
		FeatureNames: []string{"blood_pressure", "age", "bmi", "family_history", "lifestyle"},
		Importance: map[string]float64{
			"blood_pressure": 0.40,
			"age":            0.20,
			"bmi":            0.18,
			"family_history": 0.12,
			"lifestyle":      0.10,
		},
		Accuracy: 0.82,
	})

	r.Register(ModelMetadata{
		Name:         "mental_health",
		FeatureNames: []string{"phq9", "gad7", "sleep", "stress"},
		Importance: map[string]float64{
			"phq9":   0.40,
			"gad7":   0.30,
			"sleep":  0.17,
			"stress": 0.13,
		},
		Accuracy: 0.79,
	})

	r.Register(ModelMetadata{
		Name:         "cancer_screening",
		FeatureNames: []string{"age", "family_history", "smoking", "gender"},
		Importance: map[string]float64{
			"age":            0.35,
			"family_history": 0.30,
			"smoking":        0.25,
			"gender":         0.10,
		},
		Accuracy: 0.76,
	})

	return r
}
