package explain

import (
	"fmt"
	"sort"
	"strings"
)

// FeatureContribution is one ranked row of an explanation.
type FeatureContribution struct {
	Name         string      `json:"name"`
	Value        interface{} `json:"value"`
	Importance   float64     `json:"importance"`
	Contribution float64     `json:"contribution"`
}

// Explanation is the post-hoc rationale for one prediction.
type Explanation struct {
	Features   []FeatureContribution `json:"features"`
	Reasoning  string                `json:"reasoning"`
	Confidence float64               `json:"confidence"`
}

// Explain ranks per-feature contributions for a prediction.
//
// Contribution is (value/100)*importance for numeric inputs, the bare
// importance for boolean true, and 0 otherwise. Features unlisted in the
// importance table get the uniform 1/n weight. The output is sorted by
// importance descending, stable on ties so the metadata's feature order
// survives.
func (r *Registry) Explain(modelName string, input map[string]interface{}, prediction interface{}) (*Explanation, error) {
	meta, err := r.Lookup(modelName)
	if err != nil {
		return nil, err
	}

	uniform := 0.0
	if len(meta.FeatureNames) > 0 {
		uniform = 1 / float64(len(meta.FeatureNames))
	}

	importanceOf := func(name string) float64 {
		if w, ok := meta.Importance[name]; ok {
			return w
		}
		return uniform
	}

	// Declared features first, in metadata order, then any extra input keys
	// in lexical order for determinism.
	names := append([]string{}, meta.FeatureNames...)
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		declared[n] = true
	}
	var extras []string
	for n := range input {
		if !declared[n] {
			extras = append(extras, n)
		}
	}
	sort.Strings(extras)
	names = append(names, extras...)

	features := make([]FeatureContribution, 0, len(names))
	for _, name := range names {
		value := input[name]
		importance := importanceOf(name)
		features = append(features, FeatureContribution{
			Name:         name,
			Value:        value,
			Importance:   importance,
			Contribution: contribution(value, importance),
		})
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Importance > features[j].Importance
	})

	return &Explanation{
		Features:   features,
		Reasoning:  reasoning(meta, features, prediction),
		Confidence: meta.Accuracy,
	}, nil
}

func contribution(value interface{}, importance float64) float64 {
	switch v := value.(type) {
	case float64:
		return v / 100 * importance
	case float32:
		return float64(v) / 100 * importance
	case int:
		return float64(v) / 100 * importance
	case int64:
		return float64(v) / 100 * importance
	case bool:
		if v {
			return importance
		}
		return 0
	default:
		return 0
	}
}

// reasoning cites the top-3 features by importance percentage plus the
// model's static accuracy figure.
func reasoning(meta ModelMetadata, ranked []FeatureContribution, prediction interface{}) string {
	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	cited := make([]string, 0, n)
	for _, f := range ranked[:n] {
		cited = append(cited, fmt.Sprintf("%s (%.0f%% importance)", f.Name, f.Importance*100))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The %s model", meta.Name)
	if prediction != nil {
		fmt.Fprintf(&b, " predicted %v", prediction)
	}
	fmt.Fprintf(&b, " based primarily on %s.", strings.Join(cited, ", "))
	fmt.Fprintf(&b, " Model accuracy: %.0f%%.", meta.Accuracy*100)
	return b.String()
}
