package features

import (
	"context"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"vitalens/domain/core"
)

// Domain identifies a feature-extraction domain. The set is closed: dispatch
// is a switch, so an unhandled domain is a compile-time smell rather than a
// runtime map miss.
type Domain string

const (
	DomainVoice    Domain = "voice"
	DomainActivity Domain = "activity"
	DomainSleep    Domain = "sleep"
	DomainTemporal Domain = "temporal"
)

// AllDomains lists every registered domain in declaration order.
var AllDomains = []Domain{DomainVoice, DomainActivity, DomainSleep, DomainTemporal}

// FeatureVector is a dense feature map. After extraction every declared key
// for the domain is present; defaults fill whatever the raw bag lacked.
type FeatureVector map[string]float64

// SortedKeys returns the feature names in lexical order.
func (fv FeatureVector) SortedKeys() []string {
	keys := make([]string, 0, len(fv))
	for k := range fv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extract runs the extractor for domain over a sparse raw measurement bag.
// Missing, non-numeric, or non-finite raw fields never fail - they fall back
// to the per-key default. Only an unregistered domain is an error.
func Extract(domain Domain, raw map[string]interface{}) (FeatureVector, error) {
	var fv FeatureVector
	switch domain {
	case DomainVoice:
		fv = extractVoice(raw)
	case DomainActivity:
		fv = extractActivity(raw)
	case DomainSleep:
		fv = extractSleep(raw)
	case DomainTemporal:
		fv = extractTemporal(raw)
	default:
		return nil, core.NewUnknownDomainError(string(domain))
	}

	if err := ValidateFeatures(fv); err != nil {
		return nil, err
	}
	return fv, nil
}

// ExtractAll fans out every registered domain concurrently over its raw bag.
// Domains without an entry in raw still run, on an empty bag, so the result
// always carries all four dense vectors.
func ExtractAll(ctx context.Context, raw map[Domain]map[string]interface{}) (map[Domain]FeatureVector, error) {
	results := make(map[Domain]FeatureVector, len(AllDomains))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, domain := range AllDomains {
		domain := domain
		g.Go(func() error {
			fv, err := Extract(domain, raw[domain])
			if err != nil {
				return err
			}
			mu.Lock()
			results[domain] = fv
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateFeatures rejects non-finite values. Defaults should make this
// unreachable; it guards against extractor regressions.
func ValidateFeatures(fv FeatureVector) error {
	for name, v := range fv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidFeatureError(name, v)
		}
	}
	return nil
}

// ============================================================================
// RAW BAG ACCESSORS
// ============================================================================

// floatField reads a finite numeric field, falling back to def.
func floatField(raw map[string]interface{}, key string, def float64) float64 {
	v, ok := asFloat(raw[key])
	if !ok {
		return def
	}
	return v
}

// floatSlice reads a numeric array field; non-numeric elements are skipped.
func floatSlice(raw map[string]interface{}, key string) []float64 {
	switch arr := raw[key].(type) {
	case []float64:
		out := make([]float64, 0, len(arr))
		for _, v := range arr {
			if isFinite(v) {
				out = append(out, v)
			}
		}
		return out
	case []interface{}:
		out := make([]float64, 0, len(arr))
		for _, el := range arr {
			if v, ok := asFloat(el); ok {
				out = append(out, v)
			}
		}
		return out
	default:
		return nil
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, isFinite(x)
	case float32:
		return float64(x), isFinite(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
