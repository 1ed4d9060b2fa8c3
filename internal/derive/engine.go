// Package derive runs formula-based rules over normalized documents to
// compute additional properties, each with a confidence score and a
// step-by-step calculation trace.
package derive

import (
	"log/slog"
	"time"

	"github.com/Veraticus/vocamatch/internal/model"
)

const derivationMethod = "rule-based-calculation"

// Rule derives a single property from the normalized document, falling back
// to fields of the original input. Failing rules return ErrMissingInputs or
// ErrInvalidInputType wrapped errors; they never abort other rules.
type Rule interface {
	Property() string
	Derive(normalized model.Normalized, original model.Document) (*Result, error)
}

// Result carries a derived value and its audit trail.
type Result struct {
	Value      float64
	Formula    string
	Inputs     map[string]float64
	Steps      []string
	Confidence float64
	Unit       string
}

// Engine holds the fixed rule registry. Rules are independent and
// order-insensitive.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine with the default rule registry.
func NewEngine() *Engine {
	return &Engine{rules: []Rule{EnergyRule{}, PowerRule{}}}
}

// NewEngineWithRules returns an engine with a custom rule registry.
func NewEngineWithRules(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply runs every rule against the normalized document, writing each
// successful value under its namespaced key and recording a DerivedProperty.
// The mapping evidence is passed through into the derivation metadata, not
// recomputed. The document is mutated in place and returned.
func (e *Engine) Apply(normalized model.Normalized, original model.Document, evidence []model.MappingEvidence) model.Normalized {
	properties := make([]model.DerivedProperty, 0, len(e.rules))

	for _, rule := range e.rules {
		result, err := rule.Derive(normalized, original)
		if err != nil {
			slog.Debug("derivation rule skipped", "property", rule.Property(), "reason", err)
			continue
		}

		normalized[model.Key(rule.Property())] = model.Literal{
			Value: result.Value,
			Type:  model.XSDDecimal,
		}
		properties = append(properties, model.DerivedProperty{
			Property:   rule.Property(),
			Formula:    result.Formula,
			Inputs:     result.Inputs,
			Steps:      result.Steps,
			Confidence: result.Confidence,
			Unit:       result.Unit,
		})
	}

	if len(properties) > 0 {
		normalized[model.Key("derivation")] = model.DerivationInfo{
			Properties:      properties,
			MappingEvidence: evidence,
			Timestamp:       time.Now().UTC(),
			Method:          derivationMethod,
		}
	}

	return normalized
}

// resolve looks a field up in the normalized document (unwrapping typed
// literals), falling back to the original document. The second return
// reports whether the value came from the normalized document.
func resolve(normalized model.Normalized, original model.Document, field string) (value any, fromNormalized, found bool) {
	if v, ok := normalized.Field(model.Key(field)); ok {
		return v, true, true
	}
	if v, ok := original[field]; ok {
		return v, false, true
	}
	return nil, false, false
}

// unitOf returns the unit recorded next to a field, preferring the normalized
// document when the value itself came from there.
func unitOf(normalized model.Normalized, original model.Document, field string, fromNormalized bool, fallback string) string {
	if fromNormalized {
		if u, ok := normalized[model.Key(field+"Unit")].(string); ok {
			return u
		}
		return fallback
	}
	if u, ok := original[field+"Unit"].(string); ok {
		return u
	}
	return fallback
}
