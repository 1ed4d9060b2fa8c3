package matching

import (
	"math"
	"strings"

	"github.com/Veraticus/vocamatch/internal/lexical"
	"github.com/Veraticus/vocamatch/internal/model"
)

// Rule score increments, additive and capped at 1.
const (
	ruleLabelInKeys     = 0.4
	ruleTypeCompatible  = 0.3
	ruleUnitMatch       = 0.2
	ruleLabelTokenInKey = 0.1
)

// ruleScore computes the structural signal R. It reads only the document
// passed to MatchDocument.
func ruleScore(term *model.Term, samples map[string]any, doc model.Document) float64 {
	var score float64
	label := strings.ToLower(term.Label)

	for key := range doc {
		if strings.Contains(strings.ToLower(key), label) {
			score += ruleLabelInKeys
			break
		}
	}

	if value, ok := valueForTerm(term, samples); ok && typeCompatible(value, term.Datatype) {
		score += ruleTypeCompatible
	}

	if unitFieldMatches(term, samples) {
		score += ruleUnitMatch
	}

	if labelTokenInKeys(term, samples) {
		score += ruleLabelTokenInKey
	}

	return min1(score)
}

// valueForTerm prefers the field named by the term's label and falls back to
// the first type-compatible scalar in key order.
func valueForTerm(term *model.Term, samples map[string]any) (any, bool) {
	if value, ok := samples[term.Label]; ok {
		return value, true
	}
	for _, key := range model.SortedKeys(samples) {
		if typeCompatible(samples[key], term.Datatype) {
			return samples[key], true
		}
	}
	return nil, false
}

// unitFieldMatches reports whether any field whose name contains "unit" or a
// known unit substring holds a value present in the term's unit list.
func unitFieldMatches(term *model.Term, samples map[string]any) bool {
	for _, key := range model.SortedKeys(samples) {
		lowered := strings.ToLower(key)

		candidate := strings.Contains(lowered, "unit")
		if !candidate {
			for _, unit := range term.Units {
				if strings.Contains(lowered, strings.ToLower(unit)) {
					candidate = true
					break
				}
			}
		}
		if !candidate {
			continue
		}

		if value, ok := samples[key].(string); ok && containsString(term.Units, value) {
			return true
		}
	}
	return false
}

// labelTokenInKeys reports whether any tokenized label word appears as a
// substring of a field name.
func labelTokenInKeys(term *model.Term, samples map[string]any) bool {
	for _, token := range lexical.Tokenize(term.Label) {
		for key := range samples {
			if strings.Contains(strings.ToLower(key), token) {
				return true
			}
		}
	}
	return false
}

// typeCompatible checks a scalar value against a term's declared datatype.
// Integer requires an integral number, decimal any number, string a string,
// boolean a bool. Unrecognized datatypes always pass.
func typeCompatible(value any, datatype model.Datatype) bool {
	switch datatype {
	case model.DatatypeInteger:
		switch v := value.(type) {
		case int, int32, int64, uint, uint32, uint64:
			return true
		case float64:
			return v == math.Trunc(v)
		case float32:
			return float64(v) == math.Trunc(float64(v))
		default:
			return false
		}
	case model.DatatypeDecimal:
		_, ok := model.Float(value)
		return ok
	case model.DatatypeString:
		_, ok := value.(string)
		return ok
	case model.DatatypeBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return true
	}
}

func containsString(haystack []string, want string) bool {
	for _, s := range haystack {
		if s == want {
			return true
		}
	}
	return false
}
