package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/vocamatch/internal/lexical"
	"github.com/Veraticus/vocamatch/internal/model"
)

// The heuristic signal L is a deterministic, explainable stand-in for an
// external scoring service. It is a pure function over a fixed rule list so
// it can later be swapped for a real scorer behind the same
// (score, reasons, explanation) contract.
const (
	heuristicBase = 0.5

	boostSharedTokens  = 0.15
	boostLabelInDesc   = 0.2
	boostExampleMatch  = 0.2
	boostValuePresent  = 0.1
	boostTypeMatch     = 0.1
	boostUnitMatch     = 0.15
	boostCategoryWords = 0.1

	// Numeric example comparison accepts values within 50% relative
	// tolerance.
	exampleTolerance = 0.5
)

var categoryKeywords = map[model.Category][]string{
	model.CategoryElectrical: {"voltage", "capacity", "power", "energy", "current"},
	model.CategoryPhysical:   {"size", "weight", "dimension", "form"},
	model.CategoryMaterial:   {"chemistry", "material", "composition"},
	model.CategoryFunctional: {"rechargeable", "function", "capability"},
}

func heuristicScore(term *model.Term, docDescription string, samples map[string]any) (float64, []model.Reason, string) {
	score := heuristicBase
	reasons := make([]model.Reason, 0, 6)

	docTokens := lexical.Tokenize(docDescription)
	termTokens := lexical.Tokenize(term.Description)
	labelTokens := lexical.Tokenize(term.Label)

	if shared := sharedTokens(docTokens, termTokens); len(shared) > 0 {
		reasons = append(reasons, model.Reason{
			Type: model.ReasonLexical,
			Text: fmt.Sprintf("Shared tokens: %s", strings.Join(firstN(shared, 3), ", ")),
		})
		score += boostSharedTokens
	}

	if anyShared(docTokens, labelTokens) {
		reasons = append(reasons, model.Reason{
			Type: model.ReasonLexical,
			Text: fmt.Sprintf("Label '%s' found in description", term.Label),
		})
		score += boostLabelInDesc
	}

	value, hasValue := samples[term.Label]
	if hasValue {
		if matchesExample(term.Examples, value) {
			reasons = append(reasons, model.Reason{
				Type: model.ReasonInstance,
				Text: fmt.Sprintf("Document value %v matches vocabulary examples", value),
			})
			score += boostExampleMatch
		} else {
			reasons = append(reasons, model.Reason{
				Type: model.ReasonInstance,
				Text: fmt.Sprintf("Document has value %v for '%s'", value, term.Label),
			})
			score += boostValuePresent
		}
	}

	if hasValue && typeCompatible(value, term.Datatype) {
		reasons = append(reasons, model.Reason{
			Type: model.ReasonDatatype,
			Text: fmt.Sprintf("Value type matches expected %s", term.Datatype),
		})
		score += boostTypeMatch
	}

	for _, key := range model.SortedKeys(samples) {
		if s, ok := samples[key].(string); ok && containsString(term.Units, s) {
			reasons = append(reasons, model.Reason{
				Type: model.ReasonUnit,
				Text: fmt.Sprintf("Unit '%s' matches vocabulary units", s),
			})
			score += boostUnitMatch
			break
		}
	}

	if mentionsCategory(term.Category, docDescription) {
		reasons = append(reasons, model.Reason{
			Type: model.ReasonSemantic,
			Text: fmt.Sprintf("Document mentions %s-related concepts", term.Category),
		})
		score += boostCategoryWords
	}

	score = min1(score)

	explanation := "Weak or no match found"
	if len(reasons) > 0 {
		explanation = "Match based on " + strings.Join(distinctTypes(reasons), ", ")
	}

	return score, reasons, explanation
}

// sharedTokens returns the distinct tokens of a that also occur in b,
// preserving a's order.
func sharedTokens(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	var shared []string
	for _, t := range a {
		if _, ok := inB[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		shared = append(shared, t)
	}
	return shared
}

func anyShared(a, b []string) bool {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	for _, t := range a {
		if _, ok := inB[t]; ok {
			return true
		}
	}
	return false
}

// matchesExample reports whether the value equals one of the term's examples,
// or lies within the relative tolerance of a numeric example.
func matchesExample(examples []any, value any) bool {
	valueNum, valueIsNum := model.Float(value)
	for _, example := range examples {
		if example == value {
			return true
		}
		exampleNum, exampleIsNum := model.Float(example)
		if !exampleIsNum || !valueIsNum {
			continue
		}
		if exampleNum == 0 {
			if valueNum == 0 {
				return true
			}
			continue
		}
		if math.Abs(exampleNum-valueNum)/exampleNum < exampleTolerance {
			return true
		}
	}
	return false
}

func mentionsCategory(category model.Category, docDescription string) bool {
	keywords, ok := categoryKeywords[category]
	if !ok {
		return false
	}
	lowered := strings.ToLower(docDescription)
	for _, word := range keywords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func firstN(tokens []string, n int) []string {
	if len(tokens) <= n {
		return tokens
	}
	return tokens[:n]
}

func distinctTypes(reasons []model.Reason) []string {
	seen := make(map[model.ReasonType]struct{}, len(reasons))
	types := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if _, dup := seen[r.Type]; dup {
			continue
		}
		seen[r.Type] = struct{}{}
		types = append(types, string(r.Type))
	}
	return types
}
