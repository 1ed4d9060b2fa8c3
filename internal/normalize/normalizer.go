// Package normalize rewrites matched documents into a typed, namespaced form
// and applies best-effort unit conversion.
package normalize

import (
	"log/slog"
	"time"

	"github.com/Veraticus/vocamatch/internal/model"
)

// DefaultThreshold is the minimum score at which a candidate is accepted for
// normalization. The boundary is inclusive.
const DefaultThreshold = 0.75

const (
	unknownDocID   = "urn:doc:unknown"
	normalizedType = model.Namespace + ":Battery"
)

// Normalizer converts documents using a shared read-only catalog. Safe for
// concurrent use across documents.
type Normalizer struct {
	catalog *model.Catalog
}

// New creates a normalizer over the given catalog.
func New(catalog *model.Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Normalize rewrites the document using every match with score >= threshold.
// Each accepted match that resolves to a defined document field becomes a
// namespaced property, typed when the term's datatype is recognized. A
// sibling "<label>Unit" field is copied verbatim; no unit conversion happens
// here.
func (n *Normalizer) Normalize(doc model.Document, matches model.Candidates, threshold float64) model.Normalized {
	accepted := make(model.Candidates, 0, len(matches))
	for _, m := range matches {
		if m.Score >= threshold {
			accepted = append(accepted, m)
		}
	}

	normalized := model.Normalized{
		"@context": map[string]string{
			model.Namespace: model.NamespaceURI,
			"xsd":           model.XSDURI,
			"label":         model.LabelURI,
		},
		"@id":   unknownDocID,
		"@type": normalizedType,
	}
	if id := doc.ID(); id != "" {
		normalized["@id"] = id
	}
	if label, ok := doc["label"]; ok {
		normalized["label"] = label
	}

	evidence := make([]model.MappingEvidence, 0, len(accepted))
	for _, match := range accepted {
		term, ok := n.catalog.Lookup(match.Label)
		if !ok {
			continue
		}
		value, ok := doc[match.Label]
		if !ok {
			continue
		}

		normalized[model.Key(match.Label)] = typedLiteral(value, term.Datatype)
		if unit, hasUnit := doc[match.Label+"Unit"]; hasUnit {
			normalized[model.Key(match.Label+"Unit")] = unit
		}

		evidence = append(evidence, model.MappingEvidence{
			Field:   match.Label,
			TermID:  match.TermID,
			Score:   match.Score,
			Reasons: reasonTexts(match.Reasons),
		})
	}

	normalized[model.Key("normalization")] = model.NormalizationInfo{
		AppliedMatches:  len(accepted),
		TotalCandidates: len(matches),
		Threshold:       threshold,
		MappingEvidence: evidence,
		Timestamp:       time.Now().UTC(),
	}

	slog.Debug("normalization complete",
		"accepted", len(accepted),
		"candidates", len(matches),
		"threshold", threshold)

	return normalized
}

// typedLiteral wraps a value with the XSD tag for its declared datatype, or
// returns it unchanged when the datatype is unrecognized.
func typedLiteral(value any, datatype model.Datatype) any {
	switch datatype {
	case model.DatatypeInteger:
		return model.Literal{Value: value, Type: model.XSDInteger}
	case model.DatatypeDecimal:
		return model.Literal{Value: value, Type: model.XSDDecimal}
	case model.DatatypeString:
		return model.Literal{Value: value, Type: model.XSDString}
	case model.DatatypeBoolean:
		return model.Literal{Value: value, Type: model.XSDBoolean}
	default:
		return value
	}
}

func reasonTexts(reasons []model.Reason) []string {
	texts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		texts = append(texts, r.Text)
	}
	return texts
}
