package model

import "time"

// Namespace prefixes and URIs used in normalized output.
const (
	Namespace    = "batt"
	NamespaceURI = "https://example.org/vocab/battery#"
	XSDURI       = "http://www.w3.org/2001/XMLSchema#"
	LabelURI     = "http://www.w3.org/2000/01/rdf-schema#label"
)

// XSD datatype tags for typed literals.
const (
	XSDInteger = "xsd:integer"
	XSDDecimal = "xsd:decimal"
	XSDString  = "xsd:string"
	XSDBoolean = "xsd:boolean"
)

// Key returns the namespaced property key for a field name.
func Key(name string) string {
	return Namespace + ":" + name
}

// Literal is a value wrapped with an explicit datatype tag, per linked-data
// convention.
type Literal struct {
	Value any    `json:"@value"`
	Type  string `json:"@type"`
}

// Normalized is the typed, namespaced form of an input document. It is
// JSON-serializable and owned by the normalizer; the derivation engine
// appends derived properties to it in place.
type Normalized map[string]any

// Field returns the value stored under a namespaced key, unwrapping typed
// literals. The second return reports whether the key is present.
func (n Normalized) Field(key string) (any, bool) {
	v, ok := n[key]
	if !ok {
		return nil, false
	}
	if lit, isLit := v.(Literal); isLit {
		return lit.Value, true
	}
	return v, true
}

// MappingEvidence links an accepted match to the document field it
// normalized.
type MappingEvidence struct {
	Field   string   `json:"field"`
	TermID  string   `json:"termId"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// NormalizationInfo is the metadata block recorded by the normalizer.
type NormalizationInfo struct {
	AppliedMatches  int               `json:"appliedMatches"`
	TotalCandidates int               `json:"totalCandidates"`
	Threshold       float64           `json:"threshold"`
	MappingEvidence []MappingEvidence `json:"mappingEvidence"`
	Timestamp       time.Time         `json:"timestamp"`
}

// UnitConversion records one canonical-unit rewrite.
type UnitConversion struct {
	Property string `json:"property"`
	From     string `json:"from"`
	To       string `json:"to"`
	Formula  string `json:"formula"`
}

// DerivedProperty is the audit record for one successful derivation.
type DerivedProperty struct {
	Property   string             `json:"property"`
	Formula    string             `json:"formula"`
	Inputs     map[string]float64 `json:"inputs"`
	Steps      []string           `json:"steps"`
	Confidence float64            `json:"confidence"`
	Unit       string             `json:"unit"`
}

// DerivationInfo is the metadata block recorded by the derivation engine.
// MappingEvidence is passed through from normalization, not recomputed.
type DerivationInfo struct {
	Properties      []DerivedProperty `json:"properties"`
	MappingEvidence []MappingEvidence `json:"mappingEvidence"`
	Timestamp       time.Time         `json:"timestamp"`
	Method          string            `json:"method"`
}
