// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Datatype identifies the declared value type of a catalog term.
type Datatype string

// Known term datatypes. Anything else is treated as DatatypeOther.
const (
	DatatypeInteger Datatype = "integer"
	DatatypeDecimal Datatype = "decimal"
	DatatypeString  Datatype = "string"
	DatatypeBoolean Datatype = "boolean"
	DatatypeOther   Datatype = "other"
)

// ParseDatatype canonicalizes a catalog datatype string. "float" is an
// accepted alias for decimal; unrecognized strings fall back to other.
func ParseDatatype(s string) Datatype {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer":
		return DatatypeInteger
	case "decimal", "float":
		return DatatypeDecimal
	case "string":
		return DatatypeString
	case "boolean":
		return DatatypeBoolean
	default:
		return DatatypeOther
	}
}

// Category groups catalog terms by the kind of property they describe.
type Category string

// Known term categories.
const (
	CategoryElectrical Category = "electrical"
	CategoryPhysical   Category = "physical"
	CategoryMaterial   Category = "material"
	CategoryFunctional Category = "functional"
	CategoryOther      Category = "other"
)

// ParseCategory canonicalizes a catalog category string.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "electrical":
		return CategoryElectrical
	case "physical":
		return CategoryPhysical
	case "material":
		return CategoryMaterial
	case "functional":
		return CategoryFunctional
	default:
		return CategoryOther
	}
}

// Term is a single controlled-vocabulary entry. Terms are immutable once the
// catalog is loaded.
type Term struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Datatype    Datatype `json:"datatype"`
	Units       []string `json:"units"`
	Category    Category `json:"category"`
	Examples    []any    `json:"examples"`
}

// Catalog is a versioned set of vocabulary terms with a label lookup table
// built once at construction. It must be treated as read-only for the
// lifetime of the process; reloading constitutes a new epoch.
type Catalog struct {
	Version string
	Terms   []Term

	lookup map[string]*Term
}

// NewCatalog canonicalizes datatypes and categories, validates the term set,
// and builds the label lookup shared by matching and normalization.
func NewCatalog(version string, terms []Term) (*Catalog, error) {
	if version == "" {
		return nil, fmt.Errorf("catalog version is required")
	}

	c := &Catalog{
		Version: version,
		Terms:   terms,
		lookup:  make(map[string]*Term, len(terms)),
	}

	for i := range c.Terms {
		term := &c.Terms[i]
		if term.Label == "" {
			return nil, fmt.Errorf("term %q has an empty label", term.ID)
		}
		if _, exists := c.lookup[term.Label]; exists {
			return nil, fmt.Errorf("duplicate term label %q", term.Label)
		}

		term.Datatype = ParseDatatype(string(term.Datatype))
		term.Category = ParseCategory(string(term.Category))
		c.lookup[term.Label] = term
	}

	return c, nil
}

// Lookup returns the term for a label, if present.
func (c *Catalog) Lookup(label string) (*Term, bool) {
	term, ok := c.lookup[label]
	return term, ok
}
