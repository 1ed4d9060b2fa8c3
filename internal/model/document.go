package model

import "sort"

// Document is a loosely structured input document. Keys prefixed with "@"
// are reserved linked-data keys; everything else is a candidate field.
// Documents are read-only throughout the pipeline.
type Document map[string]any

// Description returns the first non-empty description carried by the
// document's @context, which may be a single object or an array of objects.
func (d Document) Description() string {
	ctx, ok := d["@context"]
	if !ok {
		return ""
	}

	var entries []any
	switch v := ctx.(type) {
	case []any:
		entries = v
	case []map[string]any:
		for _, m := range v {
			entries = append(entries, m)
		}
	default:
		entries = []any{v}
	}

	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if desc, ok := m["description"].(string); ok && desc != "" {
			return desc
		}
	}
	return ""
}

// ID returns the document's @id, if it carries one.
func (d Document) ID() string {
	id, _ := d["@id"].(string)
	return id
}

// SampleValues returns the scalar, non-reserved fields of the document.
// Object- and array-valued fields are ignored.
func (d Document) SampleValues() map[string]any {
	values := make(map[string]any)
	for key, value := range d {
		if len(key) > 0 && key[0] == '@' {
			continue
		}
		if isScalar(value) {
			values[key] = value
		}
	}
	return values
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, map[string]any, []any, []map[string]any, []string, []float64, []int:
		return false
	default:
		return true
	}
}

// SortedKeys returns a map's keys in lexical order. Go maps iterate in random
// order, so every scan whose outcome depends on order uses this instead of
// the source document's (unknowable) field order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
