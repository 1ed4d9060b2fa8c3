// Package lexical provides the tokenization and set-similarity primitives
// shared by the matching signals.
package lexical

import "strings"

// Tokenize lower-cases the text, strips everything outside [a-z0-9\s], splits
// on whitespace, and drops tokens of length <= 2. Pure and deterministic.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Jaccard computes set-intersection size over set-union size for two token
// slices. Returns 0 when the union is empty.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
