package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "A Rechargeable battery (AA size)!",
			want: []string{"rechargeable", "battery", "size"},
		},
		{
			name: "drops short tokens",
			text: "Li-ion 18650 3.7V cell",
			want: []string{"ion", "18650", "cell"},
		},
		{
			name: "keeps digits",
			text: "capacity 2000 mAh",
			want: []string{"capacity", "2000", "mah"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only punctuation",
			text: "!@# $% ^&*",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "A rechargeable cylindrical battery with capacity in mAh"
	first := Tokenize(text)
	second := Tokenize(text)
	assert.Equal(t, first, second)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{
			name: "identical sets",
			a:    []string{"battery", "capacity"},
			b:    []string{"capacity", "battery"},
			want: 1.0,
		},
		{
			name: "disjoint sets",
			a:    []string{"battery"},
			b:    []string{"voltage"},
			want: 0.0,
		},
		{
			name: "partial overlap",
			a:    []string{"one", "two", "three"},
			b:    []string{"two", "three", "four"},
			want: 0.5,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
		{
			name: "duplicates collapse",
			a:    []string{"battery", "battery"},
			b:    []string{"battery"},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}
