package matching

import (
	"testing"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTerms() []model.Term {
	return []model.Term{
		{
			ID:          "urn:vocab:battery:capacity",
			Label:       "capacity",
			Description: "Battery capacity in mAh, the amount of charge a rechargeable battery can deliver at nominal voltage.",
			Datatype:    model.DatatypeInteger,
			Units:       []string{"mAh", "Ah"},
			Category:    model.CategoryElectrical,
			Examples:    []any{2000, 3000, 3500},
		},
		{
			ID:          "urn:vocab:battery:nominalVoltage",
			Label:       "nominalVoltage",
			Description: "Nominal voltage of a battery cell in volts, the typical voltage during discharge.",
			Datatype:    model.DatatypeDecimal,
			Units:       []string{"V"},
			Category:    model.CategoryElectrical,
			Examples:    []any{1.2, 1.5, 3.7},
		},
		{
			ID:          "urn:vocab:battery:chemistry",
			Label:       "chemistry",
			Description: "Battery chemistry such as NiMH, Li-ion, or Alkaline describing the cell material composition.",
			Datatype:    model.DatatypeString,
			Category:    model.CategoryMaterial,
			Examples:    []any{"NiMH", "Li-ion", "Alkaline"},
		},
		{
			ID:          "urn:vocab:battery:rechargeable",
			Label:       "rechargeable",
			Description: "Whether the battery is rechargeable and suitable for repeated charge cycles.",
			Datatype:    model.DatatypeBoolean,
			Category:    model.CategoryFunctional,
			Examples:    []any{true, false},
		},
	}
}

func testCatalog(t *testing.T, terms []model.Term) *model.Catalog {
	t.Helper()
	cat, err := model.NewCatalog("1.0.0", terms)
	require.NoError(t, err)
	return cat
}

func sampleDocument() model.Document {
	return model.Document{
		"@context": []any{
			map[string]any{
				"note":        "Battery context described in free text for ML matching",
				"description": "A rechargeable cylindrical battery (AA size) with capacity in mAh, nominal voltage, chemistry (e.g., NiMH), and manufacturer reference.",
			},
		},
		"@id":            "urn:doc:local:bat-001",
		"@type":          "BatteryDocument",
		"label":          "AA Rechargeable Battery XYZ-123",
		"capacity":       2000,
		"capacityUnit":   "mAh",
		"nominalVoltage": 1.2,
		"chemistry":      "NiMH",
	}
}

func TestEngine_MatchDocument_NoDescription(t *testing.T) {
	engine := NewEngine(testCatalog(t, testTerms()))

	tests := []struct {
		name string
		doc  model.Document
	}{
		{
			name: "missing context",
			doc:  model.Document{"capacity": 2000},
		},
		{
			name: "context without description",
			doc: model.Document{
				"@context": []any{map[string]any{"note": "nothing"}},
			},
		},
		{
			name: "empty description",
			doc: model.Document{
				"@context": []any{map[string]any{"description": ""}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.MatchDocument(tt.doc)
			assert.ErrorIs(t, err, common.ErrNoDescription)
			assert.Nil(t, result)
		})
	}
}

func TestEngine_MatchDocument_ScoresWithinBounds(t *testing.T) {
	engine := NewEngine(testCatalog(t, testTerms()))

	result, err := engine.MatchDocument(sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, result.Matches)

	for _, match := range result.Matches {
		assert.NoError(t, match.Validate(), "candidate %s", match.Label)
	}
}

func TestEngine_MatchDocument_RankedAndFiltered(t *testing.T) {
	engine := NewEngine(testCatalog(t, testTerms()))

	result, err := engine.MatchDocument(sampleDocument())
	require.NoError(t, err)

	for i := 1; i < len(result.Matches); i++ {
		assert.GreaterOrEqual(t, result.Matches[i-1].Score, result.Matches[i].Score)
	}
	for _, match := range result.Matches {
		assert.Greater(t, match.Score, 0.3)
	}
}

func TestEngine_MatchDocument_ExcludesWeakCandidates(t *testing.T) {
	// A term with no lexical, structural, or heuristic evidence only keeps
	// the heuristic base score and stays below the cutoff.
	terms := append(testTerms(), model.Term{
		ID:          "urn:vocab:battery:flux",
		Label:       "flux",
		Description: "zzqq wwxx yyvv",
		Datatype:    model.DatatypeBoolean,
		Category:    model.CategoryOther,
	})
	engine := NewEngine(testCatalog(t, terms))

	doc := model.Document{
		"@context": []any{
			map[string]any{"description": "A cylindrical cell with capacity and voltage figures."},
		},
		"capacity":       2000,
		"nominalVoltage": 1.2,
	}

	result, err := engine.MatchDocument(doc)
	require.NoError(t, err)

	for _, match := range result.Matches {
		assert.NotEqual(t, "flux", match.Label)
	}
}

func TestEngine_MatchDocument_ScoreInvariantUnderCatalogOrder(t *testing.T) {
	terms := testTerms()
	reversed := make([]model.Term, len(terms))
	for i, term := range terms {
		reversed[len(terms)-1-i] = term
	}

	doc := sampleDocument()
	forward, err := NewEngine(testCatalog(t, terms)).MatchDocument(doc)
	require.NoError(t, err)
	backward, err := NewEngine(testCatalog(t, reversed)).MatchDocument(doc)
	require.NoError(t, err)

	byLabel := func(matches model.Candidates) map[string]float64 {
		scores := make(map[string]float64, len(matches))
		for _, m := range matches {
			scores[m.Label] = m.Score
		}
		return scores
	}

	assert.Equal(t, byLabel(forward.Matches), byLabel(backward.Matches))
}

func TestEngine_MatchDocument_TiesKeepCatalogOrder(t *testing.T) {
	// Two terms indistinguishable to every signal must tie, and the tie is
	// broken by catalog order.
	sharedDesc := "A cylindrical cell with capacity and voltage figures."
	twin := func(id, label string) model.Term {
		return model.Term{
			ID:          id,
			Label:       label,
			Description: sharedDesc,
			Datatype:    model.DatatypeOther,
			Category:    model.CategoryOther,
		}
	}

	doc := model.Document{
		"@context": []any{map[string]any{"description": sharedDesc}},
		"figure":   42,
	}

	engine := NewEngine(testCatalog(t, []model.Term{twin("t1", "alphaone"), twin("t2", "betaone")}))
	result, err := engine.MatchDocument(doc)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, result.Matches[0].Score, result.Matches[1].Score)
	assert.Equal(t, "alphaone", result.Matches[0].Label)

	flipped := NewEngine(testCatalog(t, []model.Term{twin("t2", "betaone"), twin("t1", "alphaone")}))
	result, err = flipped.MatchDocument(doc)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "betaone", result.Matches[0].Label)
}

func TestEngine_MatchDocument_Provenance(t *testing.T) {
	engine := NewEngine(testCatalog(t, testTerms()))

	result, err := engine.MatchDocument(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", result.Provenance.CatalogVersion)
	assert.NotEmpty(t, result.Provenance.Engine)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, 2000, result.SampleValues["capacity"])
	assert.NotContains(t, result.SampleValues, "@id")
}
