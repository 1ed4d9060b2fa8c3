package normalize

import (
	"testing"

	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	cat, err := model.NewCatalog("1.0.0", []model.Term{
		{ID: "urn:vocab:battery:capacity", Label: "capacity", Datatype: model.DatatypeInteger, Units: []string{"mAh", "Ah"}},
		{ID: "urn:vocab:battery:nominalVoltage", Label: "nominalVoltage", Datatype: model.DatatypeDecimal, Units: []string{"V"}},
		{ID: "urn:vocab:battery:chemistry", Label: "chemistry", Datatype: model.DatatypeString},
		{ID: "urn:vocab:battery:rechargeable", Label: "rechargeable", Datatype: model.DatatypeBoolean},
		{ID: "urn:vocab:battery:extra", Label: "extra", Datatype: model.DatatypeOther},
	})
	require.NoError(t, err)
	return cat
}

func candidate(label, termID string, score float64) model.Candidate {
	return model.Candidate{
		TermID: termID,
		Label:  label,
		Score:  score,
		Reasons: []model.Reason{
			{Type: model.ReasonLexical, Text: "Shared tokens: battery"},
		},
	}
}

func TestNormalize_TypedLiterals(t *testing.T) {
	n := New(testCatalog(t))
	doc := model.Document{
		"@id":          "urn:doc:local:bat-001",
		"label":        "AA Rechargeable Battery",
		"capacity":     2000,
		"capacityUnit": "mAh",
		"chemistry":    "NiMH",
		"rechargeable": true,
		"extra":        []any{"raw"},
	}
	matches := model.Candidates{
		candidate("capacity", "urn:vocab:battery:capacity", 0.9),
		candidate("chemistry", "urn:vocab:battery:chemistry", 0.8),
		candidate("rechargeable", "urn:vocab:battery:rechargeable", 0.76),
		candidate("extra", "urn:vocab:battery:extra", 0.76),
	}

	normalized := n.Normalize(doc, matches, DefaultThreshold)

	assert.Equal(t, "urn:doc:local:bat-001", normalized["@id"])
	assert.Equal(t, "batt:Battery", normalized["@type"])
	assert.Equal(t, "AA Rechargeable Battery", normalized["label"])

	context, ok := normalized["@context"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, model.NamespaceURI, context["batt"])
	assert.Equal(t, model.XSDURI, context["xsd"])

	assert.Equal(t, model.Literal{Value: 2000, Type: model.XSDInteger}, normalized["batt:capacity"])
	assert.Equal(t, model.Literal{Value: "NiMH", Type: model.XSDString}, normalized["batt:chemistry"])
	assert.Equal(t, model.Literal{Value: true, Type: model.XSDBoolean}, normalized["batt:rechargeable"])

	// Unrecognized datatypes pass through untyped.
	assert.Equal(t, []any{"raw"}, normalized["batt:extra"])

	// Unit siblings are copied verbatim, never converted here.
	assert.Equal(t, "mAh", normalized["batt:capacityUnit"])
}

func TestNormalize_ThresholdBoundaryInclusive(t *testing.T) {
	n := New(testCatalog(t))
	doc := model.Document{
		"capacity":       2000,
		"nominalVoltage": 1.2,
	}
	matches := model.Candidates{
		candidate("capacity", "urn:vocab:battery:capacity", 0.75),
		candidate("nominalVoltage", "urn:vocab:battery:nominalVoltage", 0.7499),
	}

	normalized := n.Normalize(doc, matches, 0.75)

	assert.Contains(t, normalized, "batt:capacity")
	assert.NotContains(t, normalized, "batt:nominalVoltage")

	info, ok := normalized["batt:normalization"].(model.NormalizationInfo)
	require.True(t, ok)
	assert.Equal(t, 1, info.AppliedMatches)
	assert.Equal(t, 2, info.TotalCandidates)
	assert.InDelta(t, 0.75, info.Threshold, 1e-9)
}

func TestNormalize_MissingFieldSkipped(t *testing.T) {
	n := New(testCatalog(t))
	doc := model.Document{"chemistry": "Alkaline"}
	matches := model.Candidates{
		candidate("capacity", "urn:vocab:battery:capacity", 0.9),
		candidate("chemistry", "urn:vocab:battery:chemistry", 0.8),
	}

	normalized := n.Normalize(doc, matches, DefaultThreshold)

	assert.NotContains(t, normalized, "batt:capacity")
	assert.Equal(t, model.Literal{Value: "Alkaline", Type: model.XSDString}, normalized["batt:chemistry"])

	info := normalized["batt:normalization"].(model.NormalizationInfo)
	// Accepted count reflects the threshold decision, not field resolution.
	assert.Equal(t, 2, info.AppliedMatches)
	require.Len(t, info.MappingEvidence, 1)
	assert.Equal(t, "chemistry", info.MappingEvidence[0].Field)
	assert.Equal(t, "urn:vocab:battery:chemistry", info.MappingEvidence[0].TermID)
	assert.Equal(t, []string{"Shared tokens: battery"}, info.MappingEvidence[0].Reasons)
}

func TestNormalize_DefaultsWhenDocumentBare(t *testing.T) {
	n := New(testCatalog(t))

	normalized := n.Normalize(model.Document{}, nil, DefaultThreshold)

	assert.Equal(t, "urn:doc:unknown", normalized["@id"])
	assert.Equal(t, "batt:Battery", normalized["@type"])
	assert.NotContains(t, normalized, "label")

	info := normalized["batt:normalization"].(model.NormalizationInfo)
	assert.Zero(t, info.AppliedMatches)
	assert.Zero(t, info.TotalCandidates)
	assert.Empty(t, info.MappingEvidence)
	assert.False(t, info.Timestamp.IsZero())
}

func TestNormalize_EvidenceFollowsMatchOrder(t *testing.T) {
	n := New(testCatalog(t))
	doc := model.Document{
		"capacity":       2000,
		"nominalVoltage": 1.2,
		"chemistry":      "NiMH",
	}
	matches := model.Candidates{
		candidate("nominalVoltage", "urn:vocab:battery:nominalVoltage", 0.9),
		candidate("chemistry", "urn:vocab:battery:chemistry", 0.85),
		candidate("capacity", "urn:vocab:battery:capacity", 0.8),
	}

	normalized := n.Normalize(doc, matches, DefaultThreshold)

	info := normalized["batt:normalization"].(model.NormalizationInfo)
	require.Len(t, info.MappingEvidence, 3)
	assert.Equal(t, "nominalVoltage", info.MappingEvidence[0].Field)
	assert.Equal(t, "chemistry", info.MappingEvidence[1].Field)
	assert.Equal(t, "capacity", info.MappingEvidence[2].Field)
}
