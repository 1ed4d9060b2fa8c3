package derive

import (
	"testing"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyRule_FromNormalized(t *testing.T) {
	normalized := model.Normalized{
		"batt:capacity":       model.Literal{Value: 2000, Type: model.XSDInteger},
		"batt:capacityUnit":   "mAh",
		"batt:nominalVoltage": model.Literal{Value: 1.2, Type: model.XSDDecimal},
	}

	result, err := EnergyRule{}.Derive(normalized, model.Document{})
	require.NoError(t, err)

	assert.InDelta(t, 2.4, result.Value, 1e-9)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, "Wh", result.Unit)
	assert.Equal(t, "Wh = (mAh / 1000) * V", result.Formula)
	assert.InDelta(t, 2000, result.Inputs["capacity_mAh"], 1e-9)
	assert.InDelta(t, 1.2, result.Inputs["nominalVoltage_V"], 1e-9)

	require.Len(t, result.Steps, 3)
	assert.Contains(t, result.Steps[0], "Input: capacity = 2000 mAh")
	assert.Contains(t, result.Steps[1], "÷ 1000")
	assert.Contains(t, result.Steps[2], "×")
}

func TestEnergyRule_CapacityInAmpHours(t *testing.T) {
	// After unit normalization capacity is stored in Ah; the rule converts
	// back to mAh before applying the formula.
	normalized := model.Normalized{
		"batt:capacity":       model.Literal{Value: 3.5, Type: model.XSDInteger},
		"batt:capacityUnit":   "Ah",
		"batt:nominalVoltage": model.Literal{Value: 3.7, Type: model.XSDDecimal},
	}

	result, err := EnergyRule{}.Derive(normalized, model.Document{})
	require.NoError(t, err)

	assert.InDelta(t, 12.95, result.Value, 1e-9)
	assert.InDelta(t, 3500, result.Inputs["capacity_mAh"], 1e-9)
}

func TestEnergyRule_FallbackToOriginal(t *testing.T) {
	original := model.Document{
		"capacity":       3500,
		"nominalVoltage": 3.7,
	}

	result, err := EnergyRule{}.Derive(model.Normalized{}, original)
	require.NoError(t, err)

	assert.InDelta(t, 12.95, result.Value, 1e-9)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestEnergyRule_MixedProvenanceLowersConfidence(t *testing.T) {
	normalized := model.Normalized{
		"batt:capacity":     model.Literal{Value: 2000, Type: model.XSDInteger},
		"batt:capacityUnit": "mAh",
	}
	original := model.Document{"nominalVoltage": 1.2}

	result, err := EnergyRule{}.Derive(normalized, original)
	require.NoError(t, err)

	assert.InDelta(t, 2.4, result.Value, 1e-9)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestEnergyRule_MissingInputs(t *testing.T) {
	tests := []struct {
		name     string
		original model.Document
	}{
		{"no inputs", model.Document{}},
		{"capacity only", model.Document{"capacity": 2000}},
		{"voltage only", model.Document{"nominalVoltage": 1.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnergyRule{}.Derive(model.Normalized{}, tt.original)
			assert.ErrorIs(t, err, common.ErrMissingInputs)
			assert.Nil(t, result)
		})
	}
}

func TestEnergyRule_InvalidInputType(t *testing.T) {
	original := model.Document{
		"capacity":       "lots",
		"nominalVoltage": 1.2,
	}

	result, err := EnergyRule{}.Derive(model.Normalized{}, original)
	assert.ErrorIs(t, err, common.ErrInvalidInputType)
	assert.Nil(t, result)
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 2.4, roundCents(2.4000000000000004), 1e-12)
	assert.InDelta(t, 12.95, roundCents(12.950000000000001), 1e-12)
	assert.InDelta(t, 1.13, roundCents(1.125), 1e-12)
	assert.InDelta(t, -1.13, roundCents(-1.125), 1e-12)
}
