package derive

import (
	"fmt"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"
)

const powerConfidence = 0.95

// PowerRule derives a power rating in watts from current and nominal voltage.
// Formula: W = A * V.
type PowerRule struct{}

// Property returns the derived property name.
func (PowerRule) Property() string { return "powerW" }

// Derive reads current and voltage from the normalized document with
// original-document fallback.
func (PowerRule) Derive(normalized model.Normalized, original model.Document) (*Result, error) {
	currentRaw, _, currentFound := resolve(normalized, original, "current")
	voltRaw, _, voltFound := resolve(normalized, original, "nominalVoltage")

	if !currentFound || !voltFound {
		return nil, fmt.Errorf("%w: current, voltage", common.ErrMissingInputs)
	}

	current, currentOK := model.Float(currentRaw)
	voltage, voltOK := model.Float(voltRaw)
	if !currentOK || !voltOK {
		return nil, fmt.Errorf("%w: current and voltage must be numeric", common.ErrInvalidInputType)
	}

	powerW := current * voltage

	return &Result{
		Value:   roundCents(powerW),
		Formula: "W = A * V",
		Inputs: map[string]float64{
			"current_A": current,
			"voltage_V": voltage,
		},
		Steps: []string{
			fmt.Sprintf("Input: current = %v A, voltage = %v V", current, voltage),
			fmt.Sprintf("Compute power: %v A × %v V = %v W", current, voltage, powerW),
		},
		Confidence: powerConfidence,
		Unit:       "W",
	}, nil
}
