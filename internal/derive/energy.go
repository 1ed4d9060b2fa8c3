package derive

import (
	"fmt"
	"math"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"
)

// Confidence assigned to energy derivations depending on input provenance.
const (
	energyConfidenceMatched  = 0.95
	energyConfidenceFallback = 0.85
)

// EnergyRule derives energy in watt-hours from capacity and nominal voltage.
// Formula: Wh = (mAh / 1000) * V.
type EnergyRule struct{}

// Property returns the derived property name.
func (EnergyRule) Property() string { return "energyWh" }

// Derive prefers normalized values and falls back to the raw original
// document. Capacity is converted to mAh when its recorded unit is Ah; the
// fallback default unit is mAh.
func (EnergyRule) Derive(normalized model.Normalized, original model.Document) (*Result, error) {
	capRaw, capMatched, capFound := resolve(normalized, original, "capacity")
	voltRaw, voltMatched, voltFound := resolve(normalized, original, "nominalVoltage")

	if !capFound || !voltFound {
		return nil, fmt.Errorf("%w: capacity, voltage", common.ErrMissingInputs)
	}

	capacityMah, capOK := model.Float(capRaw)
	voltage, voltOK := model.Float(voltRaw)
	if !capOK || !voltOK {
		return nil, fmt.Errorf("%w: capacity and voltage must be numeric", common.ErrInvalidInputType)
	}

	if unitOf(normalized, original, "capacity", capMatched, "mAh") == "Ah" {
		capacityMah *= 1000
	}

	steps := make([]string, 0, 3)
	steps = append(steps, fmt.Sprintf("Input: capacity = %v mAh, voltage = %v V", capacityMah, voltage))

	capacityAh := capacityMah / 1000
	steps = append(steps, fmt.Sprintf("Convert capacity: %v mAh ÷ 1000 = %v Ah", capacityMah, capacityAh))

	energyWh := capacityAh * voltage
	steps = append(steps, fmt.Sprintf("Compute energy: %v Ah × %v V = %v Wh", capacityAh, voltage, energyWh))

	confidence := energyConfidenceMatched
	if !capMatched || !voltMatched {
		confidence = energyConfidenceFallback
	}

	return &Result{
		Value:   roundCents(energyWh),
		Formula: "Wh = (mAh / 1000) * V",
		Inputs: map[string]float64{
			"capacity_mAh":     capacityMah,
			"nominalVoltage_V": voltage,
		},
		Steps:      steps,
		Confidence: confidence,
		Unit:       "Wh",
	}, nil
}

// roundCents rounds half away from zero at two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
