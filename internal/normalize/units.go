package normalize

import "github.com/Veraticus/vocamatch/internal/model"

// Fixed bidirectional conversion table, keyed by "from->to". The key doubles
// as the formula text recorded in conversion provenance.
var conversions = map[string]func(float64) float64{
	// Capacity
	"mAh->Ah": func(v float64) float64 { return v / 1000 },
	"Ah->mAh": func(v float64) float64 { return v * 1000 },

	// Voltage (identity)
	"V->V": func(v float64) float64 { return v },

	// Weight
	"g->kg": func(v float64) float64 { return v / 1000 },
	"kg->g": func(v float64) float64 { return v * 1000 },
	"g->oz": func(v float64) float64 { return v * 0.035274 },
	"oz->g": func(v float64) float64 { return v / 0.035274 },

	// Energy
	"Wh->kWh": func(v float64) float64 { return v / 1000 },
	"kWh->Wh": func(v float64) float64 { return v * 1000 },
}

// canonicalUnits maps normalized properties to the unit their values are
// rewritten into. Ordered so conversion records come out deterministically.
var canonicalUnits = []struct {
	property string
	unit     string
}{
	{"capacity", "Ah"},
	{"nominalVoltage", "V"},
	{"weight", "kg"},
	{"energyWh", "Wh"},
}

// ConvertUnit applies the fixed conversion table. Unlisted pairs return the
// value unchanged and false; conversion is best-effort and never an error.
func ConvertUnit(value float64, from, to string) (float64, bool) {
	convert, ok := conversions[from+"->"+to]
	if !ok {
		return value, false
	}
	return convert(value), true
}

// NormalizeUnits rewrites every convertible property to its canonical unit in
// place and appends the conversion records. Properties with unconvertible
// unit pairs are left untouched.
func (n *Normalizer) NormalizeUnits(normalized model.Normalized) model.Normalized {
	var applied []model.UnitConversion

	for _, canonical := range canonicalUnits {
		valueKey := model.Key(canonical.property)
		unitKey := model.Key(canonical.property + "Unit")

		literal, ok := normalized[valueKey].(model.Literal)
		if !ok {
			continue
		}
		unit, ok := normalized[unitKey].(string)
		if !ok || unit == canonical.unit {
			continue
		}
		value, ok := model.Float(literal.Value)
		if !ok {
			continue
		}

		converted, didConvert := ConvertUnit(value, unit, canonical.unit)
		if !didConvert {
			continue
		}

		normalized[valueKey] = model.Literal{Value: converted, Type: literal.Type}
		normalized[unitKey] = canonical.unit
		applied = append(applied, model.UnitConversion{
			Property: canonical.property,
			From:     unit,
			To:       canonical.unit,
			Formula:  unit + "->" + canonical.unit,
		})
	}

	if len(applied) > 0 {
		normalized[model.Key("unitConversions")] = applied
	}
	return normalized
}
