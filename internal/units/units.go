// Package units provides shared constants and validation for length units.
// Body shapes are expressed in centimetres; derived physical quantities are
// reported in SI (metres, kg·m²).
package units

// Unit constants
const (
	CM = "cm"
	M  = "m"
)

// ValidUnits contains all valid length unit values
var ValidUnits = []string{CM, M}

// CentimetersPerMeter converts metre values to centimetres.
const CentimetersPerMeter = 100.0

// SquareCentimetersToSquareMeters converts cm²-based area terms to m².
// Moment-of-inertia sums carry cm⁴ terms divided by cm² areas, so a single
// 1e-4 factor takes the result to kg·m².
const SquareCentimetersToSquareMeters = 1e-4

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// CmToMeters converts a length in centimetres to metres.
func CmToMeters(cm float64) float64 {
	return cm / CentimetersPerMeter
}

// MetersToCm converts a length in metres to centimetres.
func MetersToCm(m float64) float64 {
	return m * CentimetersPerMeter
}

// ConvertLength converts a centimetre length to the target units.
func ConvertLength(lengthCM float64, targetUnits string) float64 {
	switch targetUnits {
	case M:
		return CmToMeters(lengthCM)
	case CM:
		return lengthCM
	default:
		return lengthCM // default to cm if unknown unit
	}
}
