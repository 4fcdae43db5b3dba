package units

import "strings"

// Unknown is returned when a parameter name carries no parenthesized unit.
const Unknown = "Unknown"

// Extract pulls the unit out of a full parameter name,
// e.g. "Oil Temp (deg F)" -> "deg F".
func Extract(fullName string) string {
	open := strings.Index(fullName, "(")
	if open < 0 || !strings.Contains(fullName, ")") {
		return Unknown
	}
	rest := fullName[open+1:]
	if end := strings.Index(rest, ")"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// FahrenheitToCelsius converts a temperature reading to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CelsiusToFahrenheit converts a temperature reading to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// IsFahrenheit reports whether a unit string denotes degrees Fahrenheit.
func IsFahrenheit(unit string) bool {
	return strings.Contains(unit, "deg F")
}

// ToCelsiusLabel relabels a Fahrenheit unit or display name as Celsius.
func ToCelsiusLabel(label string) string {
	return strings.ReplaceAll(label, "deg F", "deg C")
}
