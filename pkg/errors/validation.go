package errors

import "math"

// ValidateFinite rejects NaN and infinite values. Coordinates outside the
// finite range break every distance and intersection computation downstream.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidLayer, "%s is not a finite number", name)
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite tuning values.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", name, v)
	}
	return nil
}

// ValidateFormat checks format against a set of supported names.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}
