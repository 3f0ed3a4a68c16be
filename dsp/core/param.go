package core

import "math"

// Range is the valid interval of one effect parameter together with its
// power-on default. Setters pass every input through Clamp, so invalid
// values become the nearest boundary instead of an error.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Clamp returns v limited to [r.Min, r.Max]. NaN yields the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}

	return Clamp(v, r.Min, r.Max)
}

// ClampInt is Clamp for integer-valued parameters; the result is rounded to
// the nearest integer.
func (r Range) ClampInt(v float64) int {
	return int(math.Round(r.Clamp(v)))
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
