//go:build fastmath

package core

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const (
	ln2  = 0.693147180559945309417232121458
	ln10 = 2.30258509299404568401799145468
)

// Pow2 computes 2^x using fast approximation.
// Uses the identity: 2^x = e^(x * ln(2))
func Pow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// Pow10 computes 10^x using fast approximation.
// Large negative exponents fall back to math.Pow to keep tiny gains exact
// enough for decay-time synthesis.
func Pow10(x float64) float64 {
	if x < -30 {
		return math.Pow(10, x)
	}

	return approx.FastExp(x * ln10)
}

// Sqrt computes sqrt(x) using fast approximation.
func Sqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
