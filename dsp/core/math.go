//go:build !fastmath

package core

import "math"

// Pow2 computes 2^x using standard library math.
func Pow2(x float64) float64 {
	return math.Pow(2, x)
}

// Pow10 computes 10^x using standard library math.
func Pow10(x float64) float64 {
	return math.Pow(10, x)
}

// Sqrt computes sqrt(x) using standard library math.
func Sqrt(x float64) float64 {
	return math.Sqrt(x)
}
