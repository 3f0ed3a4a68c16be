package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in recursive filter state.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// MillisecondsToSamples converts a duration in milliseconds to the nearest
// whole number of samples at sampleRate.
func MillisecondsToSamples(ms, sampleRate float64) int {
	return int(math.Round(sampleRate * ms / 1000))
}

// SamplesToMilliseconds converts a sample count to milliseconds at sampleRate.
func SamplesToMilliseconds(samples int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(samples) / sampleRate * 1000
}

// IsFinitePositive reports whether v is a positive, finite number.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
