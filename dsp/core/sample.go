package core

import "math"

// Sample range of the 16-bit converters feeding the effect chain.
const (
	MaxSample = math.MaxInt16
	MinSample = math.MinInt16
)

// Saturate clamps x to the representable sample range.
func Saturate(x int32) int32 {
	if x > MaxSample {
		return MaxSample
	}

	if x < MinSample {
		return MinSample
	}

	return x
}

// ToSample rounds x to the nearest integer and saturates it to the sample
// range. NaN maps to zero.
func ToSample(x float64) int32 {
	if x != x {
		return 0
	}

	if x >= MaxSample {
		return MaxSample
	}

	if x <= MinSample {
		return MinSample
	}

	return int32(math.Round(x))
}

// Truncate converts x to an integer sample without saturation, rounding
// toward zero. Used where the output range is left to upstream gain staging.
func Truncate(x float64) int32 {
	if x != x {
		return 0
	}

	if x >= math.MaxInt32 {
		return math.MaxInt32
	}

	if x <= math.MinInt32 {
		return math.MinInt32
	}

	return int32(x)
}
