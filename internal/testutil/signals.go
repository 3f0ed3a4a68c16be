package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-gtrfx/dsp/window"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// HannBurst generates a sine burst of the given duration shaped by a Hann
// window, followed by silence up to length.
func HannBurst(freqHz, sampleRate, amplitude, durationSec float64, length int) []float64 {
	out := make([]float64, length)
	n := int(durationSec * sampleRate)
	if n > length {
		n = length
	}
	step := 2 * math.Pi * freqHz / sampleRate
	for i := 0; i < n; i++ {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	window.Apply(window.TypeHann, out[:n], window.WithPeriodic())
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Quantize rounds a float signal to 16-bit samples, saturating at the int16
// range.
func Quantize(x []float64) []int32 {
	out := make([]int32, len(x))
	for i, v := range x {
		v = math.Round(v)
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		out[i] = int32(v)
	}
	return out
}

// Float converts samples to float64.
func Float(x []int32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// SampleImpulse generates a 16-bit impulse of the given amplitude.
func SampleImpulse(length, pos int, amplitude int32) []int32 {
	out := make([]int32, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}
	return out
}

// SampleSine generates a quantized sine.
func SampleSine(freqHz, sampleRate, amplitude float64, length int) []int32 {
	return Quantize(DeterministicSine(freqHz, sampleRate, amplitude, length))
}
