package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidWindow     = errors.New("ir: window must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// schroederFloorDB is reported where the remaining energy is zero.
const schroederFloorDB = -200.0

// Metrics holds decay analysis results. Times are in seconds; a zero time
// means the curve never reached the fit range.
type Metrics struct {
	RT60      float64
	EDT       float64
	T20       float64
	T30       float64
	PeakIndex int // index of the absolute maximum
	TailEnd   int // index after the last non-zero sample
}

// Analyzer computes decay metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// FromSamples converts 16-bit samples for analysis.
func FromSamples(samples []int32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}

	return out
}

// Analyze measures the decay starting at the response peak.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peak := findPeak(ir)
	schroeder := schroederIntegral(ir[peak:])

	m := Metrics{
		PeakIndex: peak,
		TailEnd:   TailEnd(ir, 0),
		EDT:       a.reverbTime(schroeder, 0, -10),
		T20:       a.reverbTime(schroeder, -5, -25),
		T30:       a.reverbTime(schroeder, -5, -35),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time of the response from its peak,
// preferring T30 and falling back to T20.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	schroeder := schroederIntegral(ir[findPeak(ir):])

	if rt := a.reverbTime(schroeder, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.reverbTime(schroeder, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// SchroederIntegral returns the backward-integrated energy of ir in dB
// relative to its total energy:
//
//	S(t) = 10*log10( sum_{k>=t} h[k]^2 / sum_k h[k]^2 )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroederIntegral(ir), nil
}

// EnergyEnvelope returns the mean energy of consecutive windows of ir in
// dB relative to the loudest window. A partial last window is averaged
// over its own length.
func (a *Analyzer) EnergyEnvelope(ir []float64, window int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	energy := square(ir)
	env := make([]float64, 0, (len(ir)+window-1)/window)
	loudest := 0.0

	for start := 0; start < len(energy); start += window {
		end := min(start+window, len(energy))

		sum := 0.0
		for _, e := range energy[start:end] {
			sum += e
		}

		mean := sum / float64(end-start)
		loudest = math.Max(loudest, mean)
		env = append(env, mean)
	}

	for i, e := range env {
		env[i] = toDB(e, loudest)
	}

	return env, nil
}

// TailEnd returns the index after the last sample whose magnitude exceeds
// threshold, or 0 when none does.
func TailEnd(ir []float64, threshold float64) int {
	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) > threshold {
			return i + 1
		}
	}

	return 0
}

func square(x []float64) []float64 {
	out := make([]float64, len(x))
	vecmath.MulBlock(out, x, x)

	return out
}

func toDB(v, ref float64) float64 {
	if v <= 0 || ref <= 0 {
		return schroederFloorDB
	}

	return core.LinearPowerToDB(v / ref)
}

func schroederIntegral(ir []float64) []float64 {
	result := square(ir)

	var cum float64
	for i := len(result) - 1; i >= 0; i-- {
		cum += result[i]
		result[i] = cum
	}

	total := result[0]
	for i := range result {
		result[i] = toDB(result[i], total)
	}

	return result
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB.
func (a *Analyzer) reverbTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	startIdx, endIdx := -1, -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64

	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(endIdx - startIdx + 1)

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func findPeak(ir []float64) int {
	peakIdx := 0
	peak := 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			peak = av
			peakIdx = i
		}
	}

	return peakIdx
}
