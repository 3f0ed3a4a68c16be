package pitch

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gtrfx/dsp/window"
)

var (
	// ErrSize is returned for FFT sizes that are not a power of two >= 64.
	ErrSize = errors.New("pitch: fft size must be a power of two >= 64")
	// ErrShortBlock is returned when a block is shorter than the FFT size.
	ErrShortBlock = errors.New("pitch: block shorter than fft size")
	// ErrSilent is returned when the analysed block carries no energy in
	// the search range.
	ErrSilent = errors.New("pitch: no energy in search range")
)

// Estimator finds the strongest spectral peak of a block.
type Estimator struct {
	sampleRate float64
	size       int

	minHz, maxHz float64

	plan   *algofft.Plan[complex128]
	window []float64

	frame   []float64
	in, out []complex128
	re, im  []float64
	power   []float64
}

// NewEstimator creates an estimator for blocks of size samples.
func NewEstimator(sampleRate float64, size int) (*Estimator, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitch: sample rate must be positive and finite: %f", sampleRate)
	}

	if size < 64 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("pitch: fft plan: %w", err)
	}

	bins := size/2 + 1

	return &Estimator{
		sampleRate: sampleRate,
		size:       size,
		minHz:      20,
		maxHz:      sampleRate / 2,
		plan:       plan,
		window:     window.Generate(window.TypeHann, size, window.WithPeriodic()),
		frame:      make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
	}, nil
}

// Size returns the FFT size.
func (e *Estimator) Size() int { return e.size }

// BinHz returns the spectral resolution.
func (e *Estimator) BinHz() float64 { return e.sampleRate / float64(e.size) }

// SetRange limits the peak search to [minHz, maxHz].
func (e *Estimator) SetRange(minHz, maxHz float64) {
	nyquist := e.sampleRate / 2
	e.minHz = math.Max(0, math.Min(minHz, nyquist))
	e.maxHz = math.Max(e.minHz, math.Min(maxHz, nyquist))
}

// Dominant returns the frequency of the strongest peak in the first Size
// samples of block.
func (e *Estimator) Dominant(block []float64) (float64, error) {
	if len(block) < e.size {
		return 0, fmt.Errorf("%w: %d < %d", ErrShortBlock, len(block), e.size)
	}

	vecmath.MulBlock(e.frame, block[:e.size], e.window)

	for i, v := range e.frame {
		e.in[i] = complex(v, 0)
	}

	if err := e.plan.Forward(e.out, e.in); err != nil {
		return 0, fmt.Errorf("pitch: fft: %w", err)
	}

	for i := range e.re {
		e.re[i] = real(e.out[i])
		e.im[i] = imag(e.out[i])
	}

	vecmath.Power(e.power, e.re, e.im)

	binHz := e.BinHz()
	lo := max(1, int(math.Ceil(e.minHz/binHz)))
	hi := min(len(e.power)-2, int(math.Floor(e.maxHz/binHz)))

	peak := -1
	best := 0.0
	for k := lo; k <= hi; k++ {
		if e.power[k] > best {
			best = e.power[k]
			peak = k
		}
	}

	if peak < 0 {
		return 0, ErrSilent
	}

	return (float64(peak) + e.interpolate(peak)) * binHz, nil
}

// interpolate returns the fractional bin offset of a parabola fitted
// through the log power of peak and its neighbours.
func (e *Estimator) interpolate(peak int) float64 {
	const floor = 1e-300

	a := math.Log(math.Max(e.power[peak-1], floor))
	b := math.Log(math.Max(e.power[peak], floor))
	c := math.Log(math.Max(e.power[peak+1], floor))

	den := a - 2*b + c
	if den == 0 {
		return 0
	}

	d := 0.5 * (a - c) / den
	if d < -0.5 || d > 0.5 {
		return 0
	}

	return d
}

// DominantSamples is Dominant for 16-bit samples.
func (e *Estimator) DominantSamples(block []int32) (float64, error) {
	if len(block) < e.size {
		return 0, fmt.Errorf("%w: %d < %d", ErrShortBlock, len(block), e.size)
	}

	f := make([]float64, e.size)
	for i := range f {
		f[i] = float64(block[i])
	}

	return e.Dominant(f)
}
