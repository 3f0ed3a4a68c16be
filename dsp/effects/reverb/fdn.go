package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

const (
	fdnSize = 4

	// Decay time at Nyquist, in seconds.
	nyquistT60 = 0.1
	// Tone corrector coefficient.
	toneAlpha = 0.99
)

// fdnLengths are mutually prime line lengths in samples.
var fdnLengths = [fdnSize]int{1619, 1493, 1361, 1117}

// ReverbTimeRange bounds the DC decay time in milliseconds.
var ReverbTimeRange = core.Range{Min: 0, Max: 20000, Default: 1000}

// MinCapacity is the smallest capacity NewReverberator accepts.
const MinCapacity = fdnSize * (1619 + 1)

// Reverberator is a mono FDN reverb: four delay lines mixed through a
// scaled 4x4 Hadamard matrix, each with a one-pole damping filter whose
// pole makes high frequencies die out faster than low ones.
type Reverberator struct {
	effects.Switcher

	sampleRate float64
	capacity   int

	reverbTimeMs float64
	gain         float64

	lines [fdnSize]*delay.Line

	// per-line loop gain g, damping pole p and input weight 0.5*g*(1-p)
	loopGain [fdnSize]float64
	pole     [fdnSize]float64
	feed     [fdnSize]float64

	filterState [fdnSize]float64

	toneB    float64
	toneNorm float64
	prevSum  float64
}

var _ effects.Effect = (*Reverberator)(nil)

var reverbParamNames = []string{"state", "reverb_time_ms", "gain"}

// NewReverberator creates a disabled reverberator whose four lines share
// capacity samples. Each line gets capacity/4 samples, which must exceed
// the longest line length.
func NewReverberator(sampleRate float64, capacity int) (*Reverberator, error) {
	if err := effects.ValidateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if capacity < MinCapacity {
		return nil, fmt.Errorf("reverberator: %w: capacity %d, need at least %d",
			delay.ErrCapacity, capacity, MinCapacity)
	}

	r := &Reverberator{
		sampleRate:   sampleRate,
		capacity:     capacity,
		reverbTimeMs: ReverbTimeRange.Default,
		gain:         effects.GainRange.Default,
	}

	for i := range r.lines {
		line, err := delay.NewLine(capacity / fdnSize)
		if err != nil {
			return nil, fmt.Errorf("reverberator: line %d: %w", i, err)
		}

		r.lines[i] = line
	}

	r.recompute()

	return r, nil
}

// SampleRate returns the sample rate in Hz.
func (r *Reverberator) SampleRate() float64 { return r.sampleRate }

// Capacity returns the total sample storage of the four lines.
func (r *Reverberator) Capacity() int { return r.capacity }

// ReverbTimeMilliseconds returns the DC decay time.
func (r *Reverberator) ReverbTimeMilliseconds() float64 { return r.reverbTimeMs }

// Gain returns the output gain.
func (r *Reverberator) Gain() float64 { return r.gain }

// LoopGains returns the per-line DC loop gains.
func (r *Reverberator) LoopGains() [fdnSize]float64 { return r.loopGain }

// Poles returns the per-line damping filter poles.
func (r *Reverberator) Poles() [fdnSize]float64 { return r.pole }

// SetReverbTimeMilliseconds sets the time for a DC signal to decay by
// 60 dB. Zero leaves no tail. Lines are cleared.
func (r *Reverberator) SetReverbTimeMilliseconds(ms float64) {
	r.reverbTimeMs = ReverbTimeRange.Clamp(ms)
	r.recompute()
}

// SetGain sets the output gain. Lines are cleared.
func (r *Reverberator) SetGain(gain float64) {
	r.gain = effects.GainRange.Clamp(gain)
	r.recompute()
}

// Reset clears the lines and filter state.
func (r *Reverberator) Reset() {
	for i := range r.lines {
		r.lines[i].Reset()
		r.filterState[i] = 0
	}

	r.prevSum = 0
}

// Process runs one tick of the network. cursor is ignored.
func (r *Reverberator) Process(sample int32, _ int) int32 {
	var w [fdnSize]float64
	for i, line := range r.lines {
		w[i] = float64(line.Read(fdnLengths[i]))
	}

	// Hadamard mix; the 1/2 scale is folded into feed.
	p01, p23 := w[0]+w[1], w[2]+w[3]
	d01, d23 := w[0]-w[1], w[2]-w[3]
	mixed := [fdnSize]float64{p01 + p23, d01 + d23, p01 - p23, d01 - d23}

	x := float64(sample)
	for i, line := range r.lines {
		f := r.feed[i]*mixed[i] + r.pole[i]*r.filterState[i]
		r.filterState[i] = core.FlushDenormals(f)

		line.Write(core.ToSample(f + x))
		line.Advance()
	}

	y := w[0] + w[1] + w[2] + w[3]
	out := r.gain * (y - r.toneB*r.prevSum) * r.toneNorm
	r.prevSum = y

	return core.ToSample(out)
}

// ParamNames returns the parameter vector layout.
func (r *Reverberator) ParamNames() []string { return reverbParamNames }

// Params exports state, reverb_time_ms and gain.
func (r *Reverberator) Params() []float64 {
	return []float64{r.State().Param(), r.reverbTimeMs, r.gain}
}

// SetParams imports a vector in Params order.
func (r *Reverberator) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		r.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 1); ok {
		r.SetReverbTimeMilliseconds(v)
	}

	if v, ok := effects.Param(values, 2); ok {
		r.SetGain(v)
	}
}

// recompute derives loop gains and damping poles from the decay times and
// clears all state.
//
// For line i of length M, g = 10^(-3M/(t60*fs)) is the loop gain giving a
// 60 dB decay after t60 at DC and h is the same for the Nyquist decay
// time. The pole p = (g-h)/(g+h) makes the filter gain g at DC and h at
// Nyquist.
func (r *Reverberator) recompute() {
	t60 := r.reverbTimeMs / 1000
	tny := min(nyquistT60, t60)

	for i, m := range fdnLengths {
		if t60 <= 0 {
			r.loopGain[i], r.pole[i], r.feed[i] = 0, 0, 0
			continue
		}

		g := core.Pow10(-3 * float64(m) / (t60 * r.sampleRate))
		h := core.Pow10(-3 * float64(m) / (tny * r.sampleRate))
		p := (g - h) / (g + h)

		r.loopGain[i] = g
		r.pole[i] = p
		r.feed[i] = 0.5 * g * (1 - p)
	}

	r.toneB = (1 - toneAlpha) / (1 + toneAlpha)
	r.toneNorm = 1 / (1 - r.toneB)

	r.Reset()
}
