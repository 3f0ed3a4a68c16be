package echo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

const maxRepeats = 8

// Parameter ranges of FeedforwardEcho.
var (
	FeedforwardDecayRange = core.Range{Min: 0, Max: 1, Default: 0.9}
	RepeatsRange          = core.Range{Min: 1, Max: maxRepeats, Default: 4}
)

// FeedforwardEcho sums the input with a fixed number of equally spaced
// history taps of geometrically falling weight.
type FeedforwardEcho struct {
	effects.Switcher

	sampleRate float64
	view       delay.View
	variant    Variant
	tap        delay.Tap

	repeats int
	decay   float64
	gain    float64
	scale   float64

	// weights[n] is scale*decay^n.
	weights [maxRepeats]float64
}

var _ effects.Effect = (*FeedforwardEcho)(nil)

var feedforwardParamNames = []string{"state", "delay_ms", "decay_rate", "repeats", "gain"}

// NewFeedforwardDelay creates a disabled short multi-tap delay.
func NewFeedforwardDelay(sampleRate float64, view delay.View) (*FeedforwardEcho, error) {
	return NewFeedforwardEcho(sampleRate, view, VariantDelay)
}

// NewFeedforwardEcho creates a disabled multi-tap echo of the given variant
// reading view.
func NewFeedforwardEcho(sampleRate float64, view delay.View, variant Variant) (*FeedforwardEcho, error) {
	if err := effects.ValidateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if view.Capacity() < maxRepeats*(delay.MinOffset+1) {
		return nil, fmt.Errorf("feedforward echo: %w: history holds %d samples", delay.ErrCapacity, view.Capacity())
	}

	e := &FeedforwardEcho{
		sampleRate: sampleRate,
		view:       view,
		variant:    variant,
		repeats:    int(RepeatsRange.Default),
		decay:      FeedforwardDecayRange.Default,
		gain:       effects.GainRange.Default,
	}
	e.tap = delay.NewTap(sampleRate, e.tapLimit())
	e.tap.SetMilliseconds(variant.MillisecondsRange().Default)
	e.recompute()

	return e, nil
}

// Variant returns the preset.
func (e *FeedforwardEcho) Variant() Variant { return e.variant }

// DelayMilliseconds returns the effective spacing between repeats.
func (e *FeedforwardEcho) DelayMilliseconds() float64 { return e.tap.Milliseconds() }

// DelaySamples returns the effective spacing in samples.
func (e *FeedforwardEcho) DelaySamples() int { return e.tap.Samples() }

// Repeats returns the number of output terms including the dry one.
func (e *FeedforwardEcho) Repeats() int { return e.repeats }

// DecayRate returns the weight ratio between consecutive repeats.
func (e *FeedforwardEcho) DecayRate() float64 { return e.decay }

// Gain returns the output gain.
func (e *FeedforwardEcho) Gain() float64 { return e.gain }

// Scale returns the weight of the dry term.
func (e *FeedforwardEcho) Scale() float64 { return e.scale }

// Weights returns the weight of each term, dry first.
func (e *FeedforwardEcho) Weights() []float64 {
	return append([]float64(nil), e.weights[:e.repeats]...)
}

// SetDelayMilliseconds sets the spacing between repeats. The last repeat
// must fit the history, so the spacing is at most capacity/repeats - 1
// samples.
func (e *FeedforwardEcho) SetDelayMilliseconds(ms float64) {
	e.tap.SetMilliseconds(ms)
	e.recompute()
}

// SetDecayRate sets the ratio between consecutive repeats in [0, 1].
func (e *FeedforwardEcho) SetDecayRate(rate float64) {
	e.decay = FeedforwardDecayRange.Clamp(rate)
	e.recompute()
}

// SetRepeats sets the number of terms in [1, 8] and re-clamps the spacing.
func (e *FeedforwardEcho) SetRepeats(repeats float64) {
	e.repeats = RepeatsRange.ClampInt(repeats)
	e.tap.SetLimit(e.tapLimit())
	e.recompute()
}

// SetGain sets the output gain.
func (e *FeedforwardEcho) SetGain(gain float64) {
	e.gain = effects.GainRange.Clamp(gain)
	e.recompute()
}

// Process sums the weighted input and repeats, saturated.
func (e *FeedforwardEcho) Process(sample int32, cursor int) int32 {
	out := e.weights[0] * float64(sample)

	d := e.tap.Samples()
	for n := 1; n < e.repeats; n++ {
		out += e.weights[n] * float64(e.view.Read(cursor, n*d))
	}

	return core.ToSample(out)
}

// ParamNames returns the parameter vector layout.
func (e *FeedforwardEcho) ParamNames() []string { return feedforwardParamNames }

// Params exports state, delay_ms, decay_rate, repeats and gain.
func (e *FeedforwardEcho) Params() []float64 {
	return []float64{e.State().Param(), e.tap.Milliseconds(), e.decay, float64(e.repeats), e.gain}
}

// SetParams imports a vector in Params order. Repeats are applied before
// the delay time so the spacing is clamped against the new count.
func (e *FeedforwardEcho) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		e.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 3); ok {
		e.SetRepeats(v)
	}

	if v, ok := effects.Param(values, 1); ok {
		e.SetDelayMilliseconds(e.variant.MillisecondsRange().Clamp(v))
	}

	if v, ok := effects.Param(values, 2); ok {
		e.SetDecayRate(v)
	}

	if v, ok := effects.Param(values, 4); ok {
		e.SetGain(v)
	}
}

func (e *FeedforwardEcho) tapLimit() int {
	return e.view.Capacity()/e.repeats - 1
}

// recompute normalizes the finite series scale^2 * sum(decay^2n), n < repeats,
// to gain^2.
func (e *FeedforwardEcho) recompute() {
	g2 := e.gain * e.gain
	r := e.decay
	n := float64(e.repeats)

	switch {
	case e.repeats == 1:
		e.scale = e.gain
	case r >= 1:
		e.scale = core.Sqrt(g2 / n)
	default:
		e.scale = core.Sqrt(g2 * (1 - r*r) / (1 - math.Pow(r*r, n)))
	}

	w := e.scale
	for i := range e.weights {
		e.weights[i] = w
		w *= r
	}
}
