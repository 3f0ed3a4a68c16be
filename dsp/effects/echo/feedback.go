package echo

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// FeedbackDecayRange bounds the recirculation factor of FeedbackEcho.
var FeedbackDecayRange = core.Range{Min: 0, Max: 0.95, Default: 0.7}

// feedbackHeadroom keeps the first repeats of a loud input below full
// scale.
const feedbackHeadroom = 0.8

// FeedbackEcho mixes the input with one tap of the history. Because the
// host stores processed samples, each repeat feeds the next one.
type FeedbackEcho struct {
	effects.Switcher

	sampleRate float64
	view       delay.View
	variant    Variant
	tap        delay.Tap

	decay float64
	gain  float64
	scale float64
}

var _ effects.Effect = (*FeedbackEcho)(nil)

var feedbackParamNames = []string{"state", "delay_ms", "decay_rate", "gain"}

// NewFeedbackDelay creates a disabled short feedback delay.
func NewFeedbackDelay(sampleRate float64, view delay.View) (*FeedbackEcho, error) {
	return NewFeedbackEcho(sampleRate, view, VariantDelay)
}

// NewFeedbackEcho creates a disabled feedback echo line of the given
// variant reading view.
func NewFeedbackEcho(sampleRate float64, view delay.View, variant Variant) (*FeedbackEcho, error) {
	if err := effects.ValidateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if !view.Valid() {
		return nil, fmt.Errorf("feedback echo: %w: history holds %d samples", delay.ErrCapacity, view.Capacity())
	}

	e := &FeedbackEcho{
		sampleRate: sampleRate,
		view:       view,
		variant:    variant,
		tap:        delay.NewTap(sampleRate, view.MaxOffset()),
		decay:      FeedbackDecayRange.Default,
		gain:       effects.GainRange.Default,
	}
	e.tap.SetMilliseconds(variant.MillisecondsRange().Default)
	e.recompute()

	return e, nil
}

// Variant returns the preset.
func (e *FeedbackEcho) Variant() Variant { return e.variant }

// DelayMilliseconds returns the effective delay time.
func (e *FeedbackEcho) DelayMilliseconds() float64 { return e.tap.Milliseconds() }

// DelaySamples returns the effective tap offset.
func (e *FeedbackEcho) DelaySamples() int { return e.tap.Samples() }

// DecayRate returns the recirculation factor.
func (e *FeedbackEcho) DecayRate() float64 { return e.decay }

// Gain returns the output gain.
func (e *FeedbackEcho) Gain() float64 { return e.gain }

// Scale returns the input weight derived from gain and decay.
func (e *FeedbackEcho) Scale() float64 { return e.scale }

// SetDelayMilliseconds sets the delay time, clamped to the history.
func (e *FeedbackEcho) SetDelayMilliseconds(ms float64) {
	e.tap.SetMilliseconds(ms)
	e.recompute()
}

// SetDecayRate sets the recirculation factor in [0, 0.95].
func (e *FeedbackEcho) SetDecayRate(rate float64) {
	e.decay = FeedbackDecayRange.Clamp(rate)
	e.recompute()
}

// SetGain sets the output gain.
func (e *FeedbackEcho) SetGain(gain float64) {
	e.gain = effects.GainRange.Clamp(gain)
	e.recompute()
}

// Process returns scale*sample plus the decayed tap, saturated.
func (e *FeedbackEcho) Process(sample int32, cursor int) int32 {
	tap := e.view.Read(cursor, e.tap.Samples())
	return core.ToSample(e.scale*float64(sample) + e.decay*float64(tap))
}

// ParamNames returns the parameter vector layout.
func (e *FeedbackEcho) ParamNames() []string { return feedbackParamNames }

// Params exports state, delay_ms, decay_rate and gain.
func (e *FeedbackEcho) Params() []float64 {
	return []float64{e.State().Param(), e.tap.Milliseconds(), e.decay, e.gain}
}

// SetParams imports a vector in Params order.
func (e *FeedbackEcho) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		e.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 1); ok {
		e.SetDelayMilliseconds(e.variant.MillisecondsRange().Clamp(v))
	}

	if v, ok := effects.Param(values, 2); ok {
		e.SetDecayRate(v)
	}

	if v, ok := effects.Param(values, 3); ok {
		e.SetGain(v)
	}
}

// recompute derives scale so that the infinite series
// scale^2 * sum(decay^2n) equals (headroom*gain)^2.
func (e *FeedbackEcho) recompute() {
	e.scale = feedbackHeadroom * core.Sqrt(e.gain*e.gain*(1-e.decay*e.decay))
}
