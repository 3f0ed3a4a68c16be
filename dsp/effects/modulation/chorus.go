package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// Parameter ranges of Chorus.
var (
	DelayRange        = core.Range{Min: 0, Max: 1000, Default: 1}
	DepthRange        = core.Range{Min: 0.1, Max: 100, Default: 5}
	ChorusPeriodRange = core.Range{Min: PeriodRange.Min, Max: PeriodRange.Max, Default: 2000}
)

// chorusHeadroom is the make-up gain applied to both paths.
const chorusHeadroom = 1.2

var (
	chorusParamNames = []string{
		"state", "depth_ms", "delay_ms", "mix", "lfo_profile", "lfo_period_ms", "lfo_duty", "gain",
	}
	vibratoParamNames = []string{
		"state", "depth_ms", "delay_ms", "lfo_profile", "lfo_period_ms", "lfo_duty", "gain",
	}
)

// Chorus reads the shared history at a base delay swept by an oscillator and
// mixes the result with the input. A vibrato is a Chorus whose dry path is
// removed.
type Chorus struct {
	effects.Switcher

	sampleRate float64
	view       delay.View
	vibrato    bool
	lfo        Oscillator
	sine       *LFO

	tap     delay.Tap
	depthMs float64
	mix     float64
	gain    float64

	depthScale float64
	dry        float64
	wet        float64
}

var _ effects.Effect = (*Chorus)(nil)

// NewChorus creates a disabled chorus driven by a sine LFO.
func NewChorus(sampleRate float64, view delay.View) (*Chorus, error) {
	return newChorus(sampleRate, view, false)
}

// NewVibrato creates a disabled vibrato driven by a sine LFO.
func NewVibrato(sampleRate float64, view delay.View) (*Chorus, error) {
	return newChorus(sampleRate, view, true)
}

func newChorus(sampleRate float64, view delay.View, vibrato bool) (*Chorus, error) {
	if err := effects.ValidateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if !view.Valid() {
		return nil, fmt.Errorf("chorus: %w: history holds %d samples", delay.ErrCapacity, view.Capacity())
	}

	sine := NewSineOscillator(sampleRate, ChorusPeriodRange.Default)

	c := &Chorus{
		sampleRate: sampleRate,
		view:       view,
		vibrato:    vibrato,
		lfo:        sine,
		sine:       sine,
		tap:        delay.NewTap(sampleRate, view.MaxOffset()),
		depthMs:    DepthRange.Default,
		mix:        effects.MixRange.Default,
		gain:       effects.GainRange.Default,
	}
	if vibrato {
		c.mix = 1
	}

	c.tap.SetMilliseconds(DelayRange.Default)
	c.recompute()

	return c, nil
}

// Vibrato reports whether the dry path is removed.
func (c *Chorus) Vibrato() bool { return c.vibrato }

// DelayMilliseconds returns the effective base delay.
func (c *Chorus) DelayMilliseconds() float64 { return c.tap.Milliseconds() }

// DelaySamples returns the base tap offset.
func (c *Chorus) DelaySamples() int { return c.tap.Samples() }

// DepthMilliseconds returns the sweep width.
func (c *Chorus) DepthMilliseconds() float64 { return c.depthMs }

// Mix returns the wet fraction.
func (c *Chorus) Mix() float64 { return c.mix }

// Gain returns the output gain.
func (c *Chorus) Gain() float64 { return c.gain }

// PeriodMilliseconds returns the period of the built-in LFO.
func (c *Chorus) PeriodMilliseconds() float64 { return c.sine.PeriodMilliseconds() }

// LFO returns the built-in sine oscillator.
func (c *Chorus) LFO() *LFO { return c.sine }

// SetOscillator replaces the modulation source. nil restores the built-in
// sine LFO.
func (c *Chorus) SetOscillator(osc Oscillator) {
	if osc == nil {
		osc = c.sine
	}

	c.lfo = osc
	c.recompute()
}

// SetDelayMilliseconds sets the base delay, clamped to [0, 1000] ms and to
// the history.
func (c *Chorus) SetDelayMilliseconds(ms float64) {
	c.tap.SetMilliseconds(DelayRange.Clamp(ms))
}

// SetDepthMilliseconds sets the sweep width in [0.1, 100] ms.
func (c *Chorus) SetDepthMilliseconds(ms float64) {
	c.depthMs = DepthRange.Clamp(ms)
	c.recompute()
}

// SetMix sets the wet fraction. A vibrato ignores it.
func (c *Chorus) SetMix(mix float64) {
	if c.vibrato {
		return
	}

	c.mix = effects.MixRange.Clamp(mix)
	c.recompute()
}

// SetGain sets the output gain.
func (c *Chorus) SetGain(gain float64) {
	c.gain = effects.GainRange.Clamp(gain)
	c.recompute()
}

// SetPeriodMilliseconds sets the period of the built-in LFO.
func (c *Chorus) SetPeriodMilliseconds(ms float64) {
	c.sine.SetPeriodMilliseconds(ChorusPeriodRange.Clamp(ms))
}

// SetProfile selects the waveform of the built-in LFO.
func (c *Chorus) SetProfile(p Profile) { c.sine.SetProfile(p) }

// SetDutyCycle sets the duty cycle of the built-in LFO in percent.
func (c *Chorus) SetDutyCycle(percent float64) { c.sine.SetDutyCycle(percent) }

// Reset rewinds the built-in LFO.
func (c *Chorus) Reset() { c.sine.Reset() }

// Offset returns the read offset for an oscillator value.
func (c *Chorus) Offset(lfo uint32) int {
	off := c.tap.Samples() + int(c.depthScale*float64(lfo))
	return min(off, c.view.MaxOffset())
}

// Process advances the oscillator and mixes the modulated tap with the
// input.
func (c *Chorus) Process(sample int32, cursor int) int32 {
	tap := c.view.Read(cursor, c.Offset(c.lfo.Value()))
	return core.ToSample(c.dry*float64(sample) + c.wet*float64(tap))
}

// ParamNames returns the parameter vector layout.
func (c *Chorus) ParamNames() []string {
	if c.vibrato {
		return vibratoParamNames
	}

	return chorusParamNames
}

// Params exports the parameter vector in ParamNames order.
func (c *Chorus) Params() []float64 {
	head := []float64{c.State().Param(), c.depthMs, c.tap.Milliseconds()}
	if !c.vibrato {
		head = append(head, c.mix)
	}

	return append(head, float64(c.sine.Profile()), c.PeriodMilliseconds(), c.sine.DutyCycle(), c.gain)
}

// SetParams imports a vector in ParamNames order.
func (c *Chorus) SetParams(values []float64) {
	names := c.ParamNames()

	for i, name := range names {
		if i >= len(values) {
			return
		}

		v := values[i]
		switch name {
		case "state":
			c.Switch(effects.StateFromParam(v))
		case "depth_ms":
			c.SetDepthMilliseconds(v)
		case "delay_ms":
			c.SetDelayMilliseconds(v)
		case "mix":
			c.SetMix(v)
		case "lfo_profile":
			c.SetProfile(ProfileFromParam(v))
		case "lfo_period_ms":
			c.SetPeriodMilliseconds(v)
		case "lfo_duty":
			c.SetDutyCycle(v)
		case "gain":
			c.SetGain(v)
		}
	}
}

func (c *Chorus) recompute() {
	c.depthScale = 0
	if amp := c.lfo.Amplitude(); amp > 0 {
		c.depthScale = c.depthMs * c.sampleRate / 1000 / float64(amp)
	}

	c.dry = chorusHeadroom * c.gain * (1 - c.mix)
	c.wet = chorusHeadroom * c.gain * c.mix
}
