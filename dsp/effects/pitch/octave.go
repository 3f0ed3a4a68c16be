package pitch

import (
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

const octaveCycle = 3000

// OctaveGeometry is the fixed octave-up grain: taps approach the cursor one
// sample per tick and the second half of each cycle is an equal-power
// blend into the next grain.
func OctaveGeometry() GrainGeometry {
	return GrainGeometry{
		Cycle:      octaveCycle,
		K1Start:    octaveCycle,
		K2Start:    octaveCycle * 3 / 2,
		Rise:       octaveCycle,
		Step:       -1,
		BlendStart: octaveCycle / 2,
		BlendEnd:   octaveCycle,
		Crossfade:  CrossfadeEqualPower,
	}
}

// Octave adds a voice one octave above the input.
type Octave struct {
	grainVoice
}

var _ effects.Effect = (*Octave)(nil)

var octaveParamNames = []string{"state", "mix", "gain"}

// NewOctave creates a disabled octaver reading view.
func NewOctave(sampleRate float64, view delay.View) (*Octave, error) {
	v, err := newGrainVoice(sampleRate, view, OctaveGeometry(), OctaveGeometry())
	if err != nil {
		return nil, err
	}

	return &Octave{grainVoice: v}, nil
}

// ParamNames returns the parameter vector layout.
func (o *Octave) ParamNames() []string { return octaveParamNames }

// Params exports state, mix and gain.
func (o *Octave) Params() []float64 {
	return []float64{o.State().Param(), o.mix, o.gain}
}

// SetParams imports a vector in Params order.
func (o *Octave) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		o.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 1); ok {
		o.SetMix(v)
	}

	if v, ok := effects.Param(values, 2); ok {
		o.SetGain(v)
	}
}
