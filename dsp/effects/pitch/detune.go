package pitch

import (
	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

const detuneCycle = 4000

// DetuneGeometry returns the grain geometry lowering pitch by semitones.
// Taps drift away from the cursor; the incoming tap fades in linearly.
func DetuneGeometry(semitones float64) GrainGeometry {
	p := core.Pow2(SemitoneRange.Clamp(semitones) / 12)
	rise := int(detuneCycle * (p - 1) / p)
	blend := int(detuneCycle*p) - detuneCycle
	blend = core.ClampInt(blend, 0, detuneCycle)

	return GrainGeometry{
		Cycle:     detuneCycle,
		K1Start:   0,
		K2Start:   rise,
		Rise:      rise,
		Step:      1,
		BlendEnd:  blend,
		Crossfade: CrossfadeLinear,
		K1FadesIn: true,
	}
}

// Detune lowers the pitch of the history stream by up to an octave and
// mixes it with the input.
type Detune struct {
	grainVoice

	semitones float64
}

var _ effects.Effect = (*Detune)(nil)

var detuneParamNames = []string{"state", "semitones", "mix", "gain"}

// NewDetune creates a disabled detuner reading view.
func NewDetune(sampleRate float64, view delay.View) (*Detune, error) {
	v, err := newGrainVoice(sampleRate, view,
		DetuneGeometry(SemitoneRange.Max), DetuneGeometry(SemitoneRange.Default))
	if err != nil {
		return nil, err
	}

	return &Detune{grainVoice: v, semitones: SemitoneRange.Default}, nil
}

// Semitones returns the downward shift.
func (d *Detune) Semitones() float64 { return d.semitones }

// SetSemitones sets the downward shift. The new geometry starts with the
// next grain cycle.
func (d *Detune) SetSemitones(semitones float64) {
	d.semitones = SemitoneRange.Clamp(semitones)
	d.retune(DetuneGeometry(d.semitones))
}

// ParamNames returns the parameter vector layout.
func (d *Detune) ParamNames() []string { return detuneParamNames }

// Params exports state, semitones, mix and gain.
func (d *Detune) Params() []float64 {
	return []float64{d.State().Param(), d.semitones, d.mix, d.gain}
}

// SetParams imports a vector in Params order.
func (d *Detune) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		d.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 1); ok {
		d.SetSemitones(v)
	}

	if v, ok := effects.Param(values, 2); ok {
		d.SetMix(v)
	}

	if v, ok := effects.Param(values, 3); ok {
		d.SetGain(v)
	}
}
