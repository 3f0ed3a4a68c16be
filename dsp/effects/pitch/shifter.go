package pitch

import (
	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

const (
	shifterCycle = 4000
	shifterBlend = 357
)

// ShifterGeometry returns the grain geometry raising pitch by semitones.
// Taps approach the cursor; a short linear blend hides the jump back.
func ShifterGeometry(semitones float64) GrainGeometry {
	p := core.Pow2(SemitoneRange.Clamp(semitones) / 12)

	return GrainGeometry{
		Cycle:     shifterCycle,
		K1Start:   int((shifterBlend/p + shifterCycle) * (p - 1)),
		K2Start:   int(shifterBlend * (p - 1) / p),
		Rise:      core.ClampInt(int(shifterCycle*(p-1)), 0, shifterCycle),
		Step:      -1,
		BlendEnd:  int(shifterBlend / p),
		Crossfade: CrossfadeLinear,
		K1FadesIn: true,
	}
}

// PitchShifter raises the pitch of the history stream by up to an octave
// and mixes it with the input.
type PitchShifter struct {
	grainVoice

	semitones float64
}

var _ effects.Effect = (*PitchShifter)(nil)

var shifterParamNames = []string{"state", "semitones", "mix", "gain"}

// NewPitchShifter creates a disabled pitch shifter reading view.
func NewPitchShifter(sampleRate float64, view delay.View) (*PitchShifter, error) {
	v, err := newGrainVoice(sampleRate, view,
		ShifterGeometry(SemitoneRange.Max), ShifterGeometry(SemitoneRange.Default))
	if err != nil {
		return nil, err
	}

	return &PitchShifter{grainVoice: v, semitones: SemitoneRange.Default}, nil
}

// Semitones returns the upward shift.
func (s *PitchShifter) Semitones() float64 { return s.semitones }

// SetSemitones sets the upward shift. The new geometry starts with the
// next grain cycle.
func (s *PitchShifter) SetSemitones(semitones float64) {
	s.semitones = SemitoneRange.Clamp(semitones)
	s.retune(ShifterGeometry(s.semitones))
}

// ParamNames returns the parameter vector layout.
func (s *PitchShifter) ParamNames() []string { return shifterParamNames }

// Params exports state, semitones, mix and gain.
func (s *PitchShifter) Params() []float64 {
	return []float64{s.State().Param(), s.semitones, s.mix, s.gain}
}

// SetParams imports a vector in Params order.
func (s *PitchShifter) SetParams(values []float64) {
	if v, ok := effects.Param(values, 0); ok {
		s.Switch(effects.StateFromParam(v))
	}

	if v, ok := effects.Param(values, 1); ok {
		s.SetSemitones(v)
	}

	if v, ok := effects.Param(values, 2); ok {
		s.SetMix(v)
	}

	if v, ok := effects.Param(values, 3); ok {
		s.SetGain(v)
	}
}
