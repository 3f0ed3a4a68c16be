package pitch

import (
	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// SemitoneRange bounds the shift of Detune and PitchShifter.
var SemitoneRange = core.Range{Min: 0, Max: 12, Default: 5}

// grainVoice holds the parts Detune, Octave and PitchShifter share: the
// scheduler, the switch and the dry/wet output weights.
type grainVoice struct {
	effects.Switcher

	sampleRate float64
	sched      *GrainScheduler

	mix  float64
	gain float64
	dry  float64
	wet  float64
}

func newGrainVoice(sampleRate float64, view delay.View, worst, initial GrainGeometry) (grainVoice, error) {
	if err := effects.ValidateSampleRate(sampleRate); err != nil {
		return grainVoice{}, err
	}

	// Size check against the widest geometry so later setters cannot
	// outgrow the history.
	if _, err := NewGrainScheduler(view, worst); err != nil {
		return grainVoice{}, err
	}

	sched, err := NewGrainScheduler(view, initial)
	if err != nil {
		return grainVoice{}, err
	}

	v := grainVoice{
		sampleRate: sampleRate,
		sched:      sched,
		mix:        effects.MixRange.Default,
		gain:       effects.GainRange.Default,
	}
	v.updateWeights()

	return v, nil
}

// retune schedules a geometry no wider than the one checked at
// construction.
func (v *grainVoice) retune(geom GrainGeometry) { v.sched.schedule(geom) }

// SampleRate returns the sample rate in Hz.
func (v *grainVoice) SampleRate() float64 { return v.sampleRate }

// Mix returns the wet fraction in [0, 1].
func (v *grainVoice) Mix() float64 { return v.mix }

// Gain returns the output gain.
func (v *grainVoice) Gain() float64 { return v.gain }

// Scheduler exposes the grain engine for inspection.
func (v *grainVoice) Scheduler() *GrainScheduler { return v.sched }

// SetMix sets the wet fraction. 0 passes the dry signal only, 1 only the
// shifted voice.
func (v *grainVoice) SetMix(mix float64) {
	v.mix = effects.MixRange.Clamp(mix)
	v.updateWeights()
}

// SetGain sets the output gain.
func (v *grainVoice) SetGain(gain float64) {
	v.gain = effects.GainRange.Clamp(gain)
	v.updateWeights()
}

// Reset restarts the grain cycle.
func (v *grainVoice) Reset() { v.sched.Reset() }

// Process mixes the input with the grain stream read behind cursor.
func (v *grainVoice) Process(sample int32, cursor int) int32 {
	g := v.sched.Next(cursor)
	return core.Truncate(v.dry*float64(sample) + v.wet*g)
}

func (v *grainVoice) updateWeights() {
	v.dry, v.wet = effects.MixWeights(v.mix, v.gain)
}
