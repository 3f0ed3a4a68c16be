// Package effects defines the contract shared by the guitar effect bank.
//
// Subpackages:
//   - github.com/cwbudde/algo-gtrfx/dsp/effects/pitch: Detune, Octave and
//     PitchShifter on a shared granular overlap-add engine.
//   - github.com/cwbudde/algo-gtrfx/dsp/effects/echo: feedback and
//     feedforward echo lines.
//   - github.com/cwbudde/algo-gtrfx/dsp/effects/reverb: four-line feedback
//     delay network reverberator.
//   - github.com/cwbudde/algo-gtrfx/dsp/effects/modulation: LFO-driven
//     chorus and vibrato.
//
// Every effect consumes one 16-bit sample per audio tick and returns one
// sample. Effects that read the host's shared history also receive the
// host's write cursor. Setters never fail: they clamp their argument into
// the documented range and recompute all derived coefficients before
// returning. Processing paths do not allocate.
package effects
