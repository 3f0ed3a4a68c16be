// Package pitch provides granular pitch processors that read the host's
// shared sample history.
//
// Included processors:
//   - Detune: shifts pitch down by 0 to 12 semitones.
//   - PitchShifter: shifts pitch up by 0 to 12 semitones.
//   - Octave: adds a fixed octave-up voice.
//   - GrainScheduler: the overlap-add engine the three share.
//
// A grain is a run of samples read through a tap whose offset drifts
// linearly against the write cursor. Near the end of each grain cycle a
// second tap is faded in so the offset can jump back without a click.
// Tap drift uses an integer line-drawing accumulator, so geometry is exact
// and repeats every cycle.
package pitch
