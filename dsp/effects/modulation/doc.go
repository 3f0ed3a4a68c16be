// Package modulation provides LFO-driven effects that read the host's
// shared sample history.
//
// Included processors:
//   - Chorus: a tap swept by an LFO, mixed with the dry signal.
//   - Vibrato: the same sweep with the dry signal removed.
//   - LFO: a 512-step table oscillator with several waveform profiles.
package modulation
