// Package echo provides single-tap feedback and multi-tap feedforward echo
// lines reading the host's shared sample history.
//
// Both lines come in two presets: Delay for short slap-back settings and
// Echo for long repeats. Output gain is normalized so that the total energy
// of the decaying series matches the configured gain whatever the decay
// rate.
package echo
