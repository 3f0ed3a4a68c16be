// Package pitch estimates the dominant frequency of a block of samples.
//
// The estimator applies a Hann window, takes a power spectrum with an FFT
// and refines the strongest bin with parabolic interpolation on the
// log-power values. It is intended for verifying pitch effects offline and
// is not real-time safe.
package pitch
