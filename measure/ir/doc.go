// Package ir measures the decay of effect tails.
//
// Decay times are derived from the Schroeder backward integration of the
// squared response, fitted by linear regression and extrapolated to 60 dB:
//
//   - EDT: early decay time, fitted from 0 to -10 dB
//   - T20, T30: fitted from -5 to -25 dB and -5 to -35 dB
//   - RT60: T30 when available, T20 otherwise
//
// Responses recorded from the effect bank are 16-bit samples; FromSamples
// converts them for analysis.
//
// # Usage
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(ir.FromSamples(tail))
//	fmt.Printf("RT60 = %.2f s\n", metrics.RT60)
package ir
