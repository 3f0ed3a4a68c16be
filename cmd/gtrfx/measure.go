package main

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/cwbudde/algo-gtrfx/internal/audio"
	"github.com/cwbudde/algo-gtrfx/measure/ir"
	"github.com/cwbudde/algo-gtrfx/measure/pitch"
	"github.com/spf13/cobra"
)

type measureOptions struct {
	amplitude float64
	seconds   float64
	toneHz    float64
	settle    float64
	fftSize   int
}

var measureOpts measureOptions

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the chain's impulse response or pitch transfer",
}

var measureIRCmd = &cobra.Command{
	Use:   "ir",
	Short: "Feed an impulse and report decay times",
	Long: `Ir feeds a single impulse through the chain, records the response and
prints RT60, EDT, T20 and T30 from the Schroeder integral.

Example:
  gtrfx measure ir --fx reverb:reverb_time_ms=1500 --seconds 3`,
	RunE: runMeasureIR,
}

var measurePitchCmd = &cobra.Command{
	Use:   "pitch",
	Short: "Feed a sine and report the dominant output frequency",
	Long: `Pitch feeds a sine through the chain, waits for the effects to settle
and estimates the dominant output frequency with an FFT.

Example:
  gtrfx measure pitch --fx pitch-shifter:semitones=7,mix=1 --tone 330`,
	RunE: runMeasurePitch,
}

func init() {
	measureIRCmd.Flags().Float64Var(&measureOpts.amplitude, "amplitude", 16000, "Impulse amplitude in sample units")
	measureIRCmd.Flags().Float64Var(&measureOpts.seconds, "seconds", 3, "Recording length in seconds")

	measurePitchCmd.Flags().Float64Var(&measureOpts.toneHz, "tone", 440, "Input frequency in Hz")
	measurePitchCmd.Flags().Float64Var(&measureOpts.settle, "settle", 0.5, "Seconds processed before analysis")
	measurePitchCmd.Flags().IntVar(&measureOpts.fftSize, "fft", 16384, "FFT size (power of two)")

	measureCmd.AddCommand(measureIRCmd, measurePitchCmd)
}

func runMeasureIR(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	chain, err := buildChain(logger)
	if err != nil {
		return err
	}

	m, err := measureImpulse(chain, int32(measureOpts.amplitude), int(measureOpts.seconds*global.sampleRate))
	if err != nil {
		return err
	}

	printIRMetrics(cmd.OutOrStdout(), m, global.sampleRate)

	return nil
}

func runMeasurePitch(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	chain, err := buildChain(logger)
	if err != nil {
		return err
	}

	hz, err := measureDominant(chain, measureOpts.toneHz, int(measureOpts.settle*global.sampleRate), measureOpts.fftSize)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "input      %8.2f Hz\noutput     %8.2f Hz\nshift      %+8.2f semitones\n",
		measureOpts.toneHz, hz, 12*math.Log2(hz/measureOpts.toneHz))

	return nil
}

// measureImpulse records length samples of the chain's impulse response.
func measureImpulse(chain *effectchain.Chain, amplitude int32, length int) (ir.Metrics, error) {
	if length <= 0 {
		return ir.Metrics{}, fmt.Errorf("recording length must be positive: %d", length)
	}

	resp := make([]int32, length)
	resp[0] = amplitude
	chain.ProcessBlock(resp)

	return ir.NewAnalyzer(chain.SampleRate()).Analyze(ir.FromSamples(resp))
}

// measureDominant feeds a sine for settle samples, then analyzes the next
// fftSize output samples.
func measureDominant(chain *effectchain.Chain, toneHz float64, settle, fftSize int) (float64, error) {
	est, err := pitch.NewEstimator(chain.SampleRate(), fftSize)
	if err != nil {
		return 0, err
	}

	tone := audio.NewTone(toneHz, chain.SampleRate(), 8000)
	for range max(settle, 0) {
		chain.ProcessSample(tone.NextSample())
	}

	block := make([]int32, fftSize)
	for i := range block {
		block[i] = chain.ProcessSample(tone.NextSample())
	}

	return est.DominantSamples(block)
}

func printIRMetrics(w io.Writer, m ir.Metrics, sampleRate float64) {
	fmt.Fprintf(w, "peak       %8.1f ms\n", 1000*float64(m.PeakIndex)/sampleRate)
	fmt.Fprintf(w, "tail end   %8.1f ms\n", 1000*float64(m.TailEnd)/sampleRate)
	fmt.Fprintf(w, "EDT        %8.3f s\n", m.EDT)
	fmt.Fprintf(w, "T20        %8.3f s\n", m.T20)
	fmt.Fprintf(w, "T30        %8.3f s\n", m.T30)
	fmt.Fprintf(w, "RT60       %8.3f s\n", m.RT60)
}
