// Command gtrfx runs the guitar effect chain offline, on the audio device,
// or behind an HTTP control server.
//
// Usage:
//
//	gtrfx [global flags] <command> [flags]
//
// Examples:
//
//	gtrfx list
//	gtrfx render -i dry.wav -o wet.wav --fx detune:semitones=7 --fx reverb
//	gtrfx play --fx octave:mix=0.4
//	gtrfx serve --patch board.json --addr :8080
//	gtrfx measure ir --fx reverb:reverb_time_ms=1500
//	gtrfx measure pitch --fx pitch-shifter:semitones=12,mix=1
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

type globalOptions struct {
	sampleRate    float64
	history       int
	historySource string
	patchPath     string
	fx            []string
	logLevel      string
}

var global globalOptions

var rootCmd = &cobra.Command{
	Use:   "gtrfx",
	Short: "Time-domain guitar effects on a shared sample history",
	Long: `gtrfx hosts a serial chain of guitar effects (detune, octave, pitch
shifter, feedback and feedforward echoes, FDN reverb, chorus and vibrato)
that share one circular sample history.

The chain is described by a JSON patch (--patch) and/or repeated --fx
flags of the form type[:name=value,...]. Nodes added with --fx are
switched on unless their state is given.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&global.sampleRate, "sample-rate", 48000, "Processing sample rate in Hz")
	pf.IntVar(&global.history, "history", 48000, "Shared history capacity in samples")
	pf.StringVar(&global.historySource, "history-source", "output", "Signal stored in the history (output or input)")
	pf.StringVarP(&global.patchPath, "patch", "p", "", "JSON patch file to load")
	pf.StringArrayVar(&global.fx, "fx", nil, "Append an effect: type[:name=value,...] (repeatable)")
	pf.StringVar(&global.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd, playCmd, serveCmd, measureCmd, statusCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gtrfx:", err)
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(global.logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", global.logLevel, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
