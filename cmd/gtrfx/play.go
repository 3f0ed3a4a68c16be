package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/cwbudde/algo-gtrfx/internal/audio"
	"github.com/cwbudde/algo-gtrfx/internal/control"
	"github.com/spf13/cobra"
)

type playOptions struct {
	input   string
	toneHz  float64
	level   float64
	latency time.Duration
	addr    string
}

var playOpts playOptions

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Loop a WAV file (or a test tone) through the chain to the audio device",
	Long: `Play streams the chain output to the default audio device until
interrupted. The input file is looped.

Example:
  gtrfx play -i riff.wav --fx chorus --fx reverb:reverb_time_ms=2200`,
	RunE: runPlay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Play through the chain and expose it over HTTP",
	Long: `Serve plays like "play" and starts a control server on --addr.

Endpoints:
  GET  /health, /effects, /nodes, /nodes/{id}, /patch
  POST /nodes                  {"type":"detune"}
  PUT  /nodes/{id}/params      {"params":{"semitones":7}}
  PUT  /nodes/{id}/state       {"state":"on"}
  PUT  /patch                  (JSON patch)
  DELETE /nodes/{id}

Example:
  gtrfx serve --patch board.json --addr 127.0.0.1:8080`,
	RunE: runServe,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, serveCmd} {
		f := cmd.Flags()
		f.StringVarP(&playOpts.input, "input", "i", "", "Input WAV file to loop (default: test tone)")
		f.Float64Var(&playOpts.toneHz, "tone", 220, "Test tone frequency in Hz")
		f.Float64Var(&playOpts.level, "level", 0.3, "Test tone peak level (0..1)")
		f.DurationVar(&playOpts.latency, "latency", 20*time.Millisecond, "Audio device buffer")
	}

	serveCmd.Flags().StringVar(&playOpts.addr, "addr", control.DefaultConfig().Addr, "Listen address")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	return playWith(cmd.Context(), nil)
}

func runServe(cmd *cobra.Command, _ []string) error {
	return playWith(cmd.Context(), func(ctx context.Context, chain *effectchain.Chain, logger *slog.Logger) error {
		cfg := control.DefaultConfig()
		cfg.Addr = playOpts.addr

		return control.New(chain, cfg, logger).Run(ctx)
	})
}

// playWith starts the device and blocks until interrupted or until serve
// returns.
func playWith(parent context.Context, serve func(context.Context, *effectchain.Chain, *slog.Logger) error) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clip, err := loadInput(playOpts.input, playOpts.toneHz, 1, playOpts.level)
	if err != nil {
		return err
	}

	chain, err := buildChain(logger,
		effectchain.WithProcessorOptions(core.WithBlockDuration(playOpts.latency)))
	if err != nil {
		return err
	}

	loop := audio.NewLoop(clip.Samples)
	src := audio.SourceFunc(func() int32 {
		return chain.ProcessSample(loop.NextSample())
	})

	player, err := audio.NewPlayer(int(global.sampleRate), src, playOpts.latency)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Start()
	logger.Info("playing", "nodes", chain.Len(), "sample_rate", global.sampleRate,
		"block", chain.Config().Processor.BlockSize, "block_period", chain.Config().Processor.BlockDuration())

	if serve != nil {
		return serve(ctx, chain, logger)
	}

	<-ctx.Done()
	logger.Info("stopped")

	return nil
}
