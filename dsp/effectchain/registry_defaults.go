package effectchain

import (
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
	"github.com/cwbudde/algo-gtrfx/dsp/effects/echo"
	"github.com/cwbudde/algo-gtrfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-gtrfx/dsp/effects/pitch"
	"github.com/cwbudde/algo-gtrfx/dsp/effects/reverb"
)

// Built-in effect type names.
const (
	TypeDetune       = "detune"
	TypeOctave       = "octave"
	TypePitchShifter = "pitch-shifter"
	TypeDelayFB      = "delay-fb"
	TypeEchoFB       = "echo-fb"
	TypeDelayFF      = "delay-ff"
	TypeEchoFF       = "echo-ff"
	TypeReverb       = "reverb"
	TypeChorus       = "chorus"
	TypeVibrato      = "vibrato"
)

// DefaultRegistry returns a Registry pre-populated with every built-in
// effect.
//
//nolint:funlen
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeDetune, func(ctx Context) (effects.Effect, error) {
		fx, err := pitch.NewDetune(ctx.SampleRate, ctx.History)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeOctave, func(ctx Context) (effects.Effect, error) {
		fx, err := pitch.NewOctave(ctx.SampleRate, ctx.History)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypePitchShifter, func(ctx Context) (effects.Effect, error) {
		fx, err := pitch.NewPitchShifter(ctx.SampleRate, ctx.History)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeDelayFB, func(ctx Context) (effects.Effect, error) {
		fx, err := echo.NewFeedbackEcho(ctx.SampleRate, ctx.History, echo.VariantDelay)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeEchoFB, func(ctx Context) (effects.Effect, error) {
		fx, err := echo.NewFeedbackEcho(ctx.SampleRate, ctx.History, echo.VariantEcho)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeDelayFF, func(ctx Context) (effects.Effect, error) {
		fx, err := echo.NewFeedforwardEcho(ctx.SampleRate, ctx.History, echo.VariantDelay)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeEchoFF, func(ctx Context) (effects.Effect, error) {
		fx, err := echo.NewFeedforwardEcho(ctx.SampleRate, ctx.History, echo.VariantEcho)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeReverb, func(ctx Context) (effects.Effect, error) {
		fx, err := reverb.NewReverberator(ctx.SampleRate, ctx.History.Capacity())
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeChorus, func(ctx Context) (effects.Effect, error) {
		fx, err := modulation.NewChorus(ctx.SampleRate, ctx.History)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})
	r.MustRegister(TypeVibrato, func(ctx Context) (effects.Effect, error) {
		fx, err := modulation.NewVibrato(ctx.SampleRate, ctx.History)
		if err != nil {
			return nil, err
		}

		return fx, nil
	})

	return r
}
