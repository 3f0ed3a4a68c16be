package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
)

// fxFlag is one parsed --fx flag.
type fxFlag struct {
	Type   string
	Params map[string]float64
}

// parseFXFlag parses type[:name=value,...].
func parseFXFlag(raw string) (fxFlag, error) {
	typ, rest, _ := strings.Cut(strings.TrimSpace(raw), ":")
	if typ == "" {
		return fxFlag{}, fmt.Errorf("empty effect type in %q", raw)
	}

	flag := fxFlag{Type: typ, Params: map[string]float64{}}

	if rest == "" {
		return flag, nil
	}

	for _, kv := range strings.Split(rest, ",") {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return fxFlag{}, fmt.Errorf("parameter %q in %q: want name=value", kv, raw)
		}

		v, err := parseParamValue(strings.TrimSpace(value))
		if err != nil {
			return fxFlag{}, fmt.Errorf("parameter %q in %q: %w", name, raw, err)
		}

		flag.Params[name] = v
	}

	return flag, nil
}

// parseParamValue accepts numbers and the words on/off for state.
func parseParamValue(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "on", "true":
		return 1, nil
	case "off", "false":
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

func parseHistorySource(s string) (effectchain.HistorySource, error) {
	switch strings.ToLower(s) {
	case "output", "":
		return effectchain.HistoryOutput, nil
	case "input":
		return effectchain.HistoryInput, nil
	default:
		return 0, fmt.Errorf("invalid --history-source %q: want output or input", s)
	}
}

// buildChain creates the chain described by the global flags.
func buildChain(logger *slog.Logger, opts ...effectchain.Option) (*effectchain.Chain, error) {
	src, err := parseHistorySource(global.historySource)
	if err != nil {
		return nil, err
	}

	chain, err := effectchain.New(append([]effectchain.Option{
		effectchain.WithSampleRate(global.sampleRate),
		effectchain.WithHistoryCapacity(global.history),
		effectchain.WithHistorySource(src),
		effectchain.WithLogger(logger),
	}, opts...)...)
	if err != nil {
		return nil, err
	}

	if global.patchPath != "" {
		data, err := os.ReadFile(global.patchPath)
		if err != nil {
			return nil, fmt.Errorf("read patch: %w", err)
		}

		if err := chain.LoadPatch(data); err != nil {
			return nil, fmt.Errorf("load %s: %w", global.patchPath, err)
		}
	}

	for _, raw := range global.fx {
		flag, err := parseFXFlag(raw)
		if err != nil {
			return nil, err
		}

		if err := addFXNode(chain, flag); err != nil {
			return nil, err
		}
	}

	return chain, nil
}

// addFXNode appends one node; it starts on unless the flag sets state.
func addFXNode(chain *effectchain.Chain, flag fxFlag) error {
	id, err := chain.Add(flag.Type)
	if err != nil {
		return err
	}

	fx := chain.Effect(id)

	params := effectchain.Params{ID: id, Type: flag.Type, Num: flag.Params}
	if _, ok := flag.Params["state"]; !ok {
		params.Num["state"] = 1
	}

	for name := range flag.Params {
		if !slices.Contains(fx.ParamNames(), name) {
			return fmt.Errorf("%s has no parameter %q (have %s)", flag.Type, name, strings.Join(fx.ParamNames(), ", "))
		}
	}

	return chain.ApplyParams(id, params.Vector(fx.ParamNames(), fx.Params()))
}
