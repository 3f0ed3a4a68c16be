package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

func withGlobals(t *testing.T, g globalOptions) {
	t.Helper()

	saved := global
	global = g

	t.Cleanup(func() { global = saved })
}

func defaultGlobals() globalOptions {
	return globalOptions{sampleRate: 48000, history: 48000, historySource: "output", logLevel: "error"}
}

func TestParseFXFlag(t *testing.T) {
	tests := []struct {
		raw     string
		want    fxFlag
		wantErr bool
	}{
		{raw: "reverb", want: fxFlag{Type: "reverb", Params: map[string]float64{}}},
		{
			raw:  "detune:semitones=7, mix=0.25",
			want: fxFlag{Type: "detune", Params: map[string]float64{"semitones": 7, "mix": 0.25}},
		},
		{raw: "chorus:state=off", want: fxFlag{Type: "chorus", Params: map[string]float64{"state": 0}}},
		{raw: ":mix=1", wantErr: true},
		{raw: "detune:mix", wantErr: true},
		{raw: "detune:mix=loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFXFlag(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFXFlag() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseFXFlag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHistorySource(t *testing.T) {
	if src, err := parseHistorySource("Input"); err != nil || src != effectchain.HistoryInput {
		t.Fatalf("input = %v, %v", src, err)
	}

	if src, err := parseHistorySource(""); err != nil || src != effectchain.HistoryOutput {
		t.Fatalf("empty = %v, %v", src, err)
	}

	if _, err := parseHistorySource("both"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildChainFromFlags(t *testing.T) {
	dir := t.TempDir()
	patch := filepath.Join(dir, "board.json")

	err := os.WriteFile(patch, []byte(`{"nodes":[{"id":"oct","type":"octave","params":{"state":0}}]}`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	g := defaultGlobals()
	g.patchPath = patch
	g.fx = []string{"detune:semitones=3", "reverb:state=off"}
	withGlobals(t, g)

	chain, err := buildChain(nil)
	if err != nil {
		t.Fatalf("buildChain() error = %v", err)
	}

	nodes := chain.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("nodes = %+v", nodes)
	}

	wantStates := []effects.State{effects.Off, effects.On, effects.Off}
	for i, n := range nodes {
		if n.State != wantStates[i] {
			t.Errorf("node %s state = %v, want %v", n.ID, n.State, wantStates[i])
		}
	}

	if nodes[1].Values[1] != 3 {
		t.Fatalf("detune semitones = %v, want 3", nodes[1].Values[1])
	}
}

func TestBuildChainRejectsUnknownParameter(t *testing.T) {
	g := defaultGlobals()
	g.fx = []string{"reverb:semitones=3"}
	withGlobals(t, g)

	_, err := buildChain(nil)
	if err == nil || !strings.Contains(err.Error(), "no parameter") {
		t.Fatalf("buildChain() error = %v", err)
	}
}

func TestRenderClipAppendsTail(t *testing.T) {
	withGlobals(t, defaultGlobals())

	chain, err := buildChain(nil)
	if err != nil {
		t.Fatalf("buildChain() error = %v", err)
	}

	out := renderClip(chain, []int32{1, 2, 3}, 4)
	if !reflect.DeepEqual(out, []int32{1, 2, 3, 0, 0, 0, 0}) {
		t.Fatalf("renderClip() = %v", out)
	}
}

func TestMeasureDominantDryChain(t *testing.T) {
	withGlobals(t, defaultGlobals())

	chain, err := buildChain(nil)
	if err != nil {
		t.Fatalf("buildChain() error = %v", err)
	}

	hz, err := measureDominant(chain, 440, 100, 8192)
	if err != nil {
		t.Fatalf("measureDominant() error = %v", err)
	}

	if math.Abs(hz-440) > 2 {
		t.Fatalf("dominant = %v Hz, want 440", hz)
	}
}

func TestMeasureImpulseRejectsEmpty(t *testing.T) {
	withGlobals(t, defaultGlobals())

	chain, err := buildChain(nil)
	if err != nil {
		t.Fatalf("buildChain() error = %v", err)
	}

	if _, err := measureImpulse(chain, 1000, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestStatusLines(t *testing.T) {
	nodes := []effectchain.NodeInfo{{
		ID: "verb-1", Type: "reverb", State: effects.On,
		Names: []string{"state", "reverb_time_ms", "gain"}, Values: []float64{1, 1500, 0.75},
	}}

	var buf bytes.Buffer
	printStatusLines(&buf, nodes)

	want := "verb-1 reverb state=1 reverb_time_ms=1500 gain=0.75\n"
	if buf.String() != want {
		t.Fatalf("printStatusLines() = %q, want %q", buf.String(), want)
	}

	if isTerminal(&buf) {
		t.Fatal("buffer reported as terminal")
	}
}
