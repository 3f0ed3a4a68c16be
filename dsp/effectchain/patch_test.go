package effectchain

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

func TestPatchRoundTrip(t *testing.T) {
	t.Parallel()

	src, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	setup := []struct {
		typ    string
		params []float64
	}{
		{TypeDetune, []float64{1, 7, 0.4, 1.5}},
		{TypeEchoFB, []float64{1, 420, 0.5, 1}},
		{TypeDelayFF, []float64{0, 20, 0.8, 3, 1}},
		{TypeReverb, []float64{1, 1800, 0.9}},
		{TypeVibrato, []float64{1, 2, 4, 300, 1}},
	}

	for _, s := range setup {
		id := mustAdd(t, src, s.typ)
		if err := src.ApplyParams(id, s.params); err != nil {
			t.Fatalf("ApplyParams(%s) error = %v", id, err)
		}
	}

	data, err := src.MarshalPatch()
	if err != nil {
		t.Fatalf("MarshalPatch() error = %v", err)
	}

	dst, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := dst.LoadPatch(data); err != nil {
		t.Fatalf("LoadPatch() error = %v", err)
	}

	if !reflect.DeepEqual(src.Patch(), dst.Patch()) {
		t.Fatalf("patch changed:\n got %+v\nwant %+v", dst.Patch(), src.Patch())
	}

	for i, n := range dst.Nodes() {
		if n.Values[0] != setup[i].params[0] {
			t.Errorf("node %s state = %v, want %v", n.ID, n.Values[0], setup[i].params[0])
		}
	}

	if id, err := dst.Add(TypeChorus); err != nil || id != "chorus-6" {
		t.Fatalf("Add after load = %q, %v", id, err)
	}
}

func TestLoadPatchPartialParams(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = c.LoadPatch([]byte(`{"nodes":[{"id":"oct","type":"octave","params":{"state":1,"mix":0.25}}]}`))
	if err != nil {
		t.Fatalf("LoadPatch() error = %v", err)
	}

	fx := c.Effect("oct")
	if fx == nil {
		t.Fatal("node oct missing")
	}

	want := []float64{1, 0.25, effects.GainRange.Default}
	if got := fx.Params(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Params() = %v, want %v", got, want)
	}
}

func TestLoadPatchErrorsLeaveChainUnchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want error
	}{
		{"unknown type", `{"nodes":[{"type":"detune"},{"type":"wah"}]}`, ErrUnknownEffect},
		{"duplicate id", `{"nodes":[{"id":"a","type":"detune"},{"id":"a","type":"reverb"}]}`, ErrDuplicateNode},
		{"bad json", `{"nodes":[`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New()
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			mustAdd(t, c, TypeChorus)

			err = c.LoadPatch([]byte(tt.json))
			if err == nil {
				t.Fatal("LoadPatch() succeeded")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if tt.want == nil && !strings.Contains(err.Error(), "invalid patch json") {
				t.Fatalf("error = %v", err)
			}

			if c.Len() != 1 || c.Nodes()[0].Type != TypeChorus {
				t.Fatalf("chain changed: %+v", c.Nodes())
			}
		})
	}
}
