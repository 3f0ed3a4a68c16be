package pitch

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
	"github.com/cwbudde/algo-gtrfx/internal/testutil"
	pitchmeas "github.com/cwbudde/algo-gtrfx/measure/pitch"
)

const testSampleRate = 48000.0

type voiceCase struct {
	name    string
	newFx   func(view delay.View) (effects.Effect, error)
	minCap  int
	inputHz float64
	wantHz  float64
}

func voiceCases() []voiceCase {
	return []voiceCase{
		{
			name: "detune",
			newFx: func(v delay.View) (effects.Effect, error) {
				d, err := NewDetune(testSampleRate, v)
				if err != nil {
					return nil, err
				}
				d.SetSemitones(12)
				return d, nil
			},
			minCap:  DetuneGeometry(12).MaxOffset() + 1,
			inputHz: 440,
			wantHz:  220,
		},
		{
			name: "pitch-shifter",
			newFx: func(v delay.View) (effects.Effect, error) {
				s, err := NewPitchShifter(testSampleRate, v)
				if err != nil {
					return nil, err
				}
				s.SetSemitones(12)
				return s, nil
			},
			minCap:  ShifterGeometry(12).MaxOffset() + 1,
			inputHz: 440,
			wantHz:  880,
		},
		{
			name: "octave",
			newFx: func(v delay.View) (effects.Effect, error) {
				return NewOctave(testSampleRate, v)
			},
			minCap:  OctaveGeometry().MaxOffset() + 1,
			inputHz: 440,
			wantHz:  880,
		},
	}
}

func TestVoiceConstruction(t *testing.T) {
	for _, tc := range voiceCases() {
		t.Run(tc.name, func(t *testing.T) {
			_, tooSmall := testView(t, tc.minCap-1)
			if _, err := tc.newFx(tooSmall); !errors.Is(err, delay.ErrCapacity) {
				t.Fatalf("capacity %d: err = %v, want ErrCapacity", tc.minCap-1, err)
			}

			_, view := testView(t, tc.minCap)
			fx, err := tc.newFx(view)
			if err != nil {
				t.Fatalf("capacity %d: err = %v", tc.minCap, err)
			}

			if fx.State() != effects.Off {
				t.Fatal("new effect should start switched off")
			}

			if len(fx.Params()) != len(fx.ParamNames()) {
				t.Fatalf("Params() has %d fields, ParamNames() %d", len(fx.Params()), len(fx.ParamNames()))
			}
		})
	}

	_, view := testView(t, 8192)
	if _, err := NewDetune(math.NaN(), view); !errors.Is(err, effects.ErrSampleRate) {
		t.Fatalf("NaN sample rate: err = %v, want ErrSampleRate", err)
	}

	if _, err := NewOctave(0, view); !errors.Is(err, effects.ErrSampleRate) {
		t.Fatalf("zero sample rate: err = %v, want ErrSampleRate", err)
	}
}

func TestVoiceShiftsPitch(t *testing.T) {
	const n = 8192

	est, err := pitchmeas.NewEstimator(testSampleRate, n)
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}

	est.SetRange(100, 1500)

	for _, tc := range voiceCases() {
		t.Run(tc.name, func(t *testing.T) {
			h, view := testView(t, 8192)

			fx, err := tc.newFx(view)
			if err != nil {
				t.Fatalf("construct: %v", err)
			}

			fx.SetParams([]float64{1})
			setMix(fx, 1)

			in := testutil.SampleSine(tc.inputHz, testSampleRate, 8000, 3*n)
			out := testutil.Drive(fx, h, in, false)

			got, err := est.DominantSamples(out[n:])
			if err != nil {
				t.Fatalf("DominantSamples() error = %v", err)
			}

			if math.Abs(got-tc.wantHz)/tc.wantHz > 0.03 {
				t.Fatalf("dominant = %.2f Hz, want %.2f Hz within 3%%", got, tc.wantHz)
			}
		})
	}
}

func setMix(fx effects.Effect, mix float64) {
	switch v := fx.(type) {
	case *Detune:
		v.SetMix(mix)
	case *PitchShifter:
		v.SetMix(mix)
	case *Octave:
		v.SetMix(mix)
	}
}

func TestVoiceDryPath(t *testing.T) {
	h, view := testView(t, 8192)

	d, err := NewDetune(testSampleRate, view)
	if err != nil {
		t.Fatalf("NewDetune() error = %v", err)
	}

	d.SetMix(0)
	d.SetGain(2)

	in := testutil.SampleSine(330, testSampleRate, 9000, 5000)
	out := testutil.Drive(d, h, in, true)

	for i := range in {
		if out[i] != 2*in[i] {
			t.Fatalf("tick %d: out %d, want %d", i, out[i], 2*in[i])
		}
	}
}

func TestVoiceClampIdempotence(t *testing.T) {
	_, view := testView(t, 8192)

	pair := func() (*PitchShifter, *PitchShifter) {
		a, err := NewPitchShifter(testSampleRate, view)
		if err != nil {
			t.Fatalf("NewPitchShifter() error = %v", err)
		}

		b, err := NewPitchShifter(testSampleRate, view)
		if err != nil {
			t.Fatalf("NewPitchShifter() error = %v", err)
		}

		return a, b
	}

	tests := []struct {
		name    string
		out, in func(*PitchShifter)
	}{
		{"semitones high", func(s *PitchShifter) { s.SetSemitones(40) }, func(s *PitchShifter) { s.SetSemitones(12) }},
		{"semitones low", func(s *PitchShifter) { s.SetSemitones(-3) }, func(s *PitchShifter) { s.SetSemitones(0) }},
		{"mix high", func(s *PitchShifter) { s.SetMix(1.5) }, func(s *PitchShifter) { s.SetMix(1) }},
		{"mix low", func(s *PitchShifter) { s.SetMix(-0.5) }, func(s *PitchShifter) { s.SetMix(0) }},
		{"gain low", func(s *PitchShifter) { s.SetGain(0) }, func(s *PitchShifter) { s.SetGain(0.1) }},
		{"gain high", func(s *PitchShifter) { s.SetGain(100) }, func(s *PitchShifter) { s.SetGain(effects.GainRange.Max) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := pair()
			tt.out(a)
			tt.in(b)

			if !slices.Equal(a.Params(), b.Params()) {
				t.Fatalf("Params() = %v, want %v", a.Params(), b.Params())
			}

			a.Scheduler().Reset()
			b.Scheduler().Reset()
			if a.Scheduler().Geometry() != b.Scheduler().Geometry() {
				t.Fatalf("geometry %+v, want %+v", a.Scheduler().Geometry(), b.Scheduler().Geometry())
			}
		})
	}
}

func TestVoiceParamsRoundTrip(t *testing.T) {
	_, view := testView(t, 8192)

	d, err := NewDetune(testSampleRate, view)
	if err != nil {
		t.Fatalf("NewDetune() error = %v", err)
	}

	d.SetParams([]float64{1, 7, 0.25, 1.5})
	want := []float64{1, 7, 0.25, 1.5}
	if got := d.Params(); !slices.Equal(got, want) {
		t.Fatalf("Params() = %v, want %v", got, want)
	}

	if d.State() != effects.On {
		t.Fatal("state field not applied")
	}

	d.SetParams([]float64{0})
	if got := d.Params(); got[0] != 0 || got[1] != 7 {
		t.Fatalf("short vector changed trailing fields: %v", got)
	}

	o, err := NewOctave(testSampleRate, view)
	if err != nil {
		t.Fatalf("NewOctave() error = %v", err)
	}

	o.SetParams([]float64{1, 2, 0.05})
	if got := o.Params(); !slices.Equal(got, []float64{1, 1, 0.1}) {
		t.Fatalf("octave Params() = %v, want clamped [1 1 0.1]", got)
	}
}

func TestVoiceSemitoneChangeWaitsForCycle(t *testing.T) {
	h, view := testView(t, 8192)

	s, err := NewPitchShifter(testSampleRate, view)
	if err != nil {
		t.Fatalf("NewPitchShifter() error = %v", err)
	}

	testutil.Drive(s, h, make([]int32, 100), true)

	s.SetSemitones(12)
	if s.Scheduler().Phase() != 100 {
		t.Fatalf("phase after SetSemitones = %d, want 100", s.Scheduler().Phase())
	}

	if s.Scheduler().Geometry() == ShifterGeometry(12) {
		t.Fatal("geometry applied before cycle boundary")
	}

	testutil.Drive(s, h, make([]int32, shifterCycle-100), true)
	if s.Scheduler().Geometry() != ShifterGeometry(12) {
		t.Fatal("geometry not applied at cycle boundary")
	}
}

func BenchmarkDetuneProcess(b *testing.B) {
	h, err := delay.NewHistory(8192)
	if err != nil {
		b.Fatal(err)
	}

	d, err := NewDetune(testSampleRate, h.View())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		y := d.Process(int32(i&1023), h.Cursor())
		h.Write(y)
	}
}
