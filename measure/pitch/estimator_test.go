package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gtrfx/internal/testutil"
)

func TestNewEstimatorValidation(t *testing.T) {
	tests := []struct {
		name string
		sr   float64
		size int
	}{
		{name: "zero rate", sr: 0, size: 1024},
		{name: "nan rate", sr: math.NaN(), size: 1024},
		{name: "small", sr: 48000, size: 32},
		{name: "not pow2", sr: 48000, size: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEstimator(tt.sr, tt.size); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDominantSine(t *testing.T) {
	const sr = 48000.0

	e, err := NewEstimator(sr, 8192)
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}

	for _, f := range []float64{110, 220, 440, 1000, 3150} {
		got, err := e.Dominant(testutil.DeterministicSine(f, sr, 0.5, 8192))
		if err != nil {
			t.Fatalf("Dominant(%v) error = %v", f, err)
		}

		if math.Abs(got-f) > e.BinHz()/4 {
			t.Fatalf("Dominant(%v) = %v, tolerance %v", f, got, e.BinHz()/4)
		}
	}
}

func TestDominantSamplesAndRange(t *testing.T) {
	const sr = 48000.0

	e, err := NewEstimator(sr, 4096)
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}

	low := testutil.DeterministicSine(200, sr, 8000, 4096)
	high := testutil.DeterministicSine(2000, sr, 2000, 4096)
	mix := make([]float64, len(low))
	for i := range mix {
		mix[i] = low[i] + high[i]
	}

	got, err := e.DominantSamples(testutil.Quantize(mix))
	if err != nil {
		t.Fatalf("DominantSamples() error = %v", err)
	}

	if math.Abs(got-200) > e.BinHz() {
		t.Fatalf("dominant = %v, want ~200", got)
	}

	e.SetRange(1000, 5000)
	got, err = e.DominantSamples(testutil.Quantize(mix))
	if err != nil {
		t.Fatalf("DominantSamples() error = %v", err)
	}

	if math.Abs(got-2000) > e.BinHz() {
		t.Fatalf("ranged dominant = %v, want ~2000", got)
	}
}

func TestDominantErrors(t *testing.T) {
	e, err := NewEstimator(48000, 1024)
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}

	if _, err := e.Dominant(make([]float64, 100)); !errors.Is(err, ErrShortBlock) {
		t.Fatalf("short block error = %v, want ErrShortBlock", err)
	}

	if _, err := e.Dominant(make([]float64, 1024)); !errors.Is(err, ErrSilent) {
		t.Fatalf("silent block error = %v, want ErrSilent", err)
	}
}
