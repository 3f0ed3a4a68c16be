package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestStreamRead(t *testing.T) {
	s := NewStream(NewLoop([]int32{1, -2, 40000}))

	p := make([]byte, 9)

	n, err := s.Read(p)
	if err != nil || n != 8 {
		t.Fatalf("Read() = %d, %v, want 8, nil", n, err)
	}

	want := []int16{1, -2, 32767, 1}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(p[2*i:])); got != w {
			t.Fatalf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestLoopEmptyIsSilent(t *testing.T) {
	l := NewLoop(nil)
	for range 3 {
		if l.NextSample() != 0 {
			t.Fatal("empty loop produced sound")
		}
	}
}

func TestTone(t *testing.T) {
	tone := NewTone(1000, 48000, 10000)

	var peak int32
	for i := range 48 {
		s := tone.NextSample()
		want := math.Round(10000 * math.Sin(2*math.Pi*float64(i)/48))

		if math.Abs(float64(s)-want) > 1 {
			t.Fatalf("sample %d = %d, want %v", i, s, want)
		}

		peak = max(peak, s)
	}

	if peak != 10000 {
		t.Fatalf("peak = %d, want 10000", peak)
	}
}

func TestSourceFunc(t *testing.T) {
	var calls int32

	src := SourceFunc(func() int32 {
		calls++
		return calls
	})

	if src.NextSample() != 1 || src.NextSample() != 2 {
		t.Fatal("SourceFunc did not forward calls")
	}
}
