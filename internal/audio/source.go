package audio

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// Source yields one processed sample per call.
type Source interface {
	NextSample() int32
}

// SourceFunc adapts a function to Source.
type SourceFunc func() int32

// NextSample calls f.
func (f SourceFunc) NextSample() int32 { return f() }

// Loop repeats a clip forever.
type Loop struct {
	samples []int32
	pos     int
}

// NewLoop returns a Source cycling through samples. An empty clip yields
// silence.
func NewLoop(samples []int32) *Loop {
	return &Loop{samples: samples}
}

// NextSample returns the next sample of the loop.
func (l *Loop) NextSample() int32 {
	if len(l.samples) == 0 {
		return 0
	}

	s := l.samples[l.pos]

	l.pos++
	if l.pos == len(l.samples) {
		l.pos = 0
	}

	return s
}

// Tone is a sine test signal.
type Tone struct {
	amplitude float64
	step      float64
	phase     float64
}

// NewTone returns a sine of freqHz at the given sample rate and peak
// amplitude.
func NewTone(freqHz, sampleRate, amplitude float64) *Tone {
	return &Tone{amplitude: amplitude, step: 2 * math.Pi * freqHz / sampleRate}
}

// NextSample returns the next tone sample.
func (t *Tone) NextSample() int32 {
	s := int32(math.Round(t.amplitude * math.Sin(t.phase)))

	t.phase += t.step
	if t.phase >= 2*math.Pi {
		t.phase -= 2 * math.Pi
	}

	return s
}

// Stream renders a Source as signed 16-bit little-endian PCM for an
// io.Reader consumer such as the audio device.
type Stream struct {
	src Source
}

// NewStream wraps src.
func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

// Read fills p with whole samples and never fails.
func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		binary.LittleEndian.PutUint16(p[i:], uint16(int16(core.Saturate(s.src.NextSample()))))
	}

	return n, nil
}
