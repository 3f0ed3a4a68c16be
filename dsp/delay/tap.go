package delay

import (
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// Tap is a delay expressed in samples behind the write cursor, derived from
// a millisecond or sample-count parameter and clamped to [MinOffset, limit].
type Tap struct {
	sampleRate float64
	limit      int
	samples    int
	ms         float64
}

// NewTap returns a tap at MinOffset. limit is the largest offset the tap may
// take; it is raised to MinOffset if smaller.
func NewTap(sampleRate float64, limit int) Tap {
	t := Tap{sampleRate: sampleRate}
	t.limit = max(limit, MinOffset)
	t.SetSamples(MinOffset)

	return t
}

// SetMilliseconds sets the delay to round(sampleRate*ms/1000) samples,
// clamped into range.
func (t *Tap) SetMilliseconds(ms float64) {
	samples := t.sampleRate * ms / 1000
	switch {
	case math.IsNaN(samples) || samples < MinOffset:
		t.SetSamples(MinOffset)
	case samples > float64(t.limit):
		t.SetSamples(t.limit)
	default:
		t.SetSamples(int(math.Round(samples)))
	}
}

// SetSamples sets the delay in samples, clamped into range.
func (t *Tap) SetSamples(samples int) {
	t.samples = core.ClampInt(samples, MinOffset, t.limit)
	t.ms = core.SamplesToMilliseconds(t.samples, t.sampleRate)
}

// SetLimit changes the largest allowed offset and re-clamps the current one.
func (t *Tap) SetLimit(limit int) {
	t.limit = max(limit, MinOffset)
	t.SetSamples(t.samples)
}

// Samples returns the clamped offset in samples.
func (t *Tap) Samples() int { return t.samples }

// Milliseconds returns the effective delay in milliseconds after clamping.
func (t *Tap) Milliseconds() float64 { return t.ms }

// Limit returns the largest allowed offset.
func (t *Tap) Limit() int { return t.limit }
