package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/window"
)

// Crossfade selects the blend curve used while two taps overlap.
type Crossfade uint8

const (
	// CrossfadeLinear weights the taps with t and 1-t.
	CrossfadeLinear Crossfade = iota
	// CrossfadeEqualPower weights the taps with quarter-period sine
	// segments read from a 512-entry half-sine table.
	CrossfadeEqualPower
)

const crossfadeTableSize = 512

var halfSine = window.Generate(window.TypeCosine, crossfadeTableSize, window.WithPeriodic())

// CrossfadeWeights returns the rising and falling weights at position pos
// of a blend region of the given length.
func CrossfadeWeights(curve Crossfade, pos, length int) (rising, falling float64) {
	if length <= 0 {
		return 1, 0
	}

	if pos < 0 {
		pos = 0
	} else if pos >= length {
		pos = length - 1
	}

	if curve == CrossfadeEqualPower {
		idx := pos * (crossfadeTableSize / 2) / length
		return halfSine[idx], halfSine[idx+crossfadeTableSize/2]
	}

	t := float64(pos) / float64(length)

	return t, 1 - t
}

// GrainGeometry describes one grain cycle. Tap values are offsets relative
// to delay.MinOffset.
type GrainGeometry struct {
	// Cycle is the grain period in samples.
	Cycle int
	// K1Start and K2Start are the tap values at the start of a cycle.
	K1Start int
	K2Start int
	// Taps move by Step each time the accumulator fires, Rise times per
	// cycle. Step is +1 (offsets grow, pitch falls) or -1.
	Rise int
	Step int
	// Both taps are mixed for phase in [BlendStart, BlendEnd).
	BlendStart int
	BlendEnd   int
	Crossfade  Crossfade
	// K1FadesIn reports whether tap one is the incoming tap of the blend.
	K1FadesIn bool
}

// MaxOffset returns an upper bound of the history offset the geometry can
// read.
func (g GrainGeometry) MaxOffset() int {
	k := max(g.K1Start, g.K2Start)
	if g.Step > 0 {
		k = max(g.K1Start, g.K2Start) + g.Rise
	}

	return k + delay.MinOffset + 1
}

func (g GrainGeometry) validate() error {
	if g.Cycle <= 0 {
		return fmt.Errorf("pitch: grain cycle must be positive: %d", g.Cycle)
	}

	if g.Rise < 0 || g.Rise > g.Cycle {
		return fmt.Errorf("pitch: grain rise must be in [0, %d]: %d", g.Cycle, g.Rise)
	}

	if g.Step != 1 && g.Step != -1 {
		return fmt.Errorf("pitch: grain step must be +1 or -1: %d", g.Step)
	}

	if g.BlendStart < 0 || g.BlendEnd > g.Cycle || g.BlendStart > g.BlendEnd {
		return fmt.Errorf("pitch: blend region [%d, %d) outside cycle %d", g.BlendStart, g.BlendEnd, g.Cycle)
	}

	return nil
}

// GrainScheduler drives two history taps through repeating grain cycles.
// Geometry changes are latched and take effect at the next cycle start.
type GrainScheduler struct {
	view delay.View

	geom       GrainGeometry
	pending    GrainGeometry
	hasPending bool

	// accumulator slopes
	d1, d2, d3 int

	phase  int
	k1, k2 int
	acc    int
}

// NewGrainScheduler validates geometry against the history view and
// returns a scheduler positioned at the start of a cycle.
func NewGrainScheduler(view delay.View, geom GrainGeometry) (*GrainScheduler, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}

	if !view.Valid() || geom.MaxOffset() > view.MaxOffset() {
		return nil, fmt.Errorf("%w: grain needs offset %d, history holds %d",
			delay.ErrCapacity, geom.MaxOffset(), view.Capacity())
	}

	s := &GrainScheduler{view: view, geom: geom}
	s.restart()

	return s, nil
}

// SetGeometry schedules geom for the next cycle boundary. Invalid or
// oversized geometries are rejected and the current schedule is kept.
func (s *GrainScheduler) SetGeometry(geom GrainGeometry) error {
	if err := geom.validate(); err != nil {
		return err
	}

	if geom.MaxOffset() > s.view.MaxOffset() {
		return fmt.Errorf("%w: grain needs offset %d, history holds %d",
			delay.ErrCapacity, geom.MaxOffset(), s.view.Capacity())
	}

	s.schedule(geom)

	return nil
}

// schedule latches a geometry already checked against the view.
func (s *GrainScheduler) schedule(geom GrainGeometry) {
	s.pending = geom
	s.hasPending = true
}

// Geometry returns the geometry of the running cycle.
func (s *GrainScheduler) Geometry() GrainGeometry { return s.geom }

// Phase returns the position inside the running cycle.
func (s *GrainScheduler) Phase() int { return s.phase }

// Taps returns the current tap values, relative to delay.MinOffset.
func (s *GrainScheduler) Taps() (k1, k2 int) { return s.k1, s.k2 }

// Reset restarts the cycle, applying any pending geometry.
func (s *GrainScheduler) Reset() { s.restart() }

// Next reads this tick's grain sample and advances the schedule.
func (s *GrainScheduler) Next(cursor int) float64 {
	g := &s.geom

	blend := s.phase >= g.BlendStart && s.phase < g.BlendEnd

	var out float64
	if blend {
		rising, falling := CrossfadeWeights(g.Crossfade, s.phase-g.BlendStart, g.BlendEnd-g.BlendStart)
		w1, w2 := falling, rising
		if g.K1FadesIn {
			w1, w2 = rising, falling
		}

		out = w1*float64(s.read(cursor, s.k1)) + w2*float64(s.read(cursor, s.k2))
	} else {
		out = float64(s.read(cursor, s.k1))
	}

	s.phase++
	if s.acc > 0 {
		s.k1 += g.Step
		if blend {
			s.k2 += g.Step
		}

		s.acc += s.d2
	} else {
		s.acc += s.d3
	}

	if s.phase >= g.Cycle {
		s.restart()
	}

	return out
}

func (s *GrainScheduler) read(cursor, k int) int32 {
	off := k + delay.MinOffset
	if off < delay.MinOffset {
		off = delay.MinOffset
	}

	return s.view.Read(cursor, off)
}

func (s *GrainScheduler) restart() {
	if s.hasPending {
		s.geom = s.pending
		s.hasPending = false
	}

	g := s.geom
	s.d1 = 2*g.Rise - g.Cycle
	s.d2 = 2 * (g.Rise - g.Cycle)
	s.d3 = 2 * g.Rise
	s.phase = 0
	s.k1 = g.K1Start
	s.k2 = g.K2Start
	s.acc = s.d1
}
