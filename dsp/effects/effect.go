package effects

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// ErrSampleRate is returned by constructors given an unusable sample rate.
var ErrSampleRate = errors.New("effects: sample rate must be positive and finite")

// Shared parameter ranges.
var (
	MixRange  = core.Range{Min: 0, Max: 1, Default: 0.5}
	GainRange = core.Range{Min: 0.1, Max: 4, Default: 1}
)

// State is the on/off switch of an effect. When Off the host bypasses
// Process entirely.
type State uint8

const (
	Off State = iota
	On
)

func (s State) String() string {
	if s == On {
		return "on"
	}

	return "off"
}

// Param returns the state as a parameter-vector value.
func (s State) Param() float64 {
	if s == On {
		return 1
	}

	return 0
}

// StateFromParam interprets a parameter-vector value: anything at or above
// 0.5 is On.
func StateFromParam(v float64) State {
	if v >= 0.5 {
		return On
	}

	return Off
}

// Param returns values[i] and whether the vector is long enough to hold
// it. SetParams implementations use it to accept truncated vectors.
func Param(values []float64, i int) (float64, bool) {
	if i < 0 || i >= len(values) {
		return 0, false
	}

	return values[i], true
}

// Effect is the host-facing contract of every processor in the bank.
type Effect interface {
	// Process returns one processed sample. cursor is the host history
	// write position for this tick; effects with private storage ignore it.
	Process(sample int32, cursor int) int32
	Switch(state State)
	State() State
	// Params exports the tunable state in the effect's fixed field order.
	Params() []float64
	// SetParams imports a vector in the same order. Short vectors update
	// only the leading fields.
	SetParams(values []float64)
	ParamNames() []string
}

// ValidateSampleRate reports ErrSampleRate for non-positive or non-finite
// rates.
func ValidateSampleRate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("%w: %f", ErrSampleRate, sampleRate)
	}

	return nil
}

// Switcher is embedded by effects to implement Switch and State.
type Switcher struct {
	state State
}

// Switch enables or disables processing.
func (s *Switcher) Switch(state State) {
	if state == On {
		s.state = On
		return
	}

	s.state = Off
}

// State returns the current switch position.
func (s *Switcher) State() State { return s.state }

// MixWeights returns the dry and wet output weights for a mix fraction and
// overall gain.
func MixWeights(mix, gain float64) (dry, wet float64) {
	return (1 - mix) * gain, mix * gain
}
