package echo

import (
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// Variant selects the delay-time preset of an echo line.
type Variant uint8

const (
	// VariantDelay is a short delay: 31 ms by default, at most 100 ms when
	// imported from a parameter vector.
	VariantDelay Variant = iota
	// VariantEcho is a long echo: 1 s by default, at least 50 ms when
	// imported from a parameter vector.
	VariantEcho
)

func (v Variant) String() string {
	if v == VariantEcho {
		return "echo"
	}

	return "delay"
}

// MillisecondsRange returns the delay-time bounds applied to imported
// parameter vectors. The history capacity bounds setters further.
func (v Variant) MillisecondsRange() core.Range {
	if v == VariantEcho {
		return core.Range{Min: 50, Max: math.Inf(1), Default: 1000}
	}

	return core.Range{Min: 0, Max: 100, Default: 31}
}
