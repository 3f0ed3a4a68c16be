package effectchain

import "github.com/cwbudde/algo-gtrfx/dsp/delay"

// Context provides environmental information that effect factories need.
type Context struct {
	SampleRate float64
	History    delay.View
}
