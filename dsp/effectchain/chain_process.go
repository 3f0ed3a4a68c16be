package effectchain

import (
	"github.com/cwbudde/algo-gtrfx/dsp/core"
	"github.com/cwbudde/algo-gtrfx/dsp/effects"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Full-scale conversion between float audio in [-1, 1] and samples.
const (
	floatToSample = 32768.0
	sampleToFloat = 1 / floatToSample
)

// ProcessSample runs one tick: pending control updates are applied, every
// enabled node processes the sample in order at the current cursor, the
// selected signal is written into the history and the cursor advances.
func (c *Chain) ProcessSample(x int32) int32 {
	c.drainControl()

	x = core.Saturate(x)
	cursor := c.history.Cursor()

	y := x
	for _, n := range c.nodes {
		if n.fx.State() == effects.On {
			y = n.fx.Process(y, cursor)
		}
	}

	if c.cfg.HistorySource == HistoryInput {
		c.history.Write(x)
	} else {
		c.history.Write(y)
	}

	return y
}

// ProcessBlock runs ProcessSample over block in place.
func (c *Chain) ProcessBlock(block []int32) {
	for i, x := range block {
		block[i] = c.ProcessSample(x)
	}
}

// ProcessFloat runs the chain over float audio in [-1, 1] in place.
func (c *Chain) ProcessFloat(block []float64) {
	if len(block) == 0 {
		return
	}

	if cap(c.scratch) < len(block) {
		c.scratch = make([]float64, len(block))
	}

	buf := c.scratch[:len(block)]
	vecmath.ScaleBlock(buf, block, floatToSample)

	for i, x := range buf {
		buf[i] = float64(c.ProcessSample(core.ToSample(x)))
	}

	vecmath.ScaleBlock(block, buf, sampleToFloat)
}

// Reset zeroes the history and drops pending control updates.
func (c *Chain) Reset() {
	for {
		select {
		case <-c.control:
		default:
			c.history.Reset()
			return
		}
	}
}
