package delay

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// Line is a privately owned 16-bit delay line with its own cursor. Unlike
// History, the owner both reads and writes it, and advances the cursor
// explicitly so several lines can move in lockstep.
type Line struct {
	buf []int16
	pos int
}

// NewLine returns a zeroed line of the given size.
func NewLine(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: line size must be > 0: %d", ErrCapacity, size)
	}

	return &Line{buf: make([]int16, size)}, nil
}

// Len returns the line size.
func (l *Line) Len() int { return len(l.buf) }

// Cursor returns the current write position.
func (l *Line) Cursor() int { return l.pos }

// Read returns the sample written delay ticks before the cursor,
// 0 < delay < Len().
func (l *Line) Read(delay int) int32 {
	return int32(l.buf[ReadIndex(l.pos, delay, len(l.buf))])
}

// Write stores sample at the cursor, saturated to 16 bits. The cursor is not
// moved.
func (l *Line) Write(sample int32) {
	l.buf[l.pos] = int16(core.Saturate(sample))
}

// Advance moves the cursor one position forward, wrapping at Len().
func (l *Line) Advance() {
	l.pos++
	if l.pos >= len(l.buf) {
		l.pos = 0
	}
}

// Reset clears line state.
func (l *Line) Reset() {
	for i := range l.buf {
		l.buf[i] = 0
	}

	l.pos = 0
}
