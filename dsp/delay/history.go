package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// MinOffset is the smallest valid read offset. It leaves room for the grain
// crossfade window ahead of the write cursor.
const MinOffset = 10

// ErrCapacity is returned when a ring is too small for its intended use.
var ErrCapacity = errors.New("delay: insufficient capacity")

// History is the host-owned circular sample history shared by the
// buffer-based effects.
type History struct {
	buf    []int16
	cursor int
}

// NewHistory returns a zeroed history of the given capacity.
func NewHistory(capacity int) (*History, error) {
	if capacity <= MinOffset {
		return nil, fmt.Errorf("%w: history capacity must be > %d: %d", ErrCapacity, MinOffset, capacity)
	}

	return &History{buf: make([]int16, capacity)}, nil
}

// Capacity returns N, the number of stored samples.
func (h *History) Capacity() int { return len(h.buf) }

// Cursor returns the position the next sample will be written to.
func (h *History) Cursor() int { return h.cursor }

// Write stores sample at the cursor, saturated to 16 bits, and advances the
// cursor by one position modulo the capacity.
func (h *History) Write(sample int32) {
	h.buf[h.cursor] = int16(core.Saturate(sample))
	h.cursor++
	if h.cursor >= len(h.buf) {
		h.cursor = 0
	}
}

// Read returns the sample written offset ticks ago.
func (h *History) Read(offset int) int32 {
	return h.View().Read(h.cursor, offset)
}

// View returns a read-only view of the history.
func (h *History) View() View {
	return View{buf: h.buf}
}

// Reset zeroes the history and rewinds the cursor.
func (h *History) Reset() {
	for i := range h.buf {
		h.buf[i] = 0
	}

	h.cursor = 0
}

// View is a non-owning, read-only window into a History.
type View struct {
	buf []int16
}

// Capacity returns the capacity of the underlying history.
func (v View) Capacity() int { return len(v.buf) }

// Valid reports whether the view refers to a history.
func (v View) Valid() bool { return len(v.buf) > MinOffset }

// MaxOffset returns the largest valid read offset, N-1.
func (v View) MaxOffset() int { return len(v.buf) - 1 }

// Read returns the sample written offset ticks before cursor.
func (v View) Read(cursor, offset int) int32 {
	n := len(v.buf)
	offset = checkOffset(offset, n)
	checkCursor(cursor, n)

	return int32(v.buf[ReadIndex(cursor, offset, n)])
}

// ReadIndex maps a cursor and an offset behind it to a ring index in [0, n)
// for 0 <= offset < n and 0 <= cursor < n.
func ReadIndex(cursor, offset, n int) int {
	if cursor >= offset {
		return cursor - offset
	}

	return n - offset + cursor
}
