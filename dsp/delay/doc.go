// Package delay provides the sample-history addressing used by the
// buffer-based effects.
//
// A History is a fixed-capacity ring of 16-bit samples owned and written by
// the host, once per audio tick. Effects never write it; they hold a View, a
// non-owning read-only window that knows the ring capacity, and receive the
// host's write cursor with every sample. Read(cursor, offset) returns the
// sample written offset ticks before cursor:
//
//	index = cursor - offset        if cursor >= offset
//	index = N - offset + cursor    otherwise
//
// Offsets must lie in [MinOffset, N-1]. Builds with the dspdebug tag panic on
// a violation; regular builds clamp.
//
// A Tap converts a millisecond or sample-count delay into a clamped read
// offset. A Line is a privately owned ring with its own cursor, used by
// processors that both write and read their history.
package delay
