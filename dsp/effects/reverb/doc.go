// Package reverb provides a four-line feedback delay network reverberator.
//
// The Reverberator owns its storage: four private delay lines carved from a
// caller-sized capacity. It does not read the host's shared history, so the
// cursor passed to Process is ignored.
package reverb
