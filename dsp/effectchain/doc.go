// Package effectchain hosts a serial chain of effects over one shared
// sample history.
//
// A Chain owns the delay.History, runs every enabled node once per tick
// with the current write cursor, then stores the chain output (or input)
// and advances the cursor. Nodes are built by name through a Registry.
// Parameter changes from other goroutines go through a bounded control
// queue that the audio tick drains between samples.
package effectchain
