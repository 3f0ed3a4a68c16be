// Package audio moves samples between the effect chain and the outside
// world: mono 16-bit WAV files and the system audio device.
package audio
