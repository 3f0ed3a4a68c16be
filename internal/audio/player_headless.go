//go:build headless

package audio

import (
	"errors"
	"time"
)

// ErrNoDevice is returned by NewPlayer in headless builds.
var ErrNoDevice = errors.New("audio: built without device support")

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails in headless builds.
func NewPlayer(int, Source, time.Duration) (*Player, error) {
	return nil, ErrNoDevice
}

// Start does nothing.
func (p *Player) Start() {}

// IsPlaying reports false.
func (p *Player) IsPlaying() bool { return false }

// Close does nothing.
func (p *Player) Close() error { return nil }
