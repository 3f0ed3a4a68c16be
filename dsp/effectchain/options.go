package effectchain

import (
	"log/slog"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// HistorySource selects which signal a Chain stores in its history each
// tick.
type HistorySource uint8

const (
	// HistoryOutput stores the chain output, so feedback lines recirculate.
	HistoryOutput HistorySource = iota
	// HistoryInput stores the dry input.
	HistoryInput
)

func (s HistorySource) String() string {
	if s == HistoryInput {
		return "input"
	}

	return "output"
}

// Defaults of Config.
const (
	DefaultHistoryCapacity = 48000
	DefaultControlQueue    = 64
)

// Config holds the construction settings of a Chain.
type Config struct {
	Processor       core.ProcessorConfig
	HistoryCapacity int
	HistorySource   HistorySource
	ControlQueue    int
	Registry        *Registry
	Logger          *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		Processor:       core.DefaultProcessorConfig(),
		HistoryCapacity: DefaultHistoryCapacity,
		HistorySource:   HistoryOutput,
		ControlQueue:    DefaultControlQueue,
	}
}

// WithProcessorOptions applies core processor options such as
// core.WithSampleRate and core.WithBlockSize.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *Config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.Processor)
			}
		}
	}
}

// WithSampleRate sets the sample rate shared by every node.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.Processor)
	}
}

// WithHistoryCapacity sets the capacity of the shared history in samples.
// Non-positive values are ignored.
func WithHistoryCapacity(samples int) Option {
	return func(cfg *Config) {
		if samples > 0 {
			cfg.HistoryCapacity = samples
		}
	}
}

// WithHistorySource selects the signal stored in the history.
func WithHistorySource(src HistorySource) Option {
	return func(cfg *Config) {
		cfg.HistorySource = src
	}
}

// WithControlQueue sets the number of pending control updates. Non-positive
// values are ignored.
func WithControlQueue(size int) Option {
	return func(cfg *Config) {
		if size > 0 {
			cfg.ControlQueue = size
		}
	}
}

// WithRegistry replaces the default effect registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *Config) {
		cfg.Registry = r
	}
}

// WithLogger sets the logger for configuration events. The per-tick path
// never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}
