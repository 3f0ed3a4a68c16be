package core

import (
	"math"
	"time"
)

// ProcessorConfig describes the audio callback an effect bank runs under.
type ProcessorConfig struct {
	SampleRate float64
	// BlockSize is the number of samples handed to one callback.
	BlockSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings of the reference hardware:
// 48 kHz sampling and 48-sample audio callbacks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  48,
	}
}

// BlockDuration reports the wall-clock length of one callback.
func (c ProcessorConfig) BlockDuration() time.Duration {
	if !IsFinitePositive(c.SampleRate) || c.BlockSize <= 0 {
		return 0
	}

	return time.Duration(math.Round(float64(c.BlockSize) * float64(time.Second) / c.SampleRate))
}

// Samples converts d to a whole number of samples at the configured rate.
func (c ProcessorConfig) Samples(d time.Duration) int {
	return MillisecondsToSamples(float64(d)/float64(time.Millisecond), c.SampleRate)
}

// WithSampleRate sets the sampling rate. Non-finite or non-positive rates
// are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsFinitePositive(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the callback size in samples.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithBlockDuration sizes callbacks to span d at the sample rate in effect
// when the option is applied, so it must follow WithSampleRate.
// Durations shorter than one sample yield a single-sample block.
func WithBlockDuration(d time.Duration) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if d <= 0 {
			return
		}

		cfg.BlockSize = max(1, cfg.Samples(d))
	}
}

// ApplyProcessorOptions applies opts in order to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
