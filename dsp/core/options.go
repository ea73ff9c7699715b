package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProcessorConfig is returned by ProcessorConfig.Validate.
var ErrInvalidProcessorConfig = errors.New("invalid processor config")

// ProcessorConfig holds the settings a host resolves before it builds a
// graph: the rate handed to every node constructor, the frames requested
// per period, and the widest channel layout a combinator has to stage.
type ProcessorConfig struct {
	SampleRate  float64
	BlockSize   int
	MaxChannels int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig is 48 kHz, 1024-frame periods, up to 8 channels.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:  48000,
		BlockSize:   1024,
		MaxChannels: 8,
	}
}

// WithSampleRate sets the rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.SampleRate = sampleRate }
}

// WithBlockSize sets the frames per period.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.BlockSize = blockSize }
}

// WithMaxChannels sets the largest channel count staged between nodes.
func WithMaxChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) { cfg.MaxChannels = channels }
}

// ApplyProcessorOptions applies opts over DefaultProcessorConfig. Nil
// options are skipped. The result is not validated.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first field that cannot drive a graph.
func (c ProcessorConfig) Validate() error {
	if err := ValidateSampleRate(c.SampleRate); err != nil {
		return err
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidProcessorConfig, c.BlockSize)
	}
	if c.MaxChannels <= 0 {
		return fmt.Errorf("%w: max channels must be > 0: %d", ErrInvalidProcessorConfig, c.MaxChannels)
	}
	return nil
}

// PeriodDuration is the wall-clock length of one BlockSize period.
func (c ProcessorConfig) PeriodDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(c.BlockSize) / c.SampleRate * float64(time.Second))
}
