package graph

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
)

var (
	// ErrCapacityExceeded is the panic value (wrapped) when staged data would
	// need more channels or frames than a combinator preallocated.
	ErrCapacityExceeded = buffer.ErrCapacityExceeded
	// ErrShapeMismatch is the panic value (wrapped) when call-time shapes
	// disagree with what the nodes declared.
	ErrShapeMismatch = errors.New("buffer shape mismatch")
	// ErrInvalidConfig is returned for non-positive budgets.
	ErrInvalidConfig = errors.New("invalid graph config")
	// ErrNilNode is returned when a combinator is handed a nil child.
	ErrNilNode = errors.New("nil node")
)

// Config is the resource budget a combinator allocates its scratch
// storage from. Calls that would need more are fatal.
type Config struct {
	MaxChannels int
	MaxFrames   int
}

// Option mutates a Config.
type Option func(*Config)

// WithMaxChannels sets the channel budget.
func WithMaxChannels(channels int) Option {
	return func(cfg *Config) {
		cfg.MaxChannels = channels
	}
}

// WithMaxFrames sets the frame budget per call.
func WithMaxFrames(frames int) Option {
	return func(cfg *Config) {
		cfg.MaxFrames = frames
	}
}

// ConfigFrom derives a budget from a processor configuration.
func ConfigFrom(p core.ProcessorConfig) Config {
	return Config{MaxChannels: p.MaxChannels, MaxFrames: p.BlockSize}
}

// NewConfig returns the default budget with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := ConfigFrom(core.DefaultProcessorConfig())
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate rejects non-positive budgets.
func (c Config) Validate() error {
	if c.MaxChannels <= 0 {
		return fmt.Errorf("%w: max channels must be > 0: %d", ErrInvalidConfig, c.MaxChannels)
	}
	if c.MaxFrames <= 0 {
		return fmt.Errorf("%w: max frames must be > 0: %d", ErrInvalidConfig, c.MaxFrames)
	}
	return nil
}

func shapeMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrShapeMismatch}, args...)...)
}
