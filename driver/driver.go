package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

var (
	// ErrNoOutputDevice is returned when no playback device is available.
	ErrNoOutputDevice = errors.New("driver: no output device")
	// ErrUnsupportedFormat is returned for sample formats or bit depths the
	// driver cannot produce.
	ErrUnsupportedFormat = errors.New("driver: unsupported sample format")
	// ErrNilRoot is returned when New is handed a nil root node.
	ErrNilRoot = errors.New("driver: nil root node")
)

const defaultChannels = 2

type config struct {
	sampleRate    float64
	channels      int
	inputChannels int
	period        int
	logger        *slog.Logger
}

// Option configures a Driver.
type Option func(*config) error

// WithSampleRate sets the rate recorded in rendered files.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if err := core.ValidateSampleRate(sampleRate); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
		cfg.sampleRate = sampleRate
		return nil
	}
}

// WithChannels sets the number of output channels per period.
func WithChannels(channels int) Option {
	return func(cfg *config) error {
		if channels <= 0 {
			return fmt.Errorf("driver: channels must be > 0: %d", channels)
		}
		cfg.channels = channels
		return nil
	}
}

// WithInputChannels sets how many silent input channels the root receives.
// Zero hands the root no input at all.
func WithInputChannels(channels int) Option {
	return func(cfg *config) error {
		if channels < 0 {
			return fmt.Errorf("driver: input channels must be >= 0: %d", channels)
		}
		cfg.inputChannels = channels
		return nil
	}
}

// WithPeriod sets the largest period, in frames, the driver renders.
func WithPeriod(frames int) Option {
	return func(cfg *config) error {
		if frames <= 0 {
			return fmt.Errorf("driver: period must be > 0: %d", frames)
		}
		cfg.period = frames
		return nil
	}
}

// WithLogger sets the logger used for underrun reports.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger != nil {
			cfg.logger = logger
		}
		return nil
	}
}

// Stats summarises the periods rendered since the last ResetStats.
type Stats struct {
	Periods   uint64
	Underruns uint64
	// SilencedFrames counts output frames replaced with silence.
	SilencedFrames uint64
	// Peak is the largest absolute sample of the most recent period.
	Peak float64
}

// Driver renders a root node period by period.
type Driver struct {
	root       graph.RealNode
	sampleRate float64
	channels   int
	period     int
	logger     *slog.Logger

	inputChannels int
	silence       *buffer.Block[float64]
	out           *buffer.Block[float64]

	periods   atomic.Uint64
	underruns atomic.Uint64
	silenced  atomic.Uint64
	peak      atomic.Uint64
}

// New returns a Driver for root. Defaults come from
// core.DefaultProcessorConfig with two output channels and one silent
// input channel. A root that always produces a channel count other than
// the driver's is rejected with graph.ErrShapeMismatch.
func New(root graph.RealNode, opts ...Option) (*Driver, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	defaults := core.DefaultProcessorConfig()
	cfg := config{
		sampleRate:    defaults.SampleRate,
		channels:      defaultChannels,
		inputChannels: 1,
		period:        defaults.BlockSize,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if n := root.BlockSize().OutputChannels; n > 0 && n != cfg.channels {
		return nil, fmt.Errorf("driver: %w: root produces %d channels, driver renders %d",
			graph.ErrShapeMismatch, n, cfg.channels)
	}

	d := &Driver{
		root:       root,
		sampleRate: cfg.sampleRate,
		channels:   cfg.channels,
		period:     cfg.period,
		logger:     cfg.logger,

		inputChannels: cfg.inputChannels,
		silence:       buffer.New[float64](cfg.inputChannels, cfg.period),
		out:           buffer.New[float64](cfg.channels, cfg.period),
	}
	return d, nil
}

// SampleRate returns the configured sample rate.
func (d *Driver) SampleRate() float64 {
	return d.sampleRate
}

// Channels returns the output channel count.
func (d *Driver) Channels() int {
	return d.channels
}

// Period returns the largest period in frames.
func (d *Driver) Period() int {
	return d.period
}

// Root returns the node being driven.
func (d *Driver) Root() graph.RealNode {
	return d.root
}

// RenderPeriod fills out from the root node. After a non-Ready status the
// frames the root did not write are silenced, so out is always fully
// defined. Periods longer than the configured maximum panic with
// graph.ErrCapacityExceeded.
func (d *Driver) RenderPeriod(out [][]float64) graph.Status {
	frames := buffer.Frames(out)
	if frames > d.period {
		panic(fmt.Errorf("%w: period of %d frames exceeds driver maximum %d",
			graph.ErrCapacityExceeded, frames, d.period))
	}

	var in [][]float64
	if d.inputChannels > 0 {
		in = d.silence.View(d.inputChannels, frames)
	}

	status := d.root.Process(in, out)
	d.periods.Add(1)

	written := status.FramesWritten(frames)
	if !status.IsReady() {
		core.ZeroFrom(out, written)
	}
	d.peak.Store(math.Float64bits(peak(out, written)))
	if status.IsReady() {
		return status
	}

	if d.underruns.Add(1) == 1 {
		d.logger.Warn("graph underrun, substituting silence",
			"status", status.String(), "frames", frames, "written", written)
	} else {
		d.logger.Debug("graph underrun",
			"status", status.String(), "frames", frames, "written", written)
	}
	d.silenced.Add(uint64(frames - written))
	return status
}

// Render renders frames output frames in periods and hands each one to fn.
// The block passed to fn is reused by the next period. Cancellation is
// checked between periods.
func (d *Driver) Render(ctx context.Context, frames int, fn func(block [][]float64) error) error {
	for done := 0; done < frames; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(d.period, frames-done)
		block := d.out.View(d.channels, n)
		d.RenderPeriod(block)
		if err := fn(block); err != nil {
			return err
		}
		done += n
	}
	return nil
}

// Stats returns the counters since the last ResetStats. It is safe to call
// from another goroutine while periods are being rendered.
func (d *Driver) Stats() Stats {
	return Stats{
		Periods:        d.periods.Load(),
		Underruns:      d.underruns.Load(),
		SilencedFrames: d.silenced.Load(),
		Peak:           math.Float64frombits(d.peak.Load()),
	}
}

// ResetStats clears the counters and starts a new run, so the next
// underrun is reported at warn level again.
func (d *Driver) ResetStats() {
	d.periods.Store(0)
	d.underruns.Store(0)
	d.silenced.Store(0)
	d.peak.Store(0)
}

func peak(out [][]float64, frames int) float64 {
	var p float64
	for _, ch := range out {
		p = max(p, vecmath.MaxAbs(ch[:frames]))
	}
	return p
}
