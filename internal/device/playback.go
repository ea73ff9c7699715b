// Package device plays a driver's output on the default PortAudio device.
package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-audiograph/driver"
	"github.com/cwbudde/algo-audiograph/dsp/buffer"
)

// Playback is an open PortAudio output stream fed by a Driver.
type Playback struct {
	drv    *driver.Driver
	stream *portaudio.Stream
	block  *buffer.Block[float64]
	logger *slog.Logger
}

// Open initialises PortAudio and opens the default output device with the
// driver's channel count, sample rate and period. It returns
// driver.ErrNoOutputDevice when no device can take that many channels.
func Open(drv *driver.Driver, logger *slog.Logger) (*Playback, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("device: initializing portaudio: %w", err)
	}

	dev, err := portaudio.DefaultOutputDevice()
	if err != nil || dev == nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", driver.ErrNoOutputDevice, err)
	}
	if dev.MaxOutputChannels < drv.Channels() {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %s has %d output channels, need %d",
			driver.ErrNoOutputDevice, dev.Name, dev.MaxOutputChannels, drv.Channels())
	}

	p := newPlayback(drv, logger)
	logger = p.logger
	stream, err := portaudio.OpenDefaultStream(0, drv.Channels(), drv.SampleRate(), drv.Period(), p.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("device: opening stream on %s: %w", dev.Name, err)
	}
	p.stream = stream

	logger.Info("output device opened",
		"device", dev.Name,
		"channels", drv.Channels(),
		"sample_rate", drv.SampleRate(),
		"period", drv.Period())
	return p, nil
}

func newPlayback(drv *driver.Driver, logger *slog.Logger) *Playback {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Playback{
		drv:    drv,
		block:  buffer.New[float64](drv.Channels(), drv.Period()),
		logger: logger,
	}
}

// process is the PortAudio callback. Buffers longer than the driver
// period are rendered in several periods.
func (p *Playback) process(out [][]float32) {
	if len(out) == 0 {
		return
	}

	frames := len(out[0])
	for done := 0; done < frames; {
		n := min(p.drv.Period(), frames-done)
		block := p.block.View(len(out), n)
		p.drv.RenderPeriod(block)
		for c := range out {
			driver.Interleave(out[c][done:done+n], block[c:c+1])
		}
		done += n
	}
}

// Start begins playback.
func (p *Playback) Start() error {
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("device: starting stream: %w", err)
	}
	return nil
}

// Play starts the stream and blocks until ctx is done or d has elapsed.
// A non-positive d plays until ctx is done.
func (p *Playback) Play(ctx context.Context, d time.Duration) error {
	if err := p.Start(); err != nil {
		return err
	}

	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	<-ctx.Done()

	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("device: stopping stream: %w", err)
	}
	stats := p.drv.Stats()
	p.logger.Info("playback stopped",
		"periods", stats.Periods,
		"underruns", stats.Underruns,
		"silenced_frames", stats.SilencedFrames)
	return nil
}

// Close releases the stream and PortAudio.
func (p *Playback) Close() error {
	err := p.stream.Close()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	if err != nil {
		return fmt.Errorf("device: closing stream: %w", err)
	}
	return nil
}
