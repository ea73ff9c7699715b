package sampler

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

// PlayerOption mutates player construction parameters.
type PlayerOption func(*playerConfig) error

type playerConfig struct {
	loop  bool
	start int
}

// WithLoop makes the player wrap to the start instead of ending.
func WithLoop(loop bool) PlayerOption {
	return func(cfg *playerConfig) error {
		cfg.loop = loop
		return nil
	}
}

// WithStartFrame sets the frame playback starts from and Reset returns to.
func WithStartFrame(frame int) PlayerOption {
	return func(cfg *playerConfig) error {
		if frame < 0 {
			return fmt.Errorf("player start frame must be >= 0: %d", frame)
		}
		cfg.start = frame
		return nil
	}
}

// Player is a source node replaying a Clip. Output channel c plays clip
// channel c modulo the clip's channel count.
type Player struct {
	clip  *Clip
	loop  bool
	start int
	pos   int
}

// NewPlayer creates a player for clip. The clip is shared, not copied, and
// must not be modified while the player is in use.
func NewPlayer(clip *Clip, opts ...PlayerOption) (*Player, error) {
	if err := clip.Validate(); err != nil {
		return nil, err
	}

	var cfg playerConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.start > clip.Frames() {
		return nil, fmt.Errorf("player start frame %d beyond clip length %d", cfg.start, clip.Frames())
	}

	return &Player{clip: clip, loop: cfg.loop, start: cfg.start, pos: cfg.start}, nil
}

// Position returns the next frame to be played.
func (p *Player) Position() int { return p.pos }

// Done reports whether a one-shot player has run out.
func (p *Player) Done() bool {
	return !p.loop && p.pos >= p.clip.Frames()
}

// Reset rewinds to the start frame.
func (p *Player) Reset() { p.pos = p.start }

// Process copies the next frames of the clip. A one-shot player that runs
// out writes what is left, silences the rest and returns PartialOutput
// with the number of frames written.
func (p *Player) Process(_, out [][]float64) graph.Status {
	frames := 0
	if len(out) > 0 {
		frames = len(out[0])
	}

	total := p.clip.Frames()
	if p.loop && total > 0 {
		p.copyLooped(out, frames, total)
		return graph.Ready()
	}

	n := min(frames, total-p.pos)
	for c := range out {
		src := p.clip.Channels[c%len(p.clip.Channels)]
		copy(out[c][:n], src[p.pos:p.pos+n])
	}
	p.pos += n

	if n < frames {
		core.ZeroFrom(out, n)
		return graph.PartialOutput(n)
	}
	return graph.Ready()
}

func (p *Player) copyLooped(out [][]float64, frames, total int) {
	written := 0
	for written < frames {
		n := min(frames-written, total-p.pos)
		for c := range out {
			src := p.clip.Channels[c%len(p.clip.Channels)]
			copy(out[c][written:written+n], src[p.pos:p.pos+n])
		}
		written += n
		p.pos += n
		if p.pos == total {
			p.pos = 0
		}
	}
}

// BlockSize reports a shape-preserving source accepting any length.
func (p *Player) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}
