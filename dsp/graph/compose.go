package graph

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Compose is a two-stage series whose stages may change domain, e.g. an
// analysis node followed by a synthesis node. It follows the same rules
// as Series.
type Compose[A, B, C Sample] struct {
	first   stage[A, B]
	second  stage[B, C]
	scratch *buffer.Block[B]
	req     BlockRequirements
}

// NewCompose chains first into second.
func NewCompose[A, B, C Sample](cfg Config, first Node[A, B], second Node[B, C]) (*Compose[A, B, C], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph: compose: %w", err)
	}

	s1, err := newStage(first, cfg)
	if err != nil {
		return nil, fmt.Errorf("graph: compose first: %w", err)
	}
	s2, err := newStage(second, cfg)
	if err != nil {
		return nil, fmt.Errorf("graph: compose second: %w", err)
	}

	channels, frames := stageCapacity(s1.req, cfg)

	return &Compose[A, B, C]{
		first:   s1,
		second:  s2,
		scratch: buffer.New[B](channels, frames),
		req:     chainRequirements(s1.req, s2.req),
	}, nil
}

// MustCompose is like NewCompose but panics on error.
func MustCompose[A, B, C Sample](cfg Config, first Node[A, B], second Node[B, C]) *Compose[A, B, C] {
	c, err := NewCompose(cfg, first, second)
	if err != nil {
		panic(err)
	}
	return c
}

// BlockSize reports the requirements of both stages taken together.
func (c *Compose[A, B, C]) BlockSize() BlockRequirements {
	return c.req
}

// Process runs both stages. Input the pair cannot accept is answered with
// NeedMoreInput before the first stage runs.
func (c *Compose[A, B, C]) Process(in [][]A, out [][]C) Status {
	frames := callFrames(in, out)
	if status := admit(c.req.Input, frames); !status.IsReady() {
		core.ZeroChannels(out)
		return status
	}

	p1, status := negotiate(c.first.req, frames)
	if !status.IsReady() {
		core.ZeroChannels(out)
		return status
	}

	mid := c.scratch.View(stageChannels(c.first.req, len(in), len(out)), p1.outFrames())
	if status = c.first.run(in, mid, p1); !status.IsReady() {
		core.ZeroChannels(out)
		return status
	}

	p2, status := negotiate(c.second.req, p1.outFrames())
	if !status.IsReady() {
		core.ZeroChannels(out)
		return status
	}

	if len(out) > 0 {
		if c.second.req.OutputChannels > 0 && c.second.req.OutputChannels != len(out) {
			panic(shapeMismatch("compose: second stage produces %d channels, output has %d",
				c.second.req.OutputChannels, len(out)))
		}
		if p2.outFrames() != buffer.Frames(out) {
			panic(shapeMismatch("compose: second stage produces %d frames, output has %d",
				p2.outFrames(), buffer.Frames(out)))
		}
	}

	status = c.second.run(mid, out, p2)
	switch status.Kind {
	case StatusReady:
	case StatusPartialOutput:
		core.ZeroFrom(out, status.N)
	default:
		core.ZeroChannels(out)
	}
	return status
}
