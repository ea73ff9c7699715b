package graph

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Parallel fans the same input out to every child and collects one output
// channel per child: output channel i is child i's channel 0.
//
// Each child writes into its own single-channel window of the output, so
// no child can touch another child's channel.
type Parallel[T Sample] struct {
	cfg    Config
	stages []stage[T, T]
	outHdr [][][]T
	req    BlockRequirements
}

// NewParallel builds a Parallel owning children.
func NewParallel[T Sample](cfg Config, children ...Node[T, T]) (*Parallel[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph: parallel: %w", err)
	}
	if len(children) > cfg.MaxChannels {
		return nil, fmt.Errorf("graph: parallel: %w: %d children, budget %d channels",
			ErrCapacityExceeded, len(children), cfg.MaxChannels)
	}

	p := &Parallel[T]{
		cfg:    cfg,
		stages: make([]stage[T, T], 0, len(children)),
		outHdr: make([][][]T, len(children)),
		req:    BlockRequirements{Input: Flexible(), Output: Flexible(), OutputChannels: len(children)},
	}

	for i, child := range children {
		st, err := newStage(child, cfg)
		if err != nil {
			return nil, fmt.Errorf("graph: parallel child %d: %w", i, err)
		}
		p.stages = append(p.stages, st)
		p.outHdr[i] = make([][]T, 1)

		if p.req.Input.Kind == SizeFlexible {
			p.req.Input = st.req.Input
		}
		if p.req.Output.Kind == SizeFlexible {
			p.req.Output = st.req.Output
		}
	}

	return p, nil
}

// MustParallel is like NewParallel but panics on error.
func MustParallel[T Sample](cfg Config, children ...Node[T, T]) *Parallel[T] {
	p, err := NewParallel(cfg, children...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of children.
func (p *Parallel[T]) Len() int {
	return len(p.stages)
}

// BlockSize reports one output channel per child and the first
// non-flexible child requirement on each side.
func (p *Parallel[T]) BlockSize() BlockRequirements {
	return p.req
}

// Process runs every child against in. It fails fast: the first non-Ready
// child status is returned verbatim with the output silenced.
func (p *Parallel[T]) Process(in, out [][]T) Status {
	if len(p.stages) == 0 {
		core.ZeroChannels(out)
		return Ready()
	}

	if len(out) != len(p.stages) {
		panic(shapeMismatch("parallel: %d children, output has %d channels", len(p.stages), len(out)))
	}

	frames := callFrames(in, out)
	outFrames := buffer.Frames(out)

	for i := range p.stages {
		st := &p.stages[i]

		pl, status := negotiate(st.req, frames)
		if !status.IsReady() {
			core.ZeroChannels(out)
			return status
		}
		if pl.outFrames() != outFrames {
			panic(shapeMismatch("parallel child %d produces %d frames, output has %d", i, pl.outFrames(), outFrames))
		}

		dst := p.outHdr[i]
		dst[0] = out[i]

		status = st.run(in, dst, pl)
		if !status.IsReady() {
			core.ZeroChannels(out)
			return status
		}
	}

	return Ready()
}
