package graph

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Series chains children so each one's output becomes the next one's input.
//
// Intermediate outputs are staged in blocks allocated at construction from
// each child's declared requirements and the Config budget. The last child
// writes straight into the caller's output.
type Series[T Sample] struct {
	cfg     Config
	stages  []stage[T, T]
	scratch []*buffer.Block[T]
	req     BlockRequirements
}

// NewSeries builds a Series owning children, in order.
// With no children the Series is an identity pass-through.
func NewSeries[T Sample](cfg Config, children ...Node[T, T]) (*Series[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph: series: %w", err)
	}

	s := &Series[T]{
		cfg:    cfg,
		stages: make([]stage[T, T], 0, len(children)),
		req:    FlexibleRequirements(),
	}

	for i, child := range children {
		st, err := newStage(child, cfg)
		if err != nil {
			return nil, fmt.Errorf("graph: series child %d: %w", i, err)
		}
		s.stages = append(s.stages, st)

		if i < len(children)-1 {
			channels, frames := stageCapacity(st.req, cfg)
			s.scratch = append(s.scratch, buffer.New[T](channels, frames))
		}
	}

	reqs := make([]BlockRequirements, len(s.stages))
	for i := range s.stages {
		reqs[i] = s.stages[i].req
	}
	s.req = chainRequirements(reqs...)

	return s, nil
}

// MustSeries is like NewSeries but panics on error.
func MustSeries[T Sample](cfg Config, children ...Node[T, T]) *Series[T] {
	s, err := NewSeries(cfg, children...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of children.
func (s *Series[T]) Len() int {
	return len(s.stages)
}

// BlockSize reports the requirements of the chain as a whole.
func (s *Series[T]) BlockSize() BlockRequirements {
	return s.req
}

// Process runs the chain. Input the chain as a whole cannot accept is
// answered with NeedMoreInput before any child runs. A non-Ready status
// from any child stops the chain and is returned verbatim. The output is always left fully defined: a
// PartialOutput from the last child keeps its prefix and silences the rest,
// any other failure silences everything.
func (s *Series[T]) Process(in, out [][]T) Status {
	if len(s.stages) == 0 {
		return s.passThrough(in, out)
	}

	frames := callFrames(in, out)

	// Reject short input before any child runs, so a retry with more
	// input finds every child where it was.
	if status := admit(s.req.Input, frames); !status.IsReady() {
		core.ZeroChannels(out)
		return status
	}

	cur := in
	last := len(s.stages) - 1

	for i := range s.stages {
		st := &s.stages[i]

		p, status := negotiate(st.req, frames)
		if !status.IsReady() {
			core.ZeroChannels(out)
			return status
		}

		var dst [][]T
		if i == last {
			s.checkFinal(st.req, p, out)
			dst = out
		} else {
			dst = s.scratch[i].View(stageChannels(st.req, len(cur), len(out)), p.outFrames())
		}

		status = st.run(cur, dst, p)
		if !status.IsReady() {
			if i == last && status.Kind == StatusPartialOutput {
				core.ZeroFrom(out, status.N)
			} else {
				core.ZeroChannels(out)
			}
			return status
		}

		cur = dst
		frames = p.outFrames()
	}

	return Ready()
}

func (s *Series[T]) passThrough(in, out [][]T) Status {
	if len(in) != len(out) || buffer.Frames(in) != buffer.Frames(out) {
		panic(shapeMismatch("identity series: input %dx%d, output %dx%d",
			len(in), buffer.Frames(in), len(out), buffer.Frames(out)))
	}
	buffer.CopyFrames(out, in, buffer.Frames(out))
	return Ready()
}

func (s *Series[T]) checkFinal(req BlockRequirements, p plan, out [][]T) {
	if len(out) == 0 {
		return
	}
	if req.OutputChannels > 0 && req.OutputChannels != len(out) {
		panic(shapeMismatch("series: last child produces %d channels, output has %d",
			req.OutputChannels, len(out)))
	}
	if p.outFrames() != buffer.Frames(out) {
		panic(shapeMismatch("series: last child produces %d frames, output has %d",
			p.outFrames(), buffer.Frames(out)))
	}
}
