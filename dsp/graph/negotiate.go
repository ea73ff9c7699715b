package graph

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
)

// plan describes how a combinator invokes one child for one call:
// calls consecutive invocations over inStep input frames each, every
// invocation producing outStep output frames.
type plan struct {
	calls   int
	inStep  int
	outStep int
}

func (p plan) outFrames() int {
	return p.calls * p.outStep
}

// negotiate derives the invocation plan for a child with requirements req
// fed frames input frames. A non-Ready status means the input is too short
// or misaligned for the child; nothing has been invoked in that case.
func negotiate(req BlockRequirements, frames int) (plan, Status) {
	if status := admit(req.Input, frames); !status.IsReady() {
		return plan{}, status
	}

	p := plan{calls: 1, inStep: frames}
	if req.Input.Kind == SizeFixed {
		p = plan{calls: frames / req.Input.N, inStep: req.Input.N}
	}

	switch req.Output.Kind {
	case SizeFixed:
		p.outStep = req.Output.N
	case SizeMultiple:
		if p.inStep%req.Output.N != 0 {
			panic(shapeMismatch("output of %d frames is not a multiple of %d", p.inStep, req.Output.N))
		}
		p.outStep = p.inStep
	default:
		p.outStep = p.inStep
	}

	return p, Ready()
}

// admit reports whether frames input frames can be split into calls that
// satisfy in: Fixed(n) takes any positive multiple of n in n-frame chunks,
// Multiple(n) takes any positive multiple in one call.
func admit(in BlockSize, frames int) Status {
	switch in.Kind {
	case SizeFixed, SizeMultiple:
		n := in.N
		if frames < n {
			return NeedMoreInput(n - frames)
		}
		if r := frames % n; r != 0 {
			return NeedMoreInput(n - r)
		}
	}
	return Ready()
}

// stageCapacity returns the scratch shape a child's output needs under cfg.
func stageCapacity(req BlockRequirements, cfg Config) (channels, frames int) {
	channels = cfg.MaxChannels
	if req.OutputChannels > 0 {
		channels = req.OutputChannels
	}

	frames = cfg.MaxFrames
	if req.Output.Kind == SizeFixed {
		switch req.Input.Kind {
		case SizeFixed:
			frames = max(cfg.MaxFrames/req.Input.N, 1) * req.Output.N
		default:
			frames = req.Output.N
		}
	}

	return channels, frames
}

// stageChannels picks the channel count a child writes when its output is
// staged internally.
func stageChannels(req BlockRequirements, inChannels, fallback int) int {
	switch {
	case req.OutputChannels > 0:
		return req.OutputChannels
	case inChannels > 0:
		return inChannels
	default:
		return fallback
	}
}

// callFrames is the frame length of a call: the input's when it carries
// channels, the output's for pure sources fed no input channels.
func callFrames[I, O Sample](in [][]I, out [][]O) int {
	if len(in) > 0 {
		return buffer.Frames(in)
	}
	return buffer.Frames(out)
}

// stage is one owned child plus its cached requirements and the header
// scratch used to slice chunked invocations without allocating.
type stage[I, O Sample] struct {
	node   Node[I, O]
	req    BlockRequirements
	inHdr  [][]I
	outHdr [][]O
}

func newStage[I, O Sample](node Node[I, O], cfg Config) (stage[I, O], error) {
	if node == nil {
		return stage[I, O]{}, ErrNilNode
	}

	return stage[I, O]{
		node:   node,
		req:    node.BlockSize(),
		inHdr:  make([][]I, 0, cfg.MaxChannels),
		outHdr: make([][]O, 0, cfg.MaxChannels),
	}, nil
}

// run invokes the child following p. Statuses from chunk j > 0 are
// reported relative to the whole call: the first j chunks are complete.
func (s *stage[I, O]) run(in [][]I, out [][]O, p plan) Status {
	if p.calls == 1 {
		return s.node.Process(in, out)
	}

	if len(in) > cap(s.inHdr) || len(out) > cap(s.outHdr) {
		panic(fmt.Errorf("%w: %d input / %d output channels, budget %d",
			ErrCapacityExceeded, len(in), len(out), cap(s.inHdr)))
	}

	for j := range p.calls {
		ci := buffer.SliceFrames(s.inHdr, in, j*p.inStep, (j+1)*p.inStep)
		co := buffer.SliceFrames(s.outHdr, out, j*p.outStep, (j+1)*p.outStep)

		st := s.node.Process(ci, co)
		switch st.Kind {
		case StatusReady:
			continue
		case StatusPartialOutput:
			return PartialOutput(j*p.outStep + st.N)
		default:
			if j > 0 {
				return PartialOutput(j * p.outStep)
			}
			return st
		}
	}

	return Ready()
}

// chainRequirements derives what a chain of stages declares as a whole.
// Frame-preserving stages are transparent: the chain's input requirement
// is the first non-flexible one reached before any stage changes the frame
// count, and its output and channel count come from the last stage that
// fixes them.
func chainRequirements(reqs ...BlockRequirements) BlockRequirements {
	out := FlexibleRequirements()

	for _, r := range reqs {
		if r.Input.Kind != SizeFlexible {
			out.Input = r.Input
			break
		}
		if r.Output.Kind != SizeFlexible {
			break
		}
	}

	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Output.Kind != SizeFlexible {
			out.Output = reqs[i].Output
			break
		}
		if reqs[i].Input.Kind != SizeFlexible {
			break
		}
	}

	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].OutputChannels > 0 {
			out.OutputChannels = reqs[i].OutputChannels
			break
		}
	}

	return out
}
