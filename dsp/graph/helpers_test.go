package graph

import "github.com/cwbudde/algo-audiograph/dsp/buffer"

// scaleNode multiplies each input channel by gain. It broadcasts the input
// when out has more channels than in.
type scaleNode struct {
	gain  float64
	calls int
}

func (s *scaleNode) Process(in, out [][]float64) Status {
	s.calls++
	for c := range out {
		src := InputChannel(in, c)
		for i := range out[c] {
			out[c][i] = src[i] * s.gain
		}
	}
	return Ready()
}

func (s *scaleNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// constNode is a source writing value to every output sample.
type constNode struct {
	value float64
}

func (n *constNode) Process(_, out [][]float64) Status {
	for c := range out {
		for i := range out[c] {
			out[c][i] = n.value
		}
	}
	return Ready()
}

func (n *constNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// counterNode is a stateful source emitting 0, 1, 2, ... across calls.
type counterNode struct {
	next float64
}

func (n *counterNode) Process(_, out [][]float64) Status {
	frames := buffer.Frames(out)
	for c := range out {
		for i := range out[c] {
			out[c][i] = n.next + float64(i)
		}
	}
	n.next += float64(frames)
	return Ready()
}

func (n *counterNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// blockNode requires fixed input and output sizes and records every call.
// Output frame i of a call is the sum of the input chunk plus i.
type blockNode struct {
	in, out int
	sizes   []int
}

func (n *blockNode) Process(in, out [][]float64) Status {
	frames := buffer.Frames(in)
	if frames != n.in {
		return NeedMoreInput(n.in - frames)
	}
	n.sizes = append(n.sizes, frames)

	for c := range out {
		src := InputChannel(in, c)
		sum := 0.0
		for _, v := range src {
			sum += v
		}
		for i := range out[c] {
			out[c][i] = sum + float64(i)
		}
	}
	return Ready()
}

func (n *blockNode) BlockSize() BlockRequirements {
	return BlockRequirements{Input: Fixed(n.in), Output: Fixed(n.out)}
}

// partialNode copies its input but stops after limit frames in total,
// reporting PartialOutput for the call that crosses the limit.
type partialNode struct {
	limit   int
	written int
}

func (n *partialNode) Process(in, out [][]float64) Status {
	frames := buffer.Frames(out)
	k := min(max(n.limit-n.written, 0), frames)
	for c := range out {
		src := InputChannel(in, c)
		copy(out[c][:k], src[:k])
		clear(out[c][k:])
	}
	n.written += k
	if k < frames {
		return PartialOutput(k)
	}
	return Ready()
}

func (n *partialNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// starvedNode always asks for more input.
type starvedNode struct {
	need int
}

func (n *starvedNode) Process(_, out [][]float64) Status {
	for c := range out {
		for i := range out[c] {
			out[c][i] = 99
		}
	}
	return NeedMoreInput(n.need)
}

func (n *starvedNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// monoSumNode folds every input channel into one output channel.
type monoSumNode struct{}

func (monoSumNode) Process(in, out [][]float64) Status {
	for i := range out[0] {
		sum := 0.0
		for c := range in {
			sum += in[c][i]
		}
		out[0][i] = sum
	}
	return Ready()
}

func (monoSumNode) BlockSize() BlockRequirements {
	return BlockRequirements{Input: Flexible(), Output: Flexible(), OutputChannels: 1}
}

// liftNode moves real samples into the complex domain.
type liftNode struct{}

func (liftNode) Process(in [][]float64, out [][]complex128) Status {
	for c := range out {
		src := InputChannel(in, c)
		for i := range out[c] {
			out[c][i] = complex(src[i], -src[i])
		}
	}
	return Ready()
}

func (liftNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

// realPartNode returns to the real domain.
type realPartNode struct{}

func (realPartNode) Process(in [][]complex128, out [][]float64) Status {
	for c := range out {
		src := InputChannel(in, c)
		for i := range out[c] {
			out[c][i] = real(src[i])
		}
	}
	return Ready()
}

func (realPartNode) BlockSize() BlockRequirements { return FlexibleRequirements() }

func alloc(channels, frames int) [][]float64 {
	return buffer.New[float64](channels, frames).View(channels, frames)
}

func testConfig() Config {
	return Config{MaxChannels: 4, MaxFrames: 64}
}
