package graph

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
)

// Sample is the element domain of a node's input or output.
type Sample = buffer.Sample

// Node is the processing contract shared by every graph element.
//
// Process reads in and fully writes out. Input is read-only; out is owned
// by the caller for the duration of the call. On a Ready status every sample
// of every output channel has been written.
//
// BlockSize must return the same value for the node's whole lifetime.
type Node[I, O Sample] interface {
	Process(in [][]I, out [][]O) Status
	BlockSize() BlockRequirements
}

// The four capability variants, by input and output domain.
type (
	RealNode      = Node[float64, float64]
	AnalysisNode  = Node[float64, complex128]
	SpectralNode  = Node[complex128, complex128]
	SynthesisNode = Node[complex128, float64]
)

// SizeKind distinguishes the three block-size shapes.
type SizeKind uint8

const (
	SizeFlexible SizeKind = iota
	SizeFixed
	SizeMultiple
)

// BlockSize is a frame-length requirement: any length, exactly N, or a
// multiple of N.
type BlockSize struct {
	Kind SizeKind
	N    int
}

// Flexible accepts any frame length.
func Flexible() BlockSize {
	return BlockSize{Kind: SizeFlexible}
}

// Fixed requires exactly n frames. n below 1 is treated as 1.
func Fixed(n int) BlockSize {
	return BlockSize{Kind: SizeFixed, N: max(n, 1)}
}

// Multiple requires a frame length divisible by n. n below 1 is treated as 1.
func Multiple(n int) BlockSize {
	return BlockSize{Kind: SizeMultiple, N: max(n, 1)}
}

// Accepts reports whether frames satisfies the requirement.
func (b BlockSize) Accepts(frames int) bool {
	switch b.Kind {
	case SizeFixed:
		return frames == b.N
	case SizeMultiple:
		return frames > 0 && frames%b.N == 0
	default:
		return frames >= 0
	}
}

func (b BlockSize) String() string {
	switch b.Kind {
	case SizeFixed:
		return fmt.Sprintf("Fixed(%d)", b.N)
	case SizeMultiple:
		return fmt.Sprintf("Multiple(%d)", b.N)
	default:
		return "Flexible"
	}
}

// BlockRequirements is a node's static shape declaration.
//
// OutputChannels is 0 for shape-preserving nodes, which write as many
// channels as they are handed, and n > 0 for nodes that always produce
// exactly n meaningful channels.
type BlockRequirements struct {
	Input          BlockSize
	Output         BlockSize
	OutputChannels int
}

// FlexibleRequirements is the declaration of a shape-preserving node that
// accepts and produces any frame length.
func FlexibleRequirements() BlockRequirements {
	return BlockRequirements{Input: Flexible(), Output: Flexible()}
}

func (r BlockRequirements) String() string {
	if r.OutputChannels > 0 {
		return fmt.Sprintf("in=%s out=%s channels=%d", r.Input, r.Output, r.OutputChannels)
	}
	return fmt.Sprintf("in=%s out=%s", r.Input, r.Output)
}

// InputChannel returns the input channel feeding output channel c of a
// shape-preserving node. When the input has fewer channels than the output,
// input channels are reused cyclically; nil means there is no input at all.
func InputChannel[T Sample](in [][]T, c int) []T {
	if len(in) == 0 {
		return nil
	}
	return in[c%len(in)]
}
