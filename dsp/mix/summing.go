// Package mix folds multichannel signals together.
package mix

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

// Summing adds all input channels sample by sample. The sum is written to
// output channel 0 and repeated on any further output channels.
type Summing struct{}

// NewSumming returns a summing mixer.
func NewSumming() *Summing {
	return &Summing{}
}

// Process writes the per-frame sum of every input channel. No input
// channels produce silence.
func (s *Summing) Process(in, out [][]float64) graph.Status {
	if len(out) == 0 {
		return graph.Ready()
	}

	dst := out[0]
	if len(in) == 0 {
		clear(dst)
	} else {
		copy(dst, in[0][:len(dst)])
		for _, ch := range in[1:] {
			vecmath.AddBlockInPlace(dst, ch[:len(dst)])
		}
	}

	for _, ch := range out[1:] {
		copy(ch, dst)
	}
	return graph.Ready()
}

// BlockSize reports one output channel and any frame length.
func (s *Summing) BlockSize() graph.BlockRequirements {
	return graph.BlockRequirements{
		Input:          graph.Flexible(),
		Output:         graph.Flexible(),
		OutputChannels: 1,
	}
}
