package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

func blockRequirements(n int) graph.BlockRequirements {
	return graph.BlockRequirements{Input: graph.Fixed(n), Output: graph.Fixed(n)}
}

// checkFrames maps a call shorter than the transform to NeedMoreInput.
// Longer calls are a caller bug.
func checkFrames(frames, n int) graph.Status {
	switch {
	case frames < n:
		return graph.NeedMoreInput(n - frames)
	case frames > n:
		panic(fmt.Errorf("%w: %d frames for a %d-point transform", graph.ErrShapeMismatch, frames, n))
	default:
		return graph.Ready()
	}
}

func must(err error) {
	if err != nil {
		panic(fmt.Errorf("%w: %w", graph.ErrShapeMismatch, err))
	}
}

// Analyzer is an analysis node turning each n-frame real block into its
// n-bin spectrum, channel by channel.
type Analyzer struct {
	t *Transformer
}

// NewAnalyzer creates an n-point analyzer.
func NewAnalyzer(n int) (*Analyzer, error) {
	t, err := NewTransformer(n)
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Size returns the transform length.
func (a *Analyzer) Size() int { return a.t.Len() }

// Process transforms one block per channel.
func (a *Analyzer) Process(in [][]float64, out [][]complex128) graph.Status {
	if len(in) > 0 {
		if st := checkFrames(len(in[0]), a.t.Len()); !st.IsReady() {
			core.ZeroChannels(out)
			return st
		}
	}
	for c := range out {
		src := graph.InputChannel(in, c)
		if src == nil {
			clear(out[c])
			continue
		}
		must(a.t.ForwardReal(out[c], src))
	}
	return graph.Ready()
}

// BlockSize reports Fixed(n) in and out.
func (a *Analyzer) BlockSize() graph.BlockRequirements {
	return blockRequirements(a.t.Len())
}

// BinGain is a spectral node multiplying bin k of every channel by
// weights[k].
type BinGain struct {
	weights []float64
}

// NewBinGain creates a bin weighting node. The weights are copied; their
// count fixes the block size.
func NewBinGain(weights []float64) (*BinGain, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("spectral: bin gain needs at least one weight")
	}
	for k, w := range weights {
		if !core.IsFinite(w) {
			return nil, fmt.Errorf("spectral: bin gain weight %d must be finite: %f", k, w)
		}
	}
	return &BinGain{weights: append([]float64(nil), weights...)}, nil
}

// Weights returns a copy of the bin weights.
func (b *BinGain) Weights() []float64 {
	return append([]float64(nil), b.weights...)
}

// Process weights every bin.
func (b *BinGain) Process(in, out [][]complex128) graph.Status {
	if len(in) > 0 {
		if st := checkFrames(len(in[0]), len(b.weights)); !st.IsReady() {
			core.ZeroChannels(out)
			return st
		}
	}
	for c := range out {
		src := graph.InputChannel(in, c)
		if src == nil {
			clear(out[c])
			continue
		}
		dst := out[c]
		for k, w := range b.weights {
			dst[k] = src[k] * complex(w, 0)
		}
	}
	return graph.Ready()
}

// BlockSize reports Fixed(n) in and out.
func (b *BinGain) BlockSize() graph.BlockRequirements {
	return blockRequirements(len(b.weights))
}

// Synthesizer is a synthesis node turning n-bin spectra back into n-frame
// real blocks, keeping the real part.
type Synthesizer struct {
	t *Transformer
}

// NewSynthesizer creates an n-point synthesizer.
func NewSynthesizer(n int) (*Synthesizer, error) {
	t, err := NewTransformer(n)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{t: t}, nil
}

// Size returns the transform length.
func (s *Synthesizer) Size() int { return s.t.Len() }

// Process inverse-transforms one spectrum per channel.
func (s *Synthesizer) Process(in [][]complex128, out [][]float64) graph.Status {
	if len(in) > 0 {
		if st := checkFrames(len(in[0]), s.t.Len()); !st.IsReady() {
			core.ZeroChannels(out)
			return st
		}
	}
	for c := range out {
		src := graph.InputChannel(in, c)
		if src == nil {
			clear(out[c])
			continue
		}
		must(s.t.InverseReal(out[c], src))
	}
	return graph.Ready()
}

// BlockSize reports Fixed(n) in and out.
func (s *Synthesizer) BlockSize() graph.BlockRequirements {
	return blockRequirements(s.t.Len())
}

// LowpassWeights returns n bin weights passing bins at or below cutoffHz
// and muting the rest. Mirror bins above n/2 get the weight of their
// positive-frequency partner so real signals stay real.
func LowpassWeights(n int, sampleRate, cutoffHz float64) []float64 {
	w := make([]float64, n)
	for k := range w {
		bin := min(k, n-k)
		if float64(bin)*sampleRate/float64(n) <= cutoffHz {
			w[k] = 1
		}
	}
	return w
}

// NewBlockFilter builds a real-domain node filtering consecutive n-frame
// blocks by the given bin weights: analysis, weighting and synthesis in
// one graph node.
func NewBlockFilter(cfg graph.Config, weights []float64) (graph.RealNode, error) {
	n := len(weights)

	analyzer, err := NewAnalyzer(n)
	if err != nil {
		return nil, err
	}
	gain, err := NewBinGain(weights)
	if err != nil {
		return nil, err
	}
	synth, err := NewSynthesizer(n)
	if err != nil {
		return nil, err
	}

	tail, err := graph.NewCompose[complex128, complex128, float64](cfg, gain, synth)
	if err != nil {
		return nil, err
	}
	node, err := graph.NewCompose[float64, complex128, float64](cfg, analyzer, tail)
	if err != nil {
		return nil, err
	}
	return node, nil
}
