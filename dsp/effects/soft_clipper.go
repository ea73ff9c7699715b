package effects

import "github.com/cwbudde/algo-audiograph/dsp/graph"

// SoftClip saturates x with the rational tanh approximation
// x(27+x²)/(27+9x²), reaching exactly ±1 at |x| = 3 and clamping beyond.
func SoftClip(x float64) float64 {
	if x > 3 {
		return 1
	}
	if x < -3 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// SoftClipper applies SoftClip to every sample. It is stateless.
type SoftClipper struct{}

// NewSoftClipper returns a soft clipper.
func NewSoftClipper() *SoftClipper {
	return &SoftClipper{}
}

// Process writes SoftClip(x) for every input sample.
func (s *SoftClipper) Process(in, out [][]float64) graph.Status {
	for c := range out {
		src := graph.InputChannel(in, c)
		dst := out[c]
		if src == nil {
			clear(dst)
			continue
		}
		for i := range dst {
			dst[i] = SoftClip(src[i])
		}
	}
	return graph.Ready()
}

// BlockSize reports a shape-preserving transform accepting any length.
func (s *SoftClipper) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}
