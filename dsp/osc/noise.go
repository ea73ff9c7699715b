package osc

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

// Noise is a seeded white-noise source uniform in [-amplitude, amplitude).
// Two sources with the same seed produce the same sequence.
type Noise struct {
	amplitude float64
	seed      int64
	rng       *rand.Rand
}

// NewNoise returns a noise source. amplitude must be finite and >= 0.
func NewNoise(amplitude float64, seed int64) (*Noise, error) {
	if !core.IsFinite(amplitude) || amplitude < 0 {
		return nil, fmt.Errorf("osc: noise amplitude must be >= 0: %f", amplitude)
	}
	return &Noise{
		amplitude: amplitude,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Amplitude returns the peak amplitude.
func (n *Noise) Amplitude() float64 { return n.amplitude }

// Reset restarts the sequence from the seed.
func (n *Noise) Reset() { n.rng.Seed(n.seed) }

// Tick returns the next sample.
func (n *Noise) Tick() float64 {
	return (n.rng.Float64()*2 - 1) * n.amplitude
}

// Process writes one sample per frame to every output channel.
func (n *Noise) Process(_, out [][]float64) graph.Status {
	fill(out, n.Tick)
	return graph.Ready()
}

// BlockSize reports a shape-preserving source accepting any length.
func (n *Noise) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}
