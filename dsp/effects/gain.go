package effects

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	ramp bool
}

// WithGainRamp enables a linear ramp from the previous to the new gain over
// the first call after SetGain.
func WithGainRamp(enabled bool) GainOption {
	return func(cfg *gainConfig) error {
		cfg.ramp = enabled
		return nil
	}
}

// Gain multiplies every sample of every channel by a constant factor.
type Gain struct {
	gain     float64
	prevGain float64
	ramp     bool
	pending  bool
}

// NewGain creates a gain stage. Any finite factor is accepted, including
// zero and negative values.
func NewGain(gain float64, opts ...GainOption) (*Gain, error) {
	if !core.IsFinite(gain) {
		return nil, fmt.Errorf("gain must be finite: %f", gain)
	}

	var cfg gainConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	g := &Gain{
		gain:     gain,
		prevGain: gain,
		ramp:     cfg.ramp,
	}
	return g, nil
}

// Gain returns the current factor.
func (g *Gain) Gain() float64 {
	return g.gain
}

// SetGain changes the factor. It must not be called during Process.
func (g *Gain) SetGain(gain float64) error {
	if !core.IsFinite(gain) {
		return fmt.Errorf("gain must be finite: %f", gain)
	}
	if gain == g.gain {
		return nil
	}

	g.prevGain = g.gain
	g.gain = gain
	g.pending = g.ramp
	return nil
}

// Process writes k*x for every input sample. Output channels beyond the
// input reuse input channels cyclically; no input at all yields silence.
func (g *Gain) Process(in, out [][]float64) graph.Status {
	if len(in) == 0 {
		core.ZeroChannels(out)
		return graph.Ready()
	}

	frames := 0
	if len(out) > 0 {
		frames = len(out[0])
	}

	if g.pending {
		g.processRamp(in, out, frames)
		g.pending = false
		return graph.Ready()
	}

	for c := range out {
		vecmath.ScaleBlock(out[c], graph.InputChannel(in, c)[:frames], g.gain)
	}
	return graph.Ready()
}

// BlockSize reports a shape-preserving transform accepting any length.
func (g *Gain) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}

func (g *Gain) processRamp(in, out [][]float64, frames int) {
	if frames == 0 {
		return
	}

	delta := (g.gain - g.prevGain) / float64(frames)
	for c := range out {
		src := graph.InputChannel(in, c)
		dst := out[c]
		for i := range dst {
			dst[i] = src[i] * (g.prevGain + delta*float64(i+1))
		}
	}
}
