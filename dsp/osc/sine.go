package osc

import (
	"math"

	"github.com/cwbudde/algo-audiograph/dsp/graph"
)

// Sine is a phase-accumulating sine source.
type Sine struct {
	sampleRate float64
	freqHz     float64
	phase      float64
	increment  float64
}

// NewSine creates a sine at freqHz for the given sample rate.
// freqHz must lie in [0, sampleRate/2].
func NewSine(sampleRate, freqHz float64) (*Sine, error) {
	if err := validate("sine", sampleRate, freqHz); err != nil {
		return nil, err
	}

	return &Sine{
		sampleRate: sampleRate,
		freqHz:     freqHz,
		increment:  2 * math.Pi * freqHz / sampleRate,
	}, nil
}

// Frequency returns the oscillator frequency in Hz.
func (s *Sine) Frequency() float64 { return s.freqHz }

// SampleRate returns the sample rate the oscillator was built for.
func (s *Sine) SampleRate() float64 { return s.sampleRate }

// Reset restores the initial phase.
func (s *Sine) Reset() { s.phase = 0 }

// Tick returns the current sample and advances the phase.
func (s *Sine) Tick() float64 {
	v := math.Sin(s.phase)
	s.phase += s.increment
	if s.phase >= twoPi {
		s.phase -= twoPi
	}
	return v
}

// Process writes one sample per frame to every output channel.
func (s *Sine) Process(_, out [][]float64) graph.Status {
	fill(out, s.Tick)
	return graph.Ready()
}

// BlockSize reports a shape-preserving source accepting any length.
func (s *Sine) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}
