package osc

import "github.com/cwbudde/algo-audiograph/dsp/graph"

// FastSine approximates a sine with alternating parabolic half-waves.
//
// The phase runs over [-1, 1) once per half period. The first half is
// phase²-1, the second 1-phase², so the output starts at 0, dips to -1
// and returns.
type FastSine struct {
	sampleRate float64
	freqHz     float64
	phase      float64
	increment  float64
	negative   bool
}

// NewFastSine creates a parabolic sine at freqHz for the given sample rate.
// freqHz must lie in [0, sampleRate/2].
func NewFastSine(sampleRate, freqHz float64) (*FastSine, error) {
	if err := validate("fast sine", sampleRate, freqHz); err != nil {
		return nil, err
	}

	return &FastSine{
		sampleRate: sampleRate,
		freqHz:     freqHz,
		phase:      -1,
		increment:  4 * freqHz / sampleRate,
	}, nil
}

// Frequency returns the oscillator frequency in Hz.
func (f *FastSine) Frequency() float64 { return f.freqHz }

// SampleRate returns the sample rate the oscillator was built for.
func (f *FastSine) SampleRate() float64 { return f.sampleRate }

// Reset restores the initial phase and half-wave.
func (f *FastSine) Reset() {
	f.phase = -1
	f.negative = false
}

// Tick returns the current sample and advances the phase.
func (f *FastSine) Tick() float64 {
	sq := f.phase * f.phase
	v := sq - 1
	if f.negative {
		v = 1 - sq
	}

	f.phase += f.increment
	if f.phase >= 1 {
		f.phase -= 2
		f.negative = !f.negative
	}
	return v
}

// Process writes one sample per frame to every output channel.
func (f *FastSine) Process(_, out [][]float64) graph.Status {
	fill(out, f.Tick)
	return graph.Ready()
}

// BlockSize reports a shape-preserving source accepting any length.
func (f *FastSine) BlockSize() graph.BlockRequirements {
	return graph.FlexibleRequirements()
}
