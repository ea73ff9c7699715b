package osc

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

const twoPi = 2 * math.Pi

// ErrInvalidFrequency is returned for frequencies outside [0, sampleRate/2].
var ErrInvalidFrequency = errors.New("invalid oscillator frequency")

func validate(kind string, sampleRate, freqHz float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("osc: %s: %w", kind, err)
	}
	if !core.IsFinite(freqHz) || freqHz < 0 || freqHz > sampleRate/2 {
		return fmt.Errorf("osc: %s: %w: %f Hz at %f Hz sample rate",
			kind, ErrInvalidFrequency, freqHz, sampleRate)
	}
	return nil
}

// fill writes each frame's sample to every output channel. next produces
// one sample per call and advances the oscillator.
func fill(out [][]float64, next func() float64) {
	if len(out) == 0 {
		return
	}
	first := out[0]
	for i := range first {
		first[i] = next()
	}
	for _, ch := range out[1:] {
		copy(ch, first)
	}
}
