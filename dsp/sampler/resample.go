package sampler

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Anti-aliasing filter of the clip converter: a Kaiser-windowed sinc
// prototype split into up phases of tapsPerPhase taps each.
const (
	tapsPerPhase   = 32
	cutoffScale    = 0.92
	kaiserBeta     = 7.5
	maxDenominator = 1024
)

// Resample returns the clip converted to rate. A clip already at rate, to
// within a relative 1e-9, is returned unchanged. The conversion ratio is
// approximated by a fraction with a denominator of at most 1024, and the
// filter delay is compensated so the output stays aligned with the input.
func (c *Clip) Resample(rate float64) (*Clip, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := core.ValidateSampleRate(rate); err != nil {
		return nil, fmt.Errorf("sampler: resample: %w", err)
	}
	if err := core.ValidateSampleRate(c.SampleRate); err != nil {
		return nil, fmt.Errorf("sampler: resample source: %w", err)
	}
	if core.NearlyEqual(c.SampleRate, rate, 1e-9) {
		return c, nil
	}

	up, down := rationalize(rate/c.SampleRate, maxDenominator)
	taps := designPrototype(up, down)
	delay := (len(taps) - 1) / 2

	frames := c.Frames()
	outFrames := (frames*up + down - 1) / down

	out := &Clip{SampleRate: rate, Channels: make([][]float64, len(c.Channels))}
	for ch, src := range c.Channels {
		dst := make([]float64, outFrames)
		for m := range dst {
			// Position of output m on the zero-stuffed input grid.
			t := m*down + delay
			first := max(0, ceilDiv(t-len(taps)+1, up))
			last := min(frames-1, t/up)

			var y float64
			for i := first; i <= last; i++ {
				y += taps[t-i*up] * src[i]
			}
			dst[m] = y
		}
		out.Channels[ch] = dst
	}
	return out, nil
}

// designPrototype returns the low-pass prototype for an up/down converter,
// normalised to a DC gain of up. The length is odd so the delay is a whole
// number of samples.
func designPrototype(up, down int) []float64 {
	n := tapsPerPhase*up + 1
	fc := 0.5 / float64(max(up, down)) * cutoffScale
	center := 0.5 * float64(n-1)

	taps := make([]float64, n)
	var sum float64
	for i := range taps {
		x := 2 * fc * (float64(i) - center)
		taps[i] = 2 * fc * sinc(x) * kaiser(i, n, kaiserBeta)
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}
	return taps
}

// rationalize approximates v by num/den with den <= maxDen using continued
// fractions, reduced to lowest terms.
func rationalize(v float64, maxDen int) (num, den int) {
	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0

	for x := v; ; {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
		a := math.Floor(x)
		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
	}

	num, den = max(int(math.Round(p1)), 1), max(int(math.Round(q1)), 1)
	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return max(a, 1)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -(-a / b)
	}
	return (a + b - 1) / b
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 is the modified Bessel function of the first kind, order zero,
// by its power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
