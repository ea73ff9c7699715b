package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
)

// partsPool holds split real/imaginary scratch for the vecmath kernels.
var partsPool = buffer.NewPool[float64]()

// Magnitude returns |X[k]| for each bin.
func Magnitude(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	out := make([]float64, len(bins))
	MagnitudeInto(out, bins)
	return out
}

// MagnitudeInto writes |X[k]| for each bin into dst, which must have the
// same length as bins.
func MagnitudeInto(dst []float64, bins []complex128) {
	re, im, scratch := split(dst, bins)
	vecmath.Magnitude(dst, re, im)
	partsPool.Put(scratch)
}

// Power returns |X[k]|² for each bin.
func Power(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	out := make([]float64, len(bins))
	PowerInto(out, bins)
	return out
}

// PowerInto writes |X[k]|² for each bin into dst, which must have the same
// length as bins.
func PowerInto(dst []float64, bins []complex128) {
	re, im, scratch := split(dst, bins)
	vecmath.Power(dst, re, im)
	partsPool.Put(scratch)
}

func split(dst []float64, bins []complex128) (re, im []float64, scratch *buffer.Block[float64]) {
	if len(dst) != len(bins) {
		panic(fmt.Errorf("%w: %d outputs for %d bins", ErrLength, len(dst), len(bins)))
	}

	scratch = partsPool.Get(2, len(bins))
	parts := scratch.View(2, len(bins))
	re, im = parts[0], parts[1]
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, scratch
}
