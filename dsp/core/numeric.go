package core

import (
	"cmp"
	"math"
)

// Clamp limits v to [lo, hi]. Swapped bounds are reordered.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// NearlyEqual reports whether a and b agree to within tol, absolute for
// magnitudes below 1 and relative above. A non-positive tol means 1e-12.
func NearlyEqual(a, b, tol float64) bool {
	if tol <= 0 {
		tol = 1e-12
	}
	scale := max(1, math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*scale
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DBToLinear converts an amplitude level in dB to a linear factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB: -Inf for silence, NaN for
// negative input.
func LinearToDB(amp float64) float64 {
	switch {
	case amp < 0:
		return math.NaN()
	case amp == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(amp)
}
