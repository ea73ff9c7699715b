package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

type sample interface{ float64 | complex128 }

// dist is |a-b| for either sample domain.
func dist[T sample](a, b T) float64 {
	switch d := any(a - b).(type) {
	case float64:
		return math.Abs(d)
	case complex128:
		return cmplx.Abs(d)
	}
	panic("testutil: unreachable sample type")
}

// MaxAbsDiff returns the largest |a[i]-b[i]| and the index where it
// occurs, or an error when the lengths differ.
func MaxAbsDiff[T sample](a, b []T) (float64, error) {
	d, _, err := maxDiff(a, b)
	return d, err
}

func maxDiff[T sample](a, b []T) (worst float64, at int, err error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	at = -1
	for i := range a {
		if d := dist(a[i], b[i]); d > worst || math.IsNaN(d) {
			worst, at = d, i
			if math.IsNaN(d) {
				break
			}
		}
	}
	return worst, at, nil
}

func requireNear[T sample](t testing.TB, label string, got, want []T, eps float64) {
	t.Helper()
	worst, at, err := maxDiff(got, want)
	if err != nil {
		t.Fatalf("%s: %v", label, err)
	}
	if worst > eps || math.IsNaN(worst) {
		t.Fatalf("%s[%d] = %v, want %v (|diff| %g > %g)", label, at, got[at], want[at], worst, eps)
	}
}

// RequireSliceNearlyEqual fails t unless got and want have equal length
// and every pair is within eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	requireNear(t, "sample", got, want, eps)
}

// RequireComplexNearlyEqual compares bins by the modulus of the difference.
func RequireComplexNearlyEqual(t testing.TB, got, want []complex128, eps float64) {
	t.Helper()
	requireNear(t, "bin", got, want, eps)
}

// RequireChannelsNearlyEqual compares multichannel buffers channel by channel.
func RequireChannelsNearlyEqual(t testing.TB, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("channel count = %d, want %d", len(got), len(want))
	}
	for c := range got {
		requireNear(t, fmt.Sprintf("channel %d sample", c), got[c], want[c], eps)
	}
}

// RequireFinite fails t on the first NaN or infinity.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample[%d] = %v, want finite", i, v)
		}
	}
}

// RequireBounded fails t on the first sample outside [-limit, limit].
func RequireBounded(t testing.TB, data []float64, limit float64) {
	t.Helper()
	for i, v := range data {
		if !(math.Abs(v) <= limit) {
			t.Fatalf("sample[%d] = %v, want |x| <= %v", i, v, limit)
		}
	}
}
