package spectral

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrLength is returned when buffers do not match the transform size.
var ErrLength = errors.New("spectral: buffer length mismatch")

// Transformer computes forward and inverse DFTs of one fixed size into
// caller-owned buffers without allocating.
type Transformer struct {
	n    int
	plan *algofft.Plan[complex128]

	// invScale corrects the backend's inverse to a 1/n-normalised result.
	invScale float64

	// twiddle[m] = e^{-2πi·m/n}, used by the direct kernel.
	twiddle []complex128
	scratch []complex128
	work    []complex128
}

// NewTransformer prepares transforms of length n.
func NewTransformer(n int) (*Transformer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectral: transform size must be > 0: %d", n)
	}

	t := &Transformer{
		n:    n,
		work: make([]complex128, n),
	}

	if plan, err := algofft.NewPlan64(n); err == nil {
		t.plan = plan
		if err := t.calibrate(); err != nil {
			t.plan = nil
		}
	}

	if t.plan == nil {
		t.scratch = make([]complex128, n)
		t.twiddle = make([]complex128, n)
		for m := range t.twiddle {
			t.twiddle[m] = cmplx.Rect(1, -2*math.Pi*float64(m)/float64(n))
		}
	}

	return t, nil
}

// calibrate measures the plan's inverse scaling with a flat spectrum.
func (t *Transformer) calibrate() error {
	flat := make([]complex128, t.n)
	for i := range flat {
		flat[i] = 1
	}
	if err := t.plan.Inverse(t.work, flat); err != nil {
		return err
	}

	// A 1/n-normalised inverse of all-ones bins is a unit impulse.
	switch peak := real(t.work[0]); {
	case math.Abs(peak-1) < 1e-9:
		t.invScale = 1
	case math.Abs(peak-float64(t.n)) < 1e-9*float64(t.n):
		t.invScale = 1 / float64(t.n)
	default:
		return fmt.Errorf("spectral: unexpected inverse scaling %v", peak)
	}
	return nil
}

// Len returns the transform size.
func (t *Transformer) Len() int { return t.n }

// Accelerated reports whether transforms run through the FFT backend.
func (t *Transformer) Accelerated() bool { return t.plan != nil }

// Forward writes the spectrum of src into dst. dst and src may alias.
func (t *Transformer) Forward(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: forward %d <- %d, size %d", ErrLength, len(dst), len(src), t.n)
	}
	if t.plan != nil {
		return t.plan.Forward(dst, src)
	}
	t.direct(dst, src, false)
	return nil
}

// ForwardReal writes the spectrum of the real block src into dst.
func (t *Transformer) ForwardReal(dst []complex128, src []float64) error {
	if len(src) != t.n {
		return fmt.Errorf("%w: forward real %d samples, size %d", ErrLength, len(src), t.n)
	}
	for i, v := range src {
		t.work[i] = complex(v, 0)
	}
	return t.Forward(dst, t.work)
}

// Inverse writes the 1/n-normalised inverse transform of src into dst.
func (t *Transformer) Inverse(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: inverse %d <- %d, size %d", ErrLength, len(dst), len(src), t.n)
	}
	if t.plan == nil {
		t.direct(dst, src, true)
		return nil
	}

	if err := t.plan.Inverse(dst, src); err != nil {
		return err
	}
	if t.invScale != 1 {
		s := complex(t.invScale, 0)
		for i := range dst {
			dst[i] *= s
		}
	}
	return nil
}

// InverseReal writes the real part of the inverse transform of src into dst.
func (t *Transformer) InverseReal(dst []float64, src []complex128) error {
	if len(dst) != t.n {
		return fmt.Errorf("%w: inverse real %d samples, size %d", ErrLength, len(dst), t.n)
	}
	if err := t.Inverse(t.work, src); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = real(t.work[i])
	}
	return nil
}

// direct evaluates the transform sum term by term from a copy of src, so
// dst may alias src.
func (t *Transformer) direct(dst, src []complex128, inverse bool) {
	copy(t.scratch, src)

	n := t.n
	norm := complex(1/float64(n), 0)
	for k := range n {
		var sum complex128
		for j, x := range t.scratch {
			w := t.twiddle[(j*k)%n]
			if inverse {
				w = cmplx.Conj(w)
			}
			sum += x * w
		}
		if inverse {
			sum *= norm
		}
		dst[k] = sum
	}
}
