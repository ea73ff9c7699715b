package spectral

// DFT returns the discrete Fourier transform of x:
//
//	X[k] = Σ x[j]·e^{-2πi·jk/n}
//
// An empty input returns nil.
func DFT(x []float64) []complex128 {
	if len(x) == 0 {
		return nil
	}

	t, err := NewTransformer(len(x))
	if err != nil {
		return nil
	}

	out := make([]complex128, len(x))
	if err := t.ForwardReal(out, x); err != nil {
		return nil
	}
	return out
}

// IDFT returns the real part of the 1/n-normalised inverse transform of X.
// IDFT(DFT(x)) reproduces x up to rounding. An empty input returns nil.
func IDFT(X []complex128) []float64 {
	if len(X) == 0 {
		return nil
	}

	t, err := NewTransformer(len(X))
	if err != nil {
		return nil
	}

	out := make([]float64, len(X))
	if err := t.InverseReal(out, X); err != nil {
		return nil
	}
	return out
}
