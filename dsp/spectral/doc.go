// Package spectral converts between time-domain blocks and their discrete
// Fourier spectra.
//
// DFT and IDFT are allocating one-shot helpers. Transformer is the reusable
// form for hot paths: it uses an algo-fft plan where the backend supports
// the size and a direct O(n²) kernel otherwise.
//
// Analyzer, BinGain and Synthesizer wrap a Transformer as graph nodes so a
// real signal can be taken into the frequency domain, reweighted and
// brought back inside one graph.
//
// The forward transform uses the e^{-2πi·jk/n} kernel; the inverse scales
// by 1/n.
package spectral
