// Package osc provides sine sources for audio graphs.
//
// Sine evaluates math.Sin per sample. FastSine uses a piecewise parabola,
// which is cheap enough for low-frequency modulators but audibly impure at
// audio rates.
//
// Both ignore their input and write the same sample to every output
// channel. Frequency and sample rate are fixed at construction.
package osc
