// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

func generate(length int, at func(n int) float64) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = at(n)
	}
	return out
}

// Sine is amplitude*sin(2*pi*freqHz*n/sampleRate) for n in [0, length).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	return generate(length, func(n int) float64 { return amplitude * math.Sin(w*float64(n)) })
}

// Noise is seeded uniform noise in [-amplitude, amplitude). Equal seeds
// give equal slices.
func Noise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	return generate(length, func(int) float64 { return amplitude * (2*rng.Float64() - 1) })
}

// Impulse is a unit impulse at pos, or silence when pos is out of range.
func Impulse(length, pos int) []float64 {
	return generate(length, func(n int) float64 {
		if n == pos {
			return 1
		}
		return 0
	})
}

// Ramp is start, start+1, start+2, ...
func Ramp(start float64, length int) []float64 {
	return generate(length, func(n int) float64 { return start + float64(n) })
}

// Channels is a channels x frames buffer holding value everywhere.
func Channels(channels, frames int, value float64) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = generate(frames, func(int) float64 { return value })
	}
	return out
}
