package osc

import (
	"testing"

	"github.com/cwbudde/algo-audiograph/internal/testutil"
)

func TestNoiseDeterministicAndBounded(t *testing.T) {
	t.Parallel()

	a, err := NewNoise(0.5, 7)
	if err != nil {
		t.Fatalf("NewNoise() error = %v", err)
	}
	b, err := NewNoise(0.5, 7)
	if err != nil {
		t.Fatalf("NewNoise() error = %v", err)
	}

	outA := [][]float64{make([]float64, 256), make([]float64, 256)}
	outB := [][]float64{make([]float64, 256)}
	a.Process(nil, outA)
	b.Process(nil, outB)

	testutil.RequireSliceNearlyEqual(t, outA[0], outB[0], 0)
	testutil.RequireSliceNearlyEqual(t, outA[1], outA[0], 0)
	testutil.RequireBounded(t, outA[0], 0.5)

	a.Reset()
	again := [][]float64{make([]float64, 256)}
	a.Process(nil, again)
	testutil.RequireSliceNearlyEqual(t, again[0], outB[0], 0)
}

func TestNoiseRejectsNegativeAmplitude(t *testing.T) {
	t.Parallel()

	if _, err := NewNoise(-1, 1); err == nil {
		t.Fatal("NewNoise(-1) should fail")
	}
}
