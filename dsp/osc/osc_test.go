package osc

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
	"github.com/cwbudde/algo-audiograph/internal/testutil"
)

func TestConstructorValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate float64
		freqHz     float64
		want       error
	}{
		{"zero rate", 0, 440, core.ErrInvalidSampleRate},
		{"negative rate", -48000, 440, core.ErrInvalidSampleRate},
		{"nan rate", math.NaN(), 440, core.ErrInvalidSampleRate},
		{"negative freq", 48000, -1, ErrInvalidFrequency},
		{"above nyquist", 48000, 24001, ErrInvalidFrequency},
		{"inf freq", 48000, math.Inf(1), ErrInvalidFrequency},
		{"nyquist", 48000, 24000, nil},
		{"dc", 48000, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewSine(tt.sampleRate, tt.freqHz)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewSine() error = %v, want %v", err, tt.want)
			}
			_, err = NewFastSine(tt.sampleRate, tt.freqHz)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewFastSine() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSineMatchesReference(t *testing.T) {
	t.Parallel()

	s, err := NewSine(48000, 1000)
	if err != nil {
		t.Fatalf("NewSine() error = %v", err)
	}

	out := [][]float64{make([]float64, 480)}
	if st := s.Process(nil, out); !st.IsReady() {
		t.Fatalf("Process() = %v, want Ready", st)
	}
	testutil.RequireSliceNearlyEqual(t, out[0], testutil.Sine(1000, 48000, 1, 480), 1e-9)
}

func TestSinePeriodicAndBounded(t *testing.T) {
	t.Parallel()

	// 48 kHz / 480 Hz: period of exactly 100 samples.
	s, err := NewSine(48000, 480)
	if err != nil {
		t.Fatalf("NewSine() error = %v", err)
	}

	out := [][]float64{make([]float64, 1000)}
	s.Process(nil, out)

	testutil.RequireBounded(t, out[0], 1)
	for i := 100; i < len(out[0]); i++ {
		if diff := math.Abs(out[0][i] - out[0][i-100]); diff > 1e-9 {
			t.Fatalf("sample %d differs from one period earlier by %g", i, diff)
		}
	}
}

func TestSineBlockBoundaries(t *testing.T) {
	t.Parallel()

	whole, _ := NewSine(44100, 441)
	split, _ := NewSine(44100, 441)

	want := [][]float64{make([]float64, 300)}
	whole.Process(nil, want)

	got := make([]float64, 0, 300)
	for _, n := range []int{1, 7, 64, 100, 128} {
		out := [][]float64{make([]float64, n)}
		split.Process(nil, out)
		got = append(got, out[0]...)
	}

	testutil.RequireSliceNearlyEqual(t, got, want[0], 1e-12)
}

func TestSineWritesEveryChannel(t *testing.T) {
	t.Parallel()

	s, _ := NewSine(48000, 440)
	out := testutil.Channels(3, 16, 9)
	s.Process(nil, out)

	testutil.RequireSliceNearlyEqual(t, out[1], out[0], 0)
	testutil.RequireSliceNearlyEqual(t, out[2], out[0], 0)
	if out[0][0] != 0 {
		t.Fatalf("first sample = %v, want 0", out[0][0])
	}
}

func TestFastSineShape(t *testing.T) {
	t.Parallel()

	// increment 4*f/sr = 0.5: phase -1, -0.5, 0, 0.5, then wraps.
	f, err := NewFastSine(8, 1)
	if err != nil {
		t.Fatalf("NewFastSine() error = %v", err)
	}

	out := [][]float64{make([]float64, 10)}
	f.Process(nil, out)

	want := []float64{0, -0.75, -1, -0.75, 0, 0.75, 1, 0.75, 0, -0.75}
	testutil.RequireSliceNearlyEqual(t, out[0], want, 1e-12)
}

func TestFastSineTracksSine(t *testing.T) {
	t.Parallel()

	// The parabola is inverted against math.Sin; compare against -sin.
	fast, _ := NewFastSine(48000, 100)
	out := [][]float64{make([]float64, 960)}
	fast.Process(nil, out)

	ref := testutil.Sine(100, 48000, -1, 960)
	d, err := testutil.MaxAbsDiff(out[0], ref)
	if err != nil {
		t.Fatal(err)
	}
	if d > 0.06 {
		t.Fatalf("max deviation from -sin = %v, want <= 0.06", d)
	}
	testutil.RequireBounded(t, out[0], 1)
}

func TestReset(t *testing.T) {
	t.Parallel()

	nodes := map[string]interface {
		graph.RealNode
		Reset()
	}{
		"sine":      must(NewSine(48000, 997)),
		"fast sine": must(NewFastSine(48000, 997)),
	}

	for name, n := range nodes {
		first := [][]float64{make([]float64, 77)}
		n.Process(nil, first)
		n.Reset()

		second := [][]float64{make([]float64, 77)}
		n.Process(nil, second)

		if !equal(first[0], second[0]) {
			t.Fatalf("%s: output after Reset differs", name)
		}
	}
}

func TestProcessDoesNotAllocate(t *testing.T) {
	s, _ := NewSine(48000, 440)
	f, _ := NewFastSine(48000, 440)
	out := [][]float64{make([]float64, 256), make([]float64, 256)}

	allocs := testing.AllocsPerRun(20, func() {
		s.Process(nil, out)
		f.Process(nil, out)
	})
	if allocs > 0 {
		t.Fatalf("Process allocated %v times per run, want 0", allocs)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func BenchmarkSine(b *testing.B) {
	s, _ := NewSine(48000, 440)
	out := [][]float64{make([]float64, 512)}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		s.Process(nil, out)
	}
}

func BenchmarkFastSine(b *testing.B) {
	f, _ := NewFastSine(48000, 440)
	out := [][]float64{make([]float64, 512)}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		f.Process(nil, out)
	}
}
