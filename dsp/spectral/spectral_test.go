package spectral

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/argusdusty/gofft"

	"github.com/cwbudde/algo-audiograph/dsp/graph"
	"github.com/cwbudde/algo-audiograph/internal/testutil"
)

// naiveDFT is the textbook sum, kept independent of Transformer.
func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range n {
		for j, v := range x {
			angle := -2 * math.Pi * float64(j*k) / float64(n)
			out[k] += complex(v*math.Cos(angle), v*math.Sin(angle))
		}
	}
	return out
}

func TestDFTPair(t *testing.T) {
	t.Parallel()

	got := DFT([]float64{1, 1})
	testutil.RequireComplexNearlyEqual(t, got, []complex128{2, 0}, 1e-12)

	got = DFT([]float64{1, 0, 0, 0})
	testutil.RequireComplexNearlyEqual(t, got, []complex128{1, 1, 1, 1}, 1e-12)

	got = DFT([]float64{0, 1, 0, 0})
	testutil.RequireComplexNearlyEqual(t, got, []complex128{1, -1i, -1, 1i}, 1e-12)
}

func TestDFTEmpty(t *testing.T) {
	t.Parallel()

	if DFT(nil) != nil || IDFT(nil) != nil {
		t.Fatal("empty transforms should return nil")
	}
}

func TestDFTImpulseIsFlat(t *testing.T) {
	t.Parallel()

	for _, pos := range []int{0, 3} {
		got := DFT(testutil.Impulse(8, pos))
		for k, v := range got {
			if math.Abs(cmplx.Abs(v)-1) > 1e-12 {
				t.Fatalf("impulse at %d: |X[%d]| = %v, want 1", pos, k, cmplx.Abs(v))
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 4, 5, 8, 12, 31, 64} {
		x := testutil.Noise(int64(n), 1, n)
		back := IDFT(DFT(x))
		testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)
	}
}

func TestDFTMatchesNaiveSum(t *testing.T) {
	t.Parallel()

	for _, n := range []int{3, 6, 7, 16, 30} {
		x := testutil.Noise(99, 1, n)
		testutil.RequireComplexNearlyEqual(t, DFT(x), naiveDFT(x), 1e-9)
	}
}

func TestDFTMatchesGofft(t *testing.T) {
	t.Parallel()

	for _, n := range []int{8, 64, 1024} {
		x := testutil.Noise(int64(n), 1, n)

		want := gofft.Float64ToComplex128Array(x)
		if err := gofft.FFT(want); err != nil {
			t.Fatalf("gofft.FFT(%d) error = %v", n, err)
		}

		testutil.RequireComplexNearlyEqual(t, DFT(x), want, 1e-8)
	}
}

func TestTransformerErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewTransformer(0); err == nil {
		t.Fatal("NewTransformer(0) should fail")
	}

	tr, err := NewTransformer(4)
	if err != nil {
		t.Fatalf("NewTransformer(4) error = %v", err)
	}
	if tr.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tr.Len())
	}
	if err := tr.Forward(make([]complex128, 4), make([]complex128, 3)); !errors.Is(err, ErrLength) {
		t.Fatalf("Forward() error = %v, want ErrLength", err)
	}
	if err := tr.InverseReal(make([]float64, 5), make([]complex128, 4)); !errors.Is(err, ErrLength) {
		t.Fatalf("InverseReal() error = %v, want ErrLength", err)
	}
}

func TestTransformerInPlaceForward(t *testing.T) {
	t.Parallel()

	for _, n := range []int{5, 8} {
		tr, _ := NewTransformer(n)
		x := testutil.Noise(3, 1, n)

		buf := make([]complex128, n)
		for i, v := range x {
			buf[i] = complex(v, 0)
		}
		if err := tr.Forward(buf, buf); err != nil {
			t.Fatalf("Forward() error = %v", err)
		}
		testutil.RequireComplexNearlyEqual(t, buf, naiveDFT(x), 1e-9)
	}
}

func TestMagnitudeAndPower(t *testing.T) {
	t.Parallel()

	bins := []complex128{3 + 4i, -1, 2i, 0}
	testutil.RequireSliceNearlyEqual(t, Magnitude(bins), []float64{5, 1, 2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(bins), []float64{25, 1, 4, 0}, 1e-12)

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("empty spectra should yield nil")
	}

	for i, v := range Magnitude(DFT(testutil.Noise(5, 1, 16))) {
		if v < 0 {
			t.Fatalf("magnitude[%d] = %v < 0", i, v)
		}
	}
}

func TestLowpassWeights(t *testing.T) {
	t.Parallel()

	w := LowpassWeights(8, 800, 200)
	testutil.RequireSliceNearlyEqual(t, w, []float64{1, 1, 1, 0, 0, 0, 1, 1}, 0)
}

func TestBlockFilterIdentity(t *testing.T) {
	t.Parallel()

	cfg := graph.NewConfig(graph.WithMaxChannels(2), graph.WithMaxFrames(64))
	weights := make([]float64, 16)
	for i := range weights {
		weights[i] = 1
	}

	f, err := NewBlockFilter(cfg, weights)
	if err != nil {
		t.Fatalf("NewBlockFilter() error = %v", err)
	}
	if got := f.BlockSize(); got.Input != graph.Fixed(16) || got.Output != graph.Fixed(16) {
		t.Fatalf("BlockSize() = %v, want Fixed(16) in and out", got)
	}

	s := graph.MustSeries(cfg, f)
	in := [][]float64{testutil.Noise(1, 1, 48), testutil.Noise(2, 1, 48)}
	out := [][]float64{make([]float64, 48), make([]float64, 48)}

	if st := s.Process(in, out); !st.IsReady() {
		t.Fatalf("Process() = %v, want Ready", st)
	}
	testutil.RequireChannelsNearlyEqual(t, out, in, 1e-9)
}

func TestBlockFilterLowpass(t *testing.T) {
	t.Parallel()

	const (
		n  = 64
		sr = 6400.0 // 100 Hz per bin
	)

	cfg := graph.NewConfig(graph.WithMaxChannels(1), graph.WithMaxFrames(128))
	f, err := NewBlockFilter(cfg, LowpassWeights(n, sr, 1000))
	if err != nil {
		t.Fatalf("NewBlockFilter() error = %v", err)
	}
	s := graph.MustSeries(cfg, f)

	low := testutil.Sine(300, sr, 0.5, 128)
	high := testutil.Sine(2000, sr, 0.5, 128)
	mixed := make([]float64, 128)
	for i := range mixed {
		mixed[i] = low[i] + high[i]
	}

	out := [][]float64{make([]float64, 128)}
	if st := s.Process([][]float64{mixed}, out); !st.IsReady() {
		t.Fatalf("Process() = %v, want Ready", st)
	}
	testutil.RequireSliceNearlyEqual(t, out[0], low, 1e-9)

	short := [][]float64{make([]float64, 100)}
	if st := s.Process([][]float64{mixed[:100]}, short); st != graph.NeedMoreInput(28) {
		t.Fatalf("Process(100 frames) = %v, want NeedMoreInput{28}", st)
	}
}

func TestAnalyzerDirectCalls(t *testing.T) {
	t.Parallel()

	a, err := NewAnalyzer(4)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	out := [][]complex128{make([]complex128, 4)}
	if st := a.Process([][]float64{{1, 1, 1}}, out); st != graph.NeedMoreInput(1) {
		t.Fatalf("Process(3 frames) = %v, want NeedMoreInput{1}", st)
	}

	if st := a.Process([][]float64{{1, 0, 0, 0}}, out); !st.IsReady() {
		t.Fatalf("Process() = %v, want Ready", st)
	}
	testutil.RequireComplexNearlyEqual(t, out[0], []complex128{1, 1, 1, 1}, 1e-12)

	testutil.RequirePanicsWith(t, graph.ErrShapeMismatch, func() {
		a.Process([][]float64{make([]float64, 5)}, [][]complex128{make([]complex128, 5)})
	})
}

func TestBinGain(t *testing.T) {
	t.Parallel()

	if _, err := NewBinGain(nil); err == nil {
		t.Fatal("NewBinGain(nil) should fail")
	}
	if _, err := NewBinGain([]float64{1, math.NaN()}); err == nil {
		t.Fatal("NewBinGain(NaN) should fail")
	}

	b, _ := NewBinGain([]float64{0, 2})
	out := [][]complex128{make([]complex128, 2)}
	b.Process([][]complex128{{1 + 1i, 3 - 1i}}, out)

	if out[0][0] != 0 || cmplx.Abs(out[0][1]-(6-2i)) > 0 {
		t.Fatalf("Process() = %v, want [0 6-2i]", out[0])
	}
}

func TestAnalyzerDoesNotAllocate(t *testing.T) {
	a, _ := NewAnalyzer(256)
	s, _ := NewSynthesizer(256)
	in := [][]float64{testutil.Noise(1, 1, 256)}
	bins := [][]complex128{make([]complex128, 256)}
	out := [][]float64{make([]float64, 256)}

	allocs := testing.AllocsPerRun(10, func() {
		a.Process(in, bins)
		s.Process(bins, out)
	})
	if allocs > 0 {
		t.Fatalf("Process allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkTransformer(b *testing.B) {
	for _, n := range []int{60, 512} {
		tr, _ := NewTransformer(n)
		src := testutil.Noise(1, 1, n)
		dst := make([]complex128, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_ = tr.ForwardReal(dst, src)
			}
		})
	}
}
