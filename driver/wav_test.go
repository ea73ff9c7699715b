package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-audiograph/dsp/graph"
	"github.com/cwbudde/algo-audiograph/dsp/osc"
	"github.com/cwbudde/algo-audiograph/dsp/sampler"
	"github.com/cwbudde/algo-audiograph/internal/testutil"
)

func TestRenderWAVRoundTrip(t *testing.T) {
	t.Parallel()

	const (
		sampleRate = 8000
		freq       = 250
		frames     = 1000
	)

	sine, err := osc.NewSine(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewSine() error = %v", err)
	}
	d, err := New(sine, WithSampleRate(sampleRate), WithPeriod(128), WithChannels(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "sine.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.RenderWAV(context.Background(), f, frames, 16); err != nil {
		f.Close()
		t.Fatalf("RenderWAV() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	clip, err := sampler.LoadWAV(r)
	if err != nil {
		t.Fatalf("LoadWAV() error = %v", err)
	}
	if clip.SampleRate != sampleRate || len(clip.Channels) != 2 || clip.Frames() != frames {
		t.Fatalf("clip = %v Hz, %dx%d", clip.SampleRate, len(clip.Channels), clip.Frames())
	}

	want := testutil.Sine(freq, sampleRate, 1, frames)
	testutil.RequireSliceNearlyEqual(t, clip.Channels[0], want, 2.0/32768)
	testutil.RequireSliceNearlyEqual(t, clip.Channels[1], want, 2.0/32768)
}

func TestRenderWAVSilencesUnderruns(t *testing.T) {
	t.Parallel()

	d, err := New(&stubNode{value: 1, status: graph.NeedMoreInput(1)}, WithPeriod(16), WithChannels(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.RenderWAV(context.Background(), f, 40, 24); err != nil {
		f.Close()
		t.Fatalf("RenderWAV() error = %v", err)
	}
	f.Close()

	clip, err := sampler.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, clip.Channels[0], make([]float64, 40), 0)
	if got := d.Stats().Underruns; got != 3 {
		t.Fatalf("Underruns = %d, want 3", got)
	}
}

func TestRenderWAVRejectsBitDepth(t *testing.T) {
	t.Parallel()

	d, err := New(&stubNode{status: graph.Ready()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if err := d.RenderWAV(context.Background(), f, 10, 12); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("RenderWAV(12-bit) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestQuantize(t *testing.T) {
	t.Parallel()

	src := [][]float64{{-1, 0, 1}}
	dst := make([]int, 3)

	quantize(dst, src, 8)
	if dst[0] != 1 || dst[1] != 128 || dst[2] != 255 {
		t.Fatalf("quantize(8) = %v, want [1 128 255]", dst)
	}

	quantize(dst, src, 24)
	if dst[0] != -8388607 || dst[1] != 0 || dst[2] != 8388607 {
		t.Fatalf("quantize(24) = %v", dst)
	}
}
