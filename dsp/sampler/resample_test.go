package sampler

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/internal/testutil"
)

func TestResampleSine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to float64
		freq     float64
	}{
		{"double", 8000, 16000, 500},
		{"cd to dat", 44100, 48000, 1000},
		{"third", 48000, 16000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const frames = 2000
			clip := &Clip{
				SampleRate: tt.from,
				Channels:   [][]float64{testutil.Sine(tt.freq, tt.from, 0.8, frames)},
			}

			got, err := clip.Resample(tt.to)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if got.SampleRate != tt.to {
				t.Fatalf("SampleRate = %v, want %v", got.SampleRate, tt.to)
			}

			wantFrames := int(float64(frames)*tt.to/tt.from + 0.999999)
			if got.Frames() != wantFrames {
				t.Fatalf("Frames() = %d, want %d", got.Frames(), wantFrames)
			}

			// Skip the filter run-in and run-out at both ends.
			margin := 100
			want := testutil.Sine(tt.freq, tt.to, 0.8, got.Frames())
			testutil.RequireSliceNearlyEqual(t,
				got.Channels[0][margin:got.Frames()-margin],
				want[margin:got.Frames()-margin], 5e-3)
		})
	}
}

func TestResampleSameRate(t *testing.T) {
	t.Parallel()

	clip := &Clip{SampleRate: 48000, Channels: [][]float64{{1, 2, 3}}}
	got, err := clip.Resample(48000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if got != clip {
		t.Fatal("Resample() to the same rate should return the clip itself")
	}
}

func TestResampleErrors(t *testing.T) {
	t.Parallel()

	clip := &Clip{SampleRate: 48000, Channels: [][]float64{{1, 2, 3}}}
	if _, err := clip.Resample(0); !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Fatalf("Resample(0) error = %v, want ErrInvalidSampleRate", err)
	}

	bad := &Clip{SampleRate: 48000, Channels: [][]float64{{1}, {1, 2}}}
	if _, err := bad.Resample(44100); !errors.Is(err, ErrInvalidClip) {
		t.Fatalf("Resample(ragged) error = %v, want ErrInvalidClip", err)
	}
}

func TestRationalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v        float64
		num, den int
	}{
		{2, 2, 1},
		{48000.0 / 44100, 160, 147},
		{1.0 / 3, 1, 3},
		{0.5, 1, 2},
	}
	for _, tt := range tests {
		num, den := rationalize(tt.v, maxDenominator)
		if num != tt.num || den != tt.den {
			t.Fatalf("rationalize(%v) = %d/%d, want %d/%d", tt.v, num, den, tt.num, tt.den)
		}
	}
}
