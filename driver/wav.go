package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiograph/dsp/core"
)

const wavFormatPCM = 1

// RenderWAV renders frames output frames into w as a PCM WAV file with the
// given bit depth (8, 16, 24 or 32). The file header is finalised even when
// rendering stops early; the rendering error is returned in that case.
func (d *Driver) RenderWAV(ctx context.Context, w io.WriteSeeker, frames, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit wav", ErrUnsupportedFormat, bitDepth)
	}
	if frames < 0 {
		return fmt.Errorf("driver: frames must be >= 0: %d", frames)
	}

	enc := wav.NewEncoder(w, int(d.sampleRate), bitDepth, d.channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: d.channels,
			SampleRate:  int(d.sampleRate),
		},
		Data:           make([]int, d.period*d.channels),
		SourceBitDepth: bitDepth,
	}

	err := d.Render(ctx, frames, func(block [][]float64) error {
		n := quantize(buf.Data[:cap(buf.Data)], block, bitDepth)
		buf.Data = buf.Data[:n*len(block)]
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("driver: writing wav: %w", err)
		}
		return nil
	})

	if cerr := enc.Close(); cerr != nil {
		cerr = fmt.Errorf("driver: closing wav: %w", cerr)
		return errors.Join(err, cerr)
	}
	return err
}

// quantize interleaves src into dst as integer PCM of the given bit depth.
// 8-bit samples are unsigned, as WAV stores them.
func quantize(dst []int, src [][]float64, bitDepth int) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}

	full := float64(int64(1)<<(bitDepth-1)) - 1
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	frames := min(len(src[0]), len(dst)/channels)
	for i := range frames {
		for c := range channels {
			x := src[c][i]
			if math.IsNaN(x) {
				x = 0
			}
			dst[i*channels+c] = int(math.Round(core.Clamp(x, -1, 1)*full)) + offset
		}
	}
	return frames
}
