package driver

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-audiograph/dsp/buffer"
	"github.com/cwbudde/algo-audiograph/dsp/core"
)

// Format is a native interleaved sample format.
type Format uint8

const (
	Float32 Format = iota
	Int16
	Uint16
)

func (f Format) String() string {
	switch f {
	case Float32:
		return "f32"
	case Int16:
		return "s16"
	case Uint16:
		return "u16"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// BytesPerSample returns the encoded size of one sample, or 0 for an
// unknown format.
func (f Format) BytesPerSample() int {
	switch f {
	case Float32:
		return 4
	case Int16, Uint16:
		return 2
	default:
		return 0
	}
}

// ParseFormat accepts the names printed by Format.String.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "f32", "float32":
		return Float32, nil
	case "s16", "int16":
		return Int16, nil
	case "u16", "uint16":
		return Uint16, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Native is the set of in-memory sample types Interleave produces.
type Native interface {
	float32 | int16 | uint16
}

// Interleave writes src frame by frame into dst, clamping every sample to
// [-1, 1] first. It returns the number of frames written, which is limited
// by the shorter of src and dst.
func Interleave[T Native](dst []T, src [][]float64) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}

	frames := min(buffer.Frames(src), len(dst)/channels)
	for i := range frames {
		for c := range channels {
			dst[i*channels+c] = convert[T](src[c][i])
		}
	}
	return frames
}

func convert[T Native](x float64) T {
	if math.IsNaN(x) {
		x = 0
	}
	x = core.Clamp(x, -1, 1)

	var zero T
	switch any(zero).(type) {
	case float32:
		return T(x)
	case int16:
		return T(math.Round(x * math.MaxInt16))
	default:
		return T(math.Round(x*math.MaxInt16) + 32768)
	}
}

// Encode interleaves src into dst as little-endian bytes in format f and
// returns the number of frames written.
func Encode(f Format, dst []byte, src [][]float64) (int, error) {
	size := f.BytesPerSample()
	if size == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	channels := len(src)
	if channels == 0 {
		return 0, nil
	}

	frames := min(buffer.Frames(src), len(dst)/(channels*size))
	for i := range frames {
		for c := range channels {
			off := (i*channels + c) * size
			x := src[c][i]
			switch f {
			case Float32:
				binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(convert[float32](x)))
			case Int16:
				binary.LittleEndian.PutUint16(dst[off:], uint16(convert[int16](x)))
			case Uint16:
				binary.LittleEndian.PutUint16(dst[off:], convert[uint16](x))
			}
		}
	}
	return frames, nil
}
