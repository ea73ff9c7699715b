package sampler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrNotWAV is returned when the input lacks a RIFF/WAVE header.
	ErrNotWAV = errors.New("sampler: not a WAV file")
	// ErrNotAIFF is returned when the input lacks a FORM/AIFF header.
	ErrNotAIFF = errors.New("sampler: not an AIFF file")
	// ErrUnsupportedFormat is returned for layouts the decoders cannot map
	// to samples, such as unknown bit depths or unknown file extensions.
	ErrUnsupportedFormat = errors.New("sampler: unsupported audio format")
	// ErrInvalidClip is returned for clips with no channels or ragged channels.
	ErrInvalidClip = errors.New("sampler: invalid clip")
)

// Clip is a decoded, non-interleaved multichannel recording.
type Clip struct {
	SampleRate float64
	Channels   [][]float64
}

// Frames returns the clip length in frames.
func (c *Clip) Frames() int {
	if c == nil || len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Validate checks that the clip has at least one channel and that every
// channel has the same length.
func (c *Clip) Validate() error {
	if c == nil || len(c.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidClip)
	}
	for i, ch := range c.Channels {
		if len(ch) != len(c.Channels[0]) {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidClip, i, len(ch), len(c.Channels[0]))
		}
	}
	return nil
}

// pcmReader is the part of the go-audio decoders the loader needs.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// LoadWAV decodes a PCM WAV stream.
func LoadWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("sampler: reading wav header: %w", err)
	}

	// 8-bit WAV stores unsigned samples.
	offset := 0
	if dec.BitDepth == 8 {
		offset = 128
	}
	return decode(dec, int(dec.BitDepth), offset)
}

// LoadAIFF decodes a PCM AIFF stream.
func LoadAIFF(r io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAIFF
	}
	dec.ReadInfo()
	return decode(dec, int(dec.BitDepth), 0)
}

// LoadFile decodes an audio file, choosing the decoder by extension.
// WAV, AIFF, MP3, FLAC and Ogg Vorbis are recognized.
func LoadFile(path string) (*Clip, error) {
	var load func(*os.File) (*Clip, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		load = func(f *os.File) (*Clip, error) { return LoadWAV(f) }
	case ".aif", ".aiff":
		load = func(f *os.File) (*Clip, error) { return LoadAIFF(f) }
	case ".mp3":
		load = func(f *os.File) (*Clip, error) { return LoadMP3(f) }
	case ".flac":
		load = func(f *os.File) (*Clip, error) { return LoadFLAC(f) }
	case ".ogg", ".oga":
		load = func(f *os.File) (*Clip, error) { return LoadOggVorbis(f) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	defer f.Close()

	clip, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

func decode(dec pcmReader, bitDepth, offset int) (*Clip, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing or empty format", ErrUnsupportedFormat)
	}

	numChannels := format.NumChannels
	scale := 1 / float64(int64(1)<<(bitDepth-1))
	channels := make([][]float64, numChannels)

	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, 4096*numChannels),
	}

	for {
		n, err := dec.PCMBuffer(buf)
		for i := range n - n%numChannels {
			c := i % numChannels
			channels[c] = append(channels[c], float64(buf.Data[i]-offset)*scale)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("sampler: decoding pcm: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	for c := range channels {
		if channels[c] == nil {
			channels[c] = []float64{}
		}
	}

	return &Clip{SampleRate: float64(format.SampleRate), Channels: channels}, nil
}
