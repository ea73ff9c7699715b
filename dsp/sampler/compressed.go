package sampler

import (
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// LoadMP3 decodes an MPEG-1/2 layer III stream. The decoder always
// produces 16-bit little-endian stereo.
func LoadMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("sampler: mp3: %w", err)
	}

	const bytesPerFrame = 4
	channels := [][]float64{{}, {}}
	buf := make([]byte, 4096*bytesPerFrame)
	var carry []byte

	for {
		n, err := dec.Read(buf)
		data := append(carry, buf[:n]...)
		whole := len(data) - len(data)%bytesPerFrame
		for i := 0; i < whole; i += bytesPerFrame {
			left := int16(uint16(data[i]) | uint16(data[i+1])<<8)
			right := int16(uint16(data[i+2]) | uint16(data[i+3])<<8)
			channels[0] = append(channels[0], float64(left)/32768)
			channels[1] = append(channels[1], float64(right)/32768)
		}
		carry = append(carry[:0], data[whole:]...)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("sampler: mp3: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return &Clip{SampleRate: float64(dec.SampleRate()), Channels: channels}, nil
}

// LoadFLAC decodes a FLAC stream frame by frame.
func LoadFLAC(r io.Reader) (*Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("sampler: flac: %w", err)
	}
	defer stream.Close()

	numChannels := int(stream.Info.NChannels)
	if numChannels == 0 || stream.Info.SampleRate == 0 {
		return nil, fmt.Errorf("%w: flac stream without channels or rate", ErrUnsupportedFormat)
	}

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = []float64{}
	}

	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("sampler: flac: %w", err)
		}

		scale := 1 / float64(int64(1)<<(frame.BitsPerSample-1))
		for c, sub := range frame.Subframes {
			if c >= numChannels {
				break
			}
			for _, s := range sub.Samples {
				channels[c] = append(channels[c], float64(s)*scale)
			}
		}
	}

	return &Clip{SampleRate: float64(stream.Info.SampleRate), Channels: channels}, nil
}

// LoadOggVorbis decodes an Ogg Vorbis stream.
func LoadOggVorbis(r io.Reader) (*Clip, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sampler: vorbis: %w", err)
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: vorbis stream without channels or rate", ErrUnsupportedFormat)
	}

	numChannels := format.Channels
	frames := len(data) / numChannels
	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := range frames {
		for c := range numChannels {
			channels[c][i] = float64(data[i*numChannels+c])
		}
	}

	return &Clip{SampleRate: float64(format.SampleRate), Channels: channels}, nil
}
