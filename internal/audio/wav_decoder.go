package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// WAVE format tags accepted by WAVDecoder.
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// ErrInvalidWAV is returned when the RIFF header does not describe a WAV file.
var ErrInvalidWAV = errors.New("invalid WAV file")

// WAVDecoder decodes integer PCM WAV files. 8, 16 and 24-bit samples keep
// their width; 32-bit integer samples are converted to 32-bit float.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.ReadSeeker) (*Buffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	if decoder.WavAudioFormat != wavFormatPCM && decoder.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV format tag %#x", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	width, ok := widthForDepth(bitDepth)
	if !ok {
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}

	format := Format{
		SampleWidth: width,
		Channels:    int(decoder.NumChans),
		FrameRate:   int(decoder.SampleRate),
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	// Drop a trailing partial frame from truncated files
	samples := pcm.Data
	samples = samples[:len(samples)-len(samples)%format.Channels]

	data := make([]byte, len(samples)*width)
	for i, v := range samples {
		putSample(data[i*width:], v, bitDepth, width)
	}

	return NewBuffer(data, format)
}
