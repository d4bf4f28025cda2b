package audio

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC streams of up to 24 bits per sample.
type FLACDecoder struct{}

func (FLACDecoder) Decode(r io.ReadSeeker) (*Buffer, error) {
	// Parse FLAC stream - reads signature and StreamInfo block
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}
	defer stream.Close()

	bitDepth := int(stream.Info.BitsPerSample)
	if bitDepth > 24 {
		return nil, fmt.Errorf("%w: %d-bit FLAC", ErrUnsupportedFormat, bitDepth)
	}
	width, ok := widthForDepth(bitDepth)
	if !ok {
		return nil, fmt.Errorf("%w: %d-bit FLAC", ErrUnsupportedFormat, bitDepth)
	}

	format := Format{
		SampleWidth: width,
		Channels:    int(stream.Info.NChannels),
		FrameRate:   int(stream.Info.SampleRate),
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	frameSize := format.FrameSize()
	data := make([]byte, 0, int(stream.Info.NSamples)*frameSize)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		// FLAC frames carry one subframe per channel; interleave them
		n := len(frame.Subframes[0].Samples)
		start := len(data)
		data = append(data, make([]byte, n*frameSize)...)
		for i := 0; i < n; i++ {
			for ch, sub := range frame.Subframes {
				v := int(sub.Samples[i])
				depth := bitDepth
				if width == WidthUint8 {
					// signed FLAC samples become offset-binary
					v = v<<(8-bitDepth) + 128
					depth = 8
				}
				putSample(data[start+i*frameSize+ch*width:], v, depth, width)
			}
		}
	}

	return NewBuffer(data, format)
}
