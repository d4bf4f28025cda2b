package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MPEG-1/2 Layer III clips.
type MP3Decoder struct{}

// Decode reads the whole stream. go-mp3 always produces interleaved 16-bit
// little-endian stereo, whatever the source channel layout.
func (MP3Decoder) Decode(r io.ReadSeeker) (*Buffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	var out bytes.Buffer
	if n := decoder.Length(); n > 0 {
		out.Grow(int(n))
	}
	if _, err := io.Copy(&out, decoder); err != nil {
		return nil, fmt.Errorf("failed to read MP3 data: %w", err)
	}

	format := Format{SampleWidth: WidthInt16, Channels: 2, FrameRate: decoder.SampleRate()}
	data := out.Bytes()
	data = data[:len(data)-len(data)%format.FrameSize()]

	return NewBuffer(data, format)
}
