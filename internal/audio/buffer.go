package audio

import (
	"errors"
	"fmt"
	"time"
)

// Supported sample widths in bytes. The encoding of each width follows the
// output subsystem's native formats.
const (
	WidthUint8   = 1 // unsigned 8-bit
	WidthInt16   = 2 // signed 16-bit little-endian
	WidthInt24   = 3 // signed 24-bit packed little-endian
	WidthFloat32 = 4 // IEEE 754 float, little-endian
)

// ErrInvalidFormat is wrapped by every format validation failure.
var ErrInvalidFormat = errors.New("invalid audio format")

// Format describes the layout of interleaved PCM data.
type Format struct {
	SampleWidth int // bytes per sample
	Channels    int
	FrameRate   int // frames per second
}

// FrameSize returns the number of bytes in one frame (one sample per channel).
func (f Format) FrameSize() int {
	return f.SampleWidth * f.Channels
}

// Validate reports whether f can describe a playable buffer.
func (f Format) Validate() error {
	if f.SampleWidth < WidthUint8 || f.SampleWidth > WidthFloat32 {
		return fmt.Errorf("%w: sample width %d bytes", ErrInvalidFormat, f.SampleWidth)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	}
	if f.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate %d Hz", ErrInvalidFormat, f.FrameRate)
	}
	return nil
}

func (f Format) String() string {
	depth := fmt.Sprintf("%d-bit", f.SampleWidth*8)
	if f.SampleWidth == WidthFloat32 {
		depth = "32-bit float"
	}
	return fmt.Sprintf("%d Hz, %d ch, %s", f.FrameRate, f.Channels, depth)
}

// Buffer holds a fully decoded clip. It is immutable once constructed: the
// payload is never written again, so any number of goroutines may read it
// concurrently, each through its own Reader.
type Buffer struct {
	data   []byte
	format Format
}

// NewBuffer wraps decoded PCM bytes. The buffer takes ownership of data; the
// caller must not modify it afterwards.
func NewBuffer(data []byte, format Format) (*Buffer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if len(data)%format.FrameSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte frames",
			ErrInvalidFormat, len(data), format.FrameSize())
	}
	return &Buffer{data: data, format: format}, nil
}

// Format returns the buffer's sample layout.
func (b *Buffer) Format() Format {
	return b.format
}

// Bytes returns the raw payload. The returned slice must be treated as read-only.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the payload length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Frames returns the number of frames in the buffer.
func (b *Buffer) Frames() int {
	return len(b.data) / b.format.FrameSize()
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.format.FrameRate)
}

// NewReader returns a Reader positioned at the start of the payload.
func (b *Buffer) NewReader() *Reader {
	return &Reader{buf: b}
}
