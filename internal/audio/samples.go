package audio

import (
	"encoding/binary"
	"math"
)

// Sample returns the normalized value (roughly -1.0 to 1.0) of one channel
// in one frame. Out of range positions read as silence.
func (b *Buffer) Sample(frame, channel int) float64 {
	if frame < 0 || frame >= b.Frames() || channel < 0 || channel >= b.format.Channels {
		return 0
	}
	off := frame*b.format.FrameSize() + channel*b.format.SampleWidth
	return decodeSample(b.data[off:off+b.format.SampleWidth], b.format.SampleWidth)
}

// Mono returns the average of all channels in a frame.
func (b *Buffer) Mono(frame int) float64 {
	var sum float64
	for ch := 0; ch < b.format.Channels; ch++ {
		sum += b.Sample(frame, ch)
	}
	return sum / float64(b.format.Channels)
}

func decodeSample(p []byte, width int) float64 {
	switch width {
	case WidthUint8:
		return (float64(p[0]) - 128) / 128
	case WidthInt16:
		return float64(int16(binary.LittleEndian.Uint16(p))) / 32768
	case WidthInt24:
		v := int32(p[0]) | int32(p[1])<<8 | int32(p[2])<<16
		if v&0x800000 != 0 {
			v |= ^0xffffff // sign extend
		}
		return float64(v) / 8388608
	case WidthFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))
	}
	return 0
}

// putSample encodes an integer sample of the given bit depth into p using the
// packed representation for width. Depths narrower than the width are shifted
// up so full scale is preserved.
func putSample(p []byte, v int, bitDepth, width int) {
	switch width {
	case WidthUint8:
		// 8-bit integer PCM is stored unsigned
		p[0] = byte(clamp(v, 0, 255))
	case WidthInt16:
		v <<= 16 - bitDepth
		binary.LittleEndian.PutUint16(p, uint16(int16(clamp(v, math.MinInt16, math.MaxInt16))))
	case WidthInt24:
		v = clamp(v<<(24-bitDepth), -8388608, 8388607)
		p[0] = byte(v)
		p[1] = byte(v >> 8)
		p[2] = byte(v >> 16)
	case WidthFloat32:
		f := float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
		binary.LittleEndian.PutUint32(p, math.Float32bits(f))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// widthForDepth maps an integer PCM bit depth to the sample width it is
// stored in. 32-bit integer PCM has no native output format and is stored as
// float.
func widthForDepth(bitDepth int) (int, bool) {
	switch {
	case bitDepth <= 0 || bitDepth > 32:
		return 0, false
	case bitDepth <= 8:
		return WidthUint8, true
	case bitDepth <= 16:
		return WidthInt16, true
	case bitDepth <= 24:
		return WidthInt24, true
	default:
		return WidthFloat32, true
	}
}
