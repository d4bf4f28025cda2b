package paudio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/device"
)

// stream is a started blocking output stream. PortAudio writes from a typed
// buffer bound at open time, so each chunk of PCM bytes is unpacked into that
// buffer before the write; the final partial chunk is padded with silence.
type stream struct {
	mu     sync.Mutex
	s      *portaudio.Stream
	name   string
	frames int // frames per buffer
	width  int
	chans  int
	fill   func(p []byte) // unpack p into the bound buffer, padding the rest
	closed bool
}

func openStream(info *portaudio.DeviceInfo, cfg device.StreamConfig, frames int) (*stream, error) {
	st := &stream{
		name:   info.Name,
		frames: frames,
		width:  cfg.SampleWidth,
		chans:  cfg.Channels,
	}

	buf, fill, err := newBuffer(cfg.SampleWidth, frames*cfg.Channels)
	if err != nil {
		return nil, err
	}
	st.fill = fill

	params := portaudio.HighLatencyParameters(nil, info)
	params.Output.Channels = cfg.Channels
	params.SampleRate = float64(cfg.SampleRate)
	params.FramesPerBuffer = frames

	s, err := portaudio.OpenStream(params, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	if err := s.Start(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to start output stream: %w", err)
	}
	st.s = s

	log.Debugf("Started stream on %q: %d Hz, %d ch, %d-byte samples, %d frames per buffer",
		info.Name, cfg.SampleRate, cfg.Channels, cfg.SampleWidth, frames)
	return st, nil
}

// newBuffer allocates the typed buffer PortAudio reads from for a sample
// width, and a function that unpacks little-endian PCM bytes into it.
func newBuffer(width, samples int) (interface{}, func(p []byte), error) {
	switch width {
	case audio.WidthUint8:
		buf := make([]uint8, samples)
		return buf, func(p []byte) {
			n := copy(buf, p)
			for i := n; i < len(buf); i++ {
				buf[i] = 128
			}
		}, nil

	case audio.WidthInt16:
		buf := make([]int16, samples)
		return buf, func(p []byte) {
			n := len(p) / 2
			for i := 0; i < n; i++ {
				buf[i] = int16(binary.LittleEndian.Uint16(p[i*2:]))
			}
			clear(buf[n:])
		}, nil

	case audio.WidthInt24:
		buf := make([]portaudio.Int24, samples)
		return buf, func(p []byte) {
			n := len(p) / 3
			for i := 0; i < n; i++ {
				v := int32(p[i*3]) | int32(p[i*3+1])<<8 | int32(p[i*3+2])<<16
				buf[i].PutInt32(v << 8)
			}
			for i := n; i < len(buf); i++ {
				buf[i] = portaudio.Int24{}
			}
		}, nil

	case audio.WidthFloat32:
		buf := make([]float32, samples)
		return buf, func(p []byte) {
			n := len(p) / 4
			for i := 0; i < n; i++ {
				buf[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
			}
			clear(buf[n:])
		}, nil
	}

	return nil, nil, fmt.Errorf("unsupported sample width %d", width)
}

// Write plays p, blocking until PortAudio has taken all of it.
func (st *stream) Write(p []byte) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return 0, errors.New("write to closed stream")
	}

	chunk := st.frames * st.chans * st.width
	written := 0
	for written < len(p) {
		end := written + chunk
		if end > len(p) {
			end = len(p)
		}
		st.fill(p[written:end])

		// An underflow means the device briefly ran dry; the samples
		// were still accepted
		if err := st.s.Write(); err != nil && !errors.Is(err, portaudio.OutputUnderflowed) {
			return written, fmt.Errorf("failed to write to %q: %w", st.name, err)
		}
		written = end
	}
	return written, nil
}

// Stop waits for queued audio to drain and stops the stream.
func (st *stream) Stop() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return nil
	}
	return st.s.Stop()
}

// Close releases the stream. It is safe to call more than once.
func (st *stream) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return nil
	}
	st.closed = true
	return st.s.Close()
}
