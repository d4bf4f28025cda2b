package device

import (
	"fmt"

	"github.com/linuxmatters/voiceactor/internal/audio"
)

// Descriptor describes one device as reported by the audio subsystem. Indexes
// are only meaningful within the session that enumerated them, and names are
// not guaranteed to be unique.
type Descriptor struct {
	Index             int
	Name              string
	HostAPI           string
	DefaultSampleRate float64
	MaxInputChannels  int
	MaxOutputChannels int
}

// SampleRate returns the default sample rate truncated to whole Hz, the
// precision used when comparing against a clip.
func (d Descriptor) SampleRate() int {
	return int(d.DefaultSampleRate)
}

// Supports reports whether the device can play format without resampling or
// remixing: the default rate matches and there are enough output channels.
func (d Descriptor) Supports(format audio.Format) bool {
	return d.SampleRate() == format.FrameRate && d.MaxOutputChannels >= format.Channels
}

func (d Descriptor) String() string {
	return fmt.Sprintf("#%d %q (%d Hz, %d out)", d.Index, d.Name, d.SampleRate(), d.MaxOutputChannels)
}

// StreamConfig is the request to open one output stream.
type StreamConfig struct {
	DeviceIndex int
	SampleWidth int
	Channels    int
	SampleRate  int
}

// Stream is a started output stream. Write blocks until the audio subsystem
// has accepted all of p.
type Stream interface {
	Write(p []byte) (int, error)
	Stop() error
	Close() error
}

// Inventory is the audio subsystem as seen by the resolver and opener.
type Inventory interface {
	DeviceCount() (int, error)
	Descriptor(index int) (Descriptor, error)
	OpenStream(cfg StreamConfig) (Stream, error)
}

// Output pairs an open stream with the device it plays on.
type Output struct {
	Device Descriptor
	Stream Stream
}

// Snapshot performs one enumeration pass over inv.
func Snapshot(inv Inventory) ([]Descriptor, error) {
	count, err := inv.DeviceCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count audio devices: %w", err)
	}

	devices := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		d, err := inv.Descriptor(i)
		if err != nil {
			return nil, fmt.Errorf("failed to query audio device %d: %w", i, err)
		}
		devices = append(devices, d)
	}
	return devices, nil
}
