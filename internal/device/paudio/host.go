// Package paudio implements the device inventory on top of PortAudio.
package paudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/linuxmatters/voiceactor/internal/device"
)

// DefaultFramesPerBuffer is used when Open is given a non-positive size.
const DefaultFramesPerBuffer = 4096

var _ device.Inventory = (*Host)(nil)

// enumerate lists the devices known to PortAudio.
var enumerate = portaudio.Devices

// Host is an initialized PortAudio session. Device indexes are stable until
// the host is closed.
type Host struct {
	mu              sync.Mutex
	devices         []*portaudio.DeviceInfo
	framesPerBuffer int
	closed          bool
}

// Open initializes PortAudio. Streams opened through the host transfer
// framesPerBuffer frames per blocking write.
func Open(framesPerBuffer int) (*Host, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	if framesPerBuffer <= 0 {
		framesPerBuffer = DefaultFramesPerBuffer
	}

	log.Debugf("PortAudio initialized, %d frames per buffer", framesPerBuffer)
	return &Host{framesPerBuffer: framesPerBuffer}, nil
}

// Close terminates PortAudio. Every stream must be closed first.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.devices = nil

	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// DeviceCount enumerates the devices. It starts a new enumeration pass;
// subsequent Descriptor calls read from it.
func (h *Host) DeviceCount() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.refresh(); err != nil {
		return 0, err
	}
	return len(h.devices), nil
}

// Descriptor returns the device at index from the current enumeration pass.
func (h *Host) Descriptor(index int) (device.Descriptor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, err := h.lookup(index)
	if err != nil {
		return device.Descriptor{}, err
	}
	return describe(index, info), nil
}

// OpenStream opens and starts a blocking output stream on a device. The
// device is looked up in a fresh enumeration pass rather than the one
// Descriptor reads from. PortAudio keeps its device list fixed between
// Initialize and Terminate, so indexes agree across passes.
func (h *Host) OpenStream(cfg device.StreamConfig) (device.Stream, error) {
	h.mu.Lock()
	err := h.refresh()
	var info *portaudio.DeviceInfo
	if err == nil {
		info, err = h.lookup(cfg.DeviceIndex)
	}
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}

	st, err := openStream(info, cfg, h.framesPerBuffer)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (h *Host) refresh() error {
	if h.closed {
		return fmt.Errorf("PortAudio host is closed")
	}
	devices, err := enumerate()
	if err != nil {
		return fmt.Errorf("failed to get device list: %w", err)
	}
	h.devices = devices
	return nil
}

func (h *Host) lookup(index int) (*portaudio.DeviceInfo, error) {
	if h.devices == nil {
		if err := h.refresh(); err != nil {
			return nil, err
		}
	}
	if index < 0 || index >= len(h.devices) {
		return nil, fmt.Errorf("invalid device index %d (have %d devices)", index, len(h.devices))
	}
	return h.devices[index], nil
}

func describe(index int, info *portaudio.DeviceInfo) device.Descriptor {
	d := device.Descriptor{
		Index:             index,
		Name:              info.Name,
		DefaultSampleRate: info.DefaultSampleRate,
		MaxInputChannels:  info.MaxInputChannels,
		MaxOutputChannels: info.MaxOutputChannels,
	}
	if info.HostApi != nil {
		d.HostAPI = info.HostApi.Name
	}
	return d
}
