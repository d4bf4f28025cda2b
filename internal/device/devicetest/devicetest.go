// Package devicetest provides in-memory implementations of the device
// interfaces for tests.
package devicetest

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/linuxmatters/voiceactor/internal/device"
)

// ErrClosed is returned by operations on a closed Stream.
var ErrClosed = errors.New("stream closed")

// Stream records everything written to it.
type Stream struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	writes  int
	stops   int
	closes  int
	stopped bool
	closed  bool

	// WriteErr, when set, is returned by the write that would take the
	// stream past FailAfter bytes. Bytes up to FailAfter are accepted.
	WriteErr  error
	FailAfter int
	// PanicOnWrite makes Write panic.
	PanicOnWrite bool
	// ShortWrite makes Write accept one byte less than asked without error.
	ShortWrite bool
	StopErr    error
	CloseErr   error
	// OnWrite, when set, is called at the start of every Write before the
	// stream lock is taken. It may block.
	OnWrite func()
}

func (s *Stream) Write(p []byte) (int, error) {
	if s.OnWrite != nil {
		s.OnWrite()
	}
	if s.PanicOnWrite {
		panic("devicetest: write panic")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	s.writes++

	if s.WriteErr != nil && s.buf.Len()+len(p) > s.FailAfter {
		n := s.FailAfter - s.buf.Len()
		if n < 0 {
			n = 0
		}
		s.buf.Write(p[:n])
		return n, s.WriteErr
	}
	if s.ShortWrite && len(p) > 0 {
		s.buf.Write(p[:len(p)-1])
		return len(p) - 1, nil
	}

	s.buf.Write(p)
	return len(p), nil
}

func (s *Stream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.stopped = true
	return s.StopErr
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	s.closed = true
	return s.CloseErr
}

// Bytes returns a copy of everything written.
func (s *Stream) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.buf.Bytes())
}

// Writes returns the number of Write calls.
func (s *Stream) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Stops returns how many times Stop was called.
func (s *Stream) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// Closes returns how many times Close was called.
func (s *Stream) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Released reports whether the stream was both stopped and closed.
func (s *Stream) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped && s.closed
}

// Inventory is a fixed list of devices. Device indexes are their positions
// in Devices.
type Inventory struct {
	mu sync.Mutex

	Devices []device.Descriptor
	// CountErr fails DeviceCount.
	CountErr error
	// OpenErr fails OpenStream for specific device indexes.
	OpenErr map[int]error
	// NilStream makes OpenStream return (nil, nil) for specific indexes.
	NilStream map[int]bool
	// StreamFor, when set, supplies the stream returned for an index.
	StreamFor func(index int) *Stream
	// OnOpen runs after each successful open.
	OnOpen func(index int)

	opened  []*Stream
	configs []device.StreamConfig
}

// NewInventory builds an Inventory and assigns each device its index.
func NewInventory(devices ...device.Descriptor) *Inventory {
	for i := range devices {
		devices[i].Index = i
	}
	return &Inventory{Devices: devices}
}

// Device is shorthand for an output device descriptor.
func Device(name string, rate float64, outChannels int) device.Descriptor {
	return device.Descriptor{
		Name:              name,
		HostAPI:           "Test",
		DefaultSampleRate: rate,
		MaxOutputChannels: outChannels,
	}
}

func (inv *Inventory) DeviceCount() (int, error) {
	if inv.CountErr != nil {
		return 0, inv.CountErr
	}
	return len(inv.Devices), nil
}

func (inv *Inventory) Descriptor(index int) (device.Descriptor, error) {
	if index < 0 || index >= len(inv.Devices) {
		return device.Descriptor{}, fmt.Errorf("invalid device index %d", index)
	}
	return inv.Devices[index], nil
}

func (inv *Inventory) OpenStream(cfg device.StreamConfig) (device.Stream, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.configs = append(inv.configs, cfg)
	if err := inv.OpenErr[cfg.DeviceIndex]; err != nil {
		return nil, err
	}
	if inv.NilStream[cfg.DeviceIndex] {
		return nil, nil
	}

	s := &Stream{}
	if inv.StreamFor != nil {
		s = inv.StreamFor(cfg.DeviceIndex)
	}
	inv.opened = append(inv.opened, s)
	if inv.OnOpen != nil {
		inv.OnOpen(cfg.DeviceIndex)
	}
	return s, nil
}

// Opened returns every stream handed out so far.
func (inv *Inventory) Opened() []*Stream {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]*Stream(nil), inv.opened...)
}

// Configs returns every OpenStream request, including failed ones.
func (inv *Inventory) Configs() []device.StreamConfig {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]device.StreamConfig(nil), inv.configs...)
}
