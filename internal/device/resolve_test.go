package device_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/device"
	"github.com/linuxmatters/voiceactor/internal/device/devicetest"
)

var stereo44k = audio.Format{SampleWidth: 2, Channels: 2, FrameRate: 44100}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		devices []device.Descriptor
		names   []string
		format  audio.Format
		want    []int
	}{
		{
			name: "first match wins per name",
			devices: []device.Descriptor{
				devicetest.Device("A", 44100, 2),
				devicetest.Device("B", 44100, 2),
				devicetest.Device("A", 44100, 2),
			},
			names:  []string{"A", "B"},
			format: stereo44k,
			want:   []int{0, 1},
		},
		{
			name: "request order is kept",
			devices: []device.Descriptor{
				devicetest.Device("A", 44100, 2),
				devicetest.Device("B", 44100, 2),
			},
			names:  []string{"B", "A"},
			format: stereo44k,
			want:   []int{1, 0},
		},
		{
			name:    "nonexistent name is skipped",
			devices: []device.Descriptor{devicetest.Device("A", 44100, 2)},
			names:   []string{"Missing", "A"},
			format:  stereo44k,
			want:    []int{0},
		},
		{
			name:    "incompatible sole match is skipped",
			devices: []device.Descriptor{devicetest.Device("A", 48000, 2)},
			names:   []string{"A"},
			format:  stereo44k,
			want:    nil,
		},
		{
			name: "incompatible duplicate falls through to compatible one",
			devices: []device.Descriptor{
				devicetest.Device("A", 48000, 2),
				devicetest.Device("A", 44100, 2),
			},
			names:  []string{"A"},
			format: stereo44k,
			want:   []int{1},
		},
		{
			name:    "too few output channels",
			devices: []device.Descriptor{devicetest.Device("Mono", 44100, 1)},
			names:   []string{"Mono"},
			format:  stereo44k,
			want:    nil,
		},
		{
			name:    "more output channels than needed",
			devices: []device.Descriptor{devicetest.Device("Surround", 44100, 8)},
			names:   []string{"Surround"},
			format:  stereo44k,
			want:    []int{0},
		},
		{
			name:    "fractional rate truncates",
			devices: []device.Descriptor{devicetest.Device("A", 44100.9, 2)},
			names:   []string{"A"},
			format:  stereo44k,
			want:    []int{0},
		},
		{
			name:    "input only device",
			devices: []device.Descriptor{devicetest.Device("Mic", 44100, 0)},
			names:   []string{"Mic"},
			format:  audio.Format{SampleWidth: 2, Channels: 1, FrameRate: 44100},
			want:    nil,
		},
		{
			name: "repeated request yields one entry",
			devices: []device.Descriptor{
				devicetest.Device("A", 44100, 2),
				devicetest.Device("A", 44100, 2),
			},
			names:  []string{"A", "A"},
			format: stereo44k,
			want:   []int{0},
		},
		{
			name:    "names are case sensitive",
			devices: []device.Descriptor{devicetest.Device("Speakers", 44100, 2)},
			names:   []string{"speakers"},
			format:  stereo44k,
			want:    nil,
		},
		{
			name:    "empty inventory",
			devices: nil,
			names:   []string{"A"},
			format:  stereo44k,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := devicetest.NewInventory(tt.devices...)
			got, err := device.Resolve(tt.names, tt.format, inv)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}
}

func TestResolve_Invariants(t *testing.T) {
	inv := devicetest.NewInventory(
		devicetest.Device("A", 44100, 2),
		devicetest.Device("B", 48000, 2),
		devicetest.Device("C", 44100, 1),
		devicetest.Device("A", 44100, 2),
		devicetest.Device("B", 44100, 6),
		devicetest.Device("D", 44100, 2),
		devicetest.Device("C", 44100, 2),
	)
	names := []string{"D", "A", "B", "C", "A", "B", "E"}

	got, err := device.Resolve(names, stereo44k, inv)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, index := range got {
		d, err := inv.Descriptor(index)
		if err != nil {
			t.Fatalf("Descriptor(%d) unexpected error: %v", index, err)
		}
		if seen[d.Name] {
			t.Errorf("name %q resolved more than once", d.Name)
		}
		seen[d.Name] = true

		if d.SampleRate() != stereo44k.FrameRate || d.MaxOutputChannels < stereo44k.Channels {
			t.Errorf("resolved incompatible device %v", d)
		}
	}

	if want := []int{5, 0, 4, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_InventoryError(t *testing.T) {
	inv := devicetest.NewInventory(devicetest.Device("A", 44100, 2))
	inv.CountErr = errors.New("host API unavailable")

	_, err := device.Resolve([]string{"A"}, stereo44k, inv)
	if !errors.Is(err, inv.CountErr) {
		t.Errorf("Resolve() error = %v, want wrapped %v", err, inv.CountErr)
	}
}

func TestDescriptor_Supports(t *testing.T) {
	d := devicetest.Device("A", 48000, 2)

	if !d.Supports(audio.Format{SampleWidth: 2, Channels: 1, FrameRate: 48000}) {
		t.Error("Supports(mono 48k) = false, want true")
	}
	if d.Supports(audio.Format{SampleWidth: 2, Channels: 2, FrameRate: 44100}) {
		t.Error("Supports(stereo 44.1k) = true, want false")
	}
	if d.Supports(audio.Format{SampleWidth: 2, Channels: 4, FrameRate: 48000}) {
		t.Error("Supports(quad 48k) = true, want false")
	}
}
