package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/config"
	"github.com/linuxmatters/voiceactor/internal/device"
	"github.com/linuxmatters/voiceactor/internal/playback"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitFailure},
		{"missing argument", &config.MissingArgumentError{Flag: "file"}, ExitUsage},
		{"invalid argument", &config.InvalidArgumentError{Flag: "chunk-frames", Value: "-1"}, ExitUsage},
		{"decode", &audio.DecodeError{Path: "x.mp3", Err: audio.ErrUnsupportedFormat}, ExitDecode},
		{"wrapped decode", fmt.Errorf("load: %w", &audio.DecodeError{Path: "x", Err: errors.New("eof")}), ExitDecode},
		{"no devices", &device.NoDevicesError{}, ExitNoDevices},
		{"stream open", &device.StreamOpenError{Index: 1, Name: "A", Err: errors.New("busy")}, ExitPlayback},
		{"playback", &playback.PlaybackError{Streams: 1, Failures: []*playback.WriteError{{Err: errors.New("x")}}}, ExitPlayback},
		{"interrupted", context.Canceled, ExitInterrupted},
		{"interrupted while opening", fmt.Errorf("open: %w", context.Canceled), ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDeviceTable(t *testing.T) {
	devices := []device.Descriptor{
		{Index: 0, Name: "Built-in Output", HostAPI: "Core Audio", DefaultSampleRate: 48000, MaxOutputChannels: 2},
		{Index: 1, Name: "USB Microphone", HostAPI: "Core Audio", DefaultSampleRate: 44100, MaxInputChannels: 1},
	}

	out := DeviceTable(devices)
	for _, want := range []string{"Built-in Output", "USB Microphone", "48000 Hz", "44100 Hz", "Default Rate"} {
		if !strings.Contains(out, want) {
			t.Errorf("DeviceTable() missing %q:\n%s", want, out)
		}
	}
}

func TestPrintDevices_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintDevices(&buf, nil)

	if !strings.Contains(buf.String(), "No audio devices found.") {
		t.Errorf("PrintDevices(nil) = %q, want empty notice", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "90.0s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatLevel(t *testing.T) {
	if got := FormatLevel(-6.02); got != "-6.0 dBFS" {
		t.Errorf("FormatLevel(-6.02) = %q, want \"-6.0 dBFS\"", got)
	}
	if got := FormatLevel(math.Inf(-1)); got != "-inf dBFS" {
		t.Errorf("FormatLevel(-Inf) = %q, want \"-inf dBFS\"", got)
	}
}
