package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseDeviceNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "Speakers", []string{"Speakers"}},
		{"multiple", "A,B", []string{"A", "B"}},
		{"trims whitespace", " Headphones , USB Audio ", []string{"Headphones", "USB Audio"}},
		{"drops empty entries", "A,,B, ,", []string{"A", "B"}},
		{"keeps duplicates", "A,B,A", []string{"A", "B", "A"}},
		{"empty string", "", nil},
		{"only separators", " , ,", nil},
		{"inner spaces kept", "Built-in  Output", []string{"Built-in  Output"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDeviceNames(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDeviceNames(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_MissingArguments(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		devices  string
		wantFlag string
	}{
		{"no file", "", "A", "file"},
		{"blank file", "   ", "A", "file"},
		{"no devices", "clip.mp3", "", "devices"},
		{"only separators", "clip.mp3", " , ", "devices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("", tt.file, tt.devices, false, "", "", 0)
			var missing *MissingArgumentError
			if !errors.As(err, &missing) {
				t.Fatalf("New() error = %v, want *MissingArgumentError", err)
			}
			if missing.Flag != tt.wantFlag {
				t.Errorf("MissingArgumentError.Flag = %q, want %q", missing.Flag, tt.wantFlag)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New("", "clip.mp3", "A, B", true, "", "", 0)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if cfg.RootAudioPath != DefaultRootAudioPath {
		t.Errorf("RootAudioPath = %q, want %q", cfg.RootAudioPath, DefaultRootAudioPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ChunkFrames != DefaultChunkFrames {
		t.Errorf("ChunkFrames = %d, want %d", cfg.ChunkFrames, DefaultChunkFrames)
	}
	if !cfg.NoUI {
		t.Error("NoUI = false, want true")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(cfg.Devices, want) {
		t.Errorf("Devices = %q, want %q", cfg.Devices, want)
	}
}

func TestNew_NegativeChunkFrames(t *testing.T) {
	_, err := New("audios", "clip.mp3", "A", false, "info", "", -1)
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("New() error = %v, want *InvalidArgumentError", err)
	}
	if invalid.Flag != "chunk-frames" || invalid.Value != "-1" {
		t.Errorf("InvalidArgumentError = %+v, want flag chunk-frames value -1", invalid)
	}
	if want := "invalid --chunk-frames -1: must not be negative"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConfig_AudioPath(t *testing.T) {
	cfg, err := New("sounds", "intro.mp3", "A", false, "info", "", 1024)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	want := filepath.Join("sounds", "intro.mp3")
	if got := cfg.AudioPath(); got != want {
		t.Errorf("AudioPath() = %q, want %q", got, want)
	}
}
