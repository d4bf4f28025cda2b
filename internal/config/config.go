package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults
const (
	DefaultRootAudioPath = "audios"
	DefaultLogLevel      = "info"
	DefaultChunkFrames   = 4096
)

// Spectrum settings for the playback display
const (
	FFTSize = 2048
	NumBars = 32
)

// Log file rotation
const (
	LogFileMaxRolls  = 3
	LogFileThreshold = 1024 // kB before rotating
)

// Config is the immutable run configuration, built once from the command line
// and passed down by value. Components never read flags or globals directly.
type Config struct {
	RootAudioPath string
	File          string
	Devices       []string
	NoUI          bool
	LogLevel      string
	LogFile       string
	ChunkFrames   int
}

// MissingArgumentError reports a required option that was not supplied.
type MissingArgumentError struct {
	Flag string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required option --%s", e.Flag)
}

// InvalidArgumentError reports an option whose value cannot be used.
type InvalidArgumentError struct {
	Flag   string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid --%s %s: %s", e.Flag, e.Value, e.Reason)
}

// New validates the playback options and returns the resulting Config.
// devices is the raw comma-separated list from the command line.
func New(rootAudioPath, file, devices string, noUI bool, logLevel, logFile string, chunkFrames int) (Config, error) {
	if strings.TrimSpace(file) == "" {
		return Config{}, &MissingArgumentError{Flag: "file"}
	}

	names := ParseDeviceNames(devices)
	if len(names) == 0 {
		return Config{}, &MissingArgumentError{Flag: "devices"}
	}

	if rootAudioPath == "" {
		rootAudioPath = DefaultRootAudioPath
	}
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if chunkFrames < 0 {
		return Config{}, &InvalidArgumentError{
			Flag:   "chunk-frames",
			Value:  strconv.Itoa(chunkFrames),
			Reason: "must not be negative",
		}
	}
	if chunkFrames == 0 {
		chunkFrames = DefaultChunkFrames
	}

	return Config{
		RootAudioPath: rootAudioPath,
		File:          file,
		Devices:       names,
		NoUI:          noUI,
		LogLevel:      logLevel,
		LogFile:       logFile,
		ChunkFrames:   chunkFrames,
	}, nil
}

// ParseDeviceNames splits a comma-separated device list, trimming whitespace
// around each entry and dropping entries that end up empty. Order and
// duplicates are preserved; deduplication happens during resolution.
func ParseDeviceNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// AudioPath is the clip location: the root audio path joined with the file.
func (c Config) AudioPath() string {
	return filepath.Join(c.RootAudioPath, c.File)
}
