package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/config"
	"github.com/linuxmatters/voiceactor/internal/device"
	"github.com/linuxmatters/voiceactor/internal/playback"
)

// Process exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitDecode      = 3
	ExitNoDevices   = 4
	ExitPlayback    = 5
	ExitInterrupted = 130
)

// ExitCode maps an error returned by a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		missing   *config.MissingArgumentError
		invalid   *config.InvalidArgumentError
		parseErr  *kong.ParseError
		decodeErr *audio.DecodeError
		noDevices *device.NoDevicesError
		openErr   *device.StreamOpenError
		playErr   *playback.PlaybackError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &missing), errors.As(err, &invalid), errors.As(err, &parseErr):
		return ExitUsage
	case errors.As(err, &decodeErr):
		return ExitDecode
	case errors.As(err, &noDevices):
		return ExitNoDevices
	case errors.As(err, &openErr), errors.As(err, &playErr):
		return ExitPlayback
	}
	return ExitFailure
}
