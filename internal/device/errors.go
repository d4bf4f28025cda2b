package device

import (
	"errors"
	"fmt"

	"github.com/linuxmatters/voiceactor/internal/audio"
)

// ErrNilStream is reported when the audio subsystem returns neither a stream
// nor an error.
var ErrNilStream = errors.New("audio subsystem returned no stream")

// NoDevicesError is returned when there is nothing to open: no requested
// device name matched a compatible device.
type NoDevicesError struct {
	Format audio.Format
}

func (e *NoDevicesError) Error() string {
	return fmt.Sprintf("no compatible output devices found for %s", e.Format)
}

// StreamOpenError reports the device whose stream could not be opened.
type StreamOpenError struct {
	Index int
	Name  string
	Err   error
}

func (e *StreamOpenError) Error() string {
	return fmt.Sprintf("failed to open stream on device %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StreamOpenError) Unwrap() error {
	return e.Err
}
