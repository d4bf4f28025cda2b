package playback

import (
	"fmt"
	"strings"
)

// Stream operations that can fail during playback.
const (
	OpWrite = "write"
	OpStop  = "stop"
	OpClose = "close"
)

// WriteError reports a failure on one output stream.
type WriteError struct {
	Index   int // device index
	Name    string
	Op      string
	Written int // bytes accepted before the failure
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s stream on device %d (%s) after %d bytes: %v",
		e.Op, e.Index, e.Name, e.Written, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PlaybackError aggregates every stream that failed. Streams not listed
// played to completion.
type PlaybackError struct {
	Failures []*WriteError
	Streams  int
}

func (e *PlaybackError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("playback failed on %d of %d streams: %s",
		len(e.Failures), e.Streams, strings.Join(msgs, "; "))
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e *PlaybackError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
