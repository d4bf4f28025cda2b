package playback

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/config"
	"github.com/linuxmatters/voiceactor/internal/device"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called from a playback goroutine after each chunk is
// written. stream is the position of the output in the slice passed to Play.
// Implementations must be safe for concurrent use.
type ProgressFunc func(stream, written, total int)

// Option configures Play.
type Option func(*options)

type options struct {
	chunkFrames int
	progress    ProgressFunc
}

// WithChunkFrames sets how many frames each blocking write carries.
func WithChunkFrames(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkFrames = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// Result is the outcome of playback on one output.
type Result struct {
	Output  device.Output
	Written int
	Elapsed time.Duration
	Err     error // nil or *WriteError
}

// Play writes the whole of buf to every output concurrently and waits for
// all of them. Play takes ownership of the streams: each one is stopped and
// closed exactly once, whatever happens to the others. A failure on one
// stream never interrupts the rest.
//
// The returned results line up with outputs. The error is nil when every
// stream completed, and a *PlaybackError otherwise.
func Play(buf *audio.Buffer, outputs []device.Output, opts ...Option) ([]Result, error) {
	o := options{chunkFrames: config.DefaultChunkFrames}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]Result, len(outputs))

	// Every task is launched before any is awaited. Tasks report through
	// their own results slot and always return nil so that a failure does
	// not cancel siblings.
	var g errgroup.Group
	for i, out := range outputs {
		g.Go(func() error {
			results[i] = play(i, buf, out, o)
			return nil
		})
	}
	_ = g.Wait()

	var failures []*WriteError
	for _, r := range results {
		var werr *WriteError
		if errors.As(r.Err, &werr) {
			failures = append(failures, werr)
		}
	}
	if len(failures) > 0 {
		return results, &PlaybackError{Failures: failures, Streams: len(outputs)}
	}
	return results, nil
}

// play runs on its own goroutine and owns out.Stream.
func play(i int, buf *audio.Buffer, out device.Output, o options) (res Result) {
	res.Output = out
	start := time.Now()

	fail := func(op string, err error) {
		// The first failure wins; release errors after a write error are
		// only logged
		if res.Err != nil {
			log.Warnf("Device %d (%s): %s after failure: %v", out.Device.Index, out.Device.Name, op, err)
			return
		}
		res.Err = &WriteError{
			Index:   out.Device.Index,
			Name:    out.Device.Name,
			Op:      op,
			Written: res.Written,
			Err:     err,
		}
	}

	defer func() {
		if err := out.Stream.Stop(); err != nil {
			fail(OpStop, err)
		}
		if err := out.Stream.Close(); err != nil {
			fail(OpClose, err)
		}
		res.Elapsed = time.Since(start)
		if res.Err != nil {
			log.Errorf("%v", res.Err)
		} else {
			log.Debugf("Device %d (%s): played %d bytes in %v",
				out.Device.Index, out.Device.Name, res.Written, res.Elapsed)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			fail(OpWrite, fmt.Errorf("panic: %v", r))
		}
	}()

	total := buf.Len()
	reader := buf.NewReader()
	for {
		chunk, err := reader.ReadFrames(o.chunkFrames)
		if err == io.EOF {
			break
		}

		n, err := out.Stream.Write(chunk)
		res.Written += n
		if err == nil && n < len(chunk) {
			err = io.ErrShortWrite
		}
		if err != nil {
			fail(OpWrite, err)
			log.Debugf("Device %d (%s): %d bytes left unplayed",
				out.Device.Index, out.Device.Name, reader.Remaining()+len(chunk)-n)
			return res
		}

		if o.progress != nil {
			o.progress(i, res.Written, total)
		}
	}

	return res
}
