package device

import (
	"context"

	"github.com/linuxmatters/voiceactor/internal/audio"
)

// OpenStreams opens one output stream per index, in order. Streams use the
// clip's sample width and channel count and the device's own default rate.
//
// The batch is all or nothing: if any open fails, or ctx is cancelled between
// opens, every stream opened so far is stopped and closed before the error is
// returned. On success the caller owns every returned stream.
func OpenStreams(ctx context.Context, indexes []int, format audio.Format, inv Inventory) ([]Output, error) {
	if len(indexes) == 0 {
		return nil, &NoDevicesError{Format: format}
	}

	outputs := make([]Output, 0, len(indexes))
	ok := false
	defer func() {
		if !ok {
			release(outputs)
		}
	}()

	for _, index := range indexes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Look the device up again rather than trusting the resolver's view
		d, err := inv.Descriptor(index)
		if err != nil {
			return nil, &StreamOpenError{Index: index, Err: err}
		}

		stream, err := inv.OpenStream(StreamConfig{
			DeviceIndex: index,
			SampleWidth: format.SampleWidth,
			Channels:    format.Channels,
			SampleRate:  d.SampleRate(),
		})
		if err == nil && stream == nil {
			err = ErrNilStream
		}
		if err != nil {
			return nil, &StreamOpenError{Index: index, Name: d.Name, Err: err}
		}

		log.Debugf("Opened stream on %v", d)
		outputs = append(outputs, Output{Device: d, Stream: stream})
	}

	ok = true
	return outputs, nil
}

// release stops and closes streams from a batch that will not be played.
func release(outputs []Output) {
	for _, out := range outputs {
		if err := out.Stream.Stop(); err != nil {
			log.Warnf("Failed to stop stream on %v: %v", out.Device, err)
		}
		if err := out.Stream.Close(); err != nil {
			log.Warnf("Failed to close stream on %v: %v", out.Device, err)
		}
	}
	if len(outputs) > 0 {
		log.Debugf("Released %d partially opened streams", len(outputs))
	}
}
