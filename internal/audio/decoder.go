package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder turns an encoded clip into a complete PCM buffer.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Buffer, error)
}

// decoders maps lower-case file extensions to their decoder.
var decoders = map[string]Decoder{
	".mp3":  MP3Decoder{},
	".wav":  WAVDecoder{},
	".flac": FLACDecoder{},
}

// DecodeError reports a clip that could not be loaded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SupportedExtensions lists the file extensions Decode accepts.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Decode loads and fully decodes the clip at path, choosing the decoder from
// the file extension. Every failure is returned as a *DecodeError.
func Decode(path string) (*Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	log.Debugf("Decoded %s: %s, %d frames (%v)", path, buf.Format(), buf.Frames(), buf.Duration())
	return buf, nil
}
