package audio

import "io"

// Reader is an independent read cursor over a Buffer. Readers never block and
// never touch each other's position; the underlying payload is shared.
type Reader struct {
	buf *Buffer
	pos int // byte offset, always frame aligned after ReadFrames
}

// ReadFrames returns the next n frames (or fewer at the end of the buffer)
// without copying. The returned slice aliases the buffer and must not be
// modified. It returns io.EOF once every byte has been consumed.
func (r *Reader) ReadFrames(n int) ([]byte, error) {
	if r.pos >= len(r.buf.data) {
		return nil, io.EOF
	}
	if n <= 0 {
		return nil, nil
	}

	end := r.pos + n*r.buf.format.FrameSize()
	if end > len(r.buf.data) {
		end = len(r.buf.data)
	}

	chunk := r.buf.data[r.pos:end]
	r.pos = end
	return chunk, nil
}

// Remaining returns the number of bytes not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.buf.data) - r.pos
}
