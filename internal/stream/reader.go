package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/transform"
)

// Reader yields the transformed contents of an underlying reader.
// The transform is finalized when the source reports io.EOF.
type Reader struct {
	r       io.Reader
	t       *transform.Transform
	in      []byte
	out     []byte
	pending []byte
	done    bool
	err     error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, t *transform.Transform) *Reader {
	return &Reader{
		r:   r,
		t:   t,
		in:  getBuffer(ChunkSize),
		out: getBuffer(outputSize(ChunkSize, t.BlockSize())),
	}
}

// Read implements io.Reader.
func (sr *Reader) Read(p []byte) (int, error) {
	for len(sr.pending) == 0 {
		if sr.err != nil {
			return 0, sr.err
		}

		sr.fill()
	}

	n := copy(p, sr.pending)
	sr.pending = sr.pending[n:]

	return n, nil
}

// fill pulls one chunk from the source and transforms it.
// At EOF it appends the finalized tail and arranges for io.EOF once pending drains.
func (sr *Reader) fill() {
	n, rerr := sr.r.Read(sr.in)

	produced, err := sr.t.Transform(sr.out, sr.in[:n])
	if err != nil {
		sr.finish(err)

		return
	}

	switch {
	case errors.Is(rerr, io.EOF):
		tail, err := sr.t.Finalize(sr.out[produced:])
		if err != nil {
			sr.finish(err)

			return
		}

		sr.pending = sr.out[:produced+tail]
		sr.finish(io.EOF)
	case rerr != nil:
		sr.finish(fmt.Errorf("reading input: %w", rerr))
	default:
		sr.pending = sr.out[:produced]
	}
}

// finish records the terminal error and releases the transform. Buffers stay alive while
// pending output is still being read.
func (sr *Reader) finish(err error) {
	sr.err = err
	sr.done = true
	_ = sr.t.Close()
}

// Close releases the transform and the pooled buffers. Unread output is discarded.
func (sr *Reader) Close() error {
	if !sr.done {
		sr.finish(ErrClosed)
	}

	for _, buf := range [][]byte{sr.in, sr.out} {
		if buf != nil {
			putBuffer(buf)
		}
	}

	sr.in, sr.out, sr.pending = nil, nil, nil

	if errors.Is(sr.err, ErrClosed) || errors.Is(sr.err, io.EOF) {
		return nil
	}

	return sr.err
}
