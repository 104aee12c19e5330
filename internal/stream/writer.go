// Package stream drives a transform.Transform from io.Reader and io.Writer plumbing.
//
// Every adapter here owns the transform it is given: it finalizes it exactly once and closes
// it on every path, including errors.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/transform"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("stream closed")

// Writer transforms everything written to it and forwards the result to an underlying writer.
// Close must be called to flush the final block.
type Writer struct {
	w      io.Writer
	t      *transform.Transform
	out    []byte
	closed bool
	err    error
}

// NewWriter returns a Writer that transforms into w.
func NewWriter(w io.Writer, t *transform.Transform) *Writer {
	return &Writer{
		w:   w,
		t:   t,
		out: getBuffer(outputSize(ChunkSize, t.BlockSize())),
	}
}

// Write implements io.Writer. It reports len(p) once all of p was consumed by the transform;
// up to one block may still be held back until Close.
func (sw *Writer) Write(p []byte) (int, error) {
	if sw.closed {
		return 0, ErrClosed
	}

	if sw.err != nil {
		return 0, sw.err
	}

	consumed := 0

	for len(p) > 0 {
		chunk := p[:min(len(p), ChunkSize)]

		n, err := sw.t.Transform(sw.out, chunk)
		if err != nil {
			sw.fail(err)

			return consumed, sw.err
		}

		if _, err := sw.w.Write(sw.out[:n]); err != nil {
			sw.fail(fmt.Errorf("writing transformed data: %w", err))

			return consumed, sw.err
		}

		consumed += len(chunk)
		p = p[len(chunk):]
	}

	return consumed, nil
}

// Close finalizes the transform, writes the last block and releases the transform.
// Calling Close again returns the first result.
func (sw *Writer) Close() error {
	if sw.closed {
		return sw.err
	}

	sw.closed = true

	defer sw.release()

	if sw.err != nil {
		return sw.err
	}

	n, err := sw.t.Finalize(sw.out)
	if err != nil {
		sw.err = err

		return err
	}

	if _, err := sw.w.Write(sw.out[:n]); err != nil {
		sw.err = fmt.Errorf("writing final block: %w", err)
	}

	return sw.err
}

func (sw *Writer) fail(err error) {
	sw.err = err
	sw.release()
}

func (sw *Writer) release() {
	_ = sw.t.Close()

	if sw.out != nil {
		putBuffer(sw.out)
		sw.out = nil
	}
}
