package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/gocrypt/internal/transform"
)

// Copy transforms everything from src into dst and returns the number of bytes written.
// It finalizes and closes t; t cannot be reused afterwards.
func Copy(dst io.Writer, src io.Reader, t *transform.Transform) (int64, error) {
	defer t.Close()

	in := getBuffer(ChunkSize)
	defer putBuffer(in)

	out := getBuffer(outputSize(ChunkSize, t.BlockSize()))
	defer putBuffer(out)

	var written int64

	emit := func(b []byte) error {
		n, err := dst.Write(b)
		written += int64(n)

		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	for {
		n, rerr := src.Read(in)

		if n > 0 {
			produced, err := t.Transform(out, in[:n])
			if err != nil {
				return written, err
			}

			if err := emit(out[:produced]); err != nil {
				return written, err
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return written, fmt.Errorf("reading input: %w", rerr)
		}
	}

	tail, err := t.Finalize(out)
	if err != nil {
		return written, err
	}

	return written, emit(out[:tail])
}
