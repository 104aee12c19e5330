package transform

import (
	"crypto/cipher"
	"fmt"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

// backend is the running cipher state owned by exactly one Transform.
// update and final report failure through ok=false after pushing diagnostics to the queue.
type backend interface {
	update(dst, src []byte) (n int, ok bool)
	final(dst []byte) (n int, ok bool)
	cleanup()
}

func newBackend(c algorithm.Cipher, key, iv []byte, dir Direction, padding bool, queue *cryptoerr.Queue) (backend, bool) {
	if c.Mode == algorithm.ModeStream {
		stream, err := c.NewStream(key, iv)
		if err != nil {
			queue.Push(fmt.Errorf("initialising %s: %w", c.Name, err))

			return nil, false
		}

		return &streamBackend{stream: stream}, true
	}

	block, err := c.NewBlock(key)
	if err != nil {
		queue.Push(fmt.Errorf("initialising %s: %w", c.Name, err))

		return nil, false
	}

	var mode cipher.BlockMode

	switch c.Mode {
	case algorithm.ModeCTR:
		return &streamBackend{stream: cipher.NewCTR(block, iv)}, true
	case algorithm.ModeCBC:
		if dir == Encrypt {
			mode = cipher.NewCBCEncrypter(block, iv)
		} else {
			mode = cipher.NewCBCDecrypter(block, iv)
		}
	case algorithm.ModeECB:
		mode = newECB(block, dir == Decrypt)
	default:
		queue.Push(fmt.Errorf("initialising %s: unsupported mode %s", c.Name, c.Mode))

		return nil, false
	}

	if mode.BlockSize() != c.BlockSize {
		queue.Push(fmt.Errorf("initialising %s: primitive block size %d, descriptor says %d",
			c.Name, mode.BlockSize(), c.BlockSize))

		return nil, false
	}

	return &blockBackend{
		mode:    mode,
		size:    c.BlockSize,
		decrypt: dir == Decrypt,
		padding: padding,
		buf:     make([]byte, 0, c.BlockSize),
		queue:   queue,
	}, true
}

// blockBackend buffers partial blocks between calls.
// When decrypting with padding it also holds back the last full block, since only finalize
// knows whether that block carries the padding.
type blockBackend struct {
	mode    cipher.BlockMode
	size    int
	decrypt bool
	padding bool
	buf     []byte
	queue   *cryptoerr.Queue
}

func (b *blockBackend) update(dst, src []byte) (int, bool) {
	total := len(b.buf) + len(src)

	keep := total % b.size
	if b.decrypt && b.padding && keep == 0 && total > 0 {
		keep = b.size
	}

	ready := total - keep
	if ready == 0 {
		b.buf = append(b.buf, src...)

		return 0, true
	}

	written := 0

	if len(b.buf) > 0 {
		fill := b.size - len(b.buf)
		b.buf = append(b.buf, src[:fill]...)
		b.mode.CryptBlocks(dst[:b.size], b.buf)

		written = b.size
		src = src[fill:]
		b.buf = b.buf[:0]
	}

	direct := ready - written
	b.mode.CryptBlocks(dst[written:ready], src[:direct])

	b.buf = append(b.buf, src[direct:]...)

	return ready, true
}

func (b *blockBackend) final(dst []byte) (int, bool) {
	if !b.padding {
		if len(b.buf) != 0 {
			b.queue.Push(fmt.Errorf("%w: %d bytes left over", cryptoerr.ErrDataNotMultipleOfBlockLength, len(b.buf)))

			return 0, false
		}

		return 0, true
	}

	if !b.decrypt {
		b.buf = pkcs7Pad(b.buf, b.size)
		b.mode.CryptBlocks(dst[:b.size], b.buf)
		b.buf = b.buf[:0]

		return b.size, true
	}

	if len(b.buf) != b.size {
		b.queue.Push(fmt.Errorf("%w: have %d bytes, need %d", cryptoerr.ErrWrongFinalBlockLength, len(b.buf), b.size))
		b.queue.Push(cryptoerr.ErrBadDecrypt)

		return 0, false
	}

	b.mode.CryptBlocks(b.buf, b.buf)

	data, ok := pkcs7Unpad(b.buf, b.size, b.queue)
	if !ok {
		b.queue.Push(cryptoerr.ErrBadDecrypt)

		return 0, false
	}

	n := copy(dst, data)
	clear(b.buf)
	b.buf = b.buf[:0]

	return n, true
}

func (b *blockBackend) cleanup() {
	clear(b.buf[:cap(b.buf)])
	b.buf = nil
	b.mode = nil
}

// streamBackend covers native stream ciphers and CTR: output always matches input length.
type streamBackend struct {
	stream cipher.Stream
}

func (s *streamBackend) update(dst, src []byte) (int, bool) {
	s.stream.XORKeyStream(dst[:len(src)], src)

	return len(src), true
}

func (s *streamBackend) final([]byte) (int, bool) {
	return 0, true
}

func (s *streamBackend) cleanup() {
	s.stream = nil
}
