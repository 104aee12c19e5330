// Package transform implements a streaming, block-oriented symmetric cipher transform.
//
// A Transform encrypts or decrypts an arbitrary sequence of Transform calls followed by exactly
// one Finalize. Partial blocks are buffered internally, so feeding input in any chunking yields
// the same output as feeding it at once. Block modes apply PKCS#7 padding on encryption and
// validate it on decryption.
//
// A Transform is single-use and not safe for concurrent use. Callers must Close it on every
// path, typically with defer; With does this for them.
package transform

import (
	"errors"
	"fmt"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
	"github.com/idelchi/gocrypt/internal/keymaterial"
)

// Direction is fixed at construction.
type Direction byte

const (
	// Encrypt turns plaintext into ciphertext.
	Encrypt Direction = iota
	// Decrypt turns ciphertext into plaintext.
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}

	return "encrypt"
}

// State tracks the transform lifecycle. There is no way back to an earlier state.
type State byte

const (
	// StateConstructed means no input has been processed yet.
	StateConstructed State = iota
	// StateTransforming means at least one Transform call was made.
	StateTransforming
	// StateFinalized means Finalize ran (or a call failed); no further processing is allowed.
	StateFinalized
	// StateClosed means the backend context was released.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateTransforming:
		return "transforming"
	case StateFinalized:
		return "finalized"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", byte(s))
	}
}

var (
	// ErrFinalized is returned by Transform and Finalize once the transform is terminal.
	ErrFinalized = errors.New("transform already finalized")
	// ErrClosed is returned by Transform and Finalize after Close.
	ErrClosed = errors.New("transform closed")
)

type options struct {
	padding bool
}

// Option configures a Transform.
type Option func(*options)

// WithPadding toggles PKCS#7 padding for block modes. It is on by default.
// Without padding, finalize fails unless the total input is block aligned.
func WithPadding(enabled bool) Option {
	return func(o *options) {
		o.padding = enabled
	}
}

// Transform is one encrypt or decrypt operation over a single key/IV.
type Transform struct {
	material  *keymaterial.Symmetric
	direction Direction
	blockSize int
	state     State
	backend   backend
	queue     cryptoerr.Queue
}

// New validates key and iv against c and initialises the cipher state for dir.
// Length mismatches are reported as *cryptoerr.InvalidKeyError.
func New(c algorithm.Cipher, key, iv []byte, dir Direction, opts ...Option) (*Transform, error) {
	material, err := keymaterial.NewSymmetric(c, key, iv)
	if err != nil {
		return nil, err
	}

	return newTransform(material, dir, opts)
}

// NewFromMaterial creates a transform from already validated material.
// The transform keeps its own copy, so m stays usable by the caller.
func NewFromMaterial(m *keymaterial.Symmetric, dir Direction, opts ...Option) (*Transform, error) {
	return newTransform(m.Clone(), dir, opts)
}

// NewEncryptor is New with the Encrypt direction.
func NewEncryptor(c algorithm.Cipher, key, iv []byte, opts ...Option) (*Transform, error) {
	return New(c, key, iv, Encrypt, opts...)
}

// NewDecryptor is New with the Decrypt direction.
func NewDecryptor(c algorithm.Cipher, key, iv []byte, opts ...Option) (*Transform, error) {
	return New(c, key, iv, Decrypt, opts...)
}

func newTransform(material *keymaterial.Symmetric, dir Direction, opts []Option) (*Transform, error) {
	cfg := options{padding: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Transform{
		material:  material,
		direction: dir,
		blockSize: material.Cipher().BlockSize,
	}

	key, iv := material.Key(), material.IV()
	defer clear(key)

	be, ok := newBackend(material.Cipher(), key, iv, dir, cfg.padding, &t.queue)
	if !ok {
		material.Wipe()

		return nil, t.queue.Fail("init")
	}

	t.backend = be

	return t, nil
}

// With runs fn with a fresh transform and releases it afterwards, whatever fn returns.
func With(c algorithm.Cipher, key, iv []byte, dir Direction, fn func(*Transform) error, opts ...Option) error {
	t, err := New(c, key, iv, dir, opts...)
	if err != nil {
		return err
	}

	defer t.Close()

	return fn(t)
}

// BlockSize returns the algorithm's block size in bytes, 1 for stream ciphers.
func (t *Transform) BlockSize() int {
	return t.blockSize
}

// Direction returns the direction chosen at construction.
func (t *Transform) Direction() Direction {
	return t.direction
}

// Cipher returns the algorithm descriptor.
func (t *Transform) Cipher() algorithm.Cipher {
	return t.material.Cipher()
}

// State returns the current lifecycle state.
func (t *Transform) State() State {
	return t.state
}

// MaxOutput returns the output capacity Transform requires for n input bytes.
func (t *Transform) MaxOutput(n int) int {
	return n + t.blockSize - 1
}

func (t *Transform) usable() error {
	switch t.state {
	case StateFinalized:
		return ErrFinalized
	case StateClosed:
		return ErrClosed
	default:
		return nil
	}
}

// Transform consumes src and writes the produced bytes to dst, returning the count written.
// The count may trail len(src) by up to one block; the remainder stays buffered for the next
// call or for Finalize. dst must hold at least len(src)+BlockSize()-1 bytes and must not overlap
// src. A smaller dst is a programming error and panics.
//
// On error the bytes written to dst are undefined and the transform becomes terminal.
func (t *Transform) Transform(dst, src []byte) (int, error) {
	if err := t.usable(); err != nil {
		return 0, err
	}

	if need := t.MaxOutput(len(src)); len(dst) < need {
		panic(fmt.Sprintf("transform: output buffer holds %d bytes, need at least %d", len(dst), need))
	}

	t.state = StateTransforming

	n, ok := t.backend.update(dst, src)
	if !ok {
		t.state = StateFinalized

		return 0, t.queue.Fail("transform")
	}

	return n, nil
}

// Finalize flushes the buffered partial block into dst, padding it when encrypting and
// validating and removing the padding when decrypting. dst must hold at least BlockSize()
// bytes; a smaller dst panics.
//
// A padding failure while decrypting means a wrong key, a wrong IV or corrupted ciphertext;
// it is reported as *cryptoerr.CryptoOperationError matching cryptoerr.ErrBadDecrypt.
// After Finalize returns, successful or not, the transform is terminal.
func (t *Transform) Finalize(dst []byte) (int, error) {
	if err := t.usable(); err != nil {
		return 0, err
	}

	if len(dst) < t.blockSize {
		panic(fmt.Sprintf("transform: finalize buffer holds %d bytes, need at least %d", len(dst), t.blockSize))
	}

	n, ok := t.backend.final(dst)

	t.state = StateFinalized

	if !ok {
		return 0, t.queue.Fail("finalize")
	}

	return n, nil
}

// Close releases the cipher context and wipes the key copies. It runs the cleanup exactly once
// and is safe to call again; it is valid whether or not Finalize was reached.
func (t *Transform) Close() error {
	if t.state == StateClosed {
		return nil
	}

	t.backend.cleanup()
	t.material.Wipe()
	t.state = StateClosed

	return nil
}
