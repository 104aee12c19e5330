// Package keymaterial holds already-parsed key material for the cipher and signature packages.
package keymaterial

import (
	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

// Symmetric is an immutable key/IV pair bound to one cipher.
// The bytes are copied on construction; callers may reuse their buffers.
type Symmetric struct {
	cipher algorithm.Cipher
	key    []byte
	iv     []byte
}

// NewSymmetric validates key and iv lengths against c and copies them.
// A mismatch is reported as *cryptoerr.InvalidKeyError.
func NewSymmetric(c algorithm.Cipher, key, iv []byte) (*Symmetric, error) {
	if len(key) != c.KeySize {
		return nil, &cryptoerr.InvalidKeyError{Algorithm: c.Name, Field: "key", Got: len(key), Want: c.KeySize}
	}

	if len(iv) != c.IVSize {
		return nil, &cryptoerr.InvalidKeyError{Algorithm: c.Name, Field: "iv", Got: len(iv), Want: c.IVSize}
	}

	return &Symmetric{
		cipher: c,
		key:    append([]byte(nil), key...),
		iv:     append([]byte(nil), iv...),
	}, nil
}

// Cipher returns the algorithm the material was validated against.
func (s *Symmetric) Cipher() algorithm.Cipher {
	return s.cipher
}

// Key returns a copy of the key bytes.
func (s *Symmetric) Key() []byte {
	return append([]byte(nil), s.key...)
}

// IV returns a copy of the IV bytes.
func (s *Symmetric) IV() []byte {
	return append([]byte(nil), s.iv...)
}

// Clone returns an independent copy.
func (s *Symmetric) Clone() *Symmetric {
	return &Symmetric{cipher: s.cipher, key: s.Key(), iv: s.IV()}
}

// Wipe zeroes the key and IV copies held by s.
func (s *Symmetric) Wipe() {
	clear(s.key)
	clear(s.iv)
}
