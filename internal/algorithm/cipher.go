package algorithm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/chacha20"
)

// Mode selects how a Cipher drives its primitive.
type Mode byte

const (
	// ModeCBC chains blocks and pads the final block.
	ModeCBC Mode = iota
	// ModeECB encrypts each block independently and pads the final block.
	ModeECB
	// ModeCTR turns a block cipher into a key stream.
	ModeCTR
	// ModeStream is a native stream cipher.
	ModeStream
)

func (m Mode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeECB:
		return "ecb"
	case ModeCTR:
		return "ctr"
	case ModeStream:
		return "stream"
	default:
		return fmt.Sprintf("mode(%d)", byte(m))
	}
}

// Padded reports whether the mode buffers partial blocks and pads on finalize.
func (m Mode) Padded() bool {
	return m == ModeCBC || m == ModeECB
}

// Cipher describes a symmetric algorithm: its sizes and how to build the backend primitive.
// Block modes use NewBlock, ModeStream uses NewStream.
type Cipher struct {
	// Name is the canonical lowercase identifier, e.g. "aes-128-cbc".
	Name string
	// KeySize is the required key length in bytes.
	KeySize int
	// IVSize is the required IV (or nonce) length in bytes, 0 when the mode takes none.
	IVSize int
	// BlockSize is the transform granularity in bytes, 1 for stream ciphers and CTR.
	BlockSize int
	Mode      Mode

	NewBlock  func(key []byte) (cipher.Block, error)
	NewStream func(key, iv []byte) (cipher.Stream, error)
}

// Validate checks that the descriptor is internally consistent.
func (c Cipher) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: empty cipher name", ErrInvalidDescriptor)
	case c.KeySize <= 0:
		return fmt.Errorf("%w: %s: key size must be positive", ErrInvalidDescriptor, c.Name)
	case c.IVSize < 0:
		return fmt.Errorf("%w: %s: negative iv size", ErrInvalidDescriptor, c.Name)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: %s: block size must be positive", ErrInvalidDescriptor, c.Name)
	case c.Mode == ModeStream && c.NewStream == nil:
		return fmt.Errorf("%w: %s: stream cipher without constructor", ErrInvalidDescriptor, c.Name)
	case c.Mode != ModeStream && c.NewBlock == nil:
		return fmt.Errorf("%w: %s: block cipher without constructor", ErrInvalidDescriptor, c.Name)
	case c.Mode.Padded() && c.BlockSize > 255:
		return fmt.Errorf("%w: %s: block size too large for PKCS#7", ErrInvalidDescriptor, c.Name)
	}

	return nil
}

func newAES(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key) //nolint:wrapcheck
}

func newDES(key []byte) (cipher.Block, error) {
	return des.NewCipher(key) //nolint:wrapcheck
}

func newTripleDES(key []byte) (cipher.Block, error) {
	return des.NewTripleDESCipher(key) //nolint:wrapcheck
}

func newBlowfish(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key) //nolint:wrapcheck
}

func newCAST5(key []byte) (cipher.Block, error) {
	return cast5.NewCipher(key) //nolint:wrapcheck
}

func newChaCha20(key, nonce []byte) (cipher.Stream, error) {
	return chacha20.NewUnauthenticatedCipher(key, nonce) //nolint:wrapcheck
}

// builtinCiphers returns the cipher table shipped with the default registry.
func builtinCiphers() []Cipher {
	ciphers := make([]Cipher, 0, 14) //nolint:mnd

	for _, bits := range []int{128, 192, 256} {
		keySize := bits / 8

		ciphers = append(ciphers,
			Cipher{
				Name: fmt.Sprintf("aes-%d-cbc", bits), KeySize: keySize, IVSize: aes.BlockSize,
				BlockSize: aes.BlockSize, Mode: ModeCBC, NewBlock: newAES,
			},
			Cipher{
				Name: fmt.Sprintf("aes-%d-ecb", bits), KeySize: keySize, IVSize: 0,
				BlockSize: aes.BlockSize, Mode: ModeECB, NewBlock: newAES,
			},
			Cipher{
				Name: fmt.Sprintf("aes-%d-ctr", bits), KeySize: keySize, IVSize: aes.BlockSize,
				BlockSize: 1, Mode: ModeCTR, NewBlock: newAES,
			},
		)
	}

	return append(ciphers,
		Cipher{
			Name: "des-cbc", KeySize: 8, IVSize: des.BlockSize,
			BlockSize: des.BlockSize, Mode: ModeCBC, NewBlock: newDES,
		},
		Cipher{
			Name: "des-ede3-cbc", KeySize: 24, IVSize: des.BlockSize,
			BlockSize: des.BlockSize, Mode: ModeCBC, NewBlock: newTripleDES,
		},
		Cipher{
			Name: "bf-cbc", KeySize: 16, IVSize: blowfish.BlockSize,
			BlockSize: blowfish.BlockSize, Mode: ModeCBC, NewBlock: newBlowfish,
		},
		Cipher{
			Name: "cast5-cbc", KeySize: cast5.KeySize, IVSize: cast5.BlockSize,
			BlockSize: cast5.BlockSize, Mode: ModeCBC, NewBlock: newCAST5,
		},
		Cipher{
			Name: "chacha20", KeySize: chacha20.KeySize, IVSize: chacha20.NonceSize,
			BlockSize: 1, Mode: ModeStream, NewStream: newChaCha20,
		},
	)
}

// builtinCipherAliases maps short names to canonical cipher names.
func builtinCipherAliases() map[string]string {
	return map[string]string{
		"aes-128": "aes-128-cbc",
		"aes-192": "aes-192-cbc",
		"aes-256": "aes-256-cbc",
		"aes128":  "aes-128-cbc",
		"aes192":  "aes-192-cbc",
		"aes256":  "aes-256-cbc",
		"des":     "des-cbc",
		"des3":    "des-ede3-cbc",
		"bf":      "bf-cbc",
		"cast5":   "cast5-cbc",
	}
}
