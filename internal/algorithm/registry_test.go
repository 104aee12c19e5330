package algorithm_test

import (
	"crypto"
	"errors"
	"testing"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

func TestDefaultRegistryCiphers(t *testing.T) {
	t.Parallel()

	reg := algorithm.Default()

	tests := []struct {
		name      string
		canonical string
		keySize   int
		ivSize    int
		blockSize int
		mode      algorithm.Mode
	}{
		{"aes-128-cbc", "aes-128-cbc", 16, 16, 16, algorithm.ModeCBC},
		{"AES-256", "aes-256-cbc", 32, 16, 16, algorithm.ModeCBC},
		{"aes-192-ecb", "aes-192-ecb", 24, 0, 16, algorithm.ModeECB},
		{"aes-128-ctr", "aes-128-ctr", 16, 16, 1, algorithm.ModeCTR},
		{"des", "des-cbc", 8, 8, 8, algorithm.ModeCBC},
		{"des3", "des-ede3-cbc", 24, 8, 8, algorithm.ModeCBC},
		{"bf", "bf-cbc", 16, 8, 8, algorithm.ModeCBC},
		{"cast5", "cast5-cbc", 16, 8, 8, algorithm.ModeCBC},
		{"chacha20", "chacha20", 32, 12, 1, algorithm.ModeStream},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := reg.Cipher(tc.name)
			if err != nil {
				t.Fatalf("Cipher(%q) error: %v", tc.name, err)
			}

			if c.Name != tc.canonical || c.KeySize != tc.keySize || c.IVSize != tc.ivSize ||
				c.BlockSize != tc.blockSize || c.Mode != tc.mode {
				t.Errorf("Cipher(%q) = {%s key=%d iv=%d block=%d mode=%s}, want {%s key=%d iv=%d block=%d mode=%s}",
					tc.name, c.Name, c.KeySize, c.IVSize, c.BlockSize, c.Mode,
					tc.canonical, tc.keySize, tc.ivSize, tc.blockSize, tc.mode)
			}
		})
	}
}

func TestDefaultRegistryDigests(t *testing.T) {
	t.Parallel()

	reg := algorithm.Default()

	tests := []struct {
		name string
		size int
		hash crypto.Hash
	}{
		{"md5", 16, crypto.MD5},
		{"sha1", 20, crypto.SHA1},
		{"SHA-256", 32, crypto.SHA256},
		{"sha512", 64, crypto.SHA512},
		{"ripemd160", 20, crypto.RIPEMD160},
	}

	for _, tc := range tests {
		d, err := reg.Digest(tc.name)
		if err != nil {
			t.Fatalf("Digest(%q) error: %v", tc.name, err)
		}

		if d.Size != tc.size || d.Hash != tc.hash {
			t.Errorf("Digest(%q) = {size=%d hash=%v}, want {size=%d hash=%v}", tc.name, d.Size, d.Hash, tc.size, tc.hash)
		}

		if got := len(d.New().Sum(nil)); got != tc.size {
			t.Errorf("Digest(%q).New() produced %d bytes, want %d", tc.name, got, tc.size)
		}
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	reg := algorithm.NewDefaultRegistry()

	_, err := reg.Cipher("rot13")

	var unsupported *cryptoerr.UnsupportedAlgorithmError
	if !errors.As(err, &unsupported) || unsupported.Kind != "cipher" {
		t.Errorf("Cipher(rot13) error = %v, want UnsupportedAlgorithmError", err)
	}

	_, err = reg.Digest("md4")
	if !errors.As(err, &unsupported) || unsupported.Kind != "digest" {
		t.Errorf("Digest(md4) error = %v, want UnsupportedAlgorithmError", err)
	}
}

func TestRegistryIsolation(t *testing.T) {
	t.Parallel()

	reg := algorithm.NewRegistry()

	if _, err := reg.Cipher("aes-128-cbc"); err == nil {
		t.Fatal("empty registry resolved aes-128-cbc")
	}

	aes, err := algorithm.Default().Cipher("aes-128-cbc")
	if err != nil {
		t.Fatal(err)
	}

	aes.Name = "Custom-AES"
	if err := reg.RegisterCipher(aes); err != nil {
		t.Fatalf("RegisterCipher() error: %v", err)
	}

	if err := reg.RegisterAlias("mine", "custom-aes"); err != nil {
		t.Fatalf("RegisterAlias() error: %v", err)
	}

	if c, err := reg.Cipher("MINE"); err != nil || c.Name != "custom-aes" {
		t.Errorf("Cipher(MINE) = %q, %v", c.Name, err)
	}

	if err := reg.RegisterAlias("dangling", "nothing"); err == nil {
		t.Error("RegisterAlias() accepted an unregistered target")
	}

	if len(reg.Ciphers()) != 1 {
		t.Errorf("Ciphers() = %d entries, want 1", len(reg.Ciphers()))
	}
}

func TestRegisterRejectsInvalidDescriptor(t *testing.T) {
	t.Parallel()

	reg := algorithm.NewRegistry()

	err := reg.RegisterCipher(algorithm.Cipher{Name: "broken", KeySize: 16, BlockSize: 16})
	if !errors.Is(err, algorithm.ErrInvalidDescriptor) {
		t.Errorf("RegisterCipher() error = %v, want ErrInvalidDescriptor", err)
	}

	err = reg.RegisterDigest(algorithm.Digest{Name: "broken", Size: 16})
	if !errors.Is(err, algorithm.ErrInvalidDescriptor) {
		t.Errorf("RegisterDigest() error = %v, want ErrInvalidDescriptor", err)
	}
}

func TestListingIsSorted(t *testing.T) {
	t.Parallel()

	ciphers := algorithm.Default().Ciphers()
	for i := 1; i < len(ciphers); i++ {
		if ciphers[i-1].Name >= ciphers[i].Name {
			t.Fatalf("Ciphers() not sorted at %d: %q >= %q", i, ciphers[i-1].Name, ciphers[i].Name)
		}
	}

	if got := len(algorithm.Default().Digests()); got != 7 {
		t.Errorf("Digests() = %d entries, want 7", got)
	}
}
