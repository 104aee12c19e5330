package algorithm

import (
	"crypto"
	"crypto/md5" //nolint:gosec // MD5 is one of the supported digest families.
	"fmt"
	"hash"

	"github.com/tink-crypto/tink-go/v2/subtle"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // Kept for compatibility with existing signatures.
)

// Digest describes a hash family and the identifier used when signing its output.
type Digest struct {
	// Name is the canonical lowercase identifier, e.g. "sha1".
	Name string
	// Size is the digest length in bytes.
	Size int
	// Hash is the signature-algorithm identifier bound to this digest.
	Hash crypto.Hash
	New  func() hash.Hash
}

// Validate checks that the descriptor is internally consistent.
func (d Digest) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: empty digest name", ErrInvalidDescriptor)
	case d.New == nil:
		return fmt.Errorf("%w: %s: digest without constructor", ErrInvalidDescriptor, d.Name)
	case d.Size <= 0:
		return fmt.Errorf("%w: %s: digest size must be positive", ErrInvalidDescriptor, d.Name)
	}

	return nil
}

// Well-known digest names.
const (
	MD5       = "md5"
	SHA1      = "sha1"
	SHA224    = "sha224"
	SHA256    = "sha256"
	SHA384    = "sha384"
	SHA512    = "sha512"
	RIPEMD160 = "ripemd160"
)

// builtinDigests returns the digest table shipped with the default registry.
// The SHA family is resolved through tink's hash table so both share one set of names.
func builtinDigests() []Digest {
	digests := []Digest{
		{Name: MD5, Size: md5.Size, Hash: crypto.MD5, New: md5.New},
		{Name: RIPEMD160, Size: ripemd160.Size, Hash: crypto.RIPEMD160, New: ripemd160.New},
	}

	sha := []struct {
		name     string
		tinkName string
		hash     crypto.Hash
	}{
		{SHA1, "SHA1", crypto.SHA1},
		{SHA224, "SHA224", crypto.SHA224},
		{SHA256, "SHA256", crypto.SHA256},
		{SHA384, "SHA384", crypto.SHA384},
		{SHA512, "SHA512", crypto.SHA512},
	}

	for _, s := range sha {
		newHash := subtle.GetHashFunc(s.tinkName)
		if newHash == nil {
			continue
		}

		digests = append(digests, Digest{Name: s.name, Size: s.hash.Size(), Hash: s.hash, New: newHash})
	}

	return digests
}

func builtinDigestAliases() map[string]string {
	return map[string]string{
		"sha-1":   SHA1,
		"sha-224": SHA224,
		"sha-256": SHA256,
		"sha-384": SHA384,
		"sha-512": SHA512,
		"rmd160":  RIPEMD160,
	}
}
