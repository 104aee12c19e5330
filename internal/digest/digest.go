// Package digest adapts hash constructors from the algorithm table to the
// accumulate-then-finish shape the signature engine consumes.
package digest

import (
	"hash"

	"github.com/idelchi/gocrypt/internal/algorithm"
)

// Algorithm accumulates input and produces a fixed-size digest.
type Algorithm interface {
	// Name returns the canonical digest name.
	Name() string
	// Size returns the digest length in bytes.
	Size() int
	// Update appends p to the accumulated input.
	Update(p []byte)
	// Finish returns the digest of everything accumulated and resets the state.
	Finish() []byte
	// Reset discards accumulated input.
	Reset()
}

type hashAlgorithm struct {
	name string
	h    hash.Hash
}

// New returns an Algorithm backed by d's hash constructor.
func New(d algorithm.Digest) Algorithm {
	return &hashAlgorithm{name: d.Name, h: d.New()}
}

func (a *hashAlgorithm) Name() string { return a.name }

func (a *hashAlgorithm) Size() int { return a.h.Size() }

func (a *hashAlgorithm) Update(p []byte) {
	// hash.Hash.Write never returns an error.
	_, _ = a.h.Write(p)
}

func (a *hashAlgorithm) Finish() []byte {
	sum := a.h.Sum(nil)
	a.h.Reset()

	return sum
}

func (a *hashAlgorithm) Reset() { a.h.Reset() }
