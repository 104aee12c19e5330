// Package signature implements digest-then-sign over RSA keys.
//
// An Engine accumulates a message, digests it once and signs that digest once. Both results are
// memoized until Reset. Reusing an Engine for a second message without Reset keeps returning
// the first message's digest and signature; Update refuses new input in that state so the
// mistake surfaces as ErrDigestSealed instead of a silently wrong signature.
package signature

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
	"github.com/idelchi/gocrypt/internal/digest"
	"github.com/idelchi/gocrypt/internal/keymaterial"
)

// State is the position of an Engine in its digest/sign lifecycle.
type State byte

const (
	// StateInit means no input has been accumulated since construction or Reset.
	StateInit State = iota
	// StateAccumulating means Update was called at least once.
	StateAccumulating
	// StateDigested means the digest is computed and cached.
	StateDigested
	// StateSigned means the signature is computed and cached as well.
	StateSigned
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAccumulating:
		return "accumulating"
	case StateDigested:
		return "digested"
	case StateSigned:
		return "signed"
	default:
		return fmt.Sprintf("state(%d)", byte(s))
	}
}

var (
	// ErrDigestSealed is returned by Update once the digest was computed. Call Reset first.
	ErrDigestSealed = errors.New("digest already computed; reset before updating")
	// ErrNilKey is returned by New without key material.
	ErrNilKey = errors.New("nil rsa key")
)

// Engine binds one digest family to one RSA key.
// It is not safe for concurrent use.
type Engine struct {
	key       *keymaterial.RSA
	desc      algorithm.Digest
	hash      digest.Algorithm
	state     State
	digest    []byte
	signature []byte
	queue     cryptoerr.Queue
}

// New returns an engine in StateInit. The key is borrowed for the engine's lifetime.
func New(key *keymaterial.RSA, d algorithm.Digest) (*Engine, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("creating signature engine: %w", err)
	}

	if !d.Hash.Available() {
		return nil, &cryptoerr.UnsupportedAlgorithmError{Kind: "signature digest", Name: d.Name}
	}

	return &Engine{
		key:  key,
		desc: d,
		hash: digest.New(d),
	}, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// DigestName returns the bound digest family.
func (e *Engine) DigestName() string {
	return e.desc.Name
}

// DigestSize returns the digest length in bytes.
func (e *Engine) DigestSize() int {
	return e.hash.Size()
}

// Update appends p to the message. Once the digest is cached it fails with ErrDigestSealed.
func (e *Engine) Update(p []byte) error {
	if e.state >= StateDigested {
		return ErrDigestSealed
	}

	e.hash.Update(p)
	e.state = StateAccumulating

	return nil
}

// Write makes the engine an io.Writer over Update.
func (e *Engine) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Digest finalizes the accumulated input on first use and returns a copy of the cached digest.
func (e *Engine) Digest() []byte {
	return append([]byte(nil), e.ensureDigest()...)
}

func (e *Engine) ensureDigest() []byte {
	if e.state < StateDigested {
		e.digest = e.hash.Finish()
		e.state = StateDigested
	}

	return e.digest
}

// Signature signs the digest with the private key on first use and returns a copy of the
// cached signature. Missing or malformed private material yields *cryptoerr.SigningError.
func (e *Engine) Signature() ([]byte, error) {
	if e.state == StateSigned {
		return append([]byte(nil), e.signature...), nil
	}

	priv, err := e.key.Private()
	if err != nil {
		return nil, &cryptoerr.SigningError{Err: err}
	}

	if err := priv.Validate(); err != nil {
		return nil, &cryptoerr.SigningError{Err: fmt.Errorf("malformed private key: %w", err)}
	}

	sum := e.ensureDigest()

	out := make([]byte, 0, e.key.Size())

	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, e.desc.Hash, sum)
	if err != nil {
		e.queue.Push(err)

		return nil, e.queue.Drain("sign")
	}

	e.signature = append(out, sig...)
	e.state = StateSigned

	return append([]byte(nil), e.signature...), nil
}

// Verify checks candidate against the digest, computing the digest first if needed.
// A signature that does not match is a normal false result. Only unusable public key
// material is reported as an error. candidate is never modified or retained.
func (e *Engine) Verify(candidate []byte) (bool, error) {
	pub := e.key.Public()
	if pub == nil || pub.N == nil || pub.E < 2 {
		e.queue.Push(cryptoerr.ErrInvalidPublicKey)

		return false, e.queue.Drain("verify")
	}

	sum := e.ensureDigest()

	if len(candidate) != pub.Size() {
		return false, nil
	}

	sig := append([]byte(nil), candidate...)

	return rsa.VerifyPKCS1v15(pub, e.desc.Hash, sum, sig) == nil, nil
}

// Reset drops the cached digest and signature and clears accumulated input.
func (e *Engine) Reset() {
	e.hash.Reset()
	clear(e.digest)
	e.digest = nil
	e.signature = nil
	e.state = StateInit
}
