// Package algorithm maps algorithm names to cipher and digest descriptors.
//
// A Registry is an explicit value: callers construct one (or use the lazily built Default) and
// pass it to whatever resolves names. Unknown names fail here with an UnsupportedAlgorithmError,
// before any key material reaches the cipher or signature code.
package algorithm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

// ErrInvalidDescriptor is returned when registering an inconsistent descriptor.
var ErrInvalidDescriptor = errors.New("invalid algorithm descriptor")

// Registry resolves cipher and digest names. Lookups are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	ciphers map[string]Cipher
	digests map[string]Digest
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ciphers: make(map[string]Cipher),
		digests: make(map[string]Digest),
		aliases: make(map[string]string),
	}
}

// NewDefaultRegistry returns a registry populated with the built-in ciphers and digests.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()

	for _, c := range builtinCiphers() {
		reg.mustRegister(reg.RegisterCipher(c))
	}

	for _, d := range builtinDigests() {
		reg.mustRegister(reg.RegisterDigest(d))
	}

	for alias, name := range builtinCipherAliases() {
		reg.mustRegister(reg.RegisterAlias(alias, name))
	}

	for alias, name := range builtinDigestAliases() {
		reg.mustRegister(reg.RegisterAlias(alias, name))
	}

	return reg
}

func (r *Registry) mustRegister(err error) {
	if err != nil {
		panic(fmt.Sprintf("registering built-in algorithm: %v", err))
	}
}

//nolint:gochecknoglobals // process-wide default, built once and never torn down
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry of built-in algorithms, building it on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})

	return defaultRegistry
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterCipher adds or replaces a cipher descriptor.
func (r *Registry) RegisterCipher(c Cipher) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.Name = normalize(c.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ciphers[c.Name] = c

	return nil
}

// RegisterDigest adds or replaces a digest descriptor.
func (r *Registry) RegisterDigest(d Digest) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.Name = normalize(d.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.digests[d.Name] = d

	return nil
}

// RegisterAlias makes alias resolve to the already registered cipher or digest name.
func (r *Registry) RegisterAlias(alias, name string) error {
	alias, name = normalize(alias), normalize(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, isCipher := r.ciphers[name]
	_, isDigest := r.digests[name]

	if !isCipher && !isDigest {
		return fmt.Errorf("alias %q: target %q is not registered", alias, name)
	}

	r.aliases[alias] = name

	return nil
}

func (r *Registry) resolve(name string) string {
	name = normalize(name)

	if target, ok := r.aliases[name]; ok {
		return target
	}

	return name
}

// Cipher resolves a cipher name or alias.
func (r *Registry) Cipher(name string) (Cipher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.ciphers[r.resolve(name)]
	if !ok {
		return Cipher{}, &cryptoerr.UnsupportedAlgorithmError{Kind: "cipher", Name: name}
	}

	return c, nil
}

// Digest resolves a digest name or alias.
func (r *Registry) Digest(name string) (Digest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.digests[r.resolve(name)]
	if !ok {
		return Digest{}, &cryptoerr.UnsupportedAlgorithmError{Kind: "digest", Name: name}
	}

	return d, nil
}

// Ciphers returns the registered cipher descriptors sorted by name.
func (r *Registry) Ciphers() []Cipher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Cipher, 0, len(r.ciphers))
	for _, c := range r.ciphers {
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b Cipher) int { return strings.Compare(a.Name, b.Name) })

	return out
}

// Digests returns the registered digest descriptors sorted by name.
func (r *Registry) Digests() []Digest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Digest, 0, len(r.digests))
	for _, d := range r.digests {
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b Digest) int { return strings.Compare(a.Name, b.Name) })

	return out
}
