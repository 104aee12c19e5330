package keymaterial

import (
	"crypto/rsa"
	"errors"
)

// ErrNoPrivateKey is returned when signing material is requested from a public-only key.
var ErrNoPrivateKey = errors.New("no private key material")

// RSA holds an RSA public key and, optionally, its private key.
type RSA struct {
	public  *rsa.PublicKey
	private *rsa.PrivateKey
}

// NewRSAPublic wraps public-only material. It supports verification.
func NewRSAPublic(pub *rsa.PublicKey) (*RSA, error) {
	if pub == nil || pub.N == nil {
		return nil, errors.New("rsa public key is missing its modulus")
	}

	return &RSA{public: pub}, nil
}

// NewRSAPrivate wraps a private key; the public half is taken from it.
func NewRSAPrivate(priv *rsa.PrivateKey) (*RSA, error) {
	if priv == nil || priv.N == nil {
		return nil, errors.New("rsa private key is missing its modulus")
	}

	return &RSA{public: &priv.PublicKey, private: priv}, nil
}

// Size returns the modulus length in bytes, which bounds the signature length.
func (k *RSA) Size() int {
	if k.public == nil || k.public.N == nil {
		return 0
	}

	return k.public.Size()
}

// Public returns the public key.
func (k *RSA) Public() *rsa.PublicKey {
	return k.public
}

// Private returns the private key or ErrNoPrivateKey.
func (k *RSA) Private() (*rsa.PrivateKey, error) {
	if k.private == nil || k.private.D == nil {
		return nil, ErrNoPrivateKey
	}

	return k.private, nil
}

// CanSign reports whether private material is present.
func (k *RSA) CanSign() bool {
	_, err := k.Private()

	return err == nil
}
