package keymaterial

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/gogen/pkg/key"
)

// FromHex decodes a hex encoded key or IV string. Surrounding whitespace is ignored.
func FromHex(s string) ([]byte, error) {
	decoded, err := key.FromHex(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}

	return decoded, nil
}

// FromHexFile reads a file containing a hex encoded key.
func FromHexFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	return FromHex(string(data))
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %q", path)
	}

	return block, nil
}

// ParseRSAPrivateKey parses DER bytes in PKCS#1 or PKCS#8 form.
func ParseRSAPrivateKey(der []byte) (*RSA, error) {
	if priv, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return NewRSAPrivate(priv)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing private key as PKCS#1 or PKCS#8: %w", err)
	}

	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not an RSA key")
	}

	return NewRSAPrivate(priv)
}

// ParseRSAPublicKey parses DER bytes in PKCS#1 or PKIX form.
func ParseRSAPublicKey(der []byte) (*RSA, error) {
	if pub, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return NewRSAPublic(pub)
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing public key as PKCS#1 or PKIX: %w", err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return NewRSAPublic(pub)
}

// ReadRSAPrivateKey reads a PEM encoded RSA private key.
func ReadRSAPrivateKey(path string) (*RSA, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	return ParseRSAPrivateKey(block.Bytes)
}

// ReadRSAPublicKey reads a PEM encoded RSA public key.
// A private key file is accepted too; only its public half is used.
func ReadRSAPublicKey(path string) (*RSA, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	if strings.Contains(block.Type, "PRIVATE KEY") {
		priv, err := ParseRSAPrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}

		return NewRSAPublic(priv.Public())
	}

	return ParseRSAPublicKey(block.Bytes)
}
