// Package cryptoerr defines the error taxonomy shared by the cipher and signature packages.
//
// Backend failures are collected as diagnostics on a per-instance Queue and surfaced as a single
// CryptoOperationError that carries every pending diagnostic, so nothing reported by the backend
// is silently dropped.
package cryptoerr

import (
	"errors"
	"fmt"
)

// Code identifies a backend diagnostic.
type Code uint16

// Diagnostic codes reported by the cipher and signature backends.
const (
	CodeUnspecified Code = iota
	CodeBadDecrypt
	CodeWrongFinalBlockLength
	CodeDataNotMultipleOfBlockLength
	CodeBadPadding
	CodeInvalidPublicKey
)

// Diagnostic is a single entry of a backend error queue.
type Diagnostic struct {
	Code   Code
	Reason string
}

// Error returns the diagnostic in "code:reason" form.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%04x:%s", uint16(d.Code), d.Reason)
}

var (
	// ErrUnspecified is reported when a backend fails without queueing a diagnostic.
	ErrUnspecified = &Diagnostic{Code: CodeUnspecified, Reason: "unspecified backend failure"}
	// ErrBadDecrypt signals a wrong key, wrong IV or corrupted ciphertext.
	ErrBadDecrypt = &Diagnostic{Code: CodeBadDecrypt, Reason: "bad decrypt"}
	// ErrWrongFinalBlockLength is reported when the buffered ciphertext is not one full block at finalize.
	ErrWrongFinalBlockLength = &Diagnostic{Code: CodeWrongFinalBlockLength, Reason: "wrong final block length"}
	// ErrDataNotMultipleOfBlockLength is reported when unpadded input does not align to the block size.
	ErrDataNotMultipleOfBlockLength = &Diagnostic{
		Code:   CodeDataNotMultipleOfBlockLength,
		Reason: "data not multiple of block length",
	}
	// ErrBadPadding is reported when PKCS#7 padding is malformed.
	ErrBadPadding = &Diagnostic{Code: CodeBadPadding, Reason: "bad padding"}
	// ErrInvalidPublicKey is reported when public key material is missing or structurally corrupt.
	ErrInvalidPublicKey = &Diagnostic{Code: CodeInvalidPublicKey, Reason: "invalid public key"}
)

// InvalidKeyError reports key or IV material whose length does not match the algorithm.
type InvalidKeyError struct {
	Algorithm string
	Field     string
	Got       int
	Want      int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid %s for %s: got %d bytes, want %d", e.Field, e.Algorithm, e.Got, e.Want)
}

// UnsupportedAlgorithmError reports an algorithm name that no registry entry resolves.
type UnsupportedAlgorithmError struct {
	Kind string
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported %s algorithm %q", e.Kind, e.Name)
}

// CryptoOperationError reports a failed cipher, padding or verification primitive.
// Err aggregates all diagnostics that were pending when the operation failed.
type CryptoOperationError struct {
	Op  string
	Err error
}

func (e *CryptoOperationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *CryptoOperationError) Unwrap() error {
	return e.Err
}

// SigningError reports a signature request without usable private key material.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return "signing: " + e.Err.Error()
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// IsBadDecrypt reports whether err stems from a padding or final-block check during decryption.
func IsBadDecrypt(err error) bool {
	return errors.Is(err, ErrBadDecrypt)
}
