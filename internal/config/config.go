// Package config holds the command line configuration and its validation.
package config

import (
	"errors"
	"fmt"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/gocrypt/internal/keymaterial"
)

var (
	// ErrUsage indicates an error in command-line usage or configuration.
	ErrUsage = errors.New("usage error")

	// ErrMissingKey is returned when a command needs key material that was not given.
	ErrMissingKey = errors.New("missing key")
)

// Config holds the settings shared by all subcommands.
type Config struct {
	// Show prints the resolved configuration and exits.
	Show     bool
	Parallel int `label:"--parallel" validate:"min=1"`
	Quiet    bool
	Verbose  bool
	Stats    bool

	Cipher  Cipher  `mapstructure:",squash" validate:"-"`
	Signing Signing `mapstructure:",squash" validate:"-"`

	// Set by the decrypt command.
	Decrypt bool `mapstructure:"-"`

	// Positional arguments
	Files []string `mapstructure:"-" validate:"min=1"`
}

// Key is a symmetric key given either inline or as a file, both hex encoded.
type Key struct {
	String string `label:"--key"      mapstructure:"key"      mask:"fixed" validate:"omitempty,hexadecimal,exclusive=File"`
	File   string `label:"--key-file" mapstructure:"key-file" validate:"omitempty,readable"`
}

// Bytes decodes whichever source was set.
func (k Key) Bytes() ([]byte, error) {
	switch {
	case k.String != "":
		return keymaterial.FromHex(k.String)
	case k.File != "":
		return keymaterial.FromHexFile(k.File)
	default:
		return nil, fmt.Errorf("%w: set --key or --key-file", ErrMissingKey)
	}
}

// Suffixes are the extensions appended to outputs.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Cipher configures the encrypt and decrypt commands.
type Cipher struct {
	Algorithm string `label:"--cipher" mapstructure:"cipher" validate:"required"`
	Key       Key    `mapstructure:",squash"`
	// IV is optional; without it a random IV is generated and stored in front of the ciphertext.
	IV                 string   `label:"--iv" mapstructure:"iv" validate:"omitempty,hexadecimal"`
	NoPadding          bool     `mapstructure:"no-padding"`
	Suffixes           Suffixes `mapstructure:",squash"`
	Delete             bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
}

// Signing configures the digest, sign and verify commands.
type Signing struct {
	Digest       string `label:"--digest"        mapstructure:"digest"        validate:"required"`
	PrivateKey   string `label:"--private-key"   mapstructure:"private-key"   validate:"omitempty,readable"`
	PublicKey    string `label:"--public-key"    mapstructure:"public-key"    validate:"omitempty,readable"`
	SignatureExt string `label:"--signature-ext" mapstructure:"signature-ext" validate:"required"`
}

// ValidateCipher checks the configuration of the encrypt and decrypt commands
// beyond what the struct tags express.
func (c *Config) ValidateCipher() error {
	if c.Cipher.Key.String == "" && c.Cipher.Key.File == "" {
		return fmt.Errorf("%w: set --key or --key-file", ErrMissingKey)
	}

	return nil
}

// ValidateSign checks the configuration of the sign command.
func (c *Config) ValidateSign() error {
	if c.Signing.PrivateKey == "" {
		return fmt.Errorf("%w: set --private-key", ErrMissingKey)
	}

	return nil
}

// ValidateVerify checks the configuration of the verify command.
// A private key file is accepted in place of a public one.
func (c *Config) ValidateVerify() error {
	if c.Signing.PublicKey == "" && c.Signing.PrivateKey == "" {
		return fmt.Errorf("%w: set --public-key", ErrMissingKey)
	}

	return nil
}

// Display returns the value of the Show field.
func (c Config) Display() bool {
	return c.Show
}

// Validate performs configuration validation using the validator package.
// It returns a wrapped ErrUsage if any validation rules are violated.
func (c Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerValidations(validator); err != nil {
		return fmt.Errorf("registering validations: %w", err)
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	default:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}
}
