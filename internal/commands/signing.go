package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

func addDigestFlag(cmd *cobra.Command) {
	cmd.Flags().String("digest", "sha256", "Digest algorithm, see the algorithms command")
}

func addSignatureFlags(cmd *cobra.Command) {
	addDigestFlag(cmd)
	cmd.Flags().String("signature-ext", ".sig", "Suffix of the signature file next to each input")
}

// NewDigestCommand creates a new cobra command for the digest subcommand.
func NewDigestCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "digest [flags] files...",
		Aliases: []string{"dgst"},
		Short:   "Print file digests",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, nil, cfg, &cfg.Signing),
		RunE:    runE(cfg, (*logic.Runner).Digest),
	}

	addSignatureFlags(cmd)

	return cmd
}

// NewSignCommand creates a new cobra command for the sign subcommand.
func NewSignCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sign [flags] files...",
		Short:   "Sign file digests with an RSA private key",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, (*config.Config).ValidateSign, cfg, &cfg.Signing),
		RunE:    runE(cfg, (*logic.Runner).Sign),
	}

	addSignatureFlags(cmd)
	cmd.Flags().String("private-key", "", "Path to a PEM encoded RSA private key (PKCS#1 or PKCS#8)")

	return cmd
}

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify [flags] files...",
		Short:   "Verify file signatures with an RSA public key",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, (*config.Config).ValidateVerify, cfg, &cfg.Signing),
		RunE:    runE(cfg, (*logic.Runner).Verify),
	}

	addSignatureFlags(cmd)
	cmd.Flags().String("public-key", "", "Path to a PEM encoded RSA public key (PKIX or PKCS#1)")

	return cmd
}
