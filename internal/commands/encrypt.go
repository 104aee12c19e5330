package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

// addCipherFlags registers the flags shared by encrypt and decrypt.
func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().String("cipher", "aes-256-cbc", "Cipher algorithm, see the algorithms command")
	cmd.Flags().StringP("key", "k", "", "Key, hex-encoded, sized for the cipher")
	cmd.Flags().StringP("key-file", "f", "", "Path to a file holding the hex-encoded key")
	cmd.Flags().String("iv", "", "IV, hex-encoded; a random IV is prepended to the output when omitted")
	cmd.Flags().Bool("no-padding", false, "Disable PKCS#7 padding; input must be block aligned")
	cmd.Flags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	cmd.Flags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	cmd.Flags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	cmd.Flags().Bool("preserve-timestamps", false, "Copy the input modification time to the output")
}

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, (*config.Config).ValidateCipher, cfg, &cfg.Cipher),
		RunE:    runE(cfg, (*logic.Runner).Run),
	}

	addCipherFlags(cmd)

	return cmd
}
