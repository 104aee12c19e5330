package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg, (*config.Config).ValidateCipher, cfg, &cfg.Cipher)(cmd, args)
		},
		RunE: runE(cfg, (*logic.Runner).Run),
	}

	addCipherFlags(cmd)

	return cmd
}
