package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logic"
)

// NewAlgorithmsCommand creates a new cobra command listing the supported algorithms.
func NewAlgorithmsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"list"},
		Short:   "List supported ciphers and digests",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil),
		RunE: runE(cfg, (*logic.Runner).Algorithms),
	}
}
