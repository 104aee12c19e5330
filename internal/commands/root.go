package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gocrypt/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Flags shared by every subcommand are persistent; the cobraext root binds them and the
// subcommand flags into viper, with GOCRYPT_ prefixed environment overrides.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gocrypt [flags] command [flags]"
	root.Short = "Block cipher and signature utility"
	root.Long = `A file utility for symmetric encryption with block and stream ciphers,
file digests, and RSA signatures over those digests.`

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewDigestCommand(cfg),
		NewSignCommand(cfg),
		NewVerifyCommand(cfg),
		NewAlgorithmsCommand(cfg),
	)

	return root
}
