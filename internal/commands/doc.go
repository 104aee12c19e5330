// Package commands provides the command-line interface for the gocrypt tool.
//
// It implements commands for:
//   - encryption and decryption with block and stream ciphers
//   - file digests
//   - RSA signing and verification
//   - listing the supported algorithms
//
// The package handles command-line parsing and configuration validation through cobra,
// with flags and GOCRYPT_ prefixed environment variables bound by the cobraext root command.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/config"
	"github.com/idelchi/gocrypt/internal/logging"
	"github.com/idelchi/gocrypt/internal/logic"
)

// preRun returns a PreRunE handler that records the positional args, validates each of
// validations against the struct tags and then runs check for the remaining rules.
// With --show the configuration is printed and cobraext.ErrExitGracefully returned instead.
func preRun(cfg *config.Config, check func(*config.Config) error, validations ...any) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args

		if err := cobraext.Validate(cfg, validations...); err != nil {
			return err
		}

		if check == nil {
			return nil
		}

		return check(cfg)
	}
}

// runE builds a runner for the command and hands it to run.
func runE(cfg *config.Config, run func(*logic.Runner) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return run(&logic.Runner{
			Config:   cfg,
			Registry: algorithm.Default(),
			Logger:   logging.New(cfg.Verbose, cfg.Quiet),
			Out:      cmd.OutOrStdout(),
			Err:      cmd.ErrOrStderr(),
		})
	}
}
