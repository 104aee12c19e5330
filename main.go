// Command gocrypt encrypts, decrypts, digests, signs and verifies files.
package main

import (
	"errors"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/gocrypt/internal/commands"
	"github.com/idelchi/gocrypt/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	switch err := commands.NewRootCommand(cfg, version).Execute(); {
	case errors.Is(err, cobraext.ErrExitGracefully):
	case err != nil:
		os.Exit(1)
	}
}
