// Package logging builds the zerolog logger used by the command line interface.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a logger writing to stderr.
// verbose selects debug level, quiet selects warn level; verbose wins when both are set.
// Terminals get a console writer unless NO_COLOR is set; everything else gets JSON lines.
func New(verbose, quiet bool) zerolog.Logger {
	return NewWithWriter(verbose, quiet, selectOutput())
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
}

func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	return os.Stderr
}
