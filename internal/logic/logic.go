// Package logic implements the file processing behind each subcommand.
package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/config"
)

// Runner carries what every subcommand needs.
type Runner struct {
	Config   *config.Config
	Registry *algorithm.Registry
	Logger   zerolog.Logger
	// Out receives results, Err receives per-file failures and stats.
	Out io.Writer
	Err io.Writer
}

// result is the outcome of processing a single file.
type result struct {
	input  string
	output string
	size   int64
	err    error
}

type stats struct {
	processed int
	errored   int
	size      int64
	start     time.Time
}

// runParallel runs job for every file on at most limit goroutines. report sees each result
// from a single goroutine, in completion order. The first job error is returned once all
// jobs finished; failing jobs do not cancel the others.
func runParallel(files []string, limit int, job func(file string) result, report func(result)) error {
	results := make(chan result, len(files))

	group := errgroup.Group{}
	group.SetLimit(max(1, limit))

	done := make(chan struct{})

	go func() {
		defer close(done)

		for res := range results {
			report(res)
		}
	}()

	for _, file := range files {
		group.Go(func() error {
			res := job(file)
			results <- res

			return res.err
		})
	}

	err := group.Wait()

	close(results)

	<-done

	return err
}

func (r *Runner) printStats(s stats) {
	if !r.Config.Stats {
		return
	}

	fmt.Fprintf(r.Err, "\nStats\n")
	fmt.Fprintf(r.Err, "  Processed: %d\n", s.processed)
	fmt.Fprintf(r.Err, "  Errors:    %d\n", s.errored)
	//nolint:gosec // size is a sum of file sizes
	fmt.Fprintf(r.Err, "  Size:      %s\n", humanize.IBytes(uint64(max(0, s.size))))
	fmt.Fprintf(r.Err, "  Duration:  %s\n", time.Since(s.start).Round(time.Millisecond))
}
