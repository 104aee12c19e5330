package logic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/digest"
	"github.com/idelchi/gocrypt/internal/fileutil"
	"github.com/idelchi/gocrypt/internal/keymaterial"
	"github.com/idelchi/gocrypt/internal/signature"
)

// ErrVerificationFailed is returned when at least one signature did not verify.
var ErrVerificationFailed = errors.New("signature verification failed")

// updateWriter adapts a digest.Algorithm to io.Writer.
type updateWriter struct {
	a digest.Algorithm
}

func (u updateWriter) Write(p []byte) (int, error) {
	u.a.Update(p)

	return len(p), nil
}

// feed streams the file at path into w.
func feed(path string, w io.Writer) (int64, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return n, fmt.Errorf("reading %q: %w", path, err)
	}

	return n, nil
}

// collect runs job on every file in parallel and returns results in argument order.
func (r *Runner) collect(job func(file string) result) ([]result, error) {
	ordered := make([]result, len(r.Config.Files))

	group := errgroup.Group{}
	group.SetLimit(max(1, r.Config.Parallel))

	for i, file := range r.Config.Files {
		group.Go(func() error {
			ordered[i] = job(file)

			return ordered[i].err
		})
	}

	return ordered, group.Wait()
}

// Digest prints "<hex>  <file>" for every configured file, in argument order.
func (r *Runner) Digest() error {
	s := stats{start: time.Now()}

	d, err := r.Registry.Digest(r.Config.Signing.Digest)
	if err != nil {
		return err
	}

	results, err := r.collect(func(file string) result {
		a := digest.New(d)

		n, err := feed(file, updateWriter{a: a})
		if err != nil {
			return result{input: file, err: err}
		}

		return result{input: file, output: hex.EncodeToString(a.Finish()), size: n}
	})

	for _, res := range results {
		if res.err != nil {
			s.errored++

			fmt.Fprintf(r.Err, "Error processing %q: %v\n", res.input, res.err)

			continue
		}

		s.processed++
		s.size += res.size

		fmt.Fprintf(r.Out, "%s  %s\n", res.output, res.input)
	}

	r.printStats(s)

	if err != nil {
		return fmt.Errorf("digesting files: %w", err)
	}

	return nil
}

func (r *Runner) signingDigest() (algorithm.Digest, error) {
	return r.Registry.Digest(r.Config.Signing.Digest)
}

// Sign writes a raw signature of every configured file to <file><signature-ext>.
func (r *Runner) Sign() error {
	s := stats{start: time.Now()}
	cfg := r.Config

	d, err := r.signingDigest()
	if err != nil {
		return err
	}

	key, err := keymaterial.ReadRSAPrivateKey(cfg.Signing.PrivateKey)
	if err != nil {
		return fmt.Errorf("loading private key: %w", err)
	}

	r.Logger.Debug().Str("digest", d.Name).Int("key_bytes", key.Size()).Msg("signing files")

	job := func(file string) result {
		out := file + cfg.Signing.SignatureExt

		engine, err := signature.New(key, d)
		if err != nil {
			return result{input: file, err: err}
		}

		if _, err := feed(file, engine); err != nil {
			return result{input: file, err: err}
		}

		sig, err := engine.Signature()
		if err != nil {
			return result{input: file, err: err}
		}

		size, err := fileutil.WriteAtomic(file, out, fileutil.Options{}, func(w io.Writer) error {
			_, err := w.Write(sig)

			return err
		})

		return result{input: file, output: out, size: size, err: err}
	}

	err = runParallel(cfg.Files, cfg.Parallel, job, func(res result) {
		if res.err != nil {
			s.errored++

			fmt.Fprintf(r.Err, "Error signing %q: %v\n", res.input, res.err)

			return
		}

		s.processed++
		s.size += res.size

		if !cfg.Quiet {
			fmt.Fprintf(r.Out, "Signed %q -> %q\n", res.input, res.output)
		}
	})

	r.printStats(s)

	if err != nil {
		return fmt.Errorf("signing files: %w", err)
	}

	return nil
}

func (r *Runner) verificationKey() (*keymaterial.RSA, error) {
	path := r.Config.Signing.PublicKey
	if path == "" {
		path = r.Config.Signing.PrivateKey
	}

	key, err := keymaterial.ReadRSAPublicKey(path)
	if err != nil {
		return nil, fmt.Errorf("loading public key: %w", err)
	}

	return key, nil
}

// Verify checks <file><signature-ext> for every configured file and prints OK or FAILED.
// It fails with ErrVerificationFailed if any signature does not match.
func (r *Runner) Verify() error {
	s := stats{start: time.Now()}
	cfg := r.Config

	d, err := r.signingDigest()
	if err != nil {
		return err
	}

	key, err := r.verificationKey()
	if err != nil {
		return err
	}

	const (
		verified = "OK"
		rejected = "FAILED"
	)

	results, err := r.collect(func(file string) result {
		sig, err := os.ReadFile(filepath.Clean(file + cfg.Signing.SignatureExt))
		if err != nil {
			return result{input: file, err: fmt.Errorf("reading signature: %w", err)}
		}

		engine, err := signature.New(key, d)
		if err != nil {
			return result{input: file, err: err}
		}

		n, err := feed(file, engine)
		if err != nil {
			return result{input: file, err: err}
		}

		ok, err := engine.Verify(sig)
		if err != nil {
			return result{input: file, err: err}
		}

		if !ok {
			return result{input: file, output: rejected, size: n}
		}

		return result{input: file, output: verified, size: n}
	})

	failed := 0

	for _, res := range results {
		if res.err != nil {
			s.errored++

			fmt.Fprintf(r.Err, "Error verifying %q: %v\n", res.input, res.err)

			continue
		}

		s.processed++
		s.size += res.size

		if res.output != verified {
			failed++
		}

		fmt.Fprintf(r.Out, "%s: %s\n", res.input, res.output)
	}

	r.printStats(s)

	if err != nil {
		return fmt.Errorf("verifying files: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrVerificationFailed, failed, len(results))
	}

	return nil
}
