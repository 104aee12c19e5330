package logic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/fileutil"
	"github.com/idelchi/gocrypt/internal/keymaterial"
	"github.com/idelchi/gocrypt/internal/stream"
	"github.com/idelchi/gocrypt/internal/transform"
)

var (
	// ErrShortInput is returned when an encrypted file is too short to hold its IV.
	ErrShortInput = errors.New("input too short to hold the iv")
	// ErrOverwrite is returned when the derived output path is the input itself.
	ErrOverwrite = errors.New("output path equals input path")
)

// fileCipher is the resolved cipher setup shared by all files of one run.
type fileCipher struct {
	cipher  algorithm.Cipher
	key     []byte
	iv      []byte // nil means a per-file random IV stored as a prefix
	padding bool
}

func (r *Runner) newFileCipher() (*fileCipher, error) {
	opts := r.Config.Cipher

	c, err := r.Registry.Cipher(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	key, err := opts.Key.Bytes()
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	fc := &fileCipher{cipher: c, key: key, padding: !opts.NoPadding}

	if opts.IV != "" {
		if fc.iv, err = keymaterial.FromHex(opts.IV); err != nil {
			return nil, fmt.Errorf("reading iv: %w", err)
		}
	}

	// Fail once up front instead of once per file.
	if _, err := keymaterial.NewSymmetric(c, key, fc.ivOrZero()); err != nil {
		return nil, err
	}

	return fc, nil
}

func (fc *fileCipher) ivOrZero() []byte {
	if fc.iv != nil {
		return fc.iv
	}

	return make([]byte, fc.cipher.IVSize)
}

func (fc *fileCipher) encrypt(r io.Reader, w io.Writer) error {
	iv := fc.iv

	if iv == nil {
		iv = make([]byte, fc.cipher.IVSize)

		if _, err := io.ReadFull(rand.Reader, iv); err != nil {
			return fmt.Errorf("generating iv: %w", err)
		}

		if _, err := w.Write(iv); err != nil {
			return fmt.Errorf("writing iv: %w", err)
		}
	}

	tr, err := transform.New(fc.cipher, fc.key, iv, transform.Encrypt, transform.WithPadding(fc.padding))
	if err != nil {
		return err
	}

	if _, err := stream.Copy(w, r, tr); err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}

	return nil
}

func (fc *fileCipher) decrypt(r io.Reader, w io.Writer) error {
	iv := fc.iv

	if iv == nil {
		iv = make([]byte, fc.cipher.IVSize)

		if _, err := io.ReadFull(r, iv); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return ErrShortInput
			}

			return fmt.Errorf("reading iv: %w", err)
		}
	}

	tr, err := transform.New(fc.cipher, fc.key, iv, transform.Decrypt, transform.WithPadding(fc.padding))
	if err != nil {
		return err
	}

	if _, err := stream.Copy(w, r, tr); err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}

	return nil
}

// Run encrypts or decrypts every configured file into a sibling output file.
func (r *Runner) Run() error {
	s := stats{start: time.Now()}
	cfg := r.Config

	fc, err := r.newFileCipher()
	if err != nil {
		return err
	}

	defer clear(fc.key)

	op := fc.encrypt
	if cfg.Decrypt {
		op = fc.decrypt
	}

	r.Logger.Debug().
		Str("cipher", fc.cipher.Name).
		Bool("decrypt", cfg.Decrypt).
		Bool("random_iv", fc.iv == nil).
		Int("files", len(cfg.Files)).
		Msg("processing files")

	job := func(file string) result {
		out := r.outputPath(file)
		if filepath.Clean(out) == filepath.Clean(file) {
			return result{input: file, err: fmt.Errorf("%w: %q", ErrOverwrite, file)}
		}

		size, err := fileutil.WriteAtomic(file, out, fileutil.Options{
			PreserveTimestamps: cfg.Cipher.PreserveTimestamps,
			KeepExec:           true,
		}, func(w io.Writer) error {
			in, err := os.Open(filepath.Clean(file))
			if err != nil {
				return fmt.Errorf("opening input file: %w", err)
			}
			defer in.Close()

			return op(in, w)
		})

		return result{input: file, output: out, size: size, err: err}
	}

	err = runParallel(cfg.Files, cfg.Parallel, job, func(res result) {
		if res.err != nil {
			s.errored++

			fmt.Fprintf(r.Err, "Error processing %q: %v\n", res.input, res.err)

			return
		}

		s.processed++
		s.size += res.size

		r.Logger.Debug().Str("input", res.input).Str("output", res.output).Int64("size", res.size).Msg("processed")

		if !cfg.Quiet {
			fmt.Fprintf(r.Out, "Processed %q -> %q\n", res.input, res.output)
		}

		if cfg.Cipher.Delete {
			if err := os.Remove(res.input); err != nil {
				fmt.Fprintf(r.Err, "Error deleting %q: %v\n", res.input, err)
			} else if !cfg.Quiet {
				fmt.Fprintf(r.Out, "Deleted %q\n", res.input)
			}
		}
	})

	r.printStats(s)

	if err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return nil
}

// outputPath appends the encrypt suffix, or strips it and appends the decrypt suffix.
func (r *Runner) outputPath(file string) string {
	suffixes := r.Config.Cipher.Suffixes
	ext := suffixes.Encrypt

	if r.Config.Decrypt {
		file = strings.TrimSuffix(file, suffixes.Encrypt)
		ext = suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(file), filepath.Base(file)+ext)
}
