package commands_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/gocrypt/internal/commands"
	"github.com/idelchi/gocrypt/internal/config"
)

const key128 = "2b7e151628aed2a6abf7158809cf4f3c"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// The root command binds flags into the global viper instance.
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := commands.NewRootCommand(&config.Config{}, "test")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestEncryptDecryptCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("HELLO WORLD"), 0o600))

	_, err := execute(t, "encrypt", "--cipher", "aes-128-cbc", "--key", key128, "--delete", "-j", "1", file)
	require.NoError(t, err)
	assert.NoFileExists(t, file)

	_, err = execute(t, "dec", "--cipher", "aes-128", "--key", key128, "--decrypt-ext", ".plain", file+".enc")
	require.NoError(t, err)

	got, err := os.ReadFile(file + ".plain")
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", string(got))
}

func TestKeyFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "env.txt")
	require.NoError(t, os.WriteFile(file, []byte("from env"), 0o600))

	t.Setenv("GOCRYPT_KEY", key128)
	t.Setenv("GOCRYPT_CIPHER", "aes-128-ctr")

	_, err := execute(t, "encrypt", file)
	require.NoError(t, err)

	info, err := os.Stat(file + ".enc")
	require.NoError(t, err)
	assert.Equal(t, int64(16+len("from env")), info.Size(), "ctr output is iv plus input length")
}

func TestValidationErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := execute(t, "encrypt", file)
	require.ErrorIs(t, err, config.ErrMissingKey)

	keyFile := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(keyFile, []byte(key128), 0o600))

	_, err = execute(t, "encrypt", "--key", key128, "--key-file", keyFile, file)
	require.ErrorContains(t, err, "mutually exclusive")

	_, err = execute(t, "encrypt", "--cipher", "rot13", "--key", key128, file)
	require.ErrorContains(t, err, `unsupported cipher algorithm "rot13"`)

	_, err = execute(t, "sign", file)
	require.ErrorIs(t, err, config.ErrMissingKey)

	_, err = execute(t, "encrypt", "--key", "zz", file)
	require.ErrorIs(t, err, config.ErrUsage)
	require.ErrorContains(t, err, "--key must be a valid hexadecimal")
}

func TestKeyFileFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	t.Setenv("GOCRYPT_KEY_FILE", filepath.Join(dir, "absent"))

	_, err := execute(t, "encrypt", file)
	require.ErrorContains(t, err, "--key-file must name a readable file")
}

// captureStdout returns what fn wrote to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w

	defer func() { os.Stdout = stdout }()

	done := make(chan []byte)

	go func() {
		out, _ := io.ReadAll(r)
		done <- out
	}()

	fn()

	require.NoError(t, w.Close())

	return string(<-done)
}

func TestShowSkipsValidation(t *testing.T) {
	var err error

	out := captureStdout(t, func() {
		_, err = execute(t, "encrypt", "--show", "--key", key128, "--parallel", "0", "some-file")
	})

	require.ErrorIs(t, err, cobraext.ErrExitGracefully)
	assert.Contains(t, out, "aes-256-cbc")
	assert.NotContains(t, out, key128)
}

func TestDigestCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abc.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o600))

	out, err := execute(t, "dgst", "--digest", "SHA-1", file)
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d  "+file+"\n", out)
}

func TestAlgorithmsCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "des-ede3-cbc")
	assert.Contains(t, out, "sha224")
}
