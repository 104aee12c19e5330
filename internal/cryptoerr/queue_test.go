package cryptoerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

func TestQueueDrainJoinsEveryDiagnostic(t *testing.T) {
	t.Parallel()

	var queue cryptoerr.Queue

	queue.Push(fmt.Errorf("%w: pad byte 0x00", cryptoerr.ErrBadPadding))
	queue.Push(nil)
	queue.Push(cryptoerr.ErrBadDecrypt)

	if got := queue.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	err := queue.Drain("finalize")
	if err == nil {
		t.Fatal("Drain() returned nil with pending diagnostics")
	}

	want := "finalize: 0004:bad padding: pad byte 0x00; 0001:bad decrypt"
	if err.Error() != want {
		t.Errorf("Drain() = %q, want %q", err.Error(), want)
	}

	if queue.Len() != 0 {
		t.Errorf("queue not empty after Drain: %d", queue.Len())
	}

	if !errors.Is(err, cryptoerr.ErrBadPadding) || !errors.Is(err, cryptoerr.ErrBadDecrypt) {
		t.Errorf("errors.Is lost an aggregated diagnostic: %v", err)
	}

	var opErr *cryptoerr.CryptoOperationError
	if !errors.As(err, &opErr) || opErr.Op != "finalize" {
		t.Errorf("errors.As(*CryptoOperationError) failed for %v", err)
	}

	if got := len(cryptoerr.Diagnostics(err)); got != 2 {
		t.Errorf("Diagnostics() returned %d entries, want 2", got)
	}
}

func TestQueueDrainEmpty(t *testing.T) {
	t.Parallel()

	var queue cryptoerr.Queue

	if err := queue.Drain("transform"); err != nil {
		t.Errorf("Drain() on empty queue = %v, want nil", err)
	}
}

func TestQueueFailWithoutDiagnostics(t *testing.T) {
	t.Parallel()

	var queue cryptoerr.Queue

	err := queue.Fail("transform")
	if !errors.Is(err, cryptoerr.ErrUnspecified) {
		t.Errorf("Fail() = %v, want ErrUnspecified", err)
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{
			err:  &cryptoerr.InvalidKeyError{Algorithm: "aes-128-cbc", Field: "iv", Got: 8, Want: 16},
			want: "invalid iv for aes-128-cbc: got 8 bytes, want 16",
		},
		{
			err:  &cryptoerr.UnsupportedAlgorithmError{Kind: "cipher", Name: "rot13"},
			want: `unsupported cipher algorithm "rot13"`,
		},
		{
			err:  &cryptoerr.SigningError{Err: errors.New("no private key")},
			want: "signing: no private key",
		},
	}

	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
