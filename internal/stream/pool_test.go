package stream

import (
	"bytes"
	"testing"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/transform"
)

func TestPutBufferZeroesFullCapacity(t *testing.T) {
	t.Parallel()

	for _, size := range []int{16, ChunkSize, pooledSize + 1} {
		buf := getBuffer(size)
		full := buf[:cap(buf)]

		for i := range full {
			full[i] = 0xa5
		}

		putBuffer(buf)

		if n := bytes.Count(full, []byte{0}); n != len(full) {
			t.Errorf("size %d: %d bytes still set after putBuffer", size, len(full)-n)
		}
	}
}

func TestCopyLeavesNoPlaintextInPool(t *testing.T) {
	t.Parallel()

	c, err := algorithm.Default().Cipher("aes-128-ctr")
	if err != nil {
		t.Fatal(err)
	}

	tr, err := transform.New(c, make([]byte, c.KeySize), make([]byte, c.IVSize), transform.Encrypt)
	if err != nil {
		t.Fatal(err)
	}

	marker := []byte("attack at dawn!")
	plain := bytes.Repeat(marker, ChunkSize/len(marker)+1)

	var sink bytes.Buffer
	if _, err := Copy(&sink, bytes.NewReader(plain), tr); err != nil {
		t.Fatal(err)
	}

	for range 8 {
		buf := getBuffer(ChunkSize)

		if bytes.Contains(buf[:cap(buf)], marker) {
			t.Fatal("pooled buffer still holds plaintext after Copy")
		}

		defer putBuffer(buf)
	}
}
