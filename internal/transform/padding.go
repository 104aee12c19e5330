package transform

import (
	"fmt"

	"github.com/idelchi/gocrypt/internal/cryptoerr"
)

// pkcs7Pad appends PKCS#7 padding to data so its length becomes a multiple of blockSize.
// It always adds between 1 and blockSize bytes.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	for range padding {
		data = append(data, byte(padding))
	}

	return data
}

// pkcs7Unpad validates and strips PKCS#7 padding from one decrypted block.
// Every problem found is pushed to queue; ok is false if any was found.
func pkcs7Unpad(block []byte, blockSize int, queue *cryptoerr.Queue) (data []byte, ok bool) {
	length := len(block)
	padding := int(block[length-1])

	if padding == 0 || padding > blockSize || padding > length {
		queue.Push(fmt.Errorf("%w: padding length %d outside 1..%d", cryptoerr.ErrBadPadding, padding, blockSize))

		return nil, false
	}

	// Check every padding byte rather than stopping at the first mismatch.
	mismatch := 0
	for i := length - padding; i < length; i++ {
		if block[i] != byte(padding) {
			mismatch++
		}
	}

	if mismatch > 0 {
		queue.Push(fmt.Errorf("%w: %d of %d padding bytes differ from 0x%02x",
			cryptoerr.ErrBadPadding, mismatch, padding, padding))

		return nil, false
	}

	return block[:length-padding], true
}
