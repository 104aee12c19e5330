package stream

import (
	"sync"
)

const (
	// ChunkSize is the amount of input fed to a transform per call.
	ChunkSize = 32 * 1024
	// pooledSize leaves room for the block overhang of Transform plus one Finalize.
	pooledSize = ChunkSize + 2*64
)

//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, pooledSize)
	},
}

// getBuffer returns a buffer of at least size bytes, pooled when it fits.
func getBuffer(size int) []byte {
	if size > pooledSize {
		return make([]byte, size)
	}

	return bufferPool.Get().([]byte)[:size] //nolint:forcetypeassert
}

// putBuffer zeroes buf over its full capacity and returns it to the pool.
// Buffers that did not come from the pool are zeroed and dropped.
func putBuffer(buf []byte) {
	clear(buf[:cap(buf)])

	if cap(buf) != pooledSize {
		return
	}

	bufferPool.Put(buf[:pooledSize]) //nolint:staticcheck // slices are what the pool hands out.
}

// outputSize is the buffer a transform needs for one chunk plus its final block.
func outputSize(chunk, blockSize int) int {
	return chunk + 2*blockSize - 1
}
