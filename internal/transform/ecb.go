package transform

import (
	"crypto/cipher"
)

// ecb implements cipher.BlockMode without chaining.
type ecb struct {
	block   cipher.Block
	decrypt bool
}

func newECB(block cipher.Block, decrypt bool) cipher.BlockMode {
	return &ecb{block: block, decrypt: decrypt}
}

func (e *ecb) BlockSize() int {
	return e.block.BlockSize()
}

func (e *ecb) CryptBlocks(dst, src []byte) {
	size := e.block.BlockSize()

	if len(src)%size != 0 {
		panic("transform: ecb input not full blocks")
	}

	if len(dst) < len(src) {
		panic("transform: ecb output smaller than input")
	}

	for i := 0; i < len(src); i += size {
		if e.decrypt {
			e.block.Decrypt(dst[i:i+size], src[i:i+size])
		} else {
			e.block.Encrypt(dst[i:i+size], src[i:i+size])
		}
	}
}
