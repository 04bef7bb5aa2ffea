package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
)

// BlockCipher transforms exactly one block at a time, in place on
// caller-owned buffers. Implementations are assumed pre-initialized for
// either the encrypt or the decrypt direction; a single instance is never
// used for both.
type BlockCipher interface {
	// BlockSize returns the fixed number of bytes ProcessBlock consumes
	// and produces.
	BlockSize() int
	// ProcessBlock transforms in into out. len(in) and len(out) must both
	// equal BlockSize(). Successive calls on the same instance may chain
	// (e.g. CBC mode threads ciphertext/IV state across calls).
	ProcessBlock(in, out []byte)
}

type aesCBCCipher struct {
	mode      stdcipher.BlockMode
	blockSize int
}

func (c *aesCBCCipher) BlockSize() int { return c.blockSize }

func (c *aesCBCCipher) ProcessBlock(in, out []byte) {
	c.mode.CryptBlocks(out, in)
}

// NewAESCBCEncryptor returns a BlockCipher that encrypts successive blocks
// under AES in CBC mode, chaining the IV across ProcessBlock calls. key
// must be 16, 24, or 32 bytes; iv must be aes.BlockSize bytes.
func NewAESCBCEncryptor(key, iv []byte) (BlockCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &aesCBCCipher{
		mode:      stdcipher.NewCBCEncrypter(block, iv),
		blockSize: block.BlockSize(),
	}, nil
}

// NewAESCBCDecryptor returns a BlockCipher that decrypts successive blocks
// under AES in CBC mode, chaining the IV across ProcessBlock calls. key
// must be 16, 24, or 32 bytes; iv must be aes.BlockSize bytes.
func NewAESCBCDecryptor(key, iv []byte) (BlockCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &aesCBCCipher{
		mode:      stdcipher.NewCBCDecrypter(block, iv),
		blockSize: block.BlockSize(),
	}, nil
}
