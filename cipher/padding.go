package cipher

// Padding adds and measures PKCS#7-compatible padding on a single block
// buffer.
type Padding interface {
	// AddPadding fills block[dataOffset:] with block_size-dataOffset
	// copies of the byte block_size-dataOffset. When dataOffset is 0 (the
	// plaintext ended exactly on a block boundary) this fills the whole
	// block with a full pad value, per PKCS#7's "always pad" rule.
	AddPadding(block []byte, dataOffset int)
	// PadCount reports how many trailing bytes of block are padding, by
	// reading its last byte. The caller validates the result against
	// 1..=len(block).
	PadCount(block []byte) int
}

// PKCS7 implements the standard PKCS#7 padding scheme.
type PKCS7 struct{}

// NewPKCS7 returns a PKCS#7 Padding.
func NewPKCS7() *PKCS7 {
	return &PKCS7{}
}

// AddPadding fills block[dataOffset:] with len(block)-dataOffset copies
// of the byte len(block)-dataOffset.
func (PKCS7) AddPadding(block []byte, dataOffset int) {
	padValue := len(block) - dataOffset
	for i := dataOffset; i < len(block); i++ {
		block[i] = byte(padValue)
	}
}

// PadCount returns the value of the block's last byte.
func (PKCS7) PadCount(block []byte) int {
	return int(block[len(block)-1])
}
