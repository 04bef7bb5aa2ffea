package cipher

import "errors"

// ErrMalformedCipherStream is returned when a ciphertext stream's total
// byte count is not a positive multiple of the block size.
var ErrMalformedCipherStream = errors.New("cipher: ciphertext length is not a positive multiple of the block size")

// ErrBadPadding is returned when the final block's pad count, as reported
// by Padding.PadCount, falls outside 1..=block_size.
var ErrBadPadding = errors.New("cipher: final block pad count out of range")

// ErrSinkClosed is returned by EncryptingSink.Add after Close has run.
var ErrSinkClosed = errors.New("cipher: sink is already closed")
