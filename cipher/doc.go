/*
Package cipher provides streaming block-cipher adapters: EncryptingSink
turns a stream of arbitrary-sized plaintext chunks into block-aligned
ciphertext, applying PKCS#7-style padding at close; DecryptingStream does
the inverse, holding back the final block until end-of-input so padding
can be stripped.

Both adapters are parameterized by an injected BlockCipher (block size,
in-place block processing) and Padding (add/measure padding) capability.
A default BlockCipher backed by crypto/aes in CBC mode is provided for
tests and examples. Concrete block ciphers are an external collaborator
of this design, not something the pipeline implements itself.
*/
package cipher
