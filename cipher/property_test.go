package cipher

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_EncryptDecryptRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	key := bytes.Repeat([]byte{0x11}, 32)
	iv := bytes.Repeat([]byte{0x22}, 16)

	properties.Property("decrypt(encrypt(xs)) == xs for arbitrary plaintexts", prop.ForAll(
		func(plaintext []byte) bool {
			enc, err := NewAESCBCEncryptor(key, iv)
			if err != nil {
				return false
			}
			var ciphertext bytes.Buffer
			sink := NewEncryptingSink(enc, NewPKCS7(), &ciphertext)
			if err := sink.Add(plaintext); err != nil {
				return false
			}
			if err := sink.Close(); err != nil {
				return false
			}

			dec, err := NewAESCBCDecryptor(key, iv)
			if err != nil {
				return false
			}
			stream := NewDecryptingStream(dec, NewPKCS7())
			out, err := stream.Feed(ciphertext.Bytes())
			if err != nil {
				return false
			}
			tail, err := stream.Close()
			if err != nil {
				return false
			}
			got := append(out, tail...)
			return bytes.Equal(got, plaintext)
		},
		gen.SliceOf(gen.UInt8Range(0, 255)).Map(func(xs []uint8) []byte {
			b := make([]byte, len(xs))
			for i, x := range xs {
				b[i] = byte(x)
			}
			return b
		}),
	))

	properties.TestingRun(t)
}

func TestProperty_ChunkingIndependence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	key := bytes.Repeat([]byte{0x33}, 32)
	iv := bytes.Repeat([]byte{0x44}, 16)

	properties.Property("plaintext chunking during Add does not change decrypted output", prop.ForAll(
		func(plaintext []byte, chunkSize int) bool {
			if chunkSize < 1 {
				chunkSize = 1
			}
			enc, err := NewAESCBCEncryptor(key, iv)
			if err != nil {
				return false
			}
			var ciphertext bytes.Buffer
			sink := NewEncryptingSink(enc, NewPKCS7(), &ciphertext)
			for i := 0; i < len(plaintext); i += chunkSize {
				end := i + chunkSize
				if end > len(plaintext) {
					end = len(plaintext)
				}
				if err := sink.Add(plaintext[i:end]); err != nil {
					return false
				}
			}
			if err := sink.Close(); err != nil {
				return false
			}

			dec, err := NewAESCBCDecryptor(key, iv)
			if err != nil {
				return false
			}
			stream := NewDecryptingStream(dec, NewPKCS7())
			ct := ciphertext.Bytes()
			var out []byte
			for i := 0; i < len(ct); i += chunkSize {
				end := i + chunkSize
				if end > len(ct) {
					end = len(ct)
				}
				chunk, err := stream.Feed(ct[i:end])
				if err != nil {
					return false
				}
				out = append(out, chunk...)
			}
			tail, err := stream.Close()
			if err != nil {
				return false
			}
			out = append(out, tail...)
			return bytes.Equal(out, plaintext)
		},
		gen.SliceOf(gen.UInt8Range(0, 255)).Map(func(xs []uint8) []byte {
			b := make([]byte, len(xs))
			for i, x := range xs {
				b[i] = byte(x)
			}
			return b
		}),
		gen.IntRange(1, 9),
	))

	properties.TestingRun(t)
}
