package cipher

import (
	"github.com/flowkit-go/creditstream/metrics"
	"go.uber.org/zap"
)

// DecryptingStream consumes a stream of ciphertext chunks and emits
// plaintext. It buffers incoming bytes into block_size-aligned groups,
// decrypting complete blocks as they form, but holds back the most
// recently decrypted block until Close reports end-of-input, because
// padding can only be stripped from the final block. Chunk boundaries on
// the output side need not match those on input.
type DecryptingStream struct {
	cipher  BlockCipher
	padding Padding

	block  []byte
	filled int

	held    []byte
	hasHeld bool

	session string
	metrics *metrics.Collector
	logger  *zap.Logger
}

// StreamOption configures a DecryptingStream.
type StreamOption func(*DecryptingStream)

// WithStreamSession labels metrics and log lines emitted by this stream.
func WithStreamSession(session string) StreamOption {
	return func(d *DecryptingStream) { d.session = session }
}

// WithStreamMetrics attaches a metrics collector; nil is safe and
// disables recording.
func WithStreamMetrics(c *metrics.Collector) StreamOption {
	return func(d *DecryptingStream) { d.metrics = c }
}

// WithStreamLogger attaches a logger; nil defaults to zap.NewNop().
func WithStreamLogger(logger *zap.Logger) StreamOption {
	return func(d *DecryptingStream) { d.logger = logger }
}

// NewDecryptingStream creates a DecryptingStream over c/p.
func NewDecryptingStream(c BlockCipher, p Padding, opts ...StreamOption) *DecryptingStream {
	d := &DecryptingStream{
		cipher:  c,
		padding: p,
		block:   make([]byte, c.BlockSize()),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed appends ciphertext bytes to the stream and returns any plaintext
// that is now safe to emit: every full block decrypted except the most
// recent one, which is held back until Close.
func (d *DecryptingStream) Feed(chunk []byte) ([]byte, error) {
	var out []byte
	bs := d.cipher.BlockSize()

	for len(chunk) > 0 {
		n := copy(d.block[d.filled:bs], chunk)
		d.filled += n
		chunk = chunk[n:]

		if d.filled == bs {
			plain := make([]byte, bs)
			d.cipher.ProcessBlock(d.block, plain)
			if d.hasHeld {
				out = append(out, d.held...)
			}
			d.held = plain
			d.hasHeld = true
			d.filled = 0
			d.metrics.IncBlocksDecrypted(d.session, 1)
		}
	}
	return out, nil
}

// Close reports end-of-input. If the ciphertext total was not a positive
// multiple of the block size, it fails with ErrMalformedCipherStream. It
// otherwise strips padding from the held-back final block, failing with
// ErrBadPadding if the pad count is out of range, and returns the
// remaining plaintext.
func (d *DecryptingStream) Close() ([]byte, error) {
	if d.filled != 0 || !d.hasHeld {
		d.logger.Warn("decrypting stream closed on non-block-aligned input", zap.String("session", d.session))
		d.metrics.IncPaddingErrors(d.session)
		return nil, ErrMalformedCipherStream
	}

	bs := d.cipher.BlockSize()
	n := d.padding.PadCount(d.held)
	if n < 1 || n > bs {
		d.logger.Warn("decrypting stream rejected bad padding", zap.String("session", d.session), zap.Int("pad_count", n))
		d.metrics.IncPaddingErrors(d.session)
		return nil, ErrBadPadding
	}

	return d.held[:bs-n], nil
}
