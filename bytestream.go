package creditstream

import (
	"context"

	"github.com/flowkit-go/creditstream/config"
)

// DefaultByteBufferBudget is the default buffer budget for byte-chunk
// streams: 64 KiB of unacknowledged plaintext.
const DefaultByteBufferBudget = 64 * 1024

// ByteGeneratorFunc is a Generate function for a byte-chunk stream.
type ByteGeneratorFunc func(ctx context.Context, p *ProducerHandle[[]byte]) error

type byteGenerator struct {
	fn     ByteGeneratorFunc
	budget int
}

func (g *byteGenerator) Generate(ctx context.Context, p *ProducerHandle[[]byte]) error {
	return g.fn(ctx, p)
}

func (g *byteGenerator) SizeOf(v []byte) int { return len(v) }

func (g *byteGenerator) BufferBudget() int { return g.budget }

// NewByteStream is a constructor shortcut that fixes T to []byte, size_of to
// len(chunk), and the buffer budget to DefaultByteBufferBudget unless
// overridden by WithByteBufferBudget.
func NewByteStream(ctx context.Context, fn ByteGeneratorFunc, opts ...ByteStreamOption) (*Stream[[]byte], error) {
	g := &byteGenerator{fn: fn, budget: DefaultByteBufferBudget}
	var streamOpts []Option
	for _, opt := range opts {
		opt(g, &streamOpts)
	}
	return New[[]byte](ctx, g, streamOpts...)
}

// ByteStreamOption configures NewByteStream.
type ByteStreamOption func(*byteGenerator, *[]Option)

// WithByteBufferBudget overrides the default 64 KiB buffer budget.
func WithByteBufferBudget(budget int) ByteStreamOption {
	return func(g *byteGenerator, _ *[]Option) { g.budget = budget }
}

// WithByteStreamOptions passes through ordinary Stream Options (logger,
// metrics, runtime, tracer, session ID) to the underlying New call.
func WithByteStreamOptions(opts ...Option) ByteStreamOption {
	return func(_ *byteGenerator, out *[]Option) { *out = append(*out, opts...) }
}

// WithByteStreamConfig applies a loaded config to the stream: the byte
// budget comes from cfg.Stream.DefaultByteBudget and the generate timeout
// from cfg.Stream.GenerateTimeout. A later WithByteBufferBudget still wins
// for the budget, so a host can load site-wide defaults and override per
// stream.
func WithByteStreamConfig(cfg *config.Config) ByteStreamOption {
	return func(g *byteGenerator, out *[]Option) {
		g.budget = cfg.Stream.DefaultByteBudget
		*out = append(*out, WithStreamConfig(cfg))
	}
}
