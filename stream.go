package creditstream

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/flowkit-go/creditstream/config"
	"github.com/flowkit-go/creditstream/internal/telemetry"
	"github.com/flowkit-go/creditstream/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Result is one element of a Stream's output sequence: either a value the
// generator produced, or a terminal error (ErrWorkerFault, or a protocol
// error). A Result with a non-nil Err is always the last one the Stream
// emits.
type Result[T any] struct {
	Value T
	Err   error
}

// Option configures a Stream at construction.
type Option func(*options)

type options struct {
	runtime         Runtime
	metrics         *metrics.Collector
	logger          *zap.Logger
	tracer          trace.Tracer
	session         string
	generateTimeout time.Duration
}

// WithRuntime overrides the default GoroutineRuntime, e.g. with a
// PooledRuntime shared across many streams.
func WithRuntime(r Runtime) Option { return func(o *options) { o.runtime = r } }

// WithMetrics attaches a metrics collector; nil disables recording.
func WithMetrics(c *metrics.Collector) Option { return func(o *options) { o.metrics = c } }

// WithLogger attaches a logger; nil defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithTracer overrides the tracer resolved via internal/telemetry.
func WithTracer(t trace.Tracer) Option { return func(o *options) { o.tracer = t } }

// WithSessionID overrides the session's generated UUID, e.g. to correlate
// with an external request ID in logs and trace attributes.
func WithSessionID(id string) Option { return func(o *options) { o.session = id } }

// WithGenerateTimeout bounds how long one Generator.Generate call may run.
// When the deadline passes, the generator's context ends, its next Send or
// FlushIfNeeded returns the context error, and the worker is reported as
// faulted. Zero or negative disables the bound.
func WithGenerateTimeout(d time.Duration) Option {
	return func(o *options) { o.generateTimeout = d }
}

// WithStreamConfig applies the stream-level knobs from a loaded config.
// Currently that is the generate timeout; the byte-budget default is
// applied by the byte-stream constructor via WithByteStreamConfig, and a
// generic generator's budget always comes from the generator itself.
func WithStreamConfig(cfg *config.Config) Option {
	return func(o *options) { o.generateTimeout = cfg.Stream.GenerateTimeout }
}

// Stream is the consumer-facing handle to one cross-worker generator run.
type Stream[T any] struct {
	out    chan Result[T]
	cancel context.CancelFunc
	state  *stateBox
	id     string
}

// New spawns gen in a worker through runtime (GoroutineRuntime by default)
// and returns a Stream the caller drains for results. From this call
// onward, gen is owned exclusively by the worker and must never be touched
// again by the caller; see Generator's doc comment.
func New[T any](ctx context.Context, gen Generator[T], opts ...Option) (*Stream[T], error) {
	o := options{
		runtime: GoroutineRuntime{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.session == "" {
		o.session = uuid.NewString()
	}
	if o.tracer == nil {
		o.tracer = telemetry.Tracer(o.logger)
	}

	// Read BufferBudget exactly once, at session start: later mutation of
	// gen's own state must not affect an in-flight session.
	budget := gen.BufferBudget()
	ackUnit := max(2, budget)

	// The channel buffer absorbs the flow-control bound's worth of
	// in-flight messages so a paced producer never blocks in Push. The
	// bound is in data units, not messages: for byte streams one chunk is
	// worth many units, so the message count stays far below 4*ack_unit
	// and the cap keeps a 64 KiB budget from allocating a 256k-entry
	// channel. A producer that outruns the cap blocks in Push until the
	// consumer drains. That is backpressure, not deadlock.
	capacity := 4*ackUnit + 8
	if capacity > 8192 {
		capacity = 8192
	}

	dataCh := make(chan message[T], capacity)
	ackCh := make(chan struct{}, capacity)
	consumerGone := make(chan struct{})
	workerErr := make(chan error, 1)

	runCtx, cancel := context.WithCancel(ctx)

	st := newStateBox()

	handle := newProducerHandle[T](dataCh, ackCh, consumerGone, gen.SizeOf, budget, o.session, o.metrics, o.logger)

	sp := &sessionParts[T]{
		dataCh:          dataCh,
		ackCh:           ackCh,
		consumerGone:    consumerGone,
		workerErr:       workerErr,
		session:         o.session,
		generateTimeout: o.generateTimeout,
		metrics:         o.metrics,
		logger:          o.logger,
		tracer:          o.tracer,
	}

	spawnErr := o.runtime.Spawn(runCtx, func(ctx context.Context) {
		// Only a session still spawning moves to RUNNING: a Kill that landed
		// before the worker started has already forced DONE.
		st.v.CompareAndSwap(int32(stateSpawning), int32(stateRunning))
		sp.runProducer(ctx, gen, handle)
	})
	if spawnErr != nil {
		cancel()
		return nil, fmt.Errorf("creditstream: spawn worker: %w", spawnErr)
	}

	out := make(chan Result[T], 1)
	go func() {
		st.set(stateDraining)
		sp.runConsumer(runCtx, out)
		st.set(stateDone)
	}()

	return &Stream[T]{out: out, cancel: cancel, state: st, id: o.session}, nil
}

// ID returns the session's correlation ID (a UUID unless WithSessionID
// overrode it).
func (s *Stream[T]) ID() string { return s.id }

// State reports the consumer-side state machine's current state.
func (s *Stream[T]) State() string { return s.state.get().String() }

// Results returns the receive-only channel of results, in order. It closes
// once the generator finishes, faults, or the stream is killed.
func (s *Stream[T]) Results() <-chan Result[T] { return s.out }

// Seq adapts Results into a range-over-func sequence. Breaking out of the
// range early kills the stream, the same way dropping Results without
// draining it would otherwise leak the worker.
func (s *Stream[T]) Seq() iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		for r := range s.out {
			if !yield(r) {
				s.Kill(PriorityAsEvent)
				return
			}
		}
	}
}

// Kill requests that the worker stop. priority is accepted for parity with
// a host WorkerRuntime that might honor it and is not used here; every
// Runtime in this package only offers cooperative cancellation, so the
// worker stops at its next context check inside Send or wait_for_acks, or
// when a blocked Push channel send sees the consumer go away.
func (s *Stream[T]) Kill(priority Priority) {
	s.state.set(stateDone)
	s.cancel()
}
