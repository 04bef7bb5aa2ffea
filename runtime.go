package creditstream

import (
	"context"

	"github.com/flowkit-go/creditstream/pool"
)

// Priority hints at how urgently Runtime.Spawn's worker should stop when
// killed. Go has no preemptive goroutine cancellation, so every Runtime
// here relies on the worker observing context cancellation cooperatively.
// Priority is accepted for interface parity with a host runtime that might
// genuinely distinguish these, and is otherwise unused.
type Priority int

const (
	PriorityBeforeNextEvent Priority = iota
	PriorityAsEvent
	PriorityImmediate
)

func (p Priority) String() string {
	switch p {
	case PriorityBeforeNextEvent:
		return "before_next_event"
	case PriorityAsEvent:
		return "as_event"
	case PriorityImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// Runtime is the WorkerRuntime capability: it runs a worker function as an
// independent unit of execution. fn must itself observe ctx cancellation in
// order to stop.
type Runtime interface {
	Spawn(ctx context.Context, fn func(ctx context.Context)) error
}

// GoroutineRuntime spawns a new goroutine per call. It is the default
// Runtime used when no Option overrides it.
type GoroutineRuntime struct{}

// Spawn starts fn in a new goroutine and returns immediately.
func (GoroutineRuntime) Spawn(ctx context.Context, fn func(ctx context.Context)) error {
	go fn(ctx)
	return nil
}

// PooledRuntime runs workers through a shared pool.WorkerPool instead of
// spawning an unbounded number of goroutines, letting a host application
// cap the number of live producer sessions across many concurrent
// CreditStreams.
type PooledRuntime struct {
	pool *pool.WorkerPool
}

// NewPooledRuntime wraps an existing WorkerPool as a Runtime.
func NewPooledRuntime(p *pool.WorkerPool) *PooledRuntime {
	return &PooledRuntime{pool: p}
}

// Spawn submits fn to the pool. It blocks only long enough to enqueue the
// session (or until ctx is done); the generator itself still runs
// asynchronously once a pool worker picks it up.
func (r *PooledRuntime) Spawn(ctx context.Context, fn func(ctx context.Context)) error {
	return r.pool.Submit(ctx, fn)
}
