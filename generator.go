package creditstream

import "context"

// Generator is user-supplied code that runs inside the worker goroutine and
// produces values through the ProducerHandle it is given. Generate owns the
// handle for the duration of the call and must not retain it past return.
// Generate must not attempt to close the underlying channels itself;
// shutdown is driven entirely by the session runner's own EOF emission once
// Generate returns; the generator only ever produces.
type Generator[T any] interface {
	// Generate runs exactly once for the lifetime of one session, pushing
	// any number of values through p before returning. A returned error is
	// fatal to the worker and is surfaced to the consumer as ErrWorkerFault.
	Generate(ctx context.Context, p *ProducerHandle[T]) error

	// SizeOf reports the unit cost of v for credit accounting. The caller
	// clamps the result to at least 1.
	SizeOf(v T) int

	// BufferBudget returns this session's credit budget. It is read exactly
	// once at session start and copied into the ProducerHandle. Later
	// mutation of the generator's own state has no effect on an in-flight
	// session, preventing a race between the worker and the caller.
	BufferBudget() int
}
