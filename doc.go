// Package creditstream runs a value-generating function in a dedicated
// worker goroutine and exposes its output to the calling goroutine as a
// lazy, ordered sequence, bounding the in-flight channel buffer with a
// two-party credit/acknowledgement protocol rather than an arbitrarily
// large or unbounded channel.
//
// # Construction
//
// New spawns a Generator[T] through a Runtime (a plain goroutine by
// default) and returns a *Stream[T]. The generator is given a
// *ProducerHandle[T] exposing two ways to emit values:
//
//   - Push(v) is the protocol's add(v): it never waits for credit, but it
//     blocks while the bounded data channel's buffer is full.
//   - Send(ctx, v) suspends until enough credit has been returned by the
//     consumer, per the generator's BufferBudget.
//
// A sink-style generator that only ever calls Push should interleave
// FlushIfNeeded so returned credit is actually consumed.
//
// # Credit accounting
//
// Every value pushed grows a producer-local amount_pending counter by
// 2*max(1,size_of(v)). Whenever amount_pending reaches ack_unit =
// max(2,buffer_budget), one ACK sentinel is sent on the data channel and
// acks_outstanding increments. The factor of two is deliberate: returning
// credit in two halves lets the consumer signal "half drained, you may
// resume" before the buffer is completely empty. It is not a simplifiable
// redundancy, and the flow-control bound (amount_pending stays within
// [0, 2*ack_unit)) depends on it.
//
// # close() ownership
//
// Generate must never attempt to close the channels itself. Once Generate
// returns, the session runner sends the EOF sentinel, waits for the
// consumer's acknowledgement, and only then tears the session down.
package creditstream
