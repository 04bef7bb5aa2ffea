package creditstream

import (
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"
)

// drainingAckChannel returns an ack channel pre-loaded so any waitForAcks
// call in a white-box test resolves immediately. These properties only
// exercise Push, which never reads acks; the preload keeps the handle
// usable if a shrunk counterexample is replayed through Send by hand.
func drainingAckChannel(n int) chan struct{} {
	ch := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		ch <- struct{}{}
	}
	return ch
}

// TestProperty_AmountPendingStaysWithinBound: over any sequence of Push
// calls, amount_pending never reaches or exceeds 2*ack_unit, since the
// loop in Push drains it back below ack_unit every time it would cross
// that line.
func TestProperty_AmountPendingStaysWithinBound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		budget := rapid.IntRange(-4, 32).Draw(rt, "budget")
		n := rapid.IntRange(0, 200).Draw(rt, "numValues")

		// One Push can emit up to 1 value + size acks when ack_unit is 2,
		// and size draws up to 50, so the channel must hold n*51 messages
		// for the loop to stay unblocked with nobody draining dataTx.
		dataTx := make(chan message[int], n*51+8)
		consumerGone := make(chan struct{})

		handle := newProducerHandle[int](
			dataTx, drainingAckChannel(n*51+8), consumerGone,
			func(int) int { return 1 }, budget, "prop-test", nil, zap.NewNop(),
		)

		ackUnit := max(2, budget)

		for i := 0; i < n; i++ {
			size := rapid.IntRange(-3, 50).Draw(rt, "size")
			handle.sizeOf = func(int) int { return size }

			if err := handle.Push(i); err != nil {
				rt.Fatalf("unexpected Push error: %v", err)
			}

			if handle.amountPending < 0 {
				rt.Fatalf("amount_pending went negative: %d", handle.amountPending)
			}
			if handle.amountPending >= 2*ackUnit {
				rt.Fatalf("amount_pending %d exceeded bound 2*ack_unit=%d", handle.amountPending, 2*ackUnit)
			}
		}
	})
}

// TestProperty_AcksOutstandingNeverNegative checks the producer invariant
// acks_outstanding >= 0 at all times.
func TestProperty_AcksOutstandingNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		budget := rapid.IntRange(0, 16).Draw(rt, "budget")
		n := rapid.IntRange(0, 100).Draw(rt, "numValues")

		dataTx := make(chan message[int], n*4+8)
		consumerGone := make(chan struct{})

		handle := newProducerHandle[int](
			dataTx, drainingAckChannel(n*4+8), consumerGone,
			func(int) int { return 1 }, budget, "prop-test", nil, zap.NewNop(),
		)

		for i := 0; i < n; i++ {
			if err := handle.Push(i); err != nil {
				rt.Fatalf("unexpected Push error: %v", err)
			}
			if handle.acksOutstanding < 0 {
				rt.Fatalf("acks_outstanding went negative: %d", handle.acksOutstanding)
			}
		}
	})
}
