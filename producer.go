package creditstream

import (
	"context"

	"github.com/flowkit-go/creditstream/metrics"
	"go.uber.org/zap"
)

// ProducerHandle is the Sink surface a Generator uses to emit values. It
// carries the protocol's credit/ack bookkeeping: every pushed value grows
// amount_pending by twice its clamped size; once amount_pending reaches
// ack_unit, one ACK sentinel is sent downstream and acks_outstanding is
// incremented. The doubling is deliberate (see the package doc); it is not
// simplified away even though it looks redundant.
type ProducerHandle[T any] struct {
	dataTx       chan<- message[T]
	ackRx        <-chan struct{}
	consumerGone <-chan struct{}

	budget  int
	ackUnit int

	acksOutstanding int
	amountPending   int

	sizeOf func(T) int

	session string
	metrics *metrics.Collector
	logger  *zap.Logger
}

func newProducerHandle[T any](
	dataTx chan<- message[T],
	ackRx <-chan struct{},
	consumerGone <-chan struct{},
	sizeOf func(T) int,
	budget int,
	session string,
	m *metrics.Collector,
	logger *zap.Logger,
) *ProducerHandle[T] {
	return &ProducerHandle[T]{
		dataTx:       dataTx,
		ackRx:        ackRx,
		consumerGone: consumerGone,
		budget:       budget,
		ackUnit:      max(2, budget),
		sizeOf:       sizeOf,
		session:      session,
		metrics:      m,
		logger:       logger,
	}
}

// Push sends v without waiting for credit, the protocol's add(v). It
// enqueues the value, grows amount_pending by 2*max(1,size_of(v)), and
// drains that growth into ACK sentinels one ack_unit at a time. The data
// channel is bounded, so Push blocks while its buffer is full, until the
// consumer drains it or goes away. Push never consumes returned credit;
// long Push-only runs must interleave FlushIfNeeded.
func (p *ProducerHandle[T]) Push(v T) error {
	select {
	case p.dataTx <- valueMessage(v):
	case <-p.consumerGone:
		return ErrConsumerGone
	}
	p.metrics.IncValuesSent(p.session)

	unit := p.sizeOf(v)
	if unit < 1 {
		unit = 1
	}
	p.amountPending += unit * 2
	p.metrics.SetBytesPending(p.session, p.amountPending/2)

	for p.amountPending >= p.ackUnit {
		select {
		case p.dataTx <- ackMessage[T]():
		case <-p.consumerGone:
			return ErrConsumerGone
		}
		p.acksOutstanding++
		p.amountPending -= p.ackUnit
		p.metrics.IncAcksSent(p.session)
		p.metrics.SetCreditsOutstanding(p.session, p.acksOutstanding)
	}
	return nil
}

// Send wraps Push with the protocol's suspension rule:
//   - budget > 1: wait until at most one ACK is outstanding, then push.
//   - budget == 1: wait until the channel is fully acked (empty), then push.
//   - budget <= 0: push, then wait for full rendezvous acknowledgement.
func (p *ProducerHandle[T]) Send(ctx context.Context, v T) error {
	if p.budget <= 0 {
		if err := p.Push(v); err != nil {
			return err
		}
		return p.waitForAcks(ctx, 0)
	}

	pending := 1
	if p.budget == 1 {
		pending = 0
	}
	if err := p.waitForAcks(ctx, pending); err != nil {
		return err
	}
	return p.Push(v)
}

// FlushIfNeeded suspends until the consumer has drained enough returned
// credit: down to one outstanding ack for positive budgets, or to a full
// rendezvous for budget <= 0. A sink-style generator that only ever calls
// Push must call this periodically: Push itself never consumes acks, so
// without the occasional flush both channels eventually fill and the
// worker stalls until the session is killed.
func (p *ProducerHandle[T]) FlushIfNeeded(ctx context.Context) error {
	if p.budget <= 0 {
		return p.waitForAcks(ctx, 0)
	}
	return p.waitForAcks(ctx, 1)
}

// waitForAcks blocks until acksOutstanding <= pending, consuming one ack
// message per iteration. It returns ErrConsumerGone if the ack channel
// closes before that happens, and ctx.Err() if ctx is done first.
func (p *ProducerHandle[T]) waitForAcks(ctx context.Context, pending int) error {
	for p.acksOutstanding > pending {
		select {
		case _, ok := <-p.ackRx:
			if !ok {
				return ErrConsumerGone
			}
			p.acksOutstanding--
			p.metrics.SetCreditsOutstanding(p.session, p.acksOutstanding)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// finish implements the producer-side close(): send EOF, account for one
// more outstanding ack, then wait for the consumer's EOF acknowledgement.
// Called by the session runner once Generate returns; Generator code never
// calls this directly; see the package doc's note on close() ownership.
func (p *ProducerHandle[T]) finish(ctx context.Context) error {
	select {
	case p.dataTx <- eofMessage[T]():
	case <-p.consumerGone:
		return ErrConsumerGone
	}
	p.acksOutstanding++
	p.metrics.SetCreditsOutstanding(p.session, p.acksOutstanding)
	return p.waitForAcks(ctx, 0)
}
