package creditstream

import (
	"context"

	"go.uber.org/zap"
)

// runConsumer reads the data channel in order and forwards values to out.
// EOF and ACK messages are acknowledged on ackCh and never themselves
// forwarded; only VALUE messages reach the output sequence. If ctx is done before EOF arrives,
// the loop closes consumerGone so a producer blocked in a data-channel send
// unblocks with ErrConsumerGone instead of hanging forever; a producer
// waiting for acks sees the same cancelled context and returns its error.
func (sp *sessionParts[T]) runConsumer(ctx context.Context, out chan<- Result[T]) {
	defer close(out)

	ctx, span := sp.tracer.Start(ctx, "creditstream.consume")
	defer span.End()

	abandon := func() {
		select {
		case <-sp.consumerGone:
		default:
			close(sp.consumerGone)
		}
	}

	for {
		select {
		case <-ctx.Done():
			abandon()
			return

		case msg, ok := <-sp.dataCh:
			if !ok {
				// The producer closed the data channel without ever
				// sending EOF: it returned with an error, recorded in
				// workerErr before closing.
				if werr := <-sp.workerErr; werr != nil {
					sp.metrics.IncWorkerFaults(sp.session)
					select {
					case out <- Result[T]{Err: werr}:
					case <-ctx.Done():
					}
				}
				return
			}

			switch msg.kind {
			case kindValue:
				select {
				case out <- Result[T]{Value: msg.value}:
				case <-ctx.Done():
					abandon()
					return
				}

			case kindAck:
				select {
				case sp.ackCh <- struct{}{}:
				case <-ctx.Done():
					abandon()
					return
				}

			case kindEOF:
				select {
				case sp.ackCh <- struct{}{}:
				case <-ctx.Done():
					abandon()
					return
				}
				if werr := <-sp.workerErr; werr != nil {
					sp.logger.Warn("worker reported error at EOF", zap.String("session", sp.session), zap.Error(werr))
					select {
					case out <- Result[T]{Err: werr}:
					case <-ctx.Done():
					}
				}
				return

			default:
				select {
				case out <- Result[T]{Err: ErrProtocolViolation}:
				case <-ctx.Done():
				}
				abandon()
				return
			}
		}
	}
}
