package creditstream

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// runProducer is the worker entry function: it hands the ProducerHandle to
// gen, awaits Generate, and on return sends EOF and waits for the final
// ack. A panic inside Generate is recovered and reported as ErrWorkerFault
// rather than crashing the process.
func (sp *sessionParts[T]) runProducer(ctx context.Context, gen Generator[T], handle *ProducerHandle[T]) {
	defer close(sp.dataCh)

	ctx, span := sp.tracer.Start(ctx, "creditstream.generate")
	defer span.End()

	// The timeout covers only the Generate call, not the closing EOF
	// handshake: a generator that finished in time must not be failed just
	// because the consumer is slow to acknowledge.
	genCtx := ctx
	if sp.generateTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, sp.generateTimeout)
		defer cancel()
	}

	start := time.Now()
	var genErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				genErr = fmt.Errorf("%w: %v", ErrWorkerFault, r)
			}
		}()
		genErr = gen.Generate(genCtx, handle)
	}()
	sp.metrics.ObserveGenerateDuration(sp.session, time.Since(start))

	if genErr != nil {
		genErr = fmt.Errorf("%w: %w", ErrWorkerFault, genErr)
		sp.logger.Error("generator failed", zap.String("session", sp.session), zap.Error(genErr))
		sp.workerErr <- genErr
		return
	}

	if err := handle.finish(ctx); err != nil {
		sp.logger.Warn("producer close failed", zap.String("session", sp.session), zap.Error(err))
		sp.workerErr <- err
		return
	}
	sp.workerErr <- nil
}
