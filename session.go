package creditstream

import (
	"time"

	"github.com/flowkit-go/creditstream/metrics"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// sessionParts holds the channels and observability handles shared by the
// producer and consumer goroutines of one session. It is never exposed
// outside the package; New wires it up and hands each half to its own
// goroutine.
type sessionParts[T any] struct {
	dataCh       chan message[T]
	ackCh        chan struct{}
	consumerGone chan struct{}
	workerErr    chan error

	session         string
	generateTimeout time.Duration

	metrics *metrics.Collector
	logger  *zap.Logger
	tracer  trace.Tracer
}
