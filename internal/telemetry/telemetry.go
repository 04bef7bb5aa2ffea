package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InstrumentationName identifies this module's spans in trace backends.
const InstrumentationName = "github.com/flowkit-go/creditstream"

// Tracer returns the tracer creditstream and cipher use to start spans.
// logger receives one debug line naming the instrumentation scope.
func Tracer(logger *zap.Logger) trace.Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	tp := otel.GetTracerProvider()
	logger.Debug("resolved tracer provider", zap.String("instrumentation", InstrumentationName))
	return tp.Tracer(InstrumentationName)
}
