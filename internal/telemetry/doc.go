// Package telemetry resolves the OpenTelemetry Tracer that creditstream and
// cipher use to start spans.
//
// A library has no business standing up an SDK, exporter, or resource;
// that is the host application's job. This package therefore only ever
// calls otel.GetTracerProvider().Tracer(name); when the host process never
// called otel.SetTracerProvider, that returns the global noop tracer and
// every span becomes a zero-cost no-op.
package telemetry
