package main

import (
	"context"

	"github.com/lcampos/bankflow/pkg/otelhelper"
	"go.opentelemetry.io/otel/trace"
)

// newTracer returns an OTLP-exporting tracer when tracing is enabled, nil
// otherwise. A nil tracer makes the runner fall back to a noop provider.
//
// nolint:ireturn // Returning interface is intentional for OpenTelemetry tracing
func newTracer(ctx context.Context, enabled bool) (trace.Tracer, error) {
	if !enabled {
		return nil, nil
	}

	return otelhelper.NewTracer(ctx, "bankflow-api")
}
