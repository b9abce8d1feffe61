package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var pipelineTracer = otel.Tracer("gridiron/internal/usecase")

// startSpan opens a child span for a pipeline stage. When tracing is not
// active on ctx the returned span is the ambient non-recording one, so
// callers can defer End unconditionally.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, trace.SpanFromContext(ctx)
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return pipelineTracer.Start(ctx, name)
}
