package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("calculator")

// SpanManager opens one span per evaluated line. NoopSpanManager traces
// nothing.
type SpanManager interface {
	StartEvaluationSpan(ctx context.Context, sessionID, expr string) (context.Context, trace.Span)
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager backed by the global tracer provider.
func NewSpanManager() SpanManager {
	return otelSpanManager{}
}

func (otelSpanManager) StartEvaluationSpan(ctx context.Context, sessionID, expr string) (context.Context, trace.Span) {
	return StartEvaluationSpan(ctx, sessionID, expr)
}

func (otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// StartEvaluationSpan starts a calculator.evaluate span tagged with the
// session and the expression text.
func StartEvaluationSpan(ctx context.Context, sessionID, expr string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("calculator.expr", expr),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError sets the span's status from err and ends it. Failures
// also carry an exception event and their ErrorKind. A nil span is ignored.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.String("error.kind", ErrorKind(err)))
	span.SetStatus(codes.Error, err.Error())
}
