package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder counts evaluations and table edits. NoopMetrics discards
// everything.
type MetricsRecorder interface {
	// RecordEvaluation records one infix or postfix evaluation. A non-nil
	// err counts as a failure under its ErrorKind.
	RecordEvaluation(ctx context.Context, mode string, duration time.Duration, err error)
	// RecordTableEdit records a change to the operator, function, or
	// constant table.
	RecordTableEdit(ctx context.Context, table, op string)
}

type otelMetrics struct {
	evaluations metric.Int64Counter
	errors      metric.Int64Counter
	latency     metric.Float64Histogram
	edits       metric.Int64Counter
}

// newOtelMetrics creates the calculator's instruments on the global meter
// provider.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("calculator")
	var m otelMetrics
	var err error
	counter := func(name, desc string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name, metric.WithDescription(desc))
		return c
	}
	m.evaluations = counter("calculator.evaluations", "Expressions evaluated")
	m.errors = counter("calculator.evaluation.errors", "Expressions which failed to evaluate")
	m.edits = counter("calculator.table.edits", "Edits to operator, function, and constant tables")
	if err != nil {
		return nil, err
	}
	m.latency, err = meter.Float64Histogram("calculator.evaluation.latency_ms",
		metric.WithDescription("Time to evaluate one expression"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

var sharedMetrics = sync.OnceValues(newOtelMetrics)

// NewMetricsRecorder returns a recorder backed by the global meter provider,
// which should be configured first. All recorders share one set of
// instruments. If the instruments cannot be created, the result is
// NoopMetrics.
func NewMetricsRecorder() MetricsRecorder {
	m, err := sharedMetrics()
	if err != nil {
		slog.Warn("metrics unavailable", slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordEvaluation(ctx context.Context, mode string, duration time.Duration, err error) {
	byMode := metric.WithAttributes(attribute.String("mode", mode))
	m.evaluations.Add(ctx, 1, byMode)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, byMode)
	if err == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("error.kind", ErrorKind(err)),
	))
}

func (m *otelMetrics) RecordTableEdit(ctx context.Context, table, op string) {
	m.edits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("operation", op),
	))
}
