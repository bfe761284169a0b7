// Package telemetry provides structured logging, metrics, and tracing for
// calculator sessions.
//
// Logging uses slog. Metrics and tracing use OpenTelemetry and have no-op
// implementations for when they are disabled.
package telemetry

import "log/slog"

// EnrichLogger adds the session id to every record of a logger.
func EnrichLogger(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("session_id", sessionID))
}

// LogEvaluation logs a successful evaluation.
func LogEvaluation(logger *slog.Logger, expr string, result float64, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("expr", expr),
		slog.Float64("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluationError logs a failed evaluation.
func LogEvaluationError(logger *slog.Logger, expr string, err error) {
	if logger == nil {
		return
	}
	logger.Info("expression failed",
		slog.String("expr", expr),
		slog.String("error.kind", ErrorKind(err)),
		slog.String("error", err.Error()),
	)
}

// LogDefinition logs a user function definition.
func LogDefinition(logger *slog.Logger, name string, arity int) {
	if logger == nil {
		return
	}
	logger.Info("function defined",
		slog.String("function", name),
		slog.Int("arity", arity),
	)
}

// LogTableEdit logs a change to an operator, function, or constant table.
func LogTableEdit(logger *slog.Logger, table, op, name string) {
	if logger == nil {
		return
	}
	logger.Info("table edited",
		slog.String("table", table),
		slog.String("operation", op),
		slog.String("name", name),
	)
}
