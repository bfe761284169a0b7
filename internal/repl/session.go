// Package repl runs interactive and line-oriented calculator sessions.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/display"
	"github.com/zephyrtronium/calculator/internal/telemetry"
)

// Names of the transient bindings available to every evaluated line.
const (
	AnswerName = "ANS"
	MemoryName = "MR"
)

// Session is one calculator session: a calculator plus the last answer and
// memory register. A Session is not safe for concurrent use.
type Session struct {
	calc    *calculator.Calculator
	format  *display.Formatter
	logger  *slog.Logger
	metrics telemetry.MetricsRecorder
	spans   telemetry.SpanManager
	id      string

	ans float64
	mem float64
}

// Option configures a Session.
type Option func(*Session)

// WithFormatter sets the result formatter. The default writes plain
// decimals.
func WithFormatter(f *display.Formatter) Option {
	return func(s *Session) { s.format = f }
}

// WithLogger sets the session's logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics sets the session's metrics recorder.
func WithMetrics(m telemetry.MetricsRecorder) Option {
	return func(s *Session) { s.metrics = m }
}

// WithSpans sets the session's span manager.
func WithSpans(m telemetry.SpanManager) Option {
	return func(s *Session) { s.spans = m }
}

// New creates a session around calc with a new session id.
func New(calc *calculator.Calculator, opts ...Option) *Session {
	s := Session{
		calc:    calc,
		format:  &display.Formatter{},
		metrics: telemetry.NoopMetrics{},
		spans:   telemetry.NoopSpanManager{},
		id:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.logger = telemetry.EnrichLogger(s.logger, s.id)
	return &s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Calculator returns the session's calculator.
func (s *Session) Calculator() *calculator.Calculator {
	return s.calc
}

// Answer returns the result of the last successful evaluation.
func (s *Session) Answer() float64 {
	return s.ans
}

// Memory returns the contents of the memory register.
func (s *Session) Memory() float64 {
	return s.mem
}

// Status describes the memory register for display.
func (s *Session) Status() string {
	return MemoryName + ": " + display.Format(s.mem, display.MemoryDigits)
}

// Eval evaluates an infix expression with ANS and MR bound. A successful
// result becomes the new ANS.
func (s *Session) Eval(ctx context.Context, expr string) (float64, error) {
	return s.eval(ctx, "infix", expr, s.calc.Evaluate)
}

// EvalPostfix evaluates a postfix expression with ANS and MR bound. A
// successful result becomes the new ANS.
func (s *Session) EvalPostfix(ctx context.Context, expr string) (float64, error) {
	return s.eval(ctx, "postfix", expr, s.calc.EvaluatePostfix)
}

func (s *Session) eval(ctx context.Context, mode, expr string, f func(string, ...calculator.EvalOption) (float64, error)) (float64, error) {
	ctx, span := s.spans.StartEvaluationSpan(ctx, s.id, expr)
	start := time.Now()
	r, err := f(expr, calculator.Bind(AnswerName, s.ans), calculator.Bind(MemoryName, s.mem))
	elapsed := time.Since(start)
	s.metrics.RecordEvaluation(ctx, mode, elapsed, err)
	s.spans.EndSpanWithError(span, err)
	if err != nil {
		telemetry.LogEvaluationError(s.logger, expr, err)
		return 0, err
	}
	telemetry.LogEvaluation(s.logger, expr, r, float64(elapsed.Microseconds())/1000)
	s.ans = r
	return r, nil
}

// Process executes each line of r, writing results and errors to w, until r
// is exhausted or a line asks to quit.
func (s *Session) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s.Execute(ctx, sc.Text(), w) {
			return nil
		}
	}
	return sc.Err()
}

// Execute runs one line, which is either a command beginning with : or an
// expression. Output goes to w. The result reports whether the line asked
// to quit.
func (s *Session) Execute(ctx context.Context, line string, w io.Writer) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "", strings.HasPrefix(line, "#"):
		return false
	case strings.HasPrefix(line, ":"):
		return s.command(ctx, line, w)
	}
	r, err := s.Eval(ctx, line)
	if err != nil {
		s.fail(w, err)
		return false
	}
	fmt.Fprintln(w, s.format.Format(r))
	return false
}

// fail writes an error to w.
func (s *Session) fail(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
}
