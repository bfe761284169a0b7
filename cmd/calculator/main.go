package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/config"
	"github.com/zephyrtronium/calculator/display"
	"github.com/zephyrtronium/calculator/internal/repl"
	"github.com/zephyrtronium/calculator/internal/telemetry"
)

const usage = `calculator

Usage:
  calculator [-d] [-f FILE] [--fraction] [--digits=N] [--locale=TAG] [-v] [EXPR...]
  calculator -h

Arguments:
  EXPR  Expressions to evaluate in order. Each result is ANS for the next.

Options:
  -d, --degrees      Use degrees in trigonometric functions.
  -f, --file=FILE    Apply a YAML or JSON grammar file before evaluating.
  --fraction         Show results as fractions where possible.
  --digits=N         Maximum fraction digits in results [default: 10].
  --locale=TAG       Group digits as in a BCP 47 locale, e.g. en or de.
  -v, --verbose      Log evaluations to stderr.
  -h, --help         Display this help.

With no expressions, lines are read from stdin. If stdin is a terminal, an
interactive session starts; type :help there for commands.
`

const historyFile = ".calculator_history"

func main() {
	log.SetFlags(0)
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	calc := calculator.New()
	if d, _ := opts.Bool("--degrees"); d {
		calc.SetAngle(calculator.Degrees)
	}
	if path, _ := opts.String("--file"); path != "" {
		g, err := config.FromFile(path)
		if err != nil {
			log.Fatal(err)
		}
		if err := g.Apply(calc); err != nil {
			log.Fatalf("apply %s: %v", path, err)
		}
	}

	ds, _ := opts.String("--digits")
	digits, err := strconv.Atoi(ds)
	if err != nil || digits < 0 {
		log.Fatalf("--digits must be a non-negative integer, not %q", ds)
	}
	mode := display.Decimal
	if f, _ := opts.Bool("--fraction"); f {
		mode = display.Fraction
	}
	locale, _ := opts.String("--locale")
	format, err := display.NewFormatter(locale, digits, mode)
	if err != nil {
		log.Fatalf("--locale: %v", err)
	}

	var logger *slog.Logger
	if v, _ := opts.Bool("--verbose"); v {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	s := repl.New(calc,
		repl.WithFormatter(format),
		repl.WithLogger(logger),
		repl.WithMetrics(telemetry.NewMetricsRecorder()),
		repl.WithSpans(telemetry.NewSpanManager()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exprs, _ := opts["EXPR"].([]string)
	if len(exprs) != 0 {
		failed := false
		for _, expr := range exprs {
			r, err := s.Eval(ctx, expr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", expr, err)
				failed = true
				continue
			}
			fmt.Println(format.Format(r))
		}
		if failed {
			os.Exit(1)
		}
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		var hist string
		if home, err := os.UserHomeDir(); err == nil {
			hist = filepath.Join(home, historyFile)
		}
		if err := s.Run(ctx, os.Stdout, hist); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
		return
	}
	if err := s.Process(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
