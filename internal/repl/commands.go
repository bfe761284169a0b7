package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/config"
	"github.com/zephyrtronium/calculator/display"
	"github.com/zephyrtronium/calculator/internal/telemetry"
)

// Help describes the session commands.
const Help = `Commands:
  :help                        Show this help
  :quit                        Exit
  :def f(x, y) = expr          Define or redefine a function
  :undef name[/arity]          Remove a function or one overload
  :const name expr             Bind a constant to the value of expr
  :unconst name                Remove a constant
  :op sym arity prec [left|right]
                               Change an operator's precedence and associativity
  :ops  :funcs  :consts        List operators, functions, or constants
  :deg  :rad                   Use degrees or radians in trigonometry
  :frac :dec                   Show results as fractions or decimals
  :postfix expr                Evaluate a postfix expression, e.g. 3 4 +
  :load FILE                   Apply a YAML or JSON grammar file
  :m+ :m- :m* :m/              Combine ANS into memory
  :mc :mr                      Clear or recall memory
Every expression can use ANS, the last answer, and MR, the memory.`

var errUsage = errors.New("wrong arguments; see :help")

// command runs a line beginning with :.
func (s *Session) command(ctx context.Context, line string, w io.Writer) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	var err error
	switch strings.ToLower(name) {
	case ":help", ":h", ":?":
		fmt.Fprintln(w, Help)
	case ":quit", ":q", ":exit":
		return true
	case ":def":
		err = s.define(ctx, rest, w)
	case ":undef":
		err = s.undefine(ctx, rest)
	case ":const":
		err = s.constant(ctx, rest)
	case ":unconst":
		if !s.calc.Constants().Remove(rest) {
			err = fmt.Errorf("no constant %q", rest)
			break
		}
		s.edited(ctx, "constants", "remove", rest)
	case ":op":
		err = s.operator(ctx, rest)
	case ":ops":
		s.listOperators(w)
	case ":funcs":
		s.listFunctions(w)
	case ":consts":
		s.listConstants(w)
	case ":deg":
		s.calc.SetAngle(calculator.Degrees)
	case ":rad":
		s.calc.SetAngle(calculator.Radians)
	case ":frac":
		s.format.Mode = display.Fraction
	case ":dec":
		s.format.Mode = display.Decimal
	case ":postfix":
		var r float64
		r, err = s.EvalPostfix(ctx, rest)
		if err == nil {
			fmt.Fprintln(w, s.format.Format(r))
		}
	case ":load":
		err = s.load(ctx, rest)
	case ":m+":
		s.mem += s.ans
		fmt.Fprintln(w, s.Status())
	case ":m-":
		s.mem -= s.ans
		fmt.Fprintln(w, s.Status())
	case ":m*":
		s.mem *= s.ans
		fmt.Fprintln(w, s.Status())
	case ":m/":
		s.mem /= s.ans
		fmt.Fprintln(w, s.Status())
	case ":mc":
		s.mem = 0
		fmt.Fprintln(w, s.Status())
	case ":mr":
		fmt.Fprintln(w, s.format.Format(s.mem))
	default:
		err = fmt.Errorf("unknown command %s; see :help", name)
	}
	if err != nil {
		s.fail(w, err)
	}
	return false
}

func (s *Session) define(ctx context.Context, def string, w io.Writer) error {
	fn, err := s.calc.Functions().Redefine(def)
	if err != nil {
		return err
	}
	telemetry.LogDefinition(s.logger, fn.Name(), fn.Arity())
	s.metrics.RecordTableEdit(ctx, "functions", "define")
	fmt.Fprintln(w, fn)
	return nil
}

func (s *Session) undefine(ctx context.Context, arg string) error {
	name, ar, found := strings.Cut(arg, "/")
	if name == "" {
		return errUsage
	}
	fns := s.calc.Functions()
	if !found {
		if !fns.Remove(name) {
			return fmt.Errorf("no function %q", name)
		}
		s.edited(ctx, "functions", "remove", name)
		return nil
	}
	arity, err := strconv.Atoi(ar)
	if err != nil {
		return errUsage
	}
	if !fns.RemoveOverload(name, arity) {
		return fmt.Errorf("no overload of %s with %d arguments", name, arity)
	}
	s.edited(ctx, "functions", "remove", arg)
	return nil
}

func (s *Session) constant(ctx context.Context, arg string) error {
	name, expr, _ := strings.Cut(arg, " ")
	expr = strings.TrimSpace(expr)
	if name == "" || expr == "" {
		return errUsage
	}
	if !calculator.IsIdent(name) {
		return fmt.Errorf("invalid constant name %q", name)
	}
	v, err := s.calc.Evaluate(expr, calculator.Bind(AnswerName, s.ans), calculator.Bind(MemoryName, s.mem))
	if err != nil {
		return err
	}
	s.calc.Constants().Put(name, v)
	s.edited(ctx, "constants", "put", name)
	return nil
}

func (s *Session) operator(ctx context.Context, arg string) error {
	f := strings.Fields(arg)
	if len(f) != 3 && len(f) != 4 {
		return errUsage
	}
	arity, err := strconv.Atoi(f[1])
	if err != nil {
		return errUsage
	}
	prec, err := strconv.Atoi(f[2])
	if err != nil {
		return errUsage
	}
	op := s.calc.Operators().Get(f[0], arity)
	if op == nil {
		return fmt.Errorf("no operator %q with arity %d", f[0], arity)
	}
	assoc := op.Assoc
	if len(f) == 4 {
		a, ok := calculator.ParseAssoc(f[3])
		if !ok {
			return errUsage
		}
		assoc = a
	}
	op.Precedence, op.Assoc = prec, assoc
	s.edited(ctx, "operators", "edit", f[0])
	return nil
}

func (s *Session) load(ctx context.Context, path string) error {
	if path == "" {
		return errUsage
	}
	g, err := config.FromFile(path)
	if err != nil {
		return err
	}
	if err := g.Apply(s.calc); err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}
	s.edited(ctx, "grammar", "load", path)
	return nil
}

func (s *Session) edited(ctx context.Context, table, op, name string) {
	telemetry.LogTableEdit(s.logger, table, op, name)
	s.metrics.RecordTableEdit(ctx, table, op)
}

func (s *Session) listOperators(w io.Writer) {
	for _, op := range s.calc.Operators().All() {
		fmt.Fprintf(w, "%s\tarity %d\tprecedence %d\t%v\n", op.Symbol(), op.Arity(), op.Precedence, op.Assoc)
	}
}

func (s *Session) listFunctions(w io.Writer) {
	fns := s.calc.Functions()
	for _, name := range fns.Names() {
		for _, fn := range fns.Overloads(name) {
			switch fn := fn.(type) {
			case *calculator.UserFunction:
				fmt.Fprintln(w, fn)
			default:
				fmt.Fprintf(w, "%s/%d\n", fn.Name(), fn.Arity())
			}
		}
	}
}

func (s *Session) listConstants(w io.Writer) {
	c := s.calc.Constants()
	for _, name := range c.Names() {
		v, _ := c.Get(name)
		fmt.Fprintf(w, "%s = %s\n", name, display.Format(v, display.OutputDigits))
	}
}
