package calculator

import (
	"math/rand/v2"
	"slices"
	"strconv"
)

// Calculator evaluates infix expressions against an operator table, a
// function table, and a global constant table. Every table may be edited
// between evaluations, and the edits take effect on the next evaluation.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	ops      *Operators
	fns      *Functions
	consts   *Constants
	angle    Angle
	maxdepth int
	rng      *rand.Rand
}

// New creates a calculator. Unless options provide them, it uses new
// DefaultOperators, DefaultFunctions, and DefaultConstants tables and
// evaluates trigonometric functions in radians.
func New(opts ...Option) *Calculator {
	c := Calculator{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt.calcOption(&c)
	}
	if c.ops == nil {
		c.ops = DefaultOperators()
	}
	if c.fns == nil {
		c.fns = DefaultFunctions()
	}
	if c.consts == nil {
		c.consts = DefaultConstants()
	}
	if c.maxdepth <= 0 {
		c.maxdepth = DefaultMaxDepth
	}
	return &c
}

// Operators returns the calculator's operator table.
func (c *Calculator) Operators() *Operators {
	return c.ops
}

// SetOperators replaces the calculator's operator table, e.g. to switch
// between DefaultOperators and ImmediateOperators.
func (c *Calculator) SetOperators(t *Operators) {
	c.ops = t
}

// Functions returns the calculator's function table.
func (c *Calculator) Functions() *Functions {
	return c.fns
}

// Constants returns the calculator's global constant table.
func (c *Calculator) Constants() *Constants {
	return c.consts
}

// Angle returns the angle mode of trigonometric functions.
func (c *Calculator) Angle() Angle {
	return c.angle
}

// SetAngle sets the angle mode of trigonometric functions.
func (c *Calculator) SetAngle(a Angle) {
	c.angle = a
}

// MaxDepth returns the nesting limit of evaluation.
func (c *Calculator) MaxDepth() int {
	return c.maxdepth
}

// SetMaxDepth sets the nesting limit of evaluation. Zero or less means
// DefaultMaxDepth.
func (c *Calculator) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	c.maxdepth = n
}

// Evaluate evaluates an infix expression. Options bind names for this
// evaluation only.
func (c *Calculator) Evaluate(expr string, opts ...EvalOption) (float64, error) {
	src := []rune(expr)
	return c.env(opts).evaluate(src, 0, len(src))
}

// EvaluateSpan evaluates the expression in runes [start, end) of expr.
// Positions in errors are still relative to the whole of expr. It panics if
// the span is out of range.
func (c *Calculator) EvaluateSpan(expr string, start, end int, opts ...EvalOption) (float64, error) {
	src := []rune(expr)
	if start < 0 || end > len(src) || start > end {
		panic("calculator: span [" + strconv.Itoa(start) + ", " + strconv.Itoa(end) + ") out of range for expression of length " + strconv.Itoa(len(src)))
	}
	return c.env(opts).evaluate(src, start, end)
}

// EvaluatePostfix evaluates an expression in reverse Polish notation, e.g.
// "3 4 + 2 *". Operands are numbers and constants separated by whitespace or
// operators. Each operator takes two operands when two are available and one
// otherwise. Functions cannot be called in postfix expressions.
func (c *Calculator) EvaluatePostfix(expr string, opts ...EvalOption) (float64, error) {
	src := []rune(expr)
	ev := evaluator{env: c.env(opts), src: src}
	var vals []float64
	i := 0
	for {
		i = skipSpace(src, i, len(src))
		if i >= len(src) {
			break
		}
		ch := src[i]
		switch {
		case isDigit(ch), ch == '.':
			t, err := ev.number(i, len(src))
			if err != nil {
				return 0, err
			}
			vals = append(vals, t.value)
			i = t.next
		case isIdentStart(ch):
			j := i
			for j < len(src) && isIdentRune(src[j]) {
				j++
			}
			name := string(src[i:j])
			v, ok := ev.env.consts.Get(name)
			if !ok {
				return 0, &IdentError{Col: i + 1, Name: name}
			}
			vals = append(vals, v)
			i = j
		default:
			t, err := ev.term(i, len(src))
			if err != nil {
				return 0, err
			}
			if t.kind != termOperator {
				// Brackets group nothing in postfix notation.
				return 0, &OperatorError{Col: i + 1, Operator: string(ch)}
			}
			op := c.ops.GetPreferredOrAny(t.sym, min(max(len(vals), 1), 2))
			s := stacks{vals: vals}
			if err := s.apply(op, i+1); err != nil {
				return 0, err
			}
			vals = s.vals
			i = t.next
		}
	}
	if len(vals) == 0 {
		return 0, &EmptyExpressionError{Col: 1}
	}
	return vals[len(vals)-1], nil
}

func (c *Calculator) env(opts []EvalOption) *Env {
	consts := c.consts
	if len(opts) != 0 {
		bind := make(map[string]float64, len(opts))
		for _, opt := range opts {
			opt.evalOption(bind)
		}
		consts = consts.Overlay(bind)
	}
	return &Env{calc: c, consts: consts}
}

// Env is the environment of one evaluation: the calculator's tables plus the
// constants visible at the current call depth. Native functions receive the
// environment of their caller.
type Env struct {
	calc   *Calculator
	consts *Constants
	depth  int
}

// Angle returns the angle mode of the calculator.
func (env *Env) Angle() Angle {
	return env.calc.angle
}

// Lookup returns the value bound to name in the environment, including
// parameters of enclosing user function calls.
func (env *Env) Lookup(name string) (float64, bool) {
	return env.consts.Get(name)
}

// Rand returns a uniform random number in [0, 1).
func (env *Env) Rand() float64 {
	if env.calc.rng != nil {
		return env.calc.rng.Float64()
	}
	return rand.Float64()
}

// child creates an environment which sees bind ahead of env's constants.
func (env *Env) child(bind map[string]float64) *Env {
	return &Env{calc: env.calc, consts: env.consts.Overlay(bind), depth: env.depth}
}

// evaluate evaluates runes [start, end) of src as a complete expression.
func (env *Env) evaluate(src []rune, start, end int) (float64, error) {
	ev := evaluator{env: env, src: src}
	g, err := ev.group(start, end, nil)
	if err != nil {
		return 0, err
	}
	if !g.ok {
		return 0, &EmptyExpressionError{Col: start + 1}
	}
	return g.value, nil
}

// evaluator reads terms from one expression.
type evaluator struct {
	env *Env
	src []rune
}

// grouping is the result of evaluating a group.
type grouping struct {
	value float64
	// ok is false if the group contained no operands.
	ok bool
	// next is the position after the group's closing delimiter.
	next int
	// closer is the delimiter which ended the group, or 0 at end of input.
	closer rune
}

// group evaluates terms from start until one of delims or end, using an
// operator stack and a value stack. With no delims, the group ends only at
// end; otherwise reaching end is a missing bracket.
//
// An operand directly following another operand, e.g. the 3 in 2(3), is
// multiplied by it. An operand is also what makes a following operator
// binary, so the - in 2-3 subtracts but the - in 2*-3 negates.
func (ev *evaluator) group(start, end int, delims []rune) (grouping, error) {
	env := ev.env
	env.depth++
	defer func() { env.depth-- }()
	if env.depth > env.calc.maxdepth {
		return grouping{}, &RecursionError{Limit: env.calc.maxdepth}
	}
	ops := env.calc.ops
	var (
		s stacks
		// implicit is set when the last term was an operand or postfix
		// operator, so an operand here would be multiplied.
		implicit bool
		// binary is set when an operator here would have a left operand.
		binary bool
		closer rune
		found  bool
	)
	i := start
	for {
		j := skipSpace(ev.src, i, end)
		spaced := j > i
		i = j
		if i >= end {
			break
		}
		if c := ev.src[i]; slices.Contains(delims, c) {
			closer, found = c, true
			break
		}
		t, err := ev.term(i, end)
		if err != nil {
			return grouping{}, err
		}
		switch t.kind {
		case termOperand:
			if implicit {
				if spaced {
					return grouping{}, &SpacingError{Col: i + 1}
				}
				if err := s.multiply(ops, i+1); err != nil {
					return grouping{}, err
				}
			}
			s.vals = append(s.vals, t.value)
			implicit, binary = true, true
		case termOperator:
			arity := 1
			if binary {
				arity = 2
			}
			op := ops.GetPreferredOrAny(t.sym, arity)
			if op.prefix() {
				if implicit {
					// 2√4 is 2*√4.
					if err := s.multiply(ops, i+1); err != nil {
						return grouping{}, err
					}
				}
				// Nothing to the left of a prefix operator can be reduced
				// yet, since it all awaits the prefix operator's result.
				s.ops = append(s.ops, op)
				implicit, binary = false, false
				break
			}
			if err := s.push(op, i+1); err != nil {
				return grouping{}, err
			}
			if op.arity == 2 {
				implicit, binary = false, false
			}
		}
		i = t.next
	}
	if len(delims) != 0 && !found {
		return grouping{}, &BracketError{Col: end + 1, Left: opening(delims)}
	}
	if err := s.drain(i + 1); err != nil {
		return grouping{}, err
	}
	g := grouping{next: i, closer: closer}
	if found {
		g.next = i + 1
	}
	if len(s.vals) != 0 {
		g.value, g.ok = s.vals[len(s.vals)-1], true
	}
	return g, nil
}

// stacks holds the operator and value stacks of one group.
type stacks struct {
	ops  []*Operator
	vals []float64
}

// push reduces every stacked operator which precedes op, then pushes op.
func (s *stacks) push(op *Operator, col int) error {
	for len(s.ops) != 0 {
		top := s.ops[len(s.ops)-1]
		if !top.precedes(op) {
			break
		}
		s.ops = s.ops[:len(s.ops)-1]
		if err := s.apply(top, col); err != nil {
			return err
		}
	}
	s.ops = append(s.ops, op)
	return nil
}

// multiply pushes the binary * operator for implicit multiplication.
func (s *stacks) multiply(ops *Operators, col int) error {
	mul := ops.Get("*", 2)
	if mul == nil {
		return &OperatorError{Col: col, Operator: "*"}
	}
	return s.push(mul, col)
}

// apply replaces the operands of op on the value stack with its result.
func (s *stacks) apply(op *Operator, col int) error {
	k := len(s.vals) - op.arity
	if k < 0 {
		return &OperandError{Col: col, Operator: op.symbol, Arity: op.arity}
	}
	r := op.fn(s.vals[k:])
	s.vals = append(s.vals[:k], r)
	return nil
}

// drain reduces every remaining operator.
func (s *stacks) drain(col int) error {
	for len(s.ops) != 0 {
		top := s.ops[len(s.ops)-1]
		s.ops = s.ops[:len(s.ops)-1]
		if err := s.apply(top, col); err != nil {
			return err
		}
	}
	return nil
}
