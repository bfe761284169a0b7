package calculator

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Assoc is the direction in which operators of equal precedence group.
type Assoc int8

const (
	// LeftToRight groups a-b-c as (a-b)-c.
	LeftToRight Assoc = iota
	// RightToLeft groups a^b^c as a^(b^c). Unary operators which are
	// RightToLeft are prefix operators.
	RightToLeft
)

func (a Assoc) String() string {
	switch a {
	case LeftToRight:
		return "left"
	case RightToLeft:
		return "right"
	default:
		return "Assoc(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAssoc converts "left" or "right" to an Assoc.
func ParseAssoc(s string) (Assoc, bool) {
	switch strings.ToLower(s) {
	case "left", "ltr", "left-to-right":
		return LeftToRight, true
	case "right", "rtl", "right-to-left":
		return RightToLeft, true
	default:
		return 0, false
	}
}

// Operator is one overload of an operator symbol. Its identity is its symbol
// and arity; Precedence and Assoc may be edited in place while the operator
// is registered.
type Operator struct {
	symbol string
	arity  int
	fn     func(args []float64) float64

	// Precedence orders reductions. An operator on the stack is reduced
	// before a following operator whose Precedence is numerically greater,
	// so smaller numbers bind tighter.
	Precedence int
	// Assoc breaks ties between operators of equal Precedence.
	Assoc Assoc
}

// Symbol returns the operator's symbol.
func (op *Operator) Symbol() string {
	return op.symbol
}

// Arity returns the number of operands the operator takes, either 1 or 2.
func (op *Operator) Arity() int {
	return op.arity
}

// Apply reduces the operands. len(args) must equal op.Arity().
func (op *Operator) Apply(args []float64) float64 {
	return op.fn(args)
}

// precedes reports whether op, on top of the operator stack, must be reduced
// before next is pushed.
func (op *Operator) precedes(next *Operator) bool {
	if op.Precedence != next.Precedence {
		return op.Precedence < next.Precedence
	}
	return next.Assoc == LeftToRight
}

// prefix reports whether the operator is a unary operator applied to the
// operand that follows it.
func (op *Operator) prefix() bool {
	return op.arity == 1 && op.Assoc == RightToLeft
}

// Operators is an operator table. Each symbol maps to its overloads in
// registration order, with at most one overload per arity. It is not safe for
// concurrent use.
type Operators struct {
	syms map[string][]*Operator
	// maxlen is the length in runes of the longest registered symbol.
	maxlen int
}

// NewOperators creates an empty operator table.
func NewOperators() *Operators {
	return &Operators{syms: make(map[string][]*Operator)}
}

// Add registers an operator overload. Registering a symbol and arity that
// already exist fails with an *OverlapError.
func (t *Operators) Add(symbol string, precedence, arity int, assoc Assoc, fn func(args []float64) float64) error {
	if err := checkSymbol(symbol); err != nil {
		return err
	}
	if arity != 1 && arity != 2 {
		return &SymbolError{Symbol: symbol, Reason: "arity must be 1 or 2"}
	}
	if fn == nil {
		return &SymbolError{Symbol: symbol, Reason: "nil reduction function"}
	}
	if t.Get(symbol, arity) != nil {
		return &OverlapError{Name: symbol, Arity: arity}
	}
	op := &Operator{symbol: symbol, arity: arity, fn: fn, Precedence: precedence, Assoc: assoc}
	t.syms[symbol] = append(t.syms[symbol], op)
	if n := utf8.RuneCountInString(symbol); n > t.maxlen {
		t.maxlen = n
	}
	return nil
}

// Alias registers every overload of symbol under alias as well, sharing the
// reduction functions, precedence, and associativity at the time of the call.
// If any overload cannot be registered, the table is left unchanged.
func (t *Operators) Alias(alias, symbol string) error {
	ops := t.syms[symbol]
	if len(ops) == 0 {
		return &SymbolError{Symbol: symbol, Reason: "no such operator to alias"}
	}
	if err := checkSymbol(alias); err != nil {
		return err
	}
	for _, op := range ops {
		if t.Get(alias, op.arity) != nil {
			return &OverlapError{Name: alias, Arity: op.arity}
		}
	}
	for _, op := range ops {
		if err := t.Add(alias, op.Precedence, op.arity, op.Assoc, op.fn); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the overload of symbol with exactly the given arity, or nil.
func (t *Operators) Get(symbol string, arity int) *Operator {
	for _, op := range t.syms[symbol] {
		if op.arity == arity {
			return op
		}
	}
	return nil
}

// GetPreferredOrAny returns the overload of symbol with the given arity if
// there is one, and otherwise the first registered overload of symbol. The
// result is nil only if symbol is not registered at all.
func (t *Operators) GetPreferredOrAny(symbol string, arity int) *Operator {
	if op := t.Get(symbol, arity); op != nil {
		return op
	}
	if ops := t.syms[symbol]; len(ops) != 0 {
		return ops[0]
	}
	return nil
}

// Contains reports whether any overload of symbol is registered.
func (t *Operators) Contains(symbol string) bool {
	return len(t.syms[symbol]) != 0
}

// Remove removes all overloads of symbol. The result reports whether there
// were any.
func (t *Operators) Remove(symbol string) bool {
	if !t.Contains(symbol) {
		return false
	}
	delete(t.syms, symbol)
	t.measure()
	return true
}

// RemoveOverload removes the overload of symbol with the given arity.
func (t *Operators) RemoveOverload(symbol string, arity int) bool {
	ops := t.syms[symbol]
	for i, op := range ops {
		if op.arity == arity {
			ops = slices.Delete(ops, i, i+1)
			if len(ops) == 0 {
				delete(t.syms, symbol)
				t.measure()
			} else {
				t.syms[symbol] = ops
			}
			return true
		}
	}
	return false
}

// Symbols returns the registered symbols in sorted order.
func (t *Operators) Symbols() []string {
	r := make([]string, 0, len(t.syms))
	for k := range t.syms {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// All returns every registered overload, ordered by symbol and then by
// registration order.
func (t *Operators) All() []*Operator {
	var r []*Operator
	for _, sym := range t.Symbols() {
		r = append(r, t.syms[sym]...)
	}
	return r
}

// Clone returns a deep copy of the table. Edits to the copy's operators do
// not affect the original.
func (t *Operators) Clone() *Operators {
	n := &Operators{syms: make(map[string][]*Operator, len(t.syms)), maxlen: t.maxlen}
	for k, ops := range t.syms {
		c := make([]*Operator, len(ops))
		for i, op := range ops {
			cp := *op
			c[i] = &cp
		}
		n.syms[k] = c
	}
	return n
}

// longest returns the longest registered symbol that is a prefix of src,
// scanning no further than the point where the input switches into an
// identifier or whitespace.
func (t *Operators) longest(src []rune) string {
	r := ""
	for i := 1; i <= len(src) && i <= t.maxlen; i++ {
		if c := src[i-1]; isIdentRune(c) || unicode.IsSpace(c) {
			break
		}
		if s := string(src[:i]); t.Contains(s) {
			r = s
		}
	}
	return r
}

func (t *Operators) measure() {
	t.maxlen = 0
	for k := range t.syms {
		if n := utf8.RuneCountInString(k); n > t.maxlen {
			t.maxlen = n
		}
	}
}

// checkSymbol verifies that a symbol can be scanned as an operator.
func checkSymbol(symbol string) error {
	if symbol == "" {
		return &SymbolError{Symbol: symbol, Reason: "empty symbol"}
	}
	for _, r := range symbol {
		switch {
		case isIdentRune(r):
			return &SymbolError{Symbol: symbol, Reason: "contains identifier character " + string(r)}
		case unicode.IsSpace(r):
			return &SymbolError{Symbol: symbol, Reason: "contains whitespace"}
		case r == '.', r == ',', isOpenBracket(r), isCloseBracket(r):
			return &SymbolError{Symbol: symbol, Reason: "contains reserved character " + string(r)}
		}
	}
	return nil
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// factorial multiplies the integers from 2 up to x.
func factorial(x float64) float64 {
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
		if math.IsInf(r, 0) {
			break
		}
	}
	return r
}

type opdef struct {
	sym   string
	prec  int
	arity int
	assoc Assoc
	fn    func(args []float64) float64
}

var (
	opEq  = func(a []float64) float64 { return truth(a[0] == a[1]) }
	opNe  = func(a []float64) float64 { return truth(a[0] != a[1]) }
	opLt  = func(a []float64) float64 { return truth(a[0] < a[1]) }
	opLe  = func(a []float64) float64 { return truth(a[0] <= a[1]) }
	opGt  = func(a []float64) float64 { return truth(a[0] > a[1]) }
	opGe  = func(a []float64) float64 { return truth(a[0] >= a[1]) }
	opAdd = func(a []float64) float64 { return a[0] + a[1] }
	opSub = func(a []float64) float64 { return a[0] - a[1] }
	opMul = func(a []float64) float64 { return a[0] * a[1] }
	opDiv = func(a []float64) float64 { return a[0] / a[1] }
	opMod = func(a []float64) float64 { return math.Mod(a[0], a[1]) }
	opNeg = func(a []float64) float64 { return -a[0] }
	opRt  = func(a []float64) float64 { return math.Sqrt(a[0]) }
	opPow = func(a []float64) float64 { return math.Pow(a[0], a[1]) }
	opFac = func(a []float64) float64 { return factorial(a[0]) }
)

var pemdas = []opdef{
	{"==", 6, 2, LeftToRight, opEq},
	{"=", 6, 2, LeftToRight, opEq},
	{"!=", 6, 2, LeftToRight, opNe},
	{"≠", 6, 2, LeftToRight, opNe},
	{"<", 6, 2, LeftToRight, opLt},
	{"<=", 6, 2, LeftToRight, opLe},
	{"≤", 6, 2, LeftToRight, opLe},
	{">", 6, 2, LeftToRight, opGt},
	{">=", 6, 2, LeftToRight, opGe},
	{"≥", 6, 2, LeftToRight, opGe},
	{"+", 5, 2, LeftToRight, opAdd},
	{"-", 5, 2, LeftToRight, opSub},
	{"–", 5, 2, LeftToRight, opSub},
	{"/", 4, 2, LeftToRight, opDiv},
	{"*", 4, 2, LeftToRight, opMul},
	{"÷", 4, 2, LeftToRight, opDiv},
	{"×", 4, 2, LeftToRight, opMul},
	{"%", 4, 2, LeftToRight, opMod},
	{"-", 3, 1, RightToLeft, opNeg},
	{"√", 3, 1, RightToLeft, opRt},
	{"^", 2, 2, RightToLeft, opPow},
	{"!", 2, 1, LeftToRight, opFac},
}

// DefaultOperators returns a new table of the conventional operators:
// comparisons, then addition and subtraction, then multiplication and
// division, then prefix negation and square root, then exponentiation and
// factorial.
func DefaultOperators() *Operators {
	return buildOperators(pemdas, nil)
}

// ImmediateOperators returns a new table with the same operators as
// DefaultOperators, all at one precedence level. Binary operators reduce as
// soon as the next operator arrives, as on a basic pocket calculator.
func ImmediateOperators() *Operators {
	return buildOperators(pemdas, func(d opdef) opdef {
		d.prec = 1
		if d.arity == 2 {
			d.assoc = LeftToRight
		}
		return d
	})
}

func buildOperators(defs []opdef, edit func(opdef) opdef) *Operators {
	t := NewOperators()
	for _, d := range defs {
		if edit != nil {
			d = edit(d)
		}
		if err := t.Add(d.sym, d.prec, d.arity, d.assoc, d.fn); err != nil {
			panic("calculator: bad default operator: " + err.Error())
		}
	}
	return t
}
