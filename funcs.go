package calculator

import (
	"math"
	"slices"
)

// Func is one overload of a named function. The implementations are *Native
// for functions backed by Go code and *UserFunction for functions defined by
// an expression.
type Func interface {
	// Name returns the identifier the function is registered under.
	Name() string
	// Arity returns the number of arguments the overload accepts.
	Arity() int
	// Call evaluates the function. len(args) equals Arity. env is the
	// environment of the caller.
	Call(env *Env, args []float64) (float64, error)

	sealed()
}

// NativeFunc is the Go implementation of a native function. It may consult
// env for the angle mode, random numbers, or bound constants.
type NativeFunc func(env *Env, args []float64) float64

// Native is a function implemented in Go.
type Native struct {
	name  string
	arity int
	fn    NativeFunc
}

func (f *Native) Name() string { return f.name }
func (f *Native) Arity() int   { return f.arity }

func (f *Native) Call(env *Env, args []float64) (float64, error) {
	return f.fn(env, args), nil
}

func (*Native) sealed() {}

// Monadic wraps a function of one variable into a NativeFunc.
func Monadic(f func(float64) float64) NativeFunc {
	return func(env *Env, args []float64) float64 {
		return f(args[0])
	}
}

// Dyadic wraps a function of two variables into a NativeFunc.
func Dyadic(f func(x, y float64) float64) NativeFunc {
	return func(env *Env, args []float64) float64 {
		return f(args[0], args[1])
	}
}

// Trig wraps a trigonometric function so that its argument is interpreted in
// the environment's angle mode.
func Trig(f func(float64) float64) NativeFunc {
	return func(env *Env, args []float64) float64 {
		return f(env.Angle().toRadians(args[0]))
	}
}

// InverseTrig wraps an inverse trigonometric function so that its result is
// expressed in the environment's angle mode.
func InverseTrig(f func(float64) float64) NativeFunc {
	return func(env *Env, args []float64) float64 {
		return env.Angle().fromRadians(f(args[0]))
	}
}

// Functions is a function table keyed by identifier and arity. Overloads of
// one identifier are kept in registration order. It is not safe for
// concurrent use.
type Functions struct {
	fns map[string][]Func
}

// NewFunctions creates an empty function table.
func NewFunctions() *Functions {
	return &Functions{fns: make(map[string][]Func)}
}

// Emplace registers a native function overload. Registering an identifier and
// arity that already exist fails with an *OverlapError.
func (t *Functions) Emplace(name string, arity int, fn NativeFunc) error {
	if !IsIdent(name) {
		return &DefinitionError{Col: 1, Definition: name, Reason: "invalid function identifier"}
	}
	if arity < 0 {
		return &DefinitionError{Col: 1, Definition: name, Reason: "negative arity"}
	}
	if fn == nil {
		return &DefinitionError{Col: 1, Definition: name, Reason: "nil function"}
	}
	return t.add(&Native{name: name, arity: arity, fn: fn})
}

func (t *Functions) add(fn Func) error {
	if t.Get(fn.Name(), fn.Arity()) != nil {
		return &OverlapError{Name: fn.Name(), Arity: fn.Arity()}
	}
	t.fns[fn.Name()] = append(t.fns[fn.Name()], fn)
	return nil
}

// Has reports whether any overload of name is registered.
func (t *Functions) Has(name string) bool {
	return len(t.fns[name]) != 0
}

// Get returns the overload of name accepting arity arguments, or nil.
func (t *Functions) Get(name string, arity int) Func {
	for _, fn := range t.fns[name] {
		if fn.Arity() == arity {
			return fn
		}
	}
	return nil
}

// GetFunction returns the first registered overload of name, or nil.
func (t *Functions) GetFunction(name string) Func {
	if fns := t.fns[name]; len(fns) != 0 {
		return fns[0]
	}
	return nil
}

// Overloads returns the overloads of name in registration order.
func (t *Functions) Overloads(name string) []Func {
	return slices.Clone(t.fns[name])
}

// Remove removes every overload of name. The result reports whether there
// were any.
func (t *Functions) Remove(name string) bool {
	if !t.Has(name) {
		return false
	}
	delete(t.fns, name)
	return true
}

// RemoveOverload removes the overload of name with the given arity.
func (t *Functions) RemoveOverload(name string, arity int) bool {
	fns := t.fns[name]
	for i, fn := range fns {
		if fn.Arity() == arity {
			t.drop(name, i)
			return true
		}
	}
	return false
}

func (t *Functions) drop(name string, i int) {
	fns := slices.Delete(t.fns[name], i, i+1)
	if len(fns) == 0 {
		delete(t.fns, name)
		return
	}
	t.fns[name] = fns
}

// indexOf finds fn among the overloads of its own name.
func (t *Functions) indexOf(fn Func) int {
	return slices.Index(t.fns[fn.Name()], fn)
}

// Names returns the registered identifiers, sorted.
func (t *Functions) Names() []string {
	r := make([]string, 0, len(t.fns))
	for k := range t.fns {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// Clone returns a copy of the table. User functions are copied so that edits
// to them through the copy do not affect the original.
func (t *Functions) Clone() *Functions {
	n := &Functions{fns: make(map[string][]Func, len(t.fns))}
	for k, fns := range t.fns {
		c := make([]Func, len(fns))
		for i, fn := range fns {
			if u, ok := fn.(*UserFunction); ok {
				cp := *u
				cp.params = slices.Clone(u.params)
				fn = &cp
			}
			c[i] = fn
		}
		n.fns[k] = c
	}
	return n
}

type fndef struct {
	name  string
	arity int
	fn    NativeFunc
}

var jmath = []fndef{
	{"abs", 1, Monadic(math.Abs)},
	{"sqrt", 1, Monadic(math.Sqrt)},
	{"min", 2, Dyadic(math.Min)},
	{"max", 2, Dyadic(math.Max)},
	{"floor", 1, Monadic(math.Floor)},
	{"ceil", 1, Monadic(math.Ceil)},
	{"round", 1, Monadic(roundHalfUp)},
	{"sin", 1, Trig(math.Sin)},
	{"sinh", 1, Monadic(math.Sinh)},
	{"asin", 1, InverseTrig(math.Asin)},
	{"asinh", 1, Monadic(math.Asinh)},
	{"cos", 1, Trig(math.Cos)},
	{"cosh", 1, Monadic(math.Cosh)},
	{"acos", 1, InverseTrig(math.Acos)},
	{"acosh", 1, Monadic(math.Acosh)},
	{"tan", 1, Trig(math.Tan)},
	{"tanh", 1, Monadic(math.Tanh)},
	{"atan", 1, InverseTrig(math.Atan)},
	{"atanh", 1, Monadic(math.Atanh)},
	{"log", 1, Monadic(math.Log10)},
	{"log10", 1, Monadic(math.Log10)},
	{"ln", 1, Monadic(math.Log)},
	{"exp", 1, Monadic(math.Exp)},
	{"rand", 0, func(env *Env, args []float64) float64 {
		return env.Rand()
	}},
	{"rand", 2, func(env *Env, args []float64) float64 {
		lo, hi := args[0], args[1]
		return lo + env.Rand()*(hi-lo)
	}},
}

// library is the set of default functions written in the expression language.
var library = []string{
	"nthroot(value, n) = value ^ (1/n)",
	"randInt(l, u) = floor(rand(floor(l), floor(u)+1))",
	"pick(cnd, lhs, rhs) = lhs(cnd != 0) + rhs(cnd == 0)",
	"choose(n, c) = n! / (c!(n-c)!)",
	"degrees(rads) = rads * (180/pi)",
	"radians(degs) = degs * (pi/180)",
}

// DefaultFunctions returns a new table of the default native functions and
// library functions.
func DefaultFunctions() *Functions {
	t := NewFunctions()
	for _, d := range jmath {
		if err := t.Emplace(d.name, d.arity, d.fn); err != nil {
			panic("calculator: bad default function: " + err.Error())
		}
	}
	for _, def := range library {
		if _, err := t.LoadFunctionFromString(def); err != nil {
			panic("calculator: bad library function: " + err.Error())
		}
	}
	return t
}

// roundHalfUp rounds half-way cases toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
