package calculator

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Angle is the unit in which trigonometric functions take and return angles.
type Angle int8

const (
	Radians Angle = iota
	Degrees
)

func (a Angle) String() string {
	switch a {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	default:
		return "Angle(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAngle converts "radians" or "degrees" (or "rad", "deg") to an Angle.
func ParseAngle(s string) (Angle, bool) {
	switch strings.ToLower(s) {
	case "radians", "rad", "":
		return Radians, true
	case "degrees", "deg":
		return Degrees, true
	default:
		return 0, false
	}
}

func (a Angle) toRadians(x float64) float64 {
	if a == Degrees {
		return x * (math.Pi / 180)
	}
	return x
}

func (a Angle) fromRadians(x float64) float64 {
	if a == Degrees {
		return x * (180 / math.Pi)
	}
	return x
}

// DefaultMaxDepth is the nesting depth at which evaluation fails with a
// *RecursionError unless a calculator is configured otherwise.
const DefaultMaxDepth = 1000

// Option is an option used when creating a Calculator.
type Option interface {
	calcOption(*Calculator)
}

type (
	opsopt    struct{ t *Operators }
	fnsopt    struct{ t *Functions }
	constsopt struct{ t *Constants }
	angleopt  Angle
	depthopt  int
	randopt   struct{ r *rand.Rand }
)

func (o opsopt) calcOption(c *Calculator)    { c.ops = o.t }
func (o fnsopt) calcOption(c *Calculator)    { c.fns = o.t }
func (o constsopt) calcOption(c *Calculator) { c.consts = o.t }
func (o angleopt) calcOption(c *Calculator)  { c.angle = Angle(o) }
func (o depthopt) calcOption(c *Calculator)  { c.maxdepth = int(o) }
func (o randopt) calcOption(c *Calculator)   { c.rng = o.r }

// WithOperators uses t as the calculator's operator table instead of a new
// DefaultOperators table. The calculator shares t; it does not copy it.
func WithOperators(t *Operators) Option {
	return opsopt{t}
}

// WithFunctions uses t as the calculator's function table instead of a new
// DefaultFunctions table.
func WithFunctions(t *Functions) Option {
	return fnsopt{t}
}

// WithConstants uses t as the calculator's global constant table instead of a
// new DefaultConstants table.
func WithConstants(t *Constants) Option {
	return constsopt{t}
}

// WithAngle sets the initial angle mode.
func WithAngle(a Angle) Option {
	return angleopt(a)
}

// WithMaxDepth sets the maximum nesting depth of groups, argument lists, and
// user function calls. Zero or less means DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return depthopt(n)
}

// WithRand sets the source of random numbers for rand and functions built on
// it. The default uses the global generator of math/rand/v2.
func WithRand(r *rand.Rand) Option {
	return randopt{r}
}

// EvalOption is an option for a single evaluation.
type EvalOption interface {
	evalOption(map[string]float64)
}

type (
	bindopt struct {
		name string
		val  float64
	}
	bindsopt map[string]float64
)

func (o bindopt) evalOption(m map[string]float64) { m[o.name] = o.val }

func (o bindsopt) evalOption(m map[string]float64) {
	for k, v := range o {
		m[k] = v
	}
}

// Bind binds name to value for one evaluation, shadowing any constant of the
// same name without modifying the constant table.
func Bind(name string, value float64) EvalOption {
	return bindopt{name, value}
}

// BindAll binds any number of names for one evaluation.
func BindAll(vars map[string]float64) EvalOption {
	return bindsopt(vars)
}
