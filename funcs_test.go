package calculator_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestDefaultFunctions(t *testing.T) {
	fns := calculator.DefaultFunctions()
	names := []string{
		"abs", "sqrt", "min", "max", "floor", "ceil", "round",
		"sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh", "asinh", "acosh", "atanh",
		"log", "log10", "ln", "exp", "rand",
		"nthroot", "randInt", "pick", "choose", "degrees", "radians",
	}
	for _, name := range names {
		assert.True(t, fns.Has(name), name)
	}
	assert.Len(t, fns.Overloads("rand"), 2)
	assert.IsIncreasing(t, fns.Names())

	_, native := fns.GetFunction("sqrt").(*calculator.Native)
	assert.True(t, native)
	u, ok := fns.GetFunction("choose").(*calculator.UserFunction)
	require.True(t, ok)
	assert.Equal(t, []string{"n", "c"}, u.Params())
	assert.Nil(t, fns.GetFunction("nope"))
}

func TestEmplace(t *testing.T) {
	fns := calculator.NewFunctions()
	assert.ErrorAs(t, fns.Emplace("2x", 1, nil), new(*calculator.DefinitionError))
	assert.ErrorAs(t, fns.Emplace("f", -1, nil), new(*calculator.DefinitionError))
	var de *calculator.DefinitionError
	require.ErrorAs(t, fns.Emplace("boom", 0, nil), &de)
	assert.Equal(t, "nil function", de.Reason)
	assert.False(t, fns.Has("boom"))

	// Natives receive the caller's environment.
	lookup := func(env *calculator.Env, args []float64) float64 {
		v, _ := env.Lookup("x")
		return v + args[0]
	}
	require.NoError(t, fns.Emplace("plusx", 1, lookup))
	assert.ErrorAs(t, fns.Emplace("plusx", 1, lookup), new(*calculator.OverlapError))
	_, err := fns.LoadFunctionFromString("wrap(x) = plusx(1)")
	require.NoError(t, err)

	calc := calculator.New(calculator.WithFunctions(fns))
	r, err := calc.Evaluate("wrap(4)")
	require.NoError(t, err)
	assert.Equal(t, 5.0, r)
	r, err = calc.Evaluate("plusx(1)", calculator.Bind("x", 2))
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
	_, err = calc.Evaluate("sqrt(4)")
	assert.ErrorAs(t, err, new(*calculator.IdentError))
}

func TestFunctionsRemove(t *testing.T) {
	calc := calculator.New()
	fns := calc.Functions()
	require.True(t, fns.RemoveOverload("rand", 0))
	assert.False(t, fns.RemoveOverload("rand", 0))
	_, err := calc.Evaluate("rand()")
	assert.ErrorAs(t, err, new(*calculator.CallError))
	_, err = calc.Evaluate("rand(1, 2)")
	require.NoError(t, err)

	require.True(t, fns.Remove("sqrt"))
	assert.False(t, fns.Remove("sqrt"))
	_, err = calc.Evaluate("sqrt(4)")
	assert.ErrorAs(t, err, new(*calculator.IdentError))

	// A removed function name can be a constant again.
	calc.Constants().Put("sqrt", 3)
	r, err := calc.Evaluate("sqrt(4)")
	require.NoError(t, err)
	assert.Equal(t, 12.0, r)
}

func TestFunctionsClone(t *testing.T) {
	fns := calculator.DefaultFunctions()
	c := fns.Clone()
	_, err := c.Redefine("degrees(rads) = 0")
	require.NoError(t, err)
	require.True(t, c.Remove("sqrt"))

	calc := calculator.New(calculator.WithFunctions(fns))
	r, err := calc.Evaluate("degrees(pi)")
	require.NoError(t, err)
	assert.InDelta(t, 180, r, 1e-12)
	assert.True(t, fns.Has("sqrt"))
}

func TestWithRand(t *testing.T) {
	a := calculator.New(calculator.WithRand(rand.New(rand.NewPCG(1, 2))))
	b := calculator.New(calculator.WithRand(rand.New(rand.NewPCG(1, 2))))
	for range 10 {
		x, err := a.Evaluate("randInt(1, 100)")
		require.NoError(t, err)
		y, err := b.Evaluate("randInt(1, 100)")
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}
