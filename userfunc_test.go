package calculator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestParseDefinition(t *testing.T) {
	cases := []struct {
		name   string
		def    string
		fn     string
		params []string
		body   string
	}{
		{"one", "f(x) = x", "f", []string{"x"}, "x"},
		{"two", "hyp(a, b) = sqrt(a^2 + b^2)", "hyp", []string{"a", "b"}, "sqrt(a^2 + b^2)"},
		{"none", "two() = 2", "two", nil, "2"},
		{"spaces", "  g ( a ,b )=  a-b  ", "g", []string{"a", "b"}, "a-b"},
		{"brackets", "h[x] = x", "h", []string{"x"}, "x"},
		{"unicode", "área(r) = π*r^2", "área", []string{"r"}, "π*r^2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			name, params, body, err := calculator.ParseDefinition(c.def)
			require.NoError(t, err)
			assert.Equal(t, c.fn, name)
			assert.Equal(t, c.params, params)
			assert.Equal(t, c.body, body)
		})
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	cases := []struct {
		name string
		def  string
		pos  int
	}{
		{"no-params", "f", 1},
		{"no-name", "(x) = x", 1},
		{"bad-name", "2f(x) = x", 1},
		{"unclosed", "f(x", 4},
		{"trailing-comma", "f(x,) = x", 5},
		{"duplicate", "f(x,x) = x", 5},
		{"no-equals", "f(x)", 5},
		{"no-body", "f(x)=", 6},
		{"operator-param", "f(x+y) = 1", 4},
		{"spaced-param", "f(x y) = 1", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, _, err := calculator.ParseDefinition(c.def)
			var de *calculator.DefinitionError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.pos, de.Pos())
			assert.Equal(t, c.def, de.Definition)
			assert.Contains(t, err.Error(), "malformed function definition")
		})
	}
}

func TestUserFunctions(t *testing.T) {
	t.Run("define", func(t *testing.T) {
		calc := calculator.New()
		fn, err := calc.Functions().LoadFunctionFromString("double(x) = x*2")
		require.NoError(t, err)
		assert.Equal(t, "double", fn.Name())
		assert.Equal(t, 1, fn.Arity())
		assert.Equal(t, "double(x) = x*2", fn.String())
		r, err := calc.Evaluate("double(5)")
		require.NoError(t, err)
		assert.Equal(t, 10.0, r)

		_, err = calc.Functions().LoadFunctionFromString("double(y) = y")
		var overlap *calculator.OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, "double", overlap.Name)
		assert.Equal(t, 1, overlap.Arity)

		g, err := calc.Functions().Redefine("double(x) = x*3")
		require.NoError(t, err)
		assert.Same(t, fn, g)
		r, err = calc.Evaluate("double(5)")
		require.NoError(t, err)
		assert.Equal(t, 15.0, r)
	})

	t.Run("overloads", func(t *testing.T) {
		calc := calculator.New()
		_, err := calc.Functions().LoadFunctionFromString("f(x) = x")
		require.NoError(t, err)
		_, err = calc.Functions().LoadFunctionFromString("f(x, y) = x+y")
		require.NoError(t, err)
		r, err := calc.Evaluate("f(1) + f(1, 2)")
		require.NoError(t, err)
		assert.Equal(t, 4.0, r)
		_, err = calc.Evaluate("f(1, 2, 3)")
		var ce *calculator.CallError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 3, ce.Len)

		require.True(t, calc.Functions().RemoveOverload("f", 1))
		_, err = calc.Evaluate("f(1)")
		assert.ErrorAs(t, err, &ce)
		r, err = calc.Evaluate("f(1, 2)")
		require.NoError(t, err)
		assert.Equal(t, 3.0, r)
	})

	t.Run("shadow", func(t *testing.T) {
		calc := calculator.New()
		_, err := calc.Functions().LoadFunctionFromString("g(pi) = pi*2")
		require.NoError(t, err)
		r, err := calc.Evaluate("g(1) + pi")
		require.NoError(t, err)
		assert.Equal(t, 2+math.Pi, r)
	})

	t.Run("dynamic", func(t *testing.T) {
		// Parameters are visible to the functions the body calls.
		calc := calculator.New()
		_, err := calc.Functions().LoadFunctionFromString("inner() = x")
		require.NoError(t, err)
		_, err = calc.Functions().LoadFunctionFromString("outer(x) = inner()")
		require.NoError(t, err)
		r, err := calc.Evaluate("outer(7)")
		require.NoError(t, err)
		assert.Equal(t, 7.0, r)
		_, err = calc.Evaluate("inner()")
		assert.ErrorAs(t, err, new(*calculator.IdentError))
	})

	t.Run("niladic", func(t *testing.T) {
		calc := calculator.New()
		_, err := calc.Functions().LoadFunctionFromString("two() = 2")
		require.NoError(t, err)
		r, err := calc.Evaluate("two()two()")
		require.NoError(t, err)
		assert.Equal(t, 4.0, r)
		_, err = calc.Evaluate("two")
		assert.ErrorAs(t, err, new(*calculator.IdentError))
	})

	t.Run("body-error", func(t *testing.T) {
		calc := calculator.New()
		_, err := calc.Functions().LoadFunctionFromString("bad(x) = x+")
		require.NoError(t, err)
		_, err = calc.Evaluate("bad(1)")
		assert.ErrorAs(t, err, new(*calculator.OperandError))
	})

	t.Run("native", func(t *testing.T) {
		calc := calculator.New()
		_, err := calc.Functions().Redefine("sqrt(x) = x")
		assert.ErrorAs(t, err, new(*calculator.OverlapError))
		_, err = calc.Functions().LoadFunctionFromString("sqrt(x, y) = x*y")
		require.NoError(t, err)
		r, err := calc.Evaluate("sqrt(4) + sqrt(2, 3)")
		require.NoError(t, err)
		assert.Equal(t, 8.0, r)
	})

	t.Run("rename", func(t *testing.T) {
		calc := calculator.New()
		fns := calc.Functions()
		fn, err := fns.LoadFunctionFromString("double(x) = 2x")
		require.NoError(t, err)
		require.NoError(t, fns.Rename(fn, "twice"))
		assert.False(t, fns.Has("double"))
		r, err := calc.Evaluate("twice(4)")
		require.NoError(t, err)
		assert.Equal(t, 8.0, r)
		_, err = calc.Evaluate("double(4)")
		assert.ErrorAs(t, err, new(*calculator.IdentError))

		_, err = fns.LoadFunctionFromString("half(x) = x/2")
		require.NoError(t, err)
		assert.ErrorAs(t, fns.Rename(fn, "half"), new(*calculator.OverlapError))
		assert.ErrorAs(t, fns.Rename(fn, "2x"), new(*calculator.DefinitionError))
	})

	t.Run("params", func(t *testing.T) {
		calc := calculator.New()
		fns := calc.Functions()
		fn, err := fns.LoadFunctionFromString("f(x) = x")
		require.NoError(t, err)
		require.NoError(t, fns.SetParams(fn, []string{"a", "b"}))
		require.NoError(t, fn.SetBody("a*b"))
		assert.Equal(t, []string{"a", "b"}, fn.Params())
		assert.Equal(t, "a*b", fn.Body())
		r, err := calc.Evaluate("f(3, 4)")
		require.NoError(t, err)
		assert.Equal(t, 12.0, r)
		_, err = calc.Evaluate("f(3)")
		assert.ErrorAs(t, err, new(*calculator.CallError))

		assert.ErrorAs(t, fns.SetParams(fn, []string{"a", "a"}), new(*calculator.DefinitionError))
		assert.ErrorAs(t, fn.SetBody("  "), new(*calculator.DefinitionError))
		_, err = fns.LoadFunctionFromString("f(x) = x")
		require.NoError(t, err)
		assert.ErrorAs(t, fns.SetParams(fn, []string{"y"}), new(*calculator.OverlapError))
	})
}
