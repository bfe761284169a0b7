package calculator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestDefaultConstants(t *testing.T) {
	c := calculator.DefaultConstants()
	cases := []struct {
		name string
		v    float64
	}{
		{"pi", math.Pi},
		{"π", math.Pi},
		{"e", math.E},
		{"phi", math.Phi},
		{"φ", math.Phi},
	}
	for _, k := range cases {
		v, ok := c.Get(k.name)
		require.True(t, ok, k.name)
		assert.Equal(t, k.v, v, k.name)
	}
	assert.Equal(t, []string{"e", "phi", "pi", "π", "φ"}, c.Names())
}

func TestConstantsOverlay(t *testing.T) {
	base := calculator.NewConstants()
	base.Put("x", 1)
	base.Put("y", 2)
	o := base.Overlay(map[string]float64{"x": 10, "z": 30})

	v, ok := o.Get("x")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
	v, ok = o.Get("y")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	_, ok = base.Get("z")
	assert.False(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, o.Names())

	// Removing from the overlay uncovers the parent.
	require.True(t, o.Remove("x"))
	v, _ = o.Get("x")
	assert.Equal(t, 1.0, v)
	assert.False(t, o.Remove("y"))
	_, ok = base.Get("y")
	assert.True(t, ok)

	o.Put("y", 20)
	v, _ = base.Get("y")
	assert.Equal(t, 2.0, v)

	flat := o.Clone()
	base.Put("w", 0)
	_, ok = flat.Get("w")
	assert.False(t, ok)
	v, _ = flat.Get("y")
	assert.Equal(t, 20.0, v)
}

func TestConstantsEdit(t *testing.T) {
	calc := calculator.New()
	calc.Constants().Put("c", 299792458)
	r, err := calc.Evaluate("2c")
	require.NoError(t, err)
	assert.Equal(t, 2*299792458.0, r)

	calc.Constants().Put("pi", 3)
	r, err = calc.Evaluate("pi")
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)

	require.True(t, calc.Constants().Remove("e"))
	_, err = calc.Evaluate("e")
	var ie *calculator.IdentError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "e", ie.Name)

	shared := calculator.NewConstants()
	shared.Put("k", 4)
	calc = calculator.New(calculator.WithConstants(shared))
	r, err = calc.Evaluate("k^2")
	require.NoError(t, err)
	assert.Equal(t, 16.0, r)
	_, err = calc.Evaluate("pi")
	assert.ErrorAs(t, err, &ie)
}
