package rational_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator/rational"
)

func TestValueOf(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		want rational.Rational
		s    string
	}{
		{"zero", 0, rational.Rational{Num: 0, Den: 1}, "0"},
		{"neg-zero", math.Copysign(0, -1), rational.Rational{Num: 0, Den: 1}, "0"},
		{"int", 2, rational.Rational{Num: 2, Den: 1}, "2"},
		{"half", 0.5, rational.Rational{Num: 1, Den: 2}, "1/2"},
		{"tenth", 0.1, rational.Rational{Num: 1, Den: 10}, "1/10"},
		{"third", 1.0 / 3, rational.Rational{Num: 1, Den: 3}, "1/3"},
		{"neg", -0.75, rational.Rational{Num: -3, Den: 4}, "-3/4"},
		{"mixed", 22.0 / 7, rational.Rational{Num: 22, Den: 7}, "22/7"},
		{"neg-int", -5, rational.Rational{Num: -5, Den: 1}, "-5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := rational.ValueOf(c.x)
			require.NoError(t, err)
			assert.Equal(t, c.want, r)
			assert.Equal(t, c.s, r.String())
		})
	}
}

func TestValueOfClose(t *testing.T) {
	xs := []float64{math.Pi, math.E, math.Sqrt2, math.Phi, 1e-9, 123456.789, -0.007, 1e15 + 0.5}
	for _, x := range xs {
		r, err := rational.ValueOf(x)
		require.NoError(t, err, x)
		assert.Positive(t, r.Den, x)
		assert.LessOrEqual(t, math.Abs(r.Float64()-x), math.Abs(x)*rational.Tolerance, "%v approximated as %v", x, r)
	}
}

func TestValueOfErrors(t *testing.T) {
	xs := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e300}
	for _, x := range xs {
		_, err := rational.ValueOf(x)
		var ve *rational.ValueError
		require.ErrorAs(t, err, &ve, x)
		assert.Contains(t, err.Error(), "rational: cannot approximate")
	}
}
