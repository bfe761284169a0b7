package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerm(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want term
	}{
		{"int", "12+", term{kind: termOperand, value: 12, next: 2}},
		{"frac", "12.5+", term{kind: termOperand, value: 12.5, next: 4}},
		{"dot", ".25", term{kind: termOperand, value: 0.25, next: 3}},
		{"trailing-dot", "3.", term{kind: termOperand, value: 3, next: 2}},
		{"coef", "2pi*", term{kind: termOperand, value: 2 * math.Pi, next: 3}},
		{"const", "e^2", term{kind: termOperand, value: math.E, next: 1}},
		{"call", "sqrt(16)x", term{kind: termOperand, value: 4, next: 8}},
		{"call-brackets", "max[1, 2]", term{kind: termOperand, value: 2, next: 9}},
		{"group", "(1+2)*3", term{kind: termOperand, value: 3, next: 5}},
		{"op", "+3", term{kind: termOperator, sym: "+", next: 1}},
		{"op-long", "<=3", term{kind: termOperator, sym: "<=", next: 2}},
		{"op-short", "<-3", term{kind: termOperator, sym: "<", next: 1}},
		{"op-unicode", "≤3", term{kind: termOperator, sym: "≤", next: 1}},
		{"op-ne", "!=2", term{kind: termOperator, sym: "!=", next: 2}},
		{"op-fact", "!", term{kind: termOperator, sym: "!", next: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := evaluator{env: New().env(nil), src: []rune(c.src)}
			got, err := ev.term(0, len(ev.src))
			require.NoError(t, err)
			assert.Equal(t, c.want.kind, got.kind)
			assert.InDelta(t, c.want.value, got.value, 1e-15)
			assert.Equal(t, c.want.sym, got.sym)
			assert.Equal(t, c.want.next, got.next)
		})
	}
}

func TestTermErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"close", ")", new(BracketError)},
		{"sep", ",", new(SeparatorError)},
		{"unknown", "$", new(OperatorError)},
		{"dots", "1..", new(LexError)},
		{"ident", "xyz", new(IdentError)},
		{"empty", "[]", new(EmptyExpressionError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := evaluator{env: New().env(nil), src: []rune(c.src)}
			_, err := ev.term(0, len(ev.src))
			assert.IsType(t, c.err, err)
		})
	}
}

func TestLongest(t *testing.T) {
	ops := DefaultOperators()
	cases := []struct {
		src  string
		want string
	}{
		{"*", "*"},
		{"==", "=="},
		{"=2", "="},
		{"!=", "!="},
		{"!x", "!"},
		{"- 1", "-"},
		{"-x", "-"},
		{"√2", "√"},
		{"x", ""},
		{"$", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ops.longest([]rune(c.src)), c.src)
	}
	require.NoError(t, ops.Add("=/=", 6, 2, LeftToRight, opNe))
	assert.Equal(t, "=/=", ops.longest([]rune("=/=1")))
	assert.Equal(t, "=", ops.longest([]rune("=/1")))
	require.True(t, ops.Remove("=/="))
	assert.Equal(t, 2, ops.maxlen)
}

func TestIsIdent(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"x", true},
		{"_x1", true},
		{"π", true},
		{"log10", true},
		{"", false},
		{"1x", false},
		{"a b", false},
		{"a-b", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, IsIdent(c.s), c.s)
	}
}
