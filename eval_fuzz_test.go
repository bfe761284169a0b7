//go:build go1.18
// +build go1.18

package calculator_test

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/zephyrtronium/calculator"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("x")
	f.Add("2(3)-4!")
	f.Add("1×2")
	f.Add("max(1, [2])")
	f.Add("choose(5, 2)")
	f.Add("-2^-x")
	calc := calculator.New()
	f.Fuzz(func(t *testing.T, s string) {
		_, err := calc.Evaluate(s, calculator.Bind("x", 1))
		if err == nil {
			return
		}
		var ie calculator.InputError
		if errors.As(err, &ie) {
			if p := ie.Pos(); p < 1 || p > utf8.RuneCountInString(s)+1 {
				t.Errorf("%q: position %d out of range in %v", s, p, err)
			}
			return
		}
		var re *calculator.RecursionError
		if !errors.As(err, &re) {
			t.Errorf("%q: unexpected error type %T: %v", s, err, err)
		}
	})
}

func FuzzEvaluatePostfix(f *testing.F) {
	f.Add("3 4 +")
	f.Add("pi 2 * -")
	f.Fuzz(func(t *testing.T, s string) {
		calculator.New().EvaluatePostfix(s)
	})
}
