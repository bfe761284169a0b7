package calculator_test

import (
	"fmt"
	"math"

	"github.com/zephyrtronium/calculator"
)

func ExampleCalculator_Evaluate() {
	calc := calculator.New()
	for _, expr := range []string{"2+3*4", "2(3+4)", "-2^2", "5!-3", "2 3"} {
		r, err := calc.Evaluate(expr)
		if err != nil {
			fmt.Println(expr, "error:", err)
			continue
		}
		fmt.Println(expr, "=", r)
	}
	// Output:
	// 2+3*4 = 14
	// 2(3+4) = 14
	// -2^2 = -4
	// 5!-3 = 117
	// 2 3 error: 3: operands separated by whitespace with no operator between them
}

func ExampleFunctions_LoadFunctionFromString() {
	calc := calculator.New()
	if _, err := calc.Functions().LoadFunctionFromString("hyp(a, b) = sqrt(a^2 + b^2)"); err != nil {
		panic(err)
	}
	r, _ := calc.Evaluate("hyp(3, 4)")
	fmt.Println(r)
	// Output: 5
}

func ExampleOperators_Add() {
	calc := calculator.New()
	err := calc.Operators().Add("**", 2, 2, calculator.RightToLeft, func(args []float64) float64 {
		return math.Pow(args[0], args[1])
	})
	if err != nil {
		panic(err)
	}
	r, _ := calc.Evaluate("2**10")
	fmt.Println(r)
	// Output: 1024
}

func ExampleBind() {
	calc := calculator.New()
	r, _ := calc.Evaluate("x^2 + 1", calculator.Bind("x", 3))
	fmt.Println(r)
	// Output: 10
}

func ExampleCalculator_EvaluatePostfix() {
	calc := calculator.New()
	r, _ := calc.EvaluatePostfix("3 4 + 2 *")
	fmt.Println(r)
	// Output: 14
}
