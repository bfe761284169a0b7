// Package calculator implements a runtime-configurable calculator for
// floating-point arithmetic expressions.
//
// The syntax is the math you'd write in your notes. "2(3)" and "2pi" are
// multiplications, as is "3(4+1)". Operands must touch to be multiplied
// implicitly, so "2 3" is an error rather than 6. "-2^2" is "-(2^2)".
//
// Nothing about the grammar is fixed. Operators are registered with a
// symbol, an arity, a precedence, and an associativity, and the evaluator
// consults the operator table for every symbol it reads. Functions are
// registered natively in Go or as user functions written in the expression
// language itself:
//
//	calc := calculator.New()
//	calc.Functions().LoadFunctionFromString("hyp(a, b) = sqrt(a^2 + b^2)")
//	calc.Evaluate("hyp(3, 4)") // 5
//
// Evaluation is a single left-to-right pass with an operator stack and a
// value stack. There is no syntax tree, so table edits take effect on the
// very next evaluation.
package calculator
