package telemetry

import (
	"errors"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/rational"
)

// ErrorKind names the kind of a calculator error for log fields and metric
// attributes. Errors from outside the calculator are "other".
func ErrorKind(err error) string {
	var (
		ident   *calculator.IdentError
		op      *calculator.OperatorError
		bracket *calculator.BracketError
		call    *calculator.CallError
		overlap *calculator.OverlapError
		def     *calculator.DefinitionError
		spacing *calculator.SpacingError
		rec     *calculator.RecursionError
		empty   *calculator.EmptyExpressionError
		operand *calculator.OperandError
		sep     *calculator.SeparatorError
		lex     *calculator.LexError
		sym     *calculator.SymbolError
		val     *rational.ValueError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ident):
		return "unknown_identifier"
	case errors.As(err, &op):
		return "no_operator"
	case errors.As(err, &bracket):
		return "bracket"
	case errors.As(err, &call):
		return "arity_mismatch"
	case errors.As(err, &overlap):
		return "overlapping_signature"
	case errors.As(err, &def):
		return "malformed_definition"
	case errors.As(err, &spacing):
		return "spacing"
	case errors.As(err, &rec):
		return "recursion_limit"
	case errors.As(err, &empty):
		return "empty_expression"
	case errors.As(err, &operand):
		return "missing_operand"
	case errors.As(err, &sep):
		return "separator"
	case errors.As(err, &lex):
		return "malformed_number"
	case errors.As(err, &sym):
		return "invalid_operator"
	case errors.As(err, &val):
		return "no_fraction"
	default:
		return "other"
	}
}
