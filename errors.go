package calculator

import "strconv"

// IdentError is an error indicating an identifier that names neither a
// constant nor a callable function. It implements InputError.
type IdentError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier that was not understood.
	Name string
}

func (err *IdentError) Error() string {
	return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Name))
}

func (err *IdentError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating that no registered operator symbol
// matches the input. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the text that was not understood. It is a single rune
	// unless the error came from an implicit multiplication with no *
	// operator registered.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "no operator found at "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket or end of input.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside of a function
// argument list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with a number of
// arguments that no overload accepts. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments supplied.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "no overload of "+err.Func+" accepts "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression, e.g.
// an empty pair of brackets or an empty function argument.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// SpacingError is an error indicating two operands separated only by
// whitespace. Implicit multiplication requires the operands to touch, so
// "2 3" is rejected rather than read as 6. It implements InputError.
type SpacingError struct {
	// Col is the position of the second operand.
	Col int
}

func (err *SpacingError) Error() string {
	return errpos(err.Col, "operands separated by whitespace with no operator between them")
}

func (err *SpacingError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator that was reduced without
// enough operands, e.g. the trailing + in "2+". It implements InputError.
type OperandError struct {
	// Col is the position of the end of the expression being reduced.
	Col int
	// Operator is the operator's symbol.
	Operator string
	// Arity is the number of operands the operator needed.
	Arity int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs "+strconv.Itoa(err.Arity)+" operands")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// LexError indicates a malformed numeric literal. It implements InputError.
type LexError struct {
	// Text is the literal the extractor was scanning, plus the invalid rune.
	Text string
	// Col is the position of the start of the literal.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid number token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// RecursionError is an error indicating that evaluation nested deeper than
// the calculator's depth limit, usually because a user function calls itself
// without a base case.
type RecursionError struct {
	// Limit is the depth limit that was exceeded.
	Limit int
}

func (err *RecursionError) Error() string {
	return "recursion limit of " + strconv.Itoa(err.Limit) + " exceeded"
}

// OverlapError is an error indicating a registration of an operator or
// function overload whose name and arity are already registered.
type OverlapError struct {
	// Name is the operator symbol or function identifier.
	Name string
	// Arity is the overload's arity.
	Arity int
}

func (err *OverlapError) Error() string {
	return "overlapping signature: " + err.Name + " with " + strconv.Itoa(err.Arity) + " operands is already registered"
}

// DefinitionError is an error indicating a malformed user function
// definition. It implements InputError.
type DefinitionError struct {
	// Col is the position in the definition where the problem was found.
	Col int
	// Definition is the full definition text.
	Definition string
	// Reason describes what is wrong.
	Reason string
}

func (err *DefinitionError) Error() string {
	return errpos(err.Col, "malformed function definition "+strconv.Quote(err.Definition)+": "+err.Reason)
}

func (err *DefinitionError) Pos() int {
	return err.Col
}

// SymbolError is an error indicating an operator that cannot be registered
// because of its symbol or arity.
type SymbolError struct {
	// Symbol is the rejected symbol.
	Symbol string
	// Reason describes what is wrong.
	Reason string
}

func (err *SymbolError) Error() string {
	return "invalid operator " + strconv.Quote(err.Symbol) + ": " + err.Reason
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid expression or definition text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*IdentError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*SpacingError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*DefinitionError)(nil)
)
