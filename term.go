package calculator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OpenBrackets and CloseBrackets contain the runes which group expressions
// and delimit argument lists. A bracket in rune position k in OpenBrackets is
// closed by the bracket in rune position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

type termKind int8

const (
	// termOperand is a value: a number, constant, call result, or group.
	termOperand termKind = iota
	// termOperator is an operator symbol whose overload is not yet decided.
	termOperator
)

// term is one lexical unit extracted from an expression.
type term struct {
	kind  termKind
	value float64
	sym   string
	// next is the position just past the term.
	next int
}

// term extracts the term starting at src[start]. start must be before end and
// must not be whitespace.
func (ev *evaluator) term(start, end int) (term, error) {
	c := ev.src[start]
	switch {
	case isDigit(c), c == '.':
		return ev.number(start, end)
	case isIdentStart(c):
		v, next, err := ev.identifier(start, end)
		if err != nil {
			return term{}, err
		}
		return term{kind: termOperand, value: v, next: next}, nil
	case isOpenBracket(c):
		g, err := ev.group(start+1, end, []rune{closing(c)})
		if err != nil {
			return term{}, err
		}
		if !g.ok {
			return term{}, &EmptyExpressionError{Col: g.next, End: string(g.closer)}
		}
		return term{kind: termOperand, value: g.value, next: g.next}, nil
	case isCloseBracket(c):
		return term{}, &BracketError{Col: start + 1, Right: string(c)}
	case c == ',':
		return term{}, &SeparatorError{Col: start + 1, Sep: ","}
	default:
		sym := ev.env.calc.ops.longest(ev.src[start:end])
		if sym == "" {
			return term{}, &OperatorError{Col: start + 1, Operator: string(c)}
		}
		return term{kind: termOperator, sym: sym, next: start + utf8.RuneCountInString(sym)}, nil
	}
}

// number scans a numeric literal with at most one decimal point. A literal
// immediately followed by an identifier is multiplied by the identifier's
// value, so 2pi is one term.
func (ev *evaluator) number(start, end int) (term, error) {
	src := ev.src
	i := start
	dot, dig := false, false
	for ; i < end; i++ {
		c := src[i]
		if c == '.' {
			if dot {
				return term{}, &LexError{Col: start + 1, Text: string(src[start : i+1])}
			}
			dot = true
			continue
		}
		if !isDigit(c) {
			break
		}
		dig = true
	}
	if !dig {
		return term{}, &LexError{Col: start + 1, Text: string(src[start:i])}
	}
	v, err := strconv.ParseFloat(string(src[start:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Only digits and one dot were scanned, so this cannot happen.
		panic("calculator: unparseable number " + strconv.Quote(string(src[start:i])) + ": " + err.Error())
	}
	if i < end && isIdentStart(src[i]) {
		w, next, err := ev.identifier(i, end)
		if err != nil {
			return term{}, err
		}
		return term{kind: termOperand, value: v * w, next: next}, nil
	}
	return term{kind: termOperand, value: v, next: i}, nil
}

// identifier scans an identifier and resolves it. An identifier immediately
// followed by an open bracket is a call if a function of that name exists;
// otherwise it must be a bound constant.
func (ev *evaluator) identifier(start, end int) (float64, int, error) {
	src := ev.src
	i := start
	for i < end && isIdentRune(src[i]) {
		i++
	}
	name := string(src[start:i])
	fns := ev.env.calc.fns
	if i < end && isOpenBracket(src[i]) && fns.Has(name) {
		args, next, err := ev.arguments(i+1, end, src[i])
		if err != nil {
			return 0, 0, err
		}
		fn := fns.Get(name, len(args))
		if fn == nil {
			return 0, 0, &CallError{Col: start + 1, Func: name, Len: len(args)}
		}
		v, err := fn.Call(ev.env, args)
		if err != nil {
			return 0, 0, err
		}
		return v, next, nil
	}
	if v, ok := ev.env.consts.Get(name); ok {
		return v, i, nil
	}
	return 0, 0, &IdentError{Col: start + 1, Name: name}
}

// arguments evaluates a bracketed, comma-separated argument list. start is
// just past the open bracket. The second result is just past the close
// bracket.
func (ev *evaluator) arguments(start, end int, open rune) ([]float64, int, error) {
	closer := closing(open)
	delims := []rune{',', closer}
	var args []float64
	for {
		g, err := ev.group(start, end, delims)
		if err != nil {
			return nil, 0, err
		}
		if !g.ok {
			if g.closer == closer && len(args) == 0 {
				// f() is a call with no arguments, but f(a,) is not allowed.
				return nil, g.next, nil
			}
			return nil, 0, &EmptyExpressionError{Col: g.next, End: string(g.closer)}
		}
		args = append(args, g.value)
		start = g.next
		if g.closer == closer {
			return args, start, nil
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsIdent reports whether s is a complete identifier.
func IsIdent(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}

func isOpenBracket(r rune) bool {
	return strings.ContainsRune(OpenBrackets, r)
}

func isCloseBracket(r rune) bool {
	return strings.ContainsRune(CloseBrackets, r)
}

// closing gets the close bracket matching an open bracket.
func closing(open rune) rune {
	k := strings.IndexRune(OpenBrackets, open)
	if k < 0 {
		panic("calculator: invalid bracket " + strconv.QuoteRune(open))
	}
	return []rune(CloseBrackets)[k]
}

// opening gets the open bracket for the first close bracket in delims, or the
// empty string if there is none.
func opening(delims []rune) string {
	for _, r := range delims {
		if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
			return string([]rune(OpenBrackets)[k])
		}
	}
	return ""
}

func skipSpace(src []rune, start, end int) int {
	for start < end && unicode.IsSpace(src[start]) {
		start++
	}
	return start
}
