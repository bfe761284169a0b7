// Package display renders calculator results for people.
package display

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/calculator/rational"
)

const (
	// OutputDigits is the default number of fraction digits in a result.
	OutputDigits = 10
	// MemoryDigits is the number of fraction digits in the memory indicator.
	MemoryDigits = 3
)

// Magnitudes outside [StandardLower, StandardUpper] are shown in scientific
// notation. Magnitudes below ZeroBelow are shown as 0.
const (
	StandardUpper = 1e12
	StandardLower = 1e-6
	ZeroBelow     = 1e-100
)

// Mode selects how finite values are written.
type Mode int8

const (
	// Decimal writes values as decimals or in scientific notation.
	Decimal Mode = iota
	// Fraction writes values as the nearest small fraction, falling back to
	// Decimal when there is none.
	Fraction
)

func (m Mode) String() string {
	switch m {
	case Decimal:
		return "decimal"
	case Fraction:
		return "fraction"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Formatter formats values. The zero value writes plain decimals with
// OutputDigits fraction digits.
type Formatter struct {
	// Digits is the maximum number of fraction digits. Zero or less means
	// OutputDigits.
	Digits int
	// Mode selects decimal or fraction output.
	Mode Mode

	p *message.Printer
}

// NewFormatter creates a formatter which groups digits according to the
// conventions of a BCP 47 locale, e.g. "en" or "de-CH". An empty locale
// writes plain digits.
func NewFormatter(locale string, digits int, mode Mode) (*Formatter, error) {
	f := Formatter{Digits: digits, Mode: mode}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, err
		}
		f.p = message.NewPrinter(tag)
	}
	return &f, nil
}

// Format formats a value.
func (f *Formatter) Format(v float64) string {
	if f.Mode == Fraction {
		if r, err := rational.ValueOf(v); err == nil {
			return r.String()
		}
	}
	digits := f.Digits
	if digits <= 0 {
		digits = OutputDigits
	}
	if f.p == nil || !standard(v) {
		return Format(v, digits)
	}
	if v == math.Trunc(v) {
		return f.p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
	}
	return f.p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(digits)))
}

// Format formats v with at most digits fraction digits, without digit
// grouping.
func Format(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	a := math.Abs(v)
	switch {
	case a < ZeroBelow:
		return "0"
	case !standard(v):
		return scientific(v, digits)
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		s := strconv.FormatFloat(v, 'f', digits, 64)
		s = trimZeros(s)
		if s == "-0" {
			return "0"
		}
		return s
	}
}

// standard reports whether v is shown in positional notation.
func standard(v float64) bool {
	a := math.Abs(v)
	return a == 0 || StandardLower <= a && a <= StandardUpper
}

// scientific writes v as a mantissa with at most digits fraction digits and a
// decimal exponent, e.g. 1.5E13.
func scientific(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mant, exp, _ := strings.Cut(s, "e")
	mant = trimZeros(mant)
	exp = strings.TrimPrefix(exp, "+")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}

// trimZeros removes trailing zeros after a decimal point, and the point
// itself if nothing follows it.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
