// Package rational approximates floating-point values by fractions of
// machine integers.
package rational

import (
	"math"
	"strconv"
)

// Tolerance is the relative error within which ValueOf stops expanding the
// continued fraction.
const Tolerance = 1e-15

// maxTerms bounds the continued fraction expansion. Every float64 has a
// finite expansion, and none within int64 range needs this many terms.
const maxTerms = 100

// Rational is a fraction Num/Den in lowest terms with Den > 0.
type Rational struct {
	Num int64
	Den int64
}

// ValueOf finds the first convergent of the continued fraction of x whose
// relative error is at most Tolerance. The sign of x is carried by the
// numerator. Zero is 0/1. Values which are not finite, and values whose
// convergent does not fit in int64, are errors.
func ValueOf(x float64) (Rational, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Rational{}, &ValueError{Value: x, Reason: "not a finite number"}
	}
	v := math.Abs(x)
	if v == 0 {
		return Rational{Num: 0, Den: 1}, nil
	}
	h1, h2 := 1.0, 0.0
	k1, k2 := 0.0, 1.0
	b := v
	for i := 0; ; i++ {
		if i == maxTerms {
			return Rational{}, &ValueError{Value: x, Reason: "continued fraction did not converge"}
		}
		a := math.Floor(b)
		h1, h2 = a*h1+h2, h1
		k1, k2 = a*k1+k2, k1
		if h1 >= 1<<63 || k1 >= 1<<63 {
			return Rational{}, &ValueError{Value: x, Reason: "out of range of a 64-bit fraction"}
		}
		if math.Abs(v-h1/k1) <= v*Tolerance || b == a {
			break
		}
		b = 1 / (b - a)
	}
	r := Rational{Num: int64(math.Round(h1)), Den: int64(math.Round(k1))}
	if x < 0 {
		r.Num = -r.Num
	}
	return r, nil
}

// Float64 returns the nearest float64 to r.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String formats r as "num" if its denominator is 1 and "num/den" otherwise.
func (r Rational) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// ValueError is an error indicating a value with no usable approximation.
type ValueError struct {
	// Value is the value being approximated.
	Value float64
	// Reason describes the failure.
	Reason string
}

func (err *ValueError) Error() string {
	return "rational: cannot approximate " + strconv.FormatFloat(err.Value, 'g', -1, 64) + ": " + err.Reason
}
