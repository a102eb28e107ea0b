package bigdec

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/joulook/Jivl/numerr"
)

// String returns x in scientific form, "<mantissa>e<exponent>", e.g.
// "12345e-2". The form is exact and accepted by NewFromDecimalString.
func (x *BigDec) String() string {
	return x.mantissa.String() + "e" + strconv.Itoa(x.exponent)
}

// DecimalString returns the canonical decimal rendering of x, without an
// exponent suffix: "123.45", "-0.00123", "120.0". Values with a
// non-negative exponent always end in ".0". The result parses back to a
// value equal to x.
func (x *BigDec) DecimalString() string {
	sign := ""
	if x.mantissa.Sign() < 0 {
		sign = "-"
	}
	m := new(big.Int).Abs(&x.mantissa).String()
	e := x.exponent
	if e >= 0 {
		return sign + m + zeros(e) + ".0"
	}
	e = -e
	// The mantissa is normalized, so the fractional tail carries no
	// removable trailing zeros.
	if e < len(m) {
		n := len(m) - e
		return sign + m[:n] + "." + m[n:]
	}
	return sign + "0." + zeros(e-len(m)) + m
}

// FixedDecimalString renders x with at most maxDigits digits after the
// decimal point, truncating (never rounding) excess fractional digits.
// If the integer part of x needs more than maxDigits digits, the result
// clamps to the signed boundary value 10^maxDigits followed by ".0".
// maxDigits must be at least 1.
func (x *BigDec) FixedDecimalString(maxDigits int) (string, error) {
	if maxDigits < 1 {
		return "", numerr.ErrSizeOutOfRange.New(
			"BigDec.FixedDecimalString: digit budget must be positive, got %d", maxDigits)
	}
	sign := ""
	if x.mantissa.Sign() < 0 {
		sign = "-"
	}
	s := new(big.Int).Abs(&x.mantissa).String()
	digits := len(s)

	clamp := func() string {
		bound := new(big.Int).Exp(ten, big.NewInt(int64(maxDigits)), nil)
		return sign + bound.String() + ".0"
	}

	if x.exponent >= 0 {
		if maxDigits < digits || maxDigits-digits < x.exponent {
			return clamp(), nil
		}
		return sign + s + zeros(x.exponent) + ".0", nil
	}

	exp := -x.exponent
	if exp < digits {
		intDigits := digits - exp
		if maxDigits < intDigits {
			return clamp(), nil
		}
		fracDigits := min(maxDigits, digits-intDigits)
		return sign + s[:intDigits] + "." + s[intDigits:intDigits+fracDigits], nil
	}

	// Purely fractional magnitude: exp-digits leading zeros follow the
	// decimal point before the first significant digit.
	lead := exp - digits
	if maxDigits <= lead {
		return sign + "0." + zeros(maxDigits), nil
	}
	keep := min(maxDigits-lead, digits)
	return sign + "0." + zeros(lead) + s[:keep], nil
}

func zeros(n int) string {
	return strings.Repeat("0", n)
}
