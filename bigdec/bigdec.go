// Package bigdec implements an arbitrary-precision decimal value type.
//
// A BigDec represents mantissa * 10^exponent, where the mantissa is a
// math/big integer and the exponent is a plain int. Values are kept in a
// canonical form: a nonzero mantissa is never divisible by 10, and the
// zero value always carries exponent 0. Because the representation is
// canonical, equality and ordering are defined directly on the
// (mantissa, exponent) pair.
//
// BigDec values are immutable. Constructors and arithmetic methods return
// new values and never modify their operands, so values can be shared
// freely across goroutines without locking.
package bigdec

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/joulook/Jivl/numerr"
)

var (
	one = big.NewInt(1)
	ten = big.NewInt(10)
)

// BigDec is an arbitrary-precision decimal number with the value
// mantissa * 10^exponent.
type BigDec struct {
	mantissa big.Int
	exponent int
}

// New returns a BigDec with the value mantissa * 10^exponent, normalized
// so that a nonzero mantissa has no factor of 10 and a zero mantissa has
// exponent 0. The mantissa is copied; the caller keeps ownership of it.
func New(mantissa *big.Int, exponent int) *BigDec {
	d := &BigDec{}
	d.mantissa.Set(mantissa)
	if d.mantissa.Sign() == 0 {
		return d
	}
	var q, r big.Int
	for {
		q.QuoRem(&d.mantissa, ten, &r)
		if r.Sign() != 0 {
			break
		}
		d.mantissa.Set(&q)
		exponent++
	}
	d.exponent = exponent
	return d
}

// NewFromInt64 returns a BigDec with the value of the provided int64.
func NewFromInt64(v int64) *BigDec {
	return New(big.NewInt(v), 0)
}

// NewFromBigInt returns a BigDec with the value of the provided big.Int.
func NewFromBigInt(v *big.Int) *BigDec {
	return New(v, 0)
}

// NewFromDecimalString parses a decimal literal of the form
//
//	[-]digits[.digits][e<signedInt>]
//
// such as "123.45", "1e2" or "-0.003e-10". Digits may be omitted on one
// side of the decimal point but not both; a bare trailing '.' or 'e' is a
// syntax error. The result is normalized.
func NewFromDecimalString(s string) (*BigDec, error) {
	if len(s) == 0 {
		return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: empty input")
	}
	rest := s
	neg := false
	if rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}

	exponent := 0
	if i := strings.IndexByte(rest, 'e'); i >= 0 {
		if i+1 == len(rest) {
			return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: %q has no digits after 'e'", s)
		}
		e, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: bad exponent in %q", s)
		}
		exponent = e
		rest = rest[:i]
	}

	intPart := rest
	fracPart := ""
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		if i+1 == len(rest) {
			return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: %q has no digits after '.'", s)
		}
		intPart, fracPart = rest[:i], rest[i+1:]
	}
	if len(intPart) == 0 && len(fracPart) == 0 {
		return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: %q has no digits", s)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, numerr.ErrSyntax.New("BigDec.NewFromDecimalString: %q is not a decimal literal", s)
	}

	var integral, fraction big.Int
	if len(intPart) > 0 {
		integral.SetString(intPart, 10)
	}
	if len(fracPart) > 0 {
		fraction.SetString(fracPart, 10)
	}

	// The sign is applied after integral and fractional digits are
	// combined, so "-0.5" keeps its sign even though the integral part
	// alone is zero.
	if fraction.Sign() != 0 {
		for range fracPart {
			integral.Mul(&integral, ten)
			exponent--
		}
		integral.Add(&integral, &fraction)
	}
	if neg {
		integral.Neg(&integral)
	}
	return New(&integral, exponent), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Mantissa returns a copy of the normalized mantissa of x.
func (x *BigDec) Mantissa() *big.Int {
	return new(big.Int).Set(&x.mantissa)
}

// Exponent returns the normalized power-of-ten exponent of x.
func (x *BigDec) Exponent() int {
	return x.exponent
}

// Sign returns -1 if x < 0, 0 if x == 0 and +1 if x > 0.
func (x *BigDec) Sign() int {
	return x.mantissa.Sign()
}

// IsZero reports whether x is zero.
func (x *BigDec) IsZero() bool {
	return x.mantissa.Sign() == 0
}

// IsPositive reports whether x is greater than zero.
func (x *BigDec) IsPositive() bool {
	return x.mantissa.Sign() > 0
}

// IsNegative reports whether x is less than zero.
func (x *BigDec) IsNegative() bool {
	return x.mantissa.Sign() < 0
}

// Neg returns -x.
func (x *BigDec) Neg() *BigDec {
	var m big.Int
	m.Neg(&x.mantissa)
	return New(&m, x.exponent)
}

// Abs returns the absolute value of x.
func (x *BigDec) Abs() *BigDec {
	var m big.Int
	m.Abs(&x.mantissa)
	return New(&m, x.exponent)
}

// Add returns the sum x+y. The operand with the smaller exponent sets the
// working scale; the other mantissa is multiplied up to match before the
// mantissas are summed, so no precision is lost.
func (x *BigDec) Add(y *BigDec) *BigDec {
	m1, e1 := &x.mantissa, x.exponent
	m2, e2 := &y.mantissa, y.exponent
	if e2 < e1 {
		m1, m2 = m2, m1
		e1, e2 = e2, e1
	}
	scaled := new(big.Int).Set(m2)
	for ; e2 > e1; e2-- {
		scaled.Mul(scaled, ten)
	}
	var sum big.Int
	sum.Add(m1, scaled)
	return New(&sum, e1)
}

// Sub returns the difference x-y.
func (x *BigDec) Sub(y *BigDec) *BigDec {
	return x.Add(y.Neg())
}

// Mul returns the product x*y.
func (x *BigDec) Mul(y *BigDec) *BigDec {
	var p big.Int
	p.Mul(&x.mantissa, &y.mantissa)
	return New(&p, x.exponent+y.exponent)
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
//
// Equal values always have identical normalized representations, so the
// equality case is a direct field comparison; otherwise the sign of x-y
// decides.
func (x *BigDec) Cmp(y *BigDec) int {
	if x.exponent == y.exponent && x.mantissa.Cmp(&y.mantissa) == 0 {
		return 0
	}
	if x.Sub(y).IsNegative() {
		return -1
	}
	return 1
}

// Eq reports whether x == y.
func (x *BigDec) Eq(y *BigDec) bool { return x.Cmp(y) == 0 }

// Ne reports whether x != y.
func (x *BigDec) Ne(y *BigDec) bool { return x.Cmp(y) != 0 }

// Lt reports whether x < y.
func (x *BigDec) Lt(y *BigDec) bool { return x.Cmp(y) < 0 }

// Gt reports whether x > y.
func (x *BigDec) Gt(y *BigDec) bool { return x.Cmp(y) > 0 }

// Le reports whether x <= y.
func (x *BigDec) Le(y *BigDec) bool { return x.Cmp(y) <= 0 }

// Ge reports whether x >= y.
func (x *BigDec) Ge(y *BigDec) bool { return x.Cmp(y) >= 0 }

// FloorCeiling returns the floor of x (rounded towards negative infinity)
// and the ceiling of x (rounded towards positive infinity) as integers.
// The results satisfy floor <= x <= ceiling and ceiling-floor is 0 or 1.
func (x *BigDec) FloorCeiling() (floor, ceiling *big.Int) {
	n := new(big.Int).Set(&x.mantissa)
	e := x.exponent
	switch {
	case n.Sign() == 0:
		floor, ceiling = n, new(big.Int)
	case e >= 0:
		for ; e > 0; e-- {
			n.Mul(n, ten)
		}
		floor = n
		ceiling = new(big.Int).Set(n)
	default:
		// Integer division truncates toward zero; a normalized nonzero
		// mantissa is never a multiple of 10, so the quotient here always
		// drops a nonzero fractional part.
		for ; e < 0 && n.Sign() != 0; e++ {
			n.Quo(n, ten)
		}
		if x.mantissa.Sign() >= 0 {
			floor = n
			ceiling = new(big.Int).Add(n, one)
		} else {
			ceiling = n
			floor = new(big.Int).Sub(n, one)
		}
	}
	if floor.Cmp(ceiling) > 0 {
		panic("BigDec.FloorCeiling: floor exceeds ceiling")
	}
	return floor, ceiling
}
