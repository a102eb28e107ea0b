// Package bigfloat implements a binary floating-point value type with
// caller-chosen significand and exponent bit widths.
//
// A BigFloat mirrors the usual IEEE-754 layout: a sign bit, a biased
// exponent field of exponentSize bits and a significand field of
// significandSize bits (the leading "hidden" bit is implicit and not
// stored). Unlike the hardware formats, the two widths are arbitrary as
// long as each is greater
// than 1, so formats well beyond float32/float64 can be expressed and
// reasoned about exactly, bit for bit. NaN and the two infinities are
// represented as a tag rather than as reserved bit patterns, which keeps
// illegal states (a special value carrying significand bits)
// unrepresentable.
//
// Two BigFloat values can only be combined or compared when their
// significand and exponent sizes match exactly; binary operations return
// an error otherwise.
//
// BigFloat values are immutable: parsing, arithmetic and negation all
// return new values, so shared values need no locking.
package bigfloat

import (
	"math"
	"math/big"

	"github.com/joulook/Jivl/numerr"
)

var one = big.NewInt(1)

// form tags the kind of value a BigFloat holds. Finite values carry
// significand and exponent bits; the three special forms carry none.
type form int8

const (
	finite form = iota
	nan
	posInf
	negInf
)

func (f form) String() string {
	switch f {
	case nan:
		return "NaN"
	case posInf:
		return "+oo"
	case negInf:
		return "-oo"
	}
	return "finite"
}

// BigFloat is a floating-point number with significandSize significand
// bits (excluding the hidden bit) and exponentSize biased exponent bits,
// or one of the special values NaN, +oo and -oo.
type BigFloat struct {
	form            form
	neg             bool    // sign bit; true means negative
	significand     big.Int // significand bits, at most significandSize-1 wide
	exponent        big.Int // biased exponent bits, non-negative
	significandSize int
	exponentSize    int
}

func checkSizes(op string, significandSize, exponentSize int) error {
	if significandSize <= 1 {
		return numerr.ErrSizeOutOfRange.New(
			"%s: significand size must be greater than 1, got %d", op, significandSize)
	}
	if exponentSize <= 1 {
		return numerr.ErrSizeOutOfRange.New(
			"%s: exponent size must be greater than 1, got %d", op, exponentSize)
	}
	return nil
}

// hiddenBit returns 2^(significandSize-1), the weight of the implicit
// leading bit of a normalized value.
func hiddenBit(significandSize int) *big.Int {
	return new(big.Int).Lsh(one, uint(significandSize-1))
}

// exponentBias returns 2^(exponentSize-1) - 1.
func exponentBias(exponentSize int) *big.Int {
	b := new(big.Int).Lsh(one, uint(exponentSize-1))
	return b.Sub(b, one)
}

// maxStoredExponent returns 2^exponentSize - 1, the first biased exponent
// value that no finite BigFloat can store.
func maxStoredExponent(exponentSize int) *big.Int {
	m := new(big.Int).Lsh(one, uint(exponentSize))
	return m.Sub(m, one)
}

func newSpecial(f form, significandSize, exponentSize int) *BigFloat {
	return &BigFloat{
		form:            f,
		neg:             f == negInf,
		significandSize: significandSize,
		exponentSize:    exponentSize,
	}
}

// New returns a finite BigFloat with the given sign bit, significand and
// biased exponent bits and field widths. The significand must fit in
// significandSize-1 bits and the exponent must lie in
// [0, 2^exponentSize-1); both big.Int arguments are copied.
func New(neg bool, significand, exponent *big.Int, significandSize, exponentSize int) (*BigFloat, error) {
	if err := checkSizes("BigFloat.New", significandSize, exponentSize); err != nil {
		return nil, err
	}
	if significand.Sign() < 0 || significand.BitLen() > significandSize-1 {
		return nil, numerr.ErrSignificandOverflow.New(
			"BigFloat.New: significand does not fit in %d bits", significandSize-1)
	}
	if exponent.Sign() < 0 || exponent.Cmp(maxStoredExponent(exponentSize)) >= 0 {
		return nil, numerr.ErrExponentRange.New(
			"BigFloat.New: exponent does not fit in %d bits", exponentSize)
	}
	z := &BigFloat{
		form:            finite,
		neg:             neg,
		significandSize: significandSize,
		exponentSize:    exponentSize,
	}
	z.significand.Set(significand)
	z.exponent.Set(exponent)
	return z, nil
}

// NewZero returns a zero BigFloat with the given sign bit and field
// widths.
func NewZero(neg bool, significandSize, exponentSize int) (*BigFloat, error) {
	if err := checkSizes("BigFloat.NewZero", significandSize, exponentSize); err != nil {
		return nil, err
	}
	return &BigFloat{
		form:            finite,
		neg:             neg,
		significandSize: significandSize,
		exponentSize:    exponentSize,
	}, nil
}

// NewNaN returns a NaN BigFloat with the given field widths.
func NewNaN(significandSize, exponentSize int) (*BigFloat, error) {
	if err := checkSizes("BigFloat.NewNaN", significandSize, exponentSize); err != nil {
		return nil, err
	}
	return newSpecial(nan, significandSize, exponentSize), nil
}

// NewInf returns an infinite BigFloat with the given sign and field
// widths.
func NewInf(neg bool, significandSize, exponentSize int) (*BigFloat, error) {
	if err := checkSizes("BigFloat.NewInf", significandSize, exponentSize); err != nil {
		return nil, err
	}
	f := posInf
	if neg {
		f = negInf
	}
	return newSpecial(f, significandSize, exponentSize), nil
}

// SignificandSize returns the significand bit width of x.
func (x *BigFloat) SignificandSize() int {
	return x.significandSize
}

// ExponentSize returns the exponent bit width of x.
func (x *BigFloat) ExponentSize() int {
	return x.exponentSize
}

// SignBit reports whether the sign of x is negative. For NaN it is always
// false.
func (x *BigFloat) SignBit() bool {
	return x.neg
}

// Significand returns a copy of the stored significand bits of x.
// Special values store zero.
func (x *BigFloat) Significand() *big.Int {
	return new(big.Int).Set(&x.significand)
}

// Exponent returns a copy of the stored biased exponent bits of x.
// Special values store zero.
func (x *BigFloat) Exponent() *big.Int {
	return new(big.Int).Set(&x.exponent)
}

// IsNaN reports whether x is NaN.
func (x *BigFloat) IsNaN() bool {
	return x.form == nan
}

// IsInf reports whether x is +oo or -oo.
func (x *BigFloat) IsInf() bool {
	return x.form == posInf || x.form == negInf
}

// IsFinite reports whether x is neither NaN nor infinite.
func (x *BigFloat) IsFinite() bool {
	return x.form == finite
}

// IsZero reports whether x is a finite zero of either sign.
func (x *BigFloat) IsZero() bool {
	return x.form == finite && x.significand.Sign() == 0 && x.exponent.Sign() == 0
}

// signNeg reports the effective sign of x for the sign-combination rules
// of multiplication: the sign bit for finite values, the direction for
// infinities.
func (x *BigFloat) signNeg() bool {
	if x.form == posInf {
		return false
	}
	if x.form == negInf {
		return true
	}
	return x.neg
}

// signClass places a finite value in one of three ordering classes:
// -1 for negative, 0 for zero of either sign, +1 for positive.
func (x *BigFloat) signClass() int {
	if x.IsZero() {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

func (x *BigFloat) checkFormat(op string, y *BigFloat) error {
	if x.significandSize != y.significandSize || x.exponentSize != y.exponentSize {
		return numerr.ErrFormatMismatch.New(
			"%s: operand formats f%de%d and f%de%d differ",
			op, x.significandSize, x.exponentSize, y.significandSize, y.exponentSize)
	}
	return nil
}

// Neg returns -x. NaN negates to NaN, the infinities swap, and finite
// values flip the sign bit only.
func (x *BigFloat) Neg() *BigFloat {
	switch x.form {
	case nan:
		return newSpecial(nan, x.significandSize, x.exponentSize)
	case posInf:
		return newSpecial(negInf, x.significandSize, x.exponentSize)
	case negInf:
		return newSpecial(posInf, x.significandSize, x.exponentSize)
	}
	z := &BigFloat{
		form:            finite,
		neg:             !x.neg,
		significandSize: x.significandSize,
		exponentSize:    x.exponentSize,
	}
	z.significand.Set(&x.significand)
	z.exponent.Set(&x.exponent)
	return z
}

// Add returns the sum x+y. Both operands must have the same significand
// and exponent sizes.
//
// Any NaN operand, or infinities of opposite sign, produce NaN; a single
// infinite operand dominates. For finite operands the significands are
// aligned at the larger biased exponent (inserting the hidden bit for
// normalized operands), summed as signed integers and renormalized. An
// exact zero sum takes the AND of the operand signs, so (+0)+(-0) is +0
// and (-0)+(-0) is -0. A renormalized exponent at or beyond
// 2^exponentSize-1 overflows to infinity with the sign of the sum.
func (x *BigFloat) Add(y *BigFloat) (*BigFloat, error) {
	if err := x.checkFormat("BigFloat.Add", y); err != nil {
		return nil, err
	}

	if x.form != finite || y.form != finite {
		if x.form == nan || y.form == nan ||
			(x.form == posInf && y.form == negInf) ||
			(x.form == negInf && y.form == posInf) {
			return newSpecial(nan, x.significandSize, x.exponentSize), nil
		}
		if x.form != finite {
			return x, nil
		}
		return y, nil
	}

	// Order so that x carries the smaller biased exponent.
	if x.exponent.Cmp(&y.exponent) > 0 {
		x, y = y, x
	}

	// x cannot influence the sum when it is more than a full significand
	// width below y.
	var rawDiff big.Int
	rawDiff.Sub(&y.exponent, &x.exponent)
	if rawDiff.Cmp(big.NewInt(int64(x.significandSize))) > 0 {
		return y, nil
	}

	xsig := new(big.Int).Set(&x.significand)
	ysig := new(big.Int).Set(&y.significand)
	xexp := new(big.Int).Set(&x.exponent)
	yexp := new(big.Int).Set(&y.exponent)
	hidden := hiddenBit(x.significandSize)

	// Insert the hidden bit for normalized operands; a stored exponent of
	// zero means subnormal, which has no hidden bit and an effective
	// exponent one higher.
	if xexp.Sign() > 0 {
		xsig.Add(xsig, hidden)
	} else {
		xexp.Add(xexp, one)
	}
	if yexp.Sign() > 0 {
		ysig.Add(ysig, hidden)
	} else {
		yexp.Add(yexp, one)
	}

	if x.neg {
		xsig.Neg(xsig)
	}
	if y.neg {
		ysig.Neg(ysig)
	}

	var diff big.Int
	diff.Sub(yexp, xexp)
	xsig.Rsh(xsig, uint(diff.Int64()))

	ysig.Add(ysig, xsig)
	isNeg := ysig.Sign() < 0
	ysig.Abs(ysig)

	if ysig.Sign() == 0 {
		return &BigFloat{
			form:            finite,
			neg:             x.neg && y.neg,
			significandSize: x.significandSize,
			exponentSize:    x.exponentSize,
		}, nil
	}

	twoHidden := new(big.Int).Lsh(hidden, 1)
	if ysig.Cmp(twoHidden) >= 0 {
		ysig.Rsh(ysig, 1)
		yexp.Add(yexp, one)
	}
	for ysig.Cmp(hidden) < 0 && yexp.Cmp(one) > 0 {
		ysig.Lsh(ysig, 1)
		yexp.Sub(yexp, one)
	}
	if ysig.Cmp(hidden) < 0 {
		yexp.SetInt64(0)
	} else {
		ysig.Sub(ysig, hidden)
	}

	if yexp.Cmp(maxStoredExponent(x.exponentSize)) >= 0 {
		f := posInf
		if isNeg {
			f = negInf
		}
		return newSpecial(f, x.significandSize, x.exponentSize), nil
	}

	z := &BigFloat{
		form:            finite,
		neg:             isNeg,
		significandSize: x.significandSize,
		exponentSize:    x.exponentSize,
	}
	z.significand.Set(ysig)
	z.exponent.Set(yexp)
	return z, nil
}

// Sub returns the difference x-y.
func (x *BigFloat) Sub(y *BigFloat) (*BigFloat, error) {
	return x.Add(y.Neg())
}

// Mul returns the product x*y. Both operands must have the same
// significand and exponent sizes.
//
// NaN operands and oo*0 (in either order) produce NaN; any other
// combination with an infinite operand yields infinity signed by the XOR
// of the operand signs. Finite products renormalize the doubled-width
// significand and overflow to signed infinity past 2^exponentSize-1.
func (x *BigFloat) Mul(y *BigFloat) (*BigFloat, error) {
	if err := x.checkFormat("BigFloat.Mul", y); err != nil {
		return nil, err
	}

	if x.form == nan || y.form == nan ||
		(x.IsInf() && y.IsZero()) || (y.IsInf() && x.IsZero()) {
		return newSpecial(nan, x.significandSize, x.exponentSize), nil
	}
	if x.form != finite || y.form != finite {
		f := posInf
		if x.signNeg() != y.signNeg() {
			f = negInf
		}
		return newSpecial(f, x.significandSize, x.exponentSize), nil
	}

	xsig := new(big.Int).Set(&x.significand)
	ysig := new(big.Int).Set(&y.significand)
	xexp := new(big.Int).Set(&x.exponent)
	yexp := new(big.Int).Set(&y.exponent)
	hidden := hiddenBit(x.significandSize)

	if xexp.Sign() > 0 {
		xsig.Add(xsig, hidden)
	} else {
		xexp.Add(xexp, one)
	}
	if yexp.Sign() > 0 {
		ysig.Add(ysig, hidden)
	} else {
		yexp.Add(yexp, one)
	}

	ysig.Mul(ysig, xsig)
	yexp.Add(yexp, xexp)
	yexp.Sub(yexp, exponentBias(x.exponentSize))
	yexp.Sub(yexp, big.NewInt(int64(x.significandSize-1)))

	// Halve the product until it is below 2^significandSize and the
	// exponent is positive. The shift count is computed in one step: it
	// is the smallest count that satisfies both bounds, and shifting the
	// significand by more than its bit length just leaves zero.
	down := new(big.Int)
	if yexp.Sign() <= 0 {
		down.Sub(one, yexp)
	}
	if d := int64(ysig.BitLen() - x.significandSize); d > 0 && big.NewInt(d).Cmp(down) > 0 {
		down.SetInt64(d)
	}
	if down.Sign() > 0 {
		sh := uint(ysig.BitLen())
		if down.IsInt64() && down.Int64() < int64(sh) {
			sh = uint(down.Int64())
		}
		ysig.Rsh(ysig, sh)
		yexp.Add(yexp, down)
	}

	// Double it back up while it is below the hidden bit and exponent
	// room remains, again as a single computed shift.
	if ysig.Sign() == 0 {
		yexp.SetInt64(1)
	} else if ysig.Cmp(hidden) < 0 {
		up := int64(x.significandSize - ysig.BitLen())
		room := new(big.Int).Sub(yexp, one)
		if room.IsInt64() && room.Int64() < up {
			up = room.Int64()
		}
		ysig.Lsh(ysig, uint(up))
		yexp.Sub(yexp, big.NewInt(up))
	}

	if ysig.Cmp(hidden) < 0 {
		yexp.SetInt64(0)
	} else {
		ysig.Sub(ysig, hidden)
	}

	isNeg := x.neg != y.neg
	if yexp.Cmp(maxStoredExponent(x.exponentSize)) >= 0 {
		f := posInf
		if isNeg {
			f = negInf
		}
		return newSpecial(f, x.significandSize, x.exponentSize), nil
	}

	z := &BigFloat{
		form:            finite,
		neg:             isNeg,
		significandSize: x.significandSize,
		exponentSize:    x.exponentSize,
	}
	z.significand.Set(ysig)
	z.exponent.Set(yexp)
	return z, nil
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
//
// Cmp defines a total order over all values of one format: NaN sorts
// above every other value and two NaN compare equal, +oo is the maximum
// and -oo the minimum among non-NaN values, and +0 and -0 compare equal.
// Note that NaN == NaN here diverges from the IEEE unordered convention;
// the Eq, Ne, Lt, Gt, Le and Ge predicates implement the IEEE behavior.
func (x *BigFloat) Cmp(y *BigFloat) (int, error) {
	if err := x.checkFormat("BigFloat.Cmp", y); err != nil {
		return 0, err
	}

	if x.form == finite && y.form == finite {
		cx, cy := x.signClass(), y.signClass()
		if cx == cy {
			if x.exponent.Cmp(&y.exponent) == 0 {
				return cx * x.significand.Cmp(&y.significand), nil
			}
			return cx * x.exponent.Cmp(&y.exponent), nil
		}
		if cx == 0 {
			return -cy, nil
		}
		return cx, nil
	}

	if x.form == y.form {
		return 0, nil
	}
	switch {
	case x.form == nan:
		return 1, nil
	case y.form == nan:
		return -1, nil
	case x.form == posInf:
		return 1, nil
	case y.form == posInf:
		return -1, nil
	case x.form == negInf:
		return -1, nil
	default: // y.form == negInf
		return 1, nil
	}
}

// Eq reports whether x == y. It is false whenever either operand is NaN.
func (x *BigFloat) Eq(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return false, nil
	}
	return c == 0, nil
}

// Ne reports whether x != y. It is true whenever either operand is NaN.
func (x *BigFloat) Ne(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return true, nil
	}
	return c != 0, nil
}

// Lt reports whether x < y. It is false whenever either operand is NaN.
func (x *BigFloat) Lt(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return false, nil
	}
	return c < 0, nil
}

// Gt reports whether x > y. It is false whenever either operand is NaN.
func (x *BigFloat) Gt(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return false, nil
	}
	return c > 0, nil
}

// Le reports whether x <= y. It is false whenever either operand is NaN.
func (x *BigFloat) Le(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return false, nil
	}
	return c <= 0, nil
}

// Ge reports whether x >= y. It is false whenever either operand is NaN.
func (x *BigFloat) Ge(y *BigFloat) (bool, error) {
	c, err := x.Cmp(y)
	if err != nil {
		return false, err
	}
	if x.form == nan || y.form == nan {
		return false, nil
	}
	return c >= 0, nil
}

// FloorCeiling returns the floor of x (rounded towards negative infinity)
// and the ceiling of x (rounded towards positive infinity) as integers.
// The results satisfy floor <= x <= ceiling and ceiling-floor is 0 or 1.
// It fails on NaN and the infinities.
func (x *BigFloat) FloorCeiling() (floor, ceiling *big.Int, err error) {
	if x.form != finite {
		return nil, nil, numerr.ErrSpecialValue.New(
			"BigFloat.FloorCeiling: undefined for %s", x.form)
	}

	sig := new(big.Int).Set(&x.significand)
	exp := new(big.Int).Set(&x.exponent)
	hidden := hiddenBit(x.significandSize)

	if exp.Sign() > 0 {
		sig.Add(sig, hidden)
	} else {
		exp.Add(exp, one)
	}
	exp.Sub(exp, exponentBias(x.exponentSize))
	exp.Sub(exp, big.NewInt(int64(x.significandSize-1)))

	if exp.Sign() >= 0 {
		maxChunk := big.NewInt(math.MaxInt32)
		for exp.Cmp(maxChunk) > 0 {
			sig.Lsh(sig, math.MaxInt32)
			exp.Sub(exp, maxChunk)
		}
		sig.Lsh(sig, uint(exp.Int64()))
		if x.neg {
			sig.Neg(sig)
		}
		floor = sig
		ceiling = new(big.Int).Set(sig)
	} else {
		exp.Neg(exp)
		if !exp.IsInt64() || exp.Int64() > int64(x.significandSize) {
			// |x| < 1, so the integers straddling it are fixed.
			if sig.Sign() == 0 {
				floor, ceiling = new(big.Int), new(big.Int)
			} else {
				ceiling = big.NewInt(1)
				if x.neg {
					ceiling.SetInt64(0)
				}
				floor = new(big.Int).Sub(ceiling, one)
			}
		} else {
			e := uint(exp.Int64())
			mask := new(big.Int).Lsh(one, e)
			mask.Sub(mask, one)
			frac := new(big.Int).And(sig, mask)
			sig.Rsh(sig, e)
			if frac.Sign() == 0 {
				if x.neg {
					sig.Neg(sig)
				}
				floor = sig
				ceiling = new(big.Int).Set(sig)
			} else {
				if x.neg {
					ceiling = new(big.Int).Neg(sig)
				} else {
					ceiling = new(big.Int).Add(sig, one)
				}
				floor = new(big.Int).Sub(ceiling, one)
			}
		}
	}
	if floor.Cmp(ceiling) > 0 {
		panic("BigFloat.FloorCeiling: floor exceeds ceiling")
	}
	return floor, ceiling, nil
}
