package bigfloat

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joulook/Jivl/numerr"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(false, big.NewInt(1<<22), big.NewInt(127), 24, 8)
	assert.NoError(t, err)

	_, err = New(false, big.NewInt(1<<23), big.NewInt(127), 24, 8)
	assert.True(t, numerr.ErrSignificandOverflow.Has(err), "significand one bit too wide: %v", err)

	_, err = New(false, big.NewInt(-1), big.NewInt(127), 24, 8)
	assert.True(t, numerr.ErrSignificandOverflow.Has(err), "negative significand: %v", err)

	_, err = New(false, big.NewInt(0), big.NewInt(255), 24, 8)
	assert.True(t, numerr.ErrExponentRange.Has(err), "exponent at 2^expSize-1: %v", err)

	_, err = New(false, big.NewInt(0), big.NewInt(-1), 24, 8)
	assert.True(t, numerr.ErrExponentRange.Has(err), "negative exponent: %v", err)

	_, err = New(false, big.NewInt(0), big.NewInt(0), 1, 8)
	assert.True(t, numerr.ErrSizeOutOfRange.Has(err), "significand size 1: %v", err)

	_, err = NewNaN(24, 1)
	assert.True(t, numerr.ErrSizeOutOfRange.Has(err), "exponent size 1: %v", err)

	_, err = NewInf(true, 0, 0)
	assert.True(t, numerr.ErrSizeOutOfRange.Has(err), "zero sizes: %v", err)
}

func TestNew_CopiesArguments(t *testing.T) {
	sig := big.NewInt(5)
	exp := big.NewInt(7)
	x, err := New(false, sig, exp, 24, 8)
	require.NoError(t, err)
	sig.SetInt64(0)
	exp.SetInt64(0)
	assert.Equal(t, int64(5), x.Significand().Int64())
	assert.Equal(t, int64(7), x.Exponent().Int64())
}

func TestConstructors(t *testing.T) {
	z, err := NewZero(true, 24, 8)
	require.NoError(t, err)
	assert.True(t, z.IsZero())
	assert.True(t, z.SignBit())
	assert.True(t, z.IsFinite())

	n, err := NewNaN(24, 8)
	require.NoError(t, err)
	assert.True(t, n.IsNaN())
	assert.False(t, n.IsFinite())
	assert.False(t, n.IsZero())

	i, err := NewInf(true, 24, 8)
	require.NoError(t, err)
	assert.True(t, i.IsInf())
	assert.True(t, i.SignBit())
}

func TestNeg(t *testing.T) {
	x := mustFloat(t, "0x1.8e0f24e8")
	assert.True(t, x.Neg().SignBit())
	assert.True(t, sameBits(x, x.Neg().Neg()))

	assert.True(t, mustFloat(t, "0NaN24e8").Neg().IsNaN())
	assert.True(t, sameBits(mustFloat(t, "0-oo24e8"), mustFloat(t, "0+oo24e8").Neg()))
	assert.True(t, sameBits(mustFloat(t, "0+oo24e8"), mustFloat(t, "0-oo24e8").Neg()))

	zero := mustFloat(t, "0x0.0e0f24e8")
	assert.True(t, zero.Neg().IsZero())
	assert.True(t, zero.Neg().SignBit())
}

func checkAdd(t *testing.T, a, b, want string) {
	t.Helper()
	sum, err := mustFloat(t, a).Add(mustFloat(t, b))
	require.NoErrorf(t, err, "Add(%q, %q)", a, b)
	assert.Truef(t, sameBits(mustFloat(t, want), sum),
		"Add(%q, %q) = %s, want %q", a, b, sum, want)
}

func TestAdd(t *testing.T) {
	checkAdd(t, "0x1.8e0f24e8", "0x1.0e0f24e8", "0x2.8e0f24e8") // 1.5 + 1 = 2.5
	checkAdd(t, "0x2.8e0f24e8", "0x1.4e0f24e8", "0x3.ce0f24e8") // 2.5 + 1.25 = 3.75
	checkAdd(t, "0x1.8e0f24e8", "-0x1.8e0f24e8", "0x0.0e0f24e8")
	checkAdd(t, "0x1.8e0f24e8", "0x0.0e0f24e8", "0x1.8e0f24e8")
	// Subnormals align exactly with each other.
	checkAdd(t, "0x0.1e-1f8e3", "0x0.1e-1f8e3", "0x0.2e-1f8e3")
}

func TestAdd_Specials(t *testing.T) {
	inf := mustFloat(t, "0+oo24e8")
	ninf := mustFloat(t, "0-oo24e8")
	nan := mustFloat(t, "0NaN24e8")
	x := mustFloat(t, "0x1.8e0f24e8")

	sum, err := inf.Add(ninf)
	require.NoError(t, err)
	assert.True(t, sum.IsNaN(), "+oo + -oo should be NaN")

	sum, err = nan.Add(x)
	require.NoError(t, err)
	assert.True(t, sum.IsNaN())

	sum, err = x.Add(nan)
	require.NoError(t, err)
	assert.True(t, sum.IsNaN())

	sum, err = inf.Add(x)
	require.NoError(t, err)
	assert.True(t, sum.IsInf())
	assert.False(t, sum.SignBit())

	sum, err = x.Add(ninf)
	require.NoError(t, err)
	assert.True(t, sum.IsInf())
	assert.True(t, sum.SignBit())

	sum, err = inf.Add(inf)
	require.NoError(t, err)
	assert.True(t, sum.IsInf())
	assert.False(t, sum.SignBit())
}

func TestAdd_ZeroSigns(t *testing.T) {
	pz := mustFloat(t, "0x0.0e0f24e8")
	nz := mustFloat(t, "-0x0.0e0f24e8")

	sum, err := pz.Add(nz)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.False(t, sum.SignBit(), "(+0) + (-0) should be +0")

	sum, err = nz.Add(nz)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.True(t, sum.SignBit(), "(-0) + (-0) should be -0")

	// Exact cancellation of nonzero operands also lands on +0.
	x := mustFloat(t, "0x1.8e0f24e8")
	sum, err = x.Add(x.Neg())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.False(t, sum.SignBit())
}

func TestAdd_DiscardsFarOperand(t *testing.T) {
	// The exponents differ by more than the significand width, so the
	// small operand cannot move any bit of the large one.
	huge := mustFloat(t, "0x1.0e10f8e8")
	tiny := mustFloat(t, "0x1.0e0f8e8")

	sum, err := huge.Add(tiny)
	require.NoError(t, err)
	assert.True(t, sameBits(huge, sum))

	sum, err = tiny.Add(huge)
	require.NoError(t, err)
	assert.True(t, sameBits(huge, sum))
}

func TestAdd_OverflowsToInfinity(t *testing.T) {
	max := mustFloat(t, "0xf.fe0f8e3")

	sum, err := max.Add(max)
	require.NoError(t, err)
	assert.True(t, sum.IsInf())
	assert.False(t, sum.SignBit())

	sum, err = max.Neg().Add(max.Neg())
	require.NoError(t, err)
	assert.True(t, sum.IsInf())
	assert.True(t, sum.SignBit())
}

func TestAdd_Commutes(t *testing.T) {
	inputs := []string{
		"0x0.0e0f8e3", "-0x0.0e0f8e3", "0x1.0e0f8e3", "-0x1.0e0f8e3",
		"0x4.0e-1f8e3", "0x0.1e-1f8e3", "0xf.fe0f8e3", "0NaN8e3", "0+oo8e3", "0-oo8e3",
	}
	for _, a := range inputs {
		for _, b := range inputs {
			x, y := mustFloat(t, a), mustFloat(t, b)
			ab, err := x.Add(y)
			require.NoError(t, err)
			ba, err := y.Add(x)
			require.NoError(t, err)
			assert.Truef(t, sameBits(ab, ba), "Add(%q, %q) does not commute: %s vs %s", a, b, ab, ba)
		}
	}
}

func TestSub(t *testing.T) {
	diff, err := mustFloat(t, "0x2.8e0f24e8").Sub(mustFloat(t, "0x1.0e0f24e8"))
	require.NoError(t, err)
	assert.True(t, sameBits(mustFloat(t, "0x1.8e0f24e8"), diff)) // 2.5 - 1 = 1.5

	diff, err = mustFloat(t, "0+oo24e8").Sub(mustFloat(t, "0+oo24e8"))
	require.NoError(t, err)
	assert.True(t, diff.IsNaN())
}

func checkMul(t *testing.T, a, b, want string) {
	t.Helper()
	prod, err := mustFloat(t, a).Mul(mustFloat(t, b))
	require.NoErrorf(t, err, "Mul(%q, %q)", a, b)
	assert.Truef(t, sameBits(mustFloat(t, want), prod),
		"Mul(%q, %q) = %s, want %q", a, b, prod, want)
}

func TestMul(t *testing.T) {
	checkMul(t, "0x1.8e0f24e8", "0x2.8e0f24e8", "0x3.ce0f24e8") // 1.5 * 2.5 = 3.75
	checkMul(t, "0x1.8e0f24e8", "0x1.0e0f24e8", "0x1.8e0f24e8")
	checkMul(t, "-0x1.8e0f24e8", "0x2.8e0f24e8", "-0x3.ce0f24e8")
	checkMul(t, "-0x1.8e0f24e8", "-0x2.8e0f24e8", "0x3.ce0f24e8")
}

func TestMul_Specials(t *testing.T) {
	inf := mustFloat(t, "0+oo24e8")
	nan := mustFloat(t, "0NaN24e8")
	zero := mustFloat(t, "0x0.0e0f24e8")
	x := mustFloat(t, "0x1.8e0f24e8")

	prod, err := inf.Mul(zero)
	require.NoError(t, err)
	assert.True(t, prod.IsNaN(), "oo * 0 should be NaN")

	prod, err = zero.Mul(inf)
	require.NoError(t, err)
	assert.True(t, prod.IsNaN(), "0 * oo should be NaN")

	prod, err = nan.Mul(x)
	require.NoError(t, err)
	assert.True(t, prod.IsNaN())

	prod, err = inf.Mul(x.Neg())
	require.NoError(t, err)
	assert.True(t, prod.IsInf())
	assert.True(t, prod.SignBit())

	prod, err = inf.Neg().Mul(inf.Neg())
	require.NoError(t, err)
	assert.True(t, prod.IsInf())
	assert.False(t, prod.SignBit())
}

func TestMul_ZeroSign(t *testing.T) {
	prod, err := mustFloat(t, "-0x1.8e0f24e8").Mul(mustFloat(t, "0x0.0e0f24e8"))
	require.NoError(t, err)
	assert.True(t, prod.IsZero())
	assert.True(t, prod.SignBit(), "negative * +0 should be -0")
}

func TestMul_OverflowsToInfinity(t *testing.T) {
	max := mustFloat(t, "0xf.fe0f8e3")

	prod, err := max.Mul(max)
	require.NoError(t, err)
	assert.True(t, prod.IsInf())
	assert.False(t, prod.SignBit())

	prod, err = max.Mul(max.Neg())
	require.NoError(t, err)
	assert.True(t, prod.IsInf())
	assert.True(t, prod.SignBit())
}

func TestFormatMismatch(t *testing.T) {
	x := mustFloat(t, "0x1.8e0f24e8")
	y := mustFloat(t, "0x1.8e0f8e3")

	_, err := x.Mul(y)
	assert.True(t, numerr.ErrFormatMismatch.Has(err), "Mul across formats: %v", err)

	_, err = x.Add(y)
	assert.True(t, numerr.ErrFormatMismatch.Has(err), "Add across formats: %v", err)

	_, err = x.Cmp(y)
	assert.True(t, numerr.ErrFormatMismatch.Has(err), "Cmp across formats: %v", err)

	_, err = x.Eq(y)
	assert.True(t, numerr.ErrFormatMismatch.Has(err), "Eq across formats: %v", err)
}

func TestCmp_TotalOrder(t *testing.T) {
	// Strictly ascending under the total order; NaN sorts above +oo.
	ascending := []string{
		"0-oo8e3",
		"-0xf.fe0f8e3",
		"-0x1.0e0f8e3",
		"-0x4.0e-1f8e3",
		"-0x0.1e-1f8e3",
		"0x0.0e0f8e3",
		"0x0.1e-1f8e3",
		"0x4.0e-1f8e3",
		"0x1.0e0f8e3",
		"0x1.8e0f8e3",
		"0xf.fe0f8e3",
		"0+oo8e3",
		"0NaN8e3",
	}
	for i, a := range ascending {
		for j, b := range ascending {
			c, err := mustFloat(t, a).Cmp(mustFloat(t, b))
			require.NoErrorf(t, err, "Cmp(%q, %q)", a, b)
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assert.Equalf(t, want, c, "Cmp(%q, %q)", a, b)
		}
	}
}

func TestCmp_ZerosEqual(t *testing.T) {
	c, err := mustFloat(t, "0x0.0e0f24e8").Cmp(mustFloat(t, "-0x0.0e0f24e8"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCmp_NaNEqualsNaN(t *testing.T) {
	c, err := mustFloat(t, "0NaN24e8").Cmp(mustFloat(t, "0nan24e8"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

// The ordering predicates follow the IEEE unordered convention: every
// comparison but Ne is false when NaN is involved, even though Cmp
// gives NaN a defined place in the total order.
func TestPredicates_NaN(t *testing.T) {
	nan := mustFloat(t, "0NaN24e8")
	x := mustFloat(t, "0x1.8e0f24e8")

	for _, pair := range [][2]*BigFloat{{nan, x}, {x, nan}, {nan, nan}} {
		a, b := pair[0], pair[1]

		eq, err := a.Eq(b)
		require.NoError(t, err)
		assert.False(t, eq)

		ne, err := a.Ne(b)
		require.NoError(t, err)
		assert.True(t, ne)

		lt, err := a.Lt(b)
		require.NoError(t, err)
		assert.False(t, lt)

		gt, err := a.Gt(b)
		require.NoError(t, err)
		assert.False(t, gt)

		le, err := a.Le(b)
		require.NoError(t, err)
		assert.False(t, le)

		ge, err := a.Ge(b)
		require.NoError(t, err)
		assert.False(t, ge)
	}
}

func TestPredicates_Finite(t *testing.T) {
	x := mustFloat(t, "0x1.8e0f24e8")
	y := mustFloat(t, "0x2.8e0f24e8")

	lt, err := x.Lt(y)
	require.NoError(t, err)
	assert.True(t, lt)

	ge, err := x.Ge(y)
	require.NoError(t, err)
	assert.False(t, ge)

	eq, err := x.Eq(mustFloat(t, "0x1.8e0f24e8"))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = mustFloat(t, "0x0.0e0f24e8").Eq(mustFloat(t, "-0x0.0e0f24e8"))
	require.NoError(t, err)
	assert.True(t, eq, "+0 and -0 compare equal")
}

func checkFloorCeiling(t *testing.T, input string, wantFloor, wantCeiling int64) {
	t.Helper()
	floor, ceiling, err := mustFloat(t, input).FloorCeiling()
	require.NoErrorf(t, err, "FloorCeiling(%q)", input)
	assert.Equalf(t, wantFloor, floor.Int64(), "floor of %q", input)
	assert.Equalf(t, wantCeiling, ceiling.Int64(), "ceiling of %q", input)
}

func TestFloorCeiling(t *testing.T) {
	checkFloorCeiling(t, "0x2.8e0f24e8", 2, 3) // 2.5
	checkFloorCeiling(t, "-0x2.8e0f24e8", -3, -2)
	checkFloorCeiling(t, "0x1.8e0f24e8", 1, 2) // 1.5
	checkFloorCeiling(t, "0x2.0e0f24e8", 2, 2) // exact integer
	checkFloorCeiling(t, "-0x2.0e0f24e8", -2, -2)
	checkFloorCeiling(t, "0x8.0e-1f24e8", 0, 1) // 0.5
	checkFloorCeiling(t, "-0x8.0e-1f24e8", -1, 0)
	checkFloorCeiling(t, "0x0.0e0f24e8", 0, 0)
	checkFloorCeiling(t, "-0x0.0e0f24e8", 0, 0)
	checkFloorCeiling(t, "0x0.1e-1f8e3", 0, 1) // subnormal far below one
	checkFloorCeiling(t, "-0x0.1e-1f8e3", -1, 0)
}

func TestFloorCeiling_LargeExact(t *testing.T) {
	floor, ceiling, err := mustFloat(t, "0x1.0e30f8e8").FloorCeiling()
	require.NoError(t, err)
	want := new(big.Int).Lsh(big.NewInt(1), 120)
	assert.Equal(t, 0, floor.Cmp(want))
	assert.Equal(t, 0, ceiling.Cmp(want))
}

func TestFloorCeiling_Specials(t *testing.T) {
	for _, s := range []string{"0NaN24e8", "0+oo24e8", "0-oo24e8"} {
		_, _, err := mustFloat(t, s).FloorCeiling()
		assert.Errorf(t, err, "FloorCeiling(%q)", s)
		assert.Truef(t, numerr.ErrSpecialValue.Has(err), "error class for %q: %v", s, err)
	}
}
