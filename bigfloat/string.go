package bigfloat

import (
	"fmt"
	"math/big"
	"strings"
)

const hexDigits = "0123456789abcdef"

// String renders x in the literal grammar accepted by NewFromString.
// The rendering is bit-exact: NewFromString(x.String()) reproduces x
// field for field, including the distinction between normalized and
// subnormal values and the sign of zero.
//
// Finite values place the leading significand bit (the hidden bit for
// normalized values, a synthetic marker bit for stored-exponent-zero
// values) inside the single integral hex digit so that the parser's
// reconstructed exponent lands exactly on the stored biased exponent.
// Trailing zero hex digits of the fraction are trimmed, keeping at least
// one digit.
func (x *BigFloat) String() string {
	switch x.form {
	case nan, posInf, negInf:
		return fmt.Sprintf("0%s%de%d", x.form, x.significandSize, x.exponentSize)
	}

	sign := ""
	if x.neg {
		sign = "-"
	}
	if x.IsZero() {
		return fmt.Sprintf("%s0x0.0e0f%de%d", sign, x.significandSize, x.exponentSize)
	}

	// Split exponent-bias into a power of 16 and a bit offset r in
	// [0,3]; the offset decides where the leading bit sits within the
	// integral hex digit.
	k := new(big.Int).Sub(&x.exponent, exponentBias(x.exponentSize))
	hexExp := new(big.Int)
	rem := new(big.Int)
	hexExp.DivMod(k, big.NewInt(4), rem)
	r := int(rem.Int64())

	combined := "1" + fmt.Sprintf("%0*b", x.significandSize-1, &x.significand)
	head := 1 + r
	if len(combined) < head {
		combined += strings.Repeat("0", head-len(combined))
	}
	frac := combined[head:]
	for len(frac) == 0 || len(frac)%4 != 0 {
		frac += "0"
	}

	intHex := nibbleHex(strings.Repeat("0", 4-head) + combined[:head])

	fracHex := make([]byte, 0, len(frac)/4)
	for i := 0; i < len(frac); i += 4 {
		fracHex = append(fracHex, nibbleHex(frac[i:i+4]))
	}
	trimmed := strings.TrimRight(string(fracHex), "0")
	if trimmed == "" {
		trimmed = "0"
	}

	return fmt.Sprintf("%s0x%c.%se%sf%de%d",
		sign, intHex, trimmed, hexExp, x.significandSize, x.exponentSize)
}

func nibbleHex(bits string) byte {
	v := 0
	for i := 0; i < len(bits); i++ {
		v = v<<1 | int(bits[i]-'0')
	}
	return hexDigits[v]
}
