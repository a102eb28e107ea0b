package bigfloat

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"

	"github.com/joulook/Jivl/numerr"
)

// NewFromString parses a floating-point literal. Finite values use the
// form
//
//	[-]0x<hexDigits>.<hexDigits>e<signedInt>f<sigSize>e<expSize>
//
// where the hex digits give the significand, the first e-suffix the
// power of 16 scaling it, and the trailing f/e suffixes the significand
// and exponent bit widths. Special values are written
// "0NaN<sigSize>e<expSize>" (token case-insensitive),
// "0+oo<sigSize>e<expSize>" and "0-oo<sigSize>e<expSize>".
//
// Both bit widths must be greater than 1. Finite values whose exponent
// falls outside [0, 2^expSize-1) after scaling fail with an
// exponent-range error unless the shortfall fits as a subnormal; values
// whose significand bits exceed sigSize-1 fail with a significand
// overflow.
func NewFromString(s string) (*BigFloat, error) {
	const op = "BigFloat.NewFromString"

	// The suffixes are carved off the tail first. Exponent digits never
	// contain 'e' or 'f', so the last 'e' starts the exponent size and
	// the last 'f' starts the significand size even though both letters
	// may occur inside the hex significand.
	posLastE := strings.LastIndexByte(s, 'e')
	if posLastE < 0 || posLastE+1 == len(s) {
		return nil, numerr.ErrSyntax.New("%s: %q has no exponent size suffix", op, s)
	}
	exponentSize, err := strconv.Atoi(s[posLastE+1:])
	if err != nil {
		return nil, numerr.ErrSyntax.New("%s: bad exponent size in %q", op, s)
	}

	posLastF := strings.LastIndexByte(s, 'f')
	posSig := posLastF + 1
	if posLastF < 0 {
		posSig = 4 // special value token occupies s[1:4]
	}
	if posSig >= posLastE {
		return nil, numerr.ErrSyntax.New("%s: %q has no significand size suffix", op, s)
	}
	significandSize, err := strconv.Atoi(s[posSig:posLastE])
	if err != nil {
		return nil, numerr.ErrSyntax.New("%s: bad significand size in %q", op, s)
	}
	if err := checkSizes(op, significandSize, exponentSize); err != nil {
		return nil, err
	}

	if posLastF < 0 {
		if s[0] != '0' {
			return nil, numerr.ErrSyntax.New("%s: %q is not a special value literal", op, s)
		}
		switch tok := s[1:4]; {
		case strings.EqualFold(tok, "nan"):
			return newSpecial(nan, significandSize, exponentSize), nil
		case tok == "+oo":
			return newSpecial(posInf, significandSize, exponentSize), nil
		case tok == "-oo":
			return newSpecial(negInf, significandSize, exponentSize), nil
		}
		return nil, numerr.ErrSyntax.New("%s: unknown special value in %q", op, s)
	}

	neg := s[0] == '-'
	posX := strings.IndexByte(s, 'x')
	if posX < 0 || (s[:posX] != "0" && s[:posX] != "-0") {
		return nil, numerr.ErrSyntax.New("%s: %q has no 0x prefix", op, s)
	}
	posSecondLastE := strings.LastIndexByte(s[:posLastE], 'e')
	if posSecondLastE <= posX || posSecondLastE >= posLastF {
		return nil, numerr.ErrSyntax.New("%s: %q has no scaling exponent", op, s)
	}
	storedExp, ok := new(big.Int).SetString(s[posSecondLastE+1:posLastF], 10)
	if !ok {
		return nil, numerr.ErrSyntax.New("%s: bad scaling exponent in %q", op, s)
	}

	// Expand the hex significand to its binary digits, remembering where
	// the point sits in the expansion.
	hexSig := s[posX+1 : posSecondLastE]
	var bits []byte
	posDec := -1
	for i := 0; i < len(hexSig); i++ {
		c := hexSig[i]
		if c == '.' {
			if posDec >= 0 {
				return nil, numerr.ErrSyntax.New("%s: %q has more than one significand point", op, s)
			}
			posDec = len(bits)
			continue
		}
		v := hexDigit(c)
		if v < 0 {
			return nil, numerr.ErrSyntax.New("%s: bad significand digit %q in %q", op, c, s)
		}
		for b := 3; b >= 0; b-- {
			bits = append(bits, '0'+byte(v>>uint(b)&1))
		}
	}
	if posDec < 0 {
		return nil, numerr.ErrSyntax.New("%s: %q has no significand point", op, s)
	}

	firstOne := bytes.IndexByte(bits, '1')
	if firstOne < 0 {
		// No set bit at all: signed zero.
		return &BigFloat{
			form:            finite,
			neg:             neg,
			significandSize: significandSize,
			exponentSize:    exponentSize,
		}, nil
	}
	lastOne := bytes.LastIndexByte(bits, '1')
	window := bits[firstOne : lastOne+1]

	bias := exponentBias(exponentSize)
	upper := maxStoredExponent(exponentSize) // 2*bias + 1

	newExp := new(big.Int).Mul(storedExp, big.NewInt(4))
	newExp.Add(newExp, bias)
	newExp.Add(newExp, big.NewInt(int64(posDec-firstOne-1)))

	if newExp.Sign() < 0 {
		// A negative biased exponent may still fit as a subnormal if the
		// shift it calls for leaves room within the significand width.
		pad := new(big.Int).Neg(newExp)
		if pad.IsInt64() && pad.Int64() <= int64(significandSize-1-len(window)) {
			padded := bytes.Repeat([]byte{'0'}, int(pad.Int64()))
			window = append(padded, window...)
			newExp.SetInt64(0)
		}
	} else {
		// The leading set bit becomes the hidden bit and is not stored.
		window = window[1:]
	}

	if newExp.Sign() < 0 || newExp.Cmp(upper) >= 0 {
		return nil, numerr.ErrExponentRange.New(
			"%s: exponent of %q does not fit in %d bits", op, s, exponentSize)
	}
	if len(window) > significandSize-1 {
		return nil, numerr.ErrSignificandOverflow.New(
			"%s: significand of %q does not fit in %d bits", op, s, significandSize-1)
	}

	z := &BigFloat{
		form:            finite,
		neg:             neg,
		significandSize: significandSize,
		exponentSize:    exponentSize,
	}
	sigBits := string(window) + strings.Repeat("0", significandSize-1-len(window))
	z.significand.SetString(sigBits, 2)
	z.exponent.Set(newExp)
	return z, nil
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
