// Package numerr declares the error classes shared by the exact numeric
// value types in this module. Every recoverable failure surfaced by the
// bigfloat and bigdec packages belongs to exactly one of these classes,
// so callers can branch on the kind of failure without matching message
// text:
//
//	v, err := bigfloat.NewFromString(s)
//	if numerr.ErrSyntax.Has(err) { ... }
//
// Internal invariant violations are not represented here; they are
// unreachable by construction and the packages treat them as fatal
// (panic) rather than as returnable errors.
package numerr

import "github.com/zeebo/errs"

var (
	// ErrSyntax reports input that does not match the expected string
	// grammar.
	ErrSyntax = errs.Class("invalid syntax")

	// ErrSizeOutOfRange reports a significand/exponent bit width or a
	// decimal digit budget that is non-positive or otherwise invalid.
	ErrSizeOutOfRange = errs.Class("size out of range")

	// ErrExponentRange reports a parsed value whose exponent cannot be
	// represented within the requested exponent bit width.
	ErrExponentRange = errs.Class("exponent out of range")

	// ErrSignificandOverflow reports a parsed value whose significand
	// cannot be represented within the requested significand bit width.
	ErrSignificandOverflow = errs.Class("significand overflow")

	// ErrFormatMismatch reports a binary operation whose operands have
	// differing significand or exponent bit widths.
	ErrFormatMismatch = errs.Class("format mismatch")

	// ErrSpecialValue reports an operation that is undefined for NaN or
	// infinite operands, such as floor/ceiling extraction.
	ErrSpecialValue = errs.Class("invalid operation on special value")
)
