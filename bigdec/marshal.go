package bigdec

// MarshalText implements the encoding.TextMarshaler interface. The value
// is encoded in the exact scientific form produced by String.
func (x *BigDec) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It
// accepts the full input grammar of NewFromDecimalString.
func (z *BigDec) UnmarshalText(text []byte) error {
	d, err := NewFromDecimalString(string(text))
	if err != nil {
		return err
	}
	*z = *d
	return nil
}
