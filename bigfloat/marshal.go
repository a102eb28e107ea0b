package bigfloat

// MarshalText implements the encoding.TextMarshaler interface. The value
// is encoded in the exact literal form produced by String.
func (x *BigFloat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It
// accepts the full literal grammar of NewFromString, including the
// special value forms.
func (z *BigFloat) UnmarshalText(text []byte) error {
	f, err := NewFromString(string(text))
	if err != nil {
		return err
	}
	*z = *f
	return nil
}
