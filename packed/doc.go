// Package packed implements packed decimal (COMP-3) storage and the
// immutable Value type built on it.
//
// # Wire Format
//
// Each decimal digit takes one nybble. The final nybble is the sign:
//
//	0xC  positive
//	0xD  negative
//	0xF  unsigned
//
// When the digit count plus the sign nybble is odd, a zero nybble is
// prepended, so a value with n digits occupies ceil((n+1)/2) bytes:
//
//	-123    -> 12 3D
//	+12     -> 01 2C
//	123.45  -> 12 34 5C   (the scale is not stored)
//
// Decoding treats 0xD as negative and every other sign nybble as
// non-negative. A digit nybble outside 0-9 is a format error, and digits
// are accumulated into a 96-bit integer so values wider than 28 digits
// report a range error instead of overflowing.
//
// # Usage
//
//	v, err := packed.Parse("-123.45", locale.Default())
//	b := v.Bytes()                // 12 34 5D
//	w, err := packed.FromBytes(b, 2)
//	w.Equal(v)                    // true
package packed
