// Package zoned implements the sign zone carried in the last byte of a
// zoned decimal (DISPLAY) number.
//
// Every byte but the last is a character digit. The last byte combines the
// digit with the sign, following the EBCDIC overpunch convention mapped
// onto the ASCII code page:
//
//	digit      0    1    2 ..  9
//	positive   {    A    B ..  I
//	negative   }    J    K ..  R
//
// Zero has its own sentinels; for 1-9 the negative code is the positive
// code plus EBCDICNegativeOffset. Decoding also accepts a plain digit
// (unsigned) and the ASCII zoned negative range p-y written by
// ASCII-hosted compilers, so three ranges and two sentinels overlap on
// input even though only one form is ever written.
package zoned

import (
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
)

const (
	PositiveZero byte = '{'
	NegativeZero byte = '}'

	// PositiveOne is the code for a positive trailing 1; 2-9 follow it.
	PositiveOne byte = 'A'
	// EBCDICNegativeOffset is added to a positive code to make it negative.
	EBCDICNegativeOffset byte = 9

	// ASCIINegativeZero starts the ASCII zoned negative range p-y.
	ASCIINegativeZero byte = 'p'
)

// SignByte returns the last-byte code for digit d (0-9) with the given sign.
func SignByte(d byte, negative bool) byte {
	if d == 0 {
		if negative {
			return NegativeZero
		}

		return PositiveZero
	}
	code := PositiveOne + d - 1
	if negative {
		code += EBCDICNegativeOffset
	}

	return code
}

// DecodeSign splits a last byte into its digit and sign.
//
// ok is false when b is not a digit, a zero sentinel, or a code from one of
// the three zoned ranges.
func DecodeSign(b byte) (digit byte, negative bool, ok bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', false, true
	case b == PositiveZero:
		return 0, false, true
	case b == NegativeZero:
		return 0, true, true
	case b >= ASCIINegativeZero && b <= ASCIINegativeZero+9:
		return b - ASCIINegativeZero, true, true
	case b >= PositiveOne && b < PositiveOne+9:
		return b - PositiveOne + 1, false, true
	case b >= PositiveOne+EBCDICNegativeOffset && b < PositiveOne+EBCDICNegativeOffset+9:
		return b - PositiveOne - EBCDICNegativeOffset + 1, true, true
	default:
		return 0, false, false
	}
}

// IsSignZone reports whether b carries an explicit sign zone rather than a
// plain digit.
func IsSignZone(b byte) bool {
	_, _, ok := DecodeSign(b)
	return ok && (b < '0' || b > '9')
}

// Encode returns digits with the sign applied to the final byte.
//
// digits must be non-empty character digits; the input is not modified.
func Encode(digits []byte, negative bool) ([]byte, error) {
	if len(digits) == 0 {
		return nil, errs.Argumentf("digits", "must not be empty")
	}
	out := make([]byte, len(digits))
	copy(out, digits)
	last := out[len(out)-1]
	if last < '0' || last > '9' {
		return nil, errs.Formatf(format.FieldSignedNumeric, digits, "last byte is not a digit")
	}
	out[len(out)-1] = SignByte(last-'0', negative)

	return out, nil
}

// Decode returns the character digits of a zoned number and its sign.
//
// The last byte is normalized to a plain digit. Any other non-digit byte is
// a format error reported against ft.
func Decode(b []byte, ft format.FieldType) (digits []byte, negative bool, err error) {
	if len(b) == 0 {
		return nil, false, errs.Argumentf("zoned bytes", "must not be empty")
	}
	digits = make([]byte, len(b))
	for i := 0; i < len(b)-1; i++ {
		if b[i] < '0' || b[i] > '9' {
			return nil, false, errs.Formatf(ft, b, "non-digit at %d", i)
		}
		digits[i] = b[i]
	}

	d, negative, ok := DecodeSign(b[len(b)-1])
	if !ok {
		return nil, false, errs.Formatf(ft, b, "invalid sign zone %q", b[len(b)-1])
	}
	digits[len(b)-1] = '0' + d

	return digits, negative, nil
}
