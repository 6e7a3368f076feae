package packed

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/locale"
)

// Sign nybbles.
const (
	SignPositive byte = 0xC
	SignNegative byte = 0xD
	SignUnsigned byte = 0xF
)

// ByteLen returns the packed length of a value with the given digit count.
func ByteLen(digits int) int {
	return (digits + 2) / 2
}

// MaxDigits returns the number of digits a packed field of n bytes holds.
func MaxDigits(n int) int {
	return 2*n - 1
}

// Encode packs a digit string followed by the sign nybble.
//
// The decimal separator, group separator and sign tokens of cfg are
// skipped along with spaces, so "-1,234.5" packs the digits 12345 under
// the invariant culture. Any other non-digit is a format error.
func Encode(digits string, sign byte, cfg locale.Config) ([]byte, error) {
	tokens := [...]string{cfg.DecimalSeparator(), cfg.GroupSeparator(), cfg.PositiveSign(), cfg.NegativeSign()}
	nybbles := make([]byte, 0, len(digits)+2)
next:
	for i := 0; i < len(digits); {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			nybbles = append(nybbles, c-'0')
			i++
			continue
		case c == ' ':
			i++
			continue
		}
		for _, tok := range tokens {
			if tok != "" && strings.HasPrefix(digits[i:], tok) {
				i += len(tok)
				continue next
			}
		}

		return nil, errs.Formatf(format.FieldPackedDecimal, []byte(digits), "non-digit %q at %d", c, i)
	}

	return encodeNybbles(nybbles, sign), nil
}

// EncodeDigits packs raw digit values (0-9 each) followed by sign.
func EncodeDigits(digits []byte, sign byte) []byte {
	nybbles := make([]byte, 0, len(digits)+2)
	nybbles = append(nybbles, digits...)

	return encodeNybbles(nybbles, sign)
}

func encodeNybbles(nybbles []byte, sign byte) []byte {
	nybbles = append(nybbles, sign&0x0F)
	if len(nybbles)%2 != 0 {
		nybbles = append(nybbles, 0)
		copy(nybbles[1:], nybbles[:len(nybbles)-1])
		nybbles[0] = 0
	}

	out := make([]byte, len(nybbles)/2)
	for i := range out {
		out[i] = nybbles[2*i]<<4 | nybbles[2*i+1]
	}

	return out
}

// SignNybble returns the low nybble of the final byte, or 0 for empty input.
func SignNybble(b []byte) byte {
	if len(b) == 0 {
		return 0
	}

	return b[len(b)-1] & 0x0F
}

// IsNegativeSign reports whether a sign nybble denotes a negative value.
func IsNegativeSign(nybble byte) bool {
	return nybble == SignNegative
}

// Decode unpacks b into a decimal with scale digits after the separator.
func Decode(b []byte, scale int32) (decimal.Decimal, error) {
	if len(b) == 0 {
		return decimal.Zero, errs.Argumentf("packed bytes", "must not be empty")
	}
	if scale < 0 {
		return decimal.Zero, errs.Argumentf("scale", "must not be negative, got %d", scale)
	}

	var acc uint96
	last := len(b)*2 - 1 // sign nybble index
	for i := 0; i < last; i++ {
		nyb := b[i/2] >> 4
		if i%2 == 1 {
			nyb = b[i/2] & 0x0F
		}
		if nyb > 9 {
			return decimal.Zero, errs.Formatf(format.FieldPackedDecimal, b, "digit nybble %X at %d", nyb, i)
		}
		if acc.mulAdd(10, uint32(nyb)) {
			return decimal.Zero, errs.Rangef(format.FieldPackedDecimal, hexString(b), "exceeds 96-bit coefficient")
		}
	}

	coef := acc.bigInt()
	if IsNegativeSign(SignNybble(b)) {
		coef.Neg(coef)
	}

	return decimal.NewFromBigInt(coef, -scale), nil
}

// uint96 is an unsigned integer held in three 32-bit limbs.
type uint96 struct {
	lo, mid, hi uint32
}

// mulAdd sets u = u*m + d and reports whether the result overflowed 96 bits.
func (u *uint96) mulAdd(m, d uint32) bool {
	t := uint64(u.lo)*uint64(m) + uint64(d)
	u.lo = uint32(t)
	carry := t >> 32

	t = uint64(u.mid)*uint64(m) + carry
	u.mid = uint32(t)
	carry = t >> 32

	t = uint64(u.hi)*uint64(m) + carry
	u.hi = uint32(t)

	return t>>32 != 0
}

func (u uint96) bigInt() *big.Int {
	n := new(big.Int).SetUint64(uint64(u.hi)<<32 | uint64(u.mid))
	n.Lsh(n, 32)

	return n.Or(n, new(big.Int).SetUint64(uint64(u.lo)))
}

func hexString(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0x0F])
	}

	return string(out)
}
