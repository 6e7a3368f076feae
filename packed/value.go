package packed

import (
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/locale"
)

// Value is an immutable signed decimal with an explicit scale and signed flag.
//
// The signed flag records how the value is stored, not whether it is
// negative: an unsigned field may transiently hold a negative intermediate,
// and its packed form then carries the 0xF sign nybble.
//
// The packed encoding is computed on first use and memoized. Concurrent
// first calls may both compute it; they produce identical bytes and the last
// store wins, so no lock is taken.
type Value struct {
	num    decimal.Decimal
	scale  int32
	signed bool
	enc    *encodingCell
}

type encodingCell struct {
	b atomic.Pointer[[]byte]
}

// Zero returns a signed zero with the given scale.
func Zero(scale int32) Value {
	return New(decimal.Zero, true, scale)
}

// New returns d rounded half away from zero to scale fractional digits.
//
// A negative scale is treated as zero.
func New(d decimal.Decimal, signed bool, scale int32) Value {
	if scale < 0 {
		scale = 0
	}

	return Value{
		num:    d.Round(scale),
		scale:  scale,
		signed: signed,
		enc:    &encodingCell{},
	}
}

// NewFromInt is New for an integer.
func NewFromInt(n int64, signed bool, scale int32) Value {
	return New(decimal.NewFromInt(n), signed, scale)
}

// FromBytes decodes packed bytes with scale fractional digits.
//
// The value is signed unless the sign nybble is 0xF.
func FromBytes(b []byte, scale int32) (Value, error) {
	d, err := Decode(b, scale)
	if err != nil {
		return Value{}, err
	}

	v := Value{
		num:    d,
		scale:  scale,
		signed: SignNybble(b) != SignUnsigned,
		enc:    &encodingCell{},
	}
	cached := make([]byte, len(b))
	copy(cached, b)
	v.enc.b.Store(&cached)

	return v, nil
}

// FromDigits builds a value from a string of plain digits and a sign token.
//
// sign is matched against the configured positive and negative tokens; an
// empty sign yields an unsigned value.
func FromDigits(digits string, sign string, scale int32, cfg locale.Config) (Value, error) {
	if digits == "" {
		return Value{}, errs.Argumentf("digits", "must not be empty")
	}
	if scale < 0 {
		return Value{}, errs.Argumentf("scale", "must not be negative, got %d", scale)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Value{}, errs.Formatf(0, []byte(digits), "not a digit string")
		}
	}

	negative := false
	signed := false
	switch sign {
	case "":
	case cfg.NegativeSign():
		negative, signed = true, true
	case cfg.PositiveSign():
		signed = true
	default:
		return Value{}, errs.Formatf(0, []byte(sign), "unknown sign token")
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return Value{}, errs.Formatf(0, []byte(digits), "not a number")
	}
	d = d.Shift(-scale)
	if negative {
		d = d.Neg()
	}

	return New(d, signed, scale), nil
}

// Parse reads text such as "-123.45" using the configured separator and signs.
//
// The scale is the number of characters after the decimal separator. The
// value is signed when the text starts with a sign token. Group separators
// are not accepted.
func Parse(s string, cfg locale.Config) (Value, error) {
	if s == "" {
		return Value{}, errs.Argumentf("text", "must not be empty")
	}

	sign := ""
	body := s
	// The longer token wins when one is a prefix of the other.
	neg, pos := cfg.NegativeSign(), cfg.PositiveSign()
	first, second := neg, pos
	if len(pos) > len(neg) {
		first, second = pos, neg
	}
	if strings.HasPrefix(body, first) {
		sign, body = first, body[len(first):]
	} else if strings.HasPrefix(body, second) {
		sign, body = second, body[len(second):]
	}

	var scale int32
	if idx := strings.Index(body, cfg.DecimalSeparator()); idx >= 0 {
		frac := body[idx+len(cfg.DecimalSeparator()):]
		scale = int32(len(frac))
		body = body[:idx] + frac
	}
	if body == "" {
		return Value{}, errs.Formatf(0, []byte(s), "no digits")
	}

	v, err := FromDigits(body, sign, scale, cfg)
	if err != nil {
		return Value{}, errs.Formatf(0, []byte(s), "cannot convert to packed decimal")
	}

	return v, nil
}

// Decimal returns the numeric value.
func (v Value) Decimal() decimal.Decimal {
	return v.num
}

// Scale returns the number of digits right of the decimal separator.
func (v Value) Scale() int32 {
	return v.scale
}

// IsSigned reports whether the value is stored with a C/D sign nybble.
func (v Value) IsSigned() bool {
	return v.signed
}

func (v Value) IsNegative() bool {
	return v.num.IsNegative()
}

func (v Value) IsZero() bool {
	return v.num.IsZero()
}

// Digits returns the coefficient digits without sign or separator, at least
// scale+1 of them so fractions keep a leading zero.
func (v Value) Digits() string {
	coef := v.num.Shift(v.scale).Round(0).Coefficient()
	digits := coef.Abs(coef).String()
	if len(digits) < int(v.scale)+1 {
		digits = strings.Repeat("0", int(v.scale)+1-len(digits)) + digits
	}

	return digits
}

func (v Value) signNybble() byte {
	switch {
	case !v.signed:
		return SignUnsigned
	case v.num.IsNegative():
		return SignNegative
	default:
		return SignPositive
	}
}

func (v Value) encode() []byte {
	b, err := Encode(v.Digits(), v.signNybble(), locale.Default())
	if err != nil {
		// Digits only yields 0-9.
		panic(err)
	}

	return b
}

func (v Value) cachedBytes() []byte {
	if v.enc == nil {
		return v.encode()
	}
	if p := v.enc.b.Load(); p != nil {
		return *p
	}
	b := v.encode()
	v.enc.b.Store(&b)

	return b
}

// Bytes returns a copy of the packed encoding.
func (v Value) Bytes() []byte {
	cached := v.cachedBytes()
	out := make([]byte, len(cached))
	copy(out, cached)

	return out
}

// Len returns the packed byte length.
func (v Value) Len() int {
	return len(v.cachedBytes())
}

// AbsoluteValue returns the magnitude as an unsigned value with the same scale.
func (v Value) AbsoluteValue() Value {
	return New(v.num.Abs(), false, v.scale)
}

// MoveDecimalPoint reinterprets the same packed bytes with a new scale.
//
// The bytes are scale-agnostic, so 12 34 5C is 123.45 at scale 2 and
// 12.345 at scale 3.
func (v Value) MoveDecimalPoint(scale int32) (Value, error) {
	b := v.cachedBytes()
	d, err := Decode(b, scale)
	if err != nil {
		return Value{}, err
	}
	moved := Value{num: d, scale: scale, signed: v.signed, enc: &encodingCell{}}
	cached := make([]byte, len(b))
	copy(cached, b)
	moved.enc.b.Store(&cached)

	return moved, nil
}

// Rescale returns the value rounded to a new scale.
func (v Value) Rescale(scale int32) Value {
	return New(v.num, v.signed, scale)
}

// WithSigned returns the value with a different signed flag.
func (v Value) WithSigned(signed bool) Value {
	return New(v.num, signed, v.scale)
}

func (v Value) Neg() Value {
	return New(v.num.Neg(), v.signed, v.scale)
}

// Add returns v+o at the larger of the two scales; the result is signed if either is.
func (v Value) Add(o Value) Value {
	return New(v.num.Add(o.num), v.signed || o.signed, max(v.scale, o.scale))
}

// Sub returns v-o at the larger of the two scales; the result is signed if either is.
func (v Value) Sub(o Value) Value {
	return New(v.num.Sub(o.num), v.signed || o.signed, max(v.scale, o.scale))
}

// Cmp compares numeric values, ignoring scale and signed flag.
func (v Value) Cmp(o Value) int {
	return v.num.Cmp(o.num)
}

// Equal reports numeric equality.
func (v Value) Equal(o Value) bool {
	return v.num.Equal(o.num)
}

// String formats the value with exactly Scale fractional digits and "." as separator.
func (v Value) String() string {
	return v.num.StringFixed(v.scale)
}

// Format is String using the configured separator and negative sign.
func (v Value) Format(cfg locale.Config) string {
	s := v.num.Abs().StringFixed(v.scale)
	if sep := cfg.DecimalSeparator(); sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	if v.num.IsNegative() {
		s = cfg.NegativeSign() + s
	}

	return s
}

// FieldType returns the packed field type matching the signed flag.
func (v Value) FieldType() format.FieldType {
	if v.signed {
		return format.FieldPackedDecimal
	}

	return format.FieldUnsignedPackedDecimal
}
