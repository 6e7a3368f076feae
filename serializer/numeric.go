package serializer

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kansasdcf/legacyrec/endian"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/packed"
	"github.com/kansasdcf/legacyrec/value"
	"github.com/kansasdcf/legacyrec/zoned"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// numberOf converts v to a decimal for a numeric target of type ft.
//
// negativeZero is set only for text that spells a negative zero. Text that
// is not a number fails for signed targets and reads as zero for unsigned.
func (s *Serializer) numberOf(v value.Value, ft format.FieldType) (d decimal.Decimal, negativeZero bool, err error) {
	if d, ok := v.AsDecimal(); ok {
		return d, false, nil
	}

	switch v.Kind() {
	case value.KindNone:
		return decimal.Zero, false, nil
	case value.KindFloat:
		return decimal.Zero, false, errs.Rangef(ft, v.String(), "not a finite number")
	}

	text := strings.TrimSpace(textOf(v))
	if text == "" {
		return decimal.Zero, false, nil
	}
	d, negative, perr := value.ParseNumber(text, s.cfg)
	if perr != nil {
		if !ft.IsSigned() {
			s.logger.Debug().Str("type", ft.String()).Str("text", text).Msg("non-numeric text stored as zero")

			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, errs.Formatf(ft, []byte(text), "not a number")
	}

	return d, negative && d.IsZero(), nil
}

func (s *Serializer) serializeZoned(v value.Value, n int, ft format.FieldType, decimalDigits int32) ([]byte, error) {
	d, negativeZero, err := s.numberOf(v, ft)
	if err != nil {
		return nil, err
	}

	var digits string
	if ft == format.FieldSignedNumeric || ft == format.FieldUnsignedNumeric {
		d = d.Truncate(0)
		digits = d.Abs().String()
	} else {
		d = d.Round(decimalDigits)
		digits = strings.Replace(d.Abs().StringFixed(decimalDigits), ".", "", 1)
	}

	out := fitLeft([]byte(digits), n, '0')
	if ft.IsSigned() {
		last := n - 1
		out[last] = zoned.SignByte(out[last]-'0', d.IsNegative() || negativeZero)
	}

	return out, nil
}

func (s *Serializer) deserializeZoned(b []byte, ft format.FieldType, decimalDigits int32) (value.Value, error) {
	if isNull(b) {
		s.logger.Debug().Str("type", ft.String()).Int("length", len(b)).Msg("null zoned field read as zero")
		b = fitLeft(nil, len(b), '0')
	}

	digits, negative, err := zoned.Decode(b, ft)
	if err != nil {
		if ft.IsSigned() {
			return value.Value{}, err
		}
		s.logger.Debug().Str("type", ft.String()).Err(err).Msg("unparsable unsigned field read as zero")
		digits = []byte("0")
	}

	switch ft {
	case format.FieldSignedNumeric:
		u, perr := strconv.ParseUint(string(digits), 10, 64)
		if perr != nil || (!negative && u > math.MaxInt64) || (negative && u > 1<<63) {
			return value.Value{}, errs.Rangef(ft, string(digits), "does not fit a 64-bit integer")
		}
		if negative {
			return value.Int(-int64(u)), nil
		}

		return value.Int(int64(u)), nil
	case format.FieldUnsignedNumeric:
		u, perr := strconv.ParseUint(string(digits), 10, 64)
		if perr != nil {
			return value.Value{}, errs.Rangef(ft, string(digits), "does not fit a 64-bit unsigned integer")
		}

		return value.Uint(u), nil
	default:
		d, perr := decimal.NewFromString(string(digits))
		if perr != nil {
			return value.Value{}, errs.Formatf(ft, b, "not a number")
		}
		d = d.Shift(-decimalDigits)
		if negative && ft.IsSigned() {
			d = d.Neg()
		}

		return value.Decimal(d), nil
	}
}

func (s *Serializer) serializePacked(v value.Value, n int, ft format.FieldType, decimalDigits int32) ([]byte, error) {
	d, _, err := s.numberOf(v, ft)
	if err != nil {
		return nil, err
	}
	signed := ft == format.FieldPackedDecimal
	if !signed {
		d = d.Abs()
	}

	return fitLeft(packed.New(d, signed, decimalDigits).Bytes(), n, 0x00), nil
}

func (s *Serializer) deserializePacked(b []byte, ft format.FieldType, decimalDigits int32) (value.Value, error) {
	if isNull(b) {
		s.logger.Debug().Str("type", ft.String()).Int("length", len(b)).Msg("null packed field read as zero")
		b = make([]byte, len(b))
		if ft == format.FieldPackedDecimal {
			b[len(b)-1] = packed.SignPositive
		} else {
			b[len(b)-1] = packed.SignUnsigned
		}
	}

	pv, err := packed.FromBytes(b, decimalDigits)
	if err != nil {
		return value.Value{}, err
	}

	return value.Packed(pv), nil
}

// integerOf converts v to an integer for a binary target, truncating fractions.
func (s *Serializer) integerOf(v value.Value, ft format.FieldType) (int64, error) {
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()

		return i, nil
	case value.KindUint:
		u, _ := v.AsUint()
		if u > math.MaxInt64 {
			return 0, errs.Rangef(ft, v.String(), "does not fit a 64-bit integer")
		}

		return int64(u), nil
	}

	d, _, err := s.numberOf(v, ft)
	if err != nil {
		return 0, err
	}
	d = d.Truncate(0)
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, errs.Rangef(ft, d.String(), "does not fit a 64-bit integer")
	}

	return d.IntPart(), nil
}

// binaryRange returns the values a binary field can hold. A reference
// pointer is an unsigned 32-bit address.
func binaryRange(ft format.FieldType) (lo, hi int64) {
	if ft == format.FieldReferencePointer {
		return 0, math.MaxUint32
	}
	switch ft.FixedWidth() {
	case 2:
		return math.MinInt16, math.MaxInt16
	case 4:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func (s *Serializer) serializeBinary(v value.Value, n int, ft format.FieldType) ([]byte, error) {
	if n != ft.FixedWidth() {
		return nil, errs.Formatf(ft, nil, "width %d, want %d", n, ft.FixedWidth())
	}
	i, err := s.integerOf(v, ft)
	if err != nil {
		return nil, err
	}
	if lo, hi := binaryRange(ft); i < lo || i > hi {
		return nil, errs.Rangef(ft, strconv.FormatInt(i, 10), "does not fit %d bytes", n)
	}

	out := make([]byte, n)
	if err := endian.PutInt(s.engine, out, i); err != nil {
		return nil, errs.Formatf(ft, nil, "%v", err)
	}

	return out, nil
}

func (s *Serializer) deserializeBinary(b []byte, ft format.FieldType) (value.Value, error) {
	if len(b) != ft.FixedWidth() {
		return value.Value{}, errs.Formatf(ft, b, "width %d, want %d", len(b), ft.FixedWidth())
	}
	if ft == format.FieldReferencePointer {
		return value.Uint(uint64(s.engine.Uint32(b))), nil
	}
	i, err := endian.Int(s.engine, b)
	if err != nil {
		return value.Value{}, errs.Formatf(ft, b, "%v", err)
	}

	return value.Int(i), nil
}

func (s *Serializer) serializeFloat(v value.Value, n int, ft format.FieldType) ([]byte, error) {
	if n != ft.FixedWidth() {
		return nil, errs.Formatf(ft, nil, "width %d, want %d", n, ft.FixedWidth())
	}

	f, ok := v.AsFloat64()
	if !ok {
		d, _, err := s.numberOf(v, ft)
		if err != nil {
			return nil, err
		}
		f, _ = d.Float64()
	}

	out := make([]byte, n)
	if ft == format.FieldFloatSingle {
		f32 := float32(f)
		if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
			return nil, errs.Rangef(ft, strconv.FormatFloat(f, 'g', -1, 64), "does not fit a single-precision float")
		}
		s.engine.PutUint32(out, math.Float32bits(f32))

		return out, nil
	}
	s.engine.PutUint64(out, math.Float64bits(f))

	return out, nil
}

func (s *Serializer) deserializeFloat(b []byte, ft format.FieldType) (value.Value, error) {
	if len(b) != ft.FixedWidth() {
		return value.Value{}, errs.Formatf(ft, b, "width %d, want %d", len(b), ft.FixedWidth())
	}
	if ft == format.FieldFloatSingle {
		return value.Float(float64(math.Float32frombits(s.engine.Uint32(b)))), nil
	}

	return value.Float(math.Float64frombits(s.engine.Uint64(b))), nil
}
