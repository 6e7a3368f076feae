package serializer

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kansasdcf/legacyrec/endian"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/locale"
	"github.com/kansasdcf/legacyrec/packed"
	"github.com/kansasdcf/legacyrec/value"
)

func newSerializer(t *testing.T, opts ...Option) *Serializer {
	t.Helper()
	s, err := New(locale.Default(), opts...)
	require.NoError(t, err)

	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(locale.Config{})
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = New(locale.Default(), WithByteOrder(nil))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestSerialize_Arguments(t *testing.T) {
	s := newSerializer(t)

	_, err := s.Serialize(value.Text("A"), 0, format.FieldText, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = s.Serialize(value.Int(1), 3, format.FieldSignedDecimal, 0, -1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = s.Serialize(value.Int(1), 3, format.FieldType(0x7F), 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = s.Deserialize(nil, format.FieldText, 0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestSerialize_Text(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Text("AB"), 5, format.FieldText, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "AB   ", string(b))

	b, err = s.Serialize(value.Text("ABCDEF"), 3, format.FieldText, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "ABC", string(b))

	b, err = s.Serialize(value.Value{}, 3, format.FieldNumericEdited, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "   ", string(b))

	v, err := s.Deserialize([]byte("AB   "), format.FieldText, 0)
	require.NoError(t, err)
	require.Equal(t, value.Text("AB   "), v)
}

func TestSerialize_TextFromNumber_COBOL(t *testing.T) {
	s := newSerializer(t)

	pv := packed.New(dec("123.45"), true, 2)
	b, err := s.Serialize(value.Packed(pv), 7, format.FieldText, format.FieldPackedDecimal, 0)
	require.NoError(t, err)
	require.Equal(t, "12345  ", string(b))

	b, err = s.Serialize(value.Decimal(dec("-12.5")), 6, format.FieldText, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "125   ", string(b))

	// display text of a numeric field loses its sign and separator
	b, err = s.Serialize(value.Text("-1.50"), 4, format.FieldText, format.FieldSignedDecimal, 0)
	require.NoError(t, err)
	require.Equal(t, "150 ", string(b))

	b, err = s.Serialize(value.Int(123456), 3, format.FieldText, format.FieldSignedNumeric, 0)
	require.NoError(t, err)
	require.Equal(t, "123", string(b))
}

func TestSerializeMove_COBOLZeroFill(t *testing.T) {
	s := newSerializer(t)

	tests := []struct {
		name string
		v    value.Value
		n    int
		src  MoveSource
		want string
	}{
		{"integer", value.Int(42), 6, MoveSource{Type: format.FieldUnsignedNumeric, DisplayLength: 5}, "00042 "},
		{"negative integer", value.Int(-42), 5, MoveSource{Type: format.FieldSignedNumeric, DisplayLength: 5}, "00042"},
		{"packed", value.Packed(packed.New(dec("1.5"), true, 2)), 8, MoveSource{Type: format.FieldPackedDecimal, DecimalDigits: 2, DisplayLength: 5}, "00150   "},
		{"decimal takes source scale", value.Decimal(dec("1.5")), 5, MoveSource{Type: format.FieldSignedDecimal, DecimalDigits: 2, DisplayLength: 5}, "00150"},
		{"display text", value.Text("-1.50"), 4, MoveSource{Type: format.FieldSignedDecimal, DecimalDigits: 2, DisplayLength: 4}, "0150"},
		{"truncated on the right", value.Int(42), 3, MoveSource{Type: format.FieldUnsignedNumeric, DisplayLength: 5}, "000"},
		{"wider than display keeps low digits", value.Int(123456), 6, MoveSource{Type: format.FieldUnsignedNumeric, DisplayLength: 4}, "3456  "},
		{"text source is not padded", value.Text("42"), 4, MoveSource{Type: format.FieldText, DisplayLength: 4}, "42  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.SerializeMove(tt.v, tt.n, format.FieldText, tt.src, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(b))
		})
	}
}

func TestSerialize_TextFromNumber_ADSO(t *testing.T) {
	cfg, err := locale.New(locale.WithMoveRule(format.MoveADSO))
	require.NoError(t, err)
	s, err := New(cfg)
	require.NoError(t, err)

	b, err := s.Serialize(value.Decimal(dec("-12.5")), 6, format.FieldText, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "   -13", string(b))

	b, err = s.Serialize(value.Int(12345), 3, format.FieldText, format.FieldSignedNumeric, 0)
	require.NoError(t, err)
	require.Equal(t, "345", string(b))

	b, err = s.Serialize(value.Text("42.4"), 4, format.FieldText, format.FieldSignedDecimal, 0)
	require.NoError(t, err)
	require.Equal(t, "  42", string(b))

	// text that is not a number is copied
	b, err = s.Serialize(value.Text("N/A"), 4, format.FieldText, format.FieldSignedDecimal, 0)
	require.NoError(t, err)
	require.Equal(t, "N/A ", string(b))
}

func TestBoolean(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Bool(true), 3, format.FieldBoolean, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "001", string(b))

	b, err = s.Serialize(value.Bool(false), 3, format.FieldBoolean, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "000", string(b))

	b, err = s.Serialize(value.Text("Y"), 1, format.FieldBoolean, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "1", string(b))

	b, err = s.Serialize(value.Int(0), 1, format.FieldBoolean, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "0", string(b))

	for in, want := range map[string]bool{"001": true, "1": true, "101": false, "000": false, "00X": false, "01 ": false} {
		v, err := s.Deserialize([]byte(in), format.FieldBoolean, 0)
		require.NoError(t, err)
		got, ok := v.AsBool()
		require.True(t, ok)
		require.Equal(t, want, got, in)
	}
}

func TestSerialize_SignedNumeric(t *testing.T) {
	s := newSerializer(t)

	tests := []struct {
		name string
		in   value.Value
		n    int
		want string
	}{
		{"positive", value.Int(123), 5, "0012C"},
		{"negative", value.Int(-123), 5, "0012L"},
		{"zero", value.Int(0), 3, "00{"},
		{"negative zero text", value.Text("-0"), 3, "00}"},
		{"truncate from left", value.Int(123456), 3, "45F"},
		{"fraction truncated", value.Decimal(dec("9.99")), 2, "0I"},
		{"text", value.Text(" -45 "), 4, "004N"},
		{"blank text", value.Text("  "), 2, "0{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.Serialize(tt.in, tt.n, format.FieldSignedNumeric, 0, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(b))
		})
	}

	_, err := s.Serialize(value.Text("ABC"), 3, format.FieldSignedNumeric, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestSerialize_UnsignedNumeric(t *testing.T) {
	var logs bytes.Buffer
	s := newSerializer(t, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	b, err := s.Serialize(value.Int(-42), 4, format.FieldUnsignedNumeric, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "0042", string(b))

	b, err = s.Serialize(value.Text("ABC"), 4, format.FieldUnsignedNumeric, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "0000", string(b))
	require.Contains(t, logs.String(), "stored as zero")
}

func TestSerialize_ZonedDecimal(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Decimal(dec("12.345")), 5, format.FieldSignedDecimal, 0, 2)
	require.NoError(t, err)
	require.Equal(t, "0123E", string(b))

	b, err = s.Serialize(value.Decimal(dec("-1.5")), 4, format.FieldSignedDecimal, 0, 2)
	require.NoError(t, err)
	require.Equal(t, "015}", string(b))

	b, err = s.Serialize(value.Text("-1.5"), 4, format.FieldUnsignedDecimal, 0, 2)
	require.NoError(t, err)
	require.Equal(t, "0150", string(b))

	b, err = s.Serialize(value.Int(7), 3, format.FieldUnsignedDecimal, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "007", string(b))
}

func TestDeserialize_Zoned(t *testing.T) {
	s := newSerializer(t)

	tests := []struct {
		in     string
		ft     format.FieldType
		digits int32
		want   value.Value
	}{
		{"0012L", format.FieldSignedNumeric, 0, value.Int(-123)},
		{"0012C", format.FieldSignedNumeric, 0, value.Int(123)},
		{"00}", format.FieldSignedNumeric, 0, value.Int(0)},
		{"123", format.FieldSignedNumeric, 0, value.Int(123)},
		{"12r", format.FieldSignedNumeric, 0, value.Int(-122)},
		{"0042", format.FieldUnsignedNumeric, 0, value.Uint(42)},
		{"004K", format.FieldUnsignedNumeric, 0, value.Uint(42)},
		{"0123E", format.FieldSignedDecimal, 2, value.Decimal(dec("12.35"))},
		{"015}", format.FieldSignedDecimal, 2, value.Decimal(dec("-1.5"))},
		{"0150", format.FieldUnsignedDecimal, 2, value.Decimal(dec("1.5"))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := s.Deserialize([]byte(tt.in), tt.ft, tt.digits)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(v), "got %s", v)
			require.Equal(t, tt.want.Kind(), v.Kind())
		})
	}
}

func TestDeserialize_ZonedInvalid(t *testing.T) {
	var logs bytes.Buffer
	s := newSerializer(t, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	_, err := s.Deserialize([]byte("1 2"), format.FieldSignedNumeric, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)

	_, err = s.Deserialize([]byte("12 "), format.FieldSignedDecimal, 1)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)

	v, err := s.Deserialize([]byte("AB1"), format.FieldUnsignedNumeric, 0)
	require.NoError(t, err)
	require.Equal(t, value.Uint(0), v)
	require.Contains(t, logs.String(), "read as zero")

	_, err = s.Deserialize([]byte("99999999999999999999"), format.FieldSignedNumeric, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	v, err = s.Deserialize([]byte("922337203685477580Q"), format.FieldSignedNumeric, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	require.Equal(t, int64(-9223372036854775808), i)
}

func TestDeserialize_NullBuffer(t *testing.T) {
	s := newSerializer(t)

	v, err := s.Deserialize([]byte{0, 0, 0}, format.FieldSignedNumeric, 0)
	require.NoError(t, err)
	require.Equal(t, value.Int(0), v)

	v, err = s.Deserialize([]byte{0, 0}, format.FieldUnsignedDecimal, 1)
	require.NoError(t, err)
	require.True(t, value.Int(0).Equal(v))

	v, err = s.Deserialize([]byte{0, 0}, format.FieldPackedDecimal, 2)
	require.NoError(t, err)
	pv, ok := v.AsPacked()
	require.True(t, ok)
	require.True(t, pv.IsZero())
	require.True(t, pv.IsSigned())
	require.Equal(t, []byte{0x00, 0x0C}, pv.Bytes())

	v, err = s.Deserialize([]byte{0, 0}, format.FieldUnsignedPackedDecimal, 0)
	require.NoError(t, err)
	pv, _ = v.AsPacked()
	require.False(t, pv.IsSigned())
	require.Equal(t, []byte{0x00, 0x0F}, pv.Bytes())
}

func TestPacked(t *testing.T) {
	s := newSerializer(t)

	tests := []struct {
		name   string
		in     value.Value
		ft     format.FieldType
		n      int
		digits int32
		want   []byte
	}{
		{"exact", value.Decimal(dec("123.45")), format.FieldPackedDecimal, 3, 2, []byte{0x12, 0x34, 0x5C}},
		{"left padded", value.Decimal(dec("123.45")), format.FieldPackedDecimal, 5, 2, []byte{0x00, 0x00, 0x12, 0x34, 0x5C}},
		{"negative", value.Int(-12), format.FieldPackedDecimal, 2, 0, []byte{0x01, 0x2D}},
		{"truncated from left", value.Int(12345), format.FieldPackedDecimal, 2, 0, []byte{0x34, 0x5C}},
		{"unsigned", value.Int(-12), format.FieldUnsignedPackedDecimal, 2, 0, []byte{0x01, 0x2F}},
		{"rounded", value.Decimal(dec("1.005")), format.FieldPackedDecimal, 2, 2, []byte{0x10, 0x1C}},
		{"text", value.Text("-7.5"), format.FieldPackedDecimal, 2, 1, []byte{0x07, 0x5D}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.Serialize(tt.in, tt.n, tt.ft, 0, tt.digits)
			require.NoError(t, err)
			require.Equal(t, tt.want, b)
		})
	}

	v, err := s.Deserialize([]byte{0x12, 0x34, 0x5D}, format.FieldPackedDecimal, 2)
	require.NoError(t, err)
	require.True(t, value.Decimal(dec("-123.45")).Equal(v))

	_, err = s.Deserialize([]byte{0x1A, 0x2C}, format.FieldPackedDecimal, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)

	_, err = s.Serialize(value.Text("x"), 2, format.FieldPackedDecimal, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestBinary(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Int(-1), 8, format.FieldBinaryLong, 0, 0)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xFF}, 8), b)

	b, err = s.Serialize(value.Int(258), 2, format.FieldBinaryShort, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, b)

	b, err = s.Serialize(value.Decimal(dec("-7.9")), 4, format.FieldBinaryInt, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xF9}, b)

	b, err = s.Serialize(value.Text("16"), 4, format.FieldReferencePointer, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0x10}, b)

	b, err = s.Serialize(value.Uint(math.MaxUint32), 4, format.FieldReferencePointer, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b)
	v, err := s.Deserialize(b, format.FieldReferencePointer, 0)
	require.NoError(t, err)
	require.Equal(t, value.Uint(math.MaxUint32), v)

	_, err = s.Serialize(value.Int(-1), 4, format.FieldReferencePointer, 0, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	// a pointer is unsigned, so text that is not a number stores as zero
	b, err = s.Serialize(value.Text("NULL"), 4, format.FieldReferencePointer, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, b)

	_, err = s.Serialize(value.Int(40000), 2, format.FieldBinaryShort, 0, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = s.Serialize(value.Uint(1<<63), 8, format.FieldBinaryLong, 0, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = s.Serialize(value.Int(1), 4, format.FieldBinaryShort, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)

	v, err = s.Deserialize([]byte{0xFF, 0xFE}, format.FieldBinaryShort, 0)
	require.NoError(t, err)
	require.Equal(t, value.Int(-2), v)

	v, err = s.Deserialize(bytes.Repeat([]byte{0xFF}, 8), format.FieldBinaryLong, 0)
	require.NoError(t, err)
	require.Equal(t, value.Int(-1), v)

	_, err = s.Deserialize([]byte{0x01, 0x02, 0x03}, format.FieldBinaryInt, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestBinary_LittleEndian(t *testing.T) {
	s := newSerializer(t, WithByteOrder(endian.GetLittleEndianEngine()))

	b, err := s.Serialize(value.Int(258), 2, format.FieldBinaryShort, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01}, b)

	v, err := s.Deserialize(b, format.FieldBinaryShort, 0)
	require.NoError(t, err)
	require.Equal(t, value.Int(258), v)
}

func TestFloat(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Float(1.5), 8, format.FieldFloatDouble, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x3F, 0xF8, 0, 0, 0, 0, 0, 0}, b)

	b, err = s.Serialize(value.Text("-2.5"), 4, format.FieldFloatSingle, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0xC0, 0x20, 0, 0}, b)

	v, err := s.Deserialize(b, format.FieldFloatSingle, 0)
	require.NoError(t, err)
	require.Equal(t, value.Float(-2.5), v)

	_, err = s.Serialize(value.Float(1e40), 4, format.FieldFloatSingle, 0, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = s.Deserialize([]byte{1, 2}, format.FieldFloatDouble, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestOpaque(t *testing.T) {
	s := newSerializer(t)

	b, err := s.Serialize(value.Bytes([]byte{1, 2}), 4, format.FieldOpaque, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 0, 0}, b)

	v, err := s.Deserialize([]byte{9, 8}, format.FieldOpaque, 0)
	require.NoError(t, err)
	raw, ok := v.AsBytes()
	require.True(t, ok)
	require.Equal(t, []byte{9, 8}, raw)
}

func TestRoundTrip_Numeric(t *testing.T) {
	s := newSerializer(t)

	inputs := []string{"0", "1", "-1", "12.34", "-99.99", "0.01"}
	types := []format.FieldType{format.FieldSignedDecimal, format.FieldPackedDecimal}
	for _, ft := range types {
		for _, in := range inputs {
			want := dec(in)
			b, err := s.Serialize(value.Decimal(want), 6, ft, 0, 2)
			require.NoError(t, err)
			v, err := s.Deserialize(b, ft, 2)
			require.NoError(t, err)
			got, ok := v.AsDecimal()
			require.True(t, ok)
			require.True(t, want.Equal(got), "%s %s: got %s", ft, in, got)
		}
	}
}

// decimalValues returns zero, the smallest unit, a mid value and the largest
// value a field of the given digit count and scale holds, plus negatives.
func decimalValues(digits int, scale int32, signed bool) []value.Value {
	largest := decimal.New(1, int32(digits)).Sub(decimal.NewFromInt(1)).Shift(-scale)
	unit := decimal.New(1, -scale)
	mid := decimal.RequireFromString("1234567890123456789"[:digits]).Shift(-scale)

	var out []value.Value
	for _, d := range []decimal.Decimal{decimal.Zero, unit, mid, largest} {
		out = append(out, value.Decimal(d))
		if signed && !d.IsZero() {
			out = append(out, value.Decimal(d.Neg()))
		}
	}

	return out
}

func TestRoundTrip_AllFieldTypes(t *testing.T) {
	s := newSerializer(t)

	type roundTrip struct {
		ft     format.FieldType
		n      int
		scale  int32
		values []value.Value
	}
	var cases []roundTrip

	for _, ft := range []format.FieldType{
		format.FieldSignedNumeric, format.FieldUnsignedNumeric,
		format.FieldSignedDecimal, format.FieldUnsignedDecimal,
	} {
		scales := []int32{0}
		if ft == format.FieldSignedDecimal || ft == format.FieldUnsignedDecimal {
			scales = []int32{0, 2}
		}
		for _, n := range []int{1, 3, 10} {
			for _, scale := range scales {
				if int(scale) > n {
					continue
				}
				cases = append(cases, roundTrip{ft, n, scale, decimalValues(n, scale, ft.IsSigned())})
			}
		}
	}
	for _, ft := range []format.FieldType{format.FieldPackedDecimal, format.FieldUnsignedPackedDecimal} {
		for _, n := range []int{1, 3, 8} {
			for _, scale := range []int32{0, 2} {
				digits := packed.MaxDigits(n)
				if int(scale) > digits {
					continue
				}
				cases = append(cases, roundTrip{ft, n, scale, decimalValues(digits, scale, ft.IsSigned())})
			}
		}
	}

	ints := func(vs ...int64) []value.Value {
		out := make([]value.Value, len(vs))
		for i, v := range vs {
			out[i] = value.Int(v)
		}

		return out
	}
	floats := func(vs ...float64) []value.Value {
		out := make([]value.Value, len(vs))
		for i, v := range vs {
			out[i] = value.Float(v)
		}

		return out
	}
	cases = append(cases,
		roundTrip{format.FieldBinaryShort, 2, 0, ints(0, 1, -1, math.MinInt16, math.MaxInt16)},
		roundTrip{format.FieldBinaryInt, 4, 0, ints(0, 258, -258, math.MinInt32, math.MaxInt32)},
		roundTrip{format.FieldBinaryLong, 8, 0, ints(0, -1, math.MinInt64, math.MaxInt64)},
		roundTrip{format.FieldReferencePointer, 4, 0, []value.Value{value.Uint(0), value.Uint(16), value.Uint(math.MaxUint32)}},
		roundTrip{format.FieldFloatSingle, 4, 0, floats(0, 1.5, -2.25, math.MaxFloat32, math.SmallestNonzeroFloat32)},
		roundTrip{format.FieldFloatDouble, 8, 0, floats(0, math.Pi, -1e300, math.MaxFloat64)},
		roundTrip{format.FieldBoolean, 1, 0, []value.Value{value.Bool(true), value.Bool(false)}},
		roundTrip{format.FieldBoolean, 3, 0, []value.Value{value.Bool(true), value.Bool(false)}},
		roundTrip{format.FieldOpaque, 1, 0, []value.Value{value.Bytes([]byte{0x00}), value.Bytes([]byte{0xFF})}},
		roundTrip{format.FieldOpaque, 4, 0, []value.Value{value.Bytes([]byte{0xDE, 0xAD, 0x00, 0x01})}},
	)
	for _, ft := range []format.FieldType{format.FieldText, format.FieldNumericEdited} {
		for _, n := range []int{1, 5, 12} {
			cases = append(cases, roundTrip{ft, n, 0, []value.Value{
				value.Text(""), value.Text("A"), value.Text(string(bytes.Repeat([]byte("Z"), n))),
			}})
		}
	}

	covered := map[format.FieldType]bool{}
	for _, tc := range cases {
		covered[tc.ft] = true
		t.Run(fmt.Sprintf("%s/%d/%d", tc.ft, tc.n, tc.scale), func(t *testing.T) {
			for _, v := range tc.values {
				b, err := s.Serialize(v, tc.n, tc.ft, 0, tc.scale)
				require.NoError(t, err, "%s", v)
				require.Len(t, b, tc.n)

				got, err := s.Deserialize(b, tc.ft, tc.scale)
				require.NoError(t, err, "%s", v)

				want := v
				if text, ok := v.AsText(); ok {
					want = value.Text(text + string(bytes.Repeat([]byte{Space}, tc.n-len(text))))
				}
				require.True(t, want.Equal(got), "%s: wrote % X, read %s", v, b, got)
			}
		})
	}
	for _, ft := range format.FieldTypes {
		require.True(t, covered[ft], "%s has no round trip", ft)
	}
}
