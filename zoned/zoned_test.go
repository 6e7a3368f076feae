package zoned

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
)

func TestSignByte(t *testing.T) {
	tests := []struct {
		digit    byte
		negative bool
		want     byte
	}{
		{0, false, '{'},
		{0, true, '}'},
		{1, false, 'A'},
		{9, false, 'I'},
		{1, true, 'J'},
		{5, true, 'N'},
		{9, true, 'R'},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SignByte(tt.digit, tt.negative), "digit=%d negative=%v", tt.digit, tt.negative)
	}
}

func TestDecodeSign_AllRanges(t *testing.T) {
	for d := byte(0); d <= 9; d++ {
		// plain digit
		got, neg, ok := DecodeSign('0' + d)
		require.True(t, ok)
		require.Equal(t, d, got)
		require.False(t, neg)

		// ASCII zoned negative
		got, neg, ok = DecodeSign('p' + d)
		require.True(t, ok)
		require.Equal(t, d, got)
		require.True(t, neg)

		// EBCDIC positive and negative round trip
		for _, negative := range []bool{false, true} {
			got, neg, ok = DecodeSign(SignByte(d, negative))
			require.True(t, ok)
			require.Equal(t, d, got)
			require.Equal(t, negative, neg)
		}
	}
}

func TestDecodeSign_Invalid(t *testing.T) {
	for _, b := range []byte{' ', 'S', 'Z', 'z', 0x00, 0xFF, '@', '-'} {
		_, _, ok := DecodeSign(b)
		require.False(t, ok, "%q", b)
	}
}

func TestIsSignZone(t *testing.T) {
	require.False(t, IsSignZone('7'))
	require.True(t, IsSignZone('{'))
	require.True(t, IsSignZone('J'))
	require.True(t, IsSignZone('q'))
	require.False(t, IsSignZone(' '))
}

func TestEncode(t *testing.T) {
	got, err := Encode([]byte("00123"), true)
	require.NoError(t, err)
	require.Equal(t, []byte("0012L"), got)

	got, err = Encode([]byte("0"), true)
	require.NoError(t, err)
	require.Equal(t, []byte{NegativeZero}, got)

	got, err = Encode([]byte("120"), false)
	require.NoError(t, err)
	require.Equal(t, []byte("12{"), got)

	_, err = Encode(nil, false)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	_, err = Encode([]byte("12-"), false)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestDecode(t *testing.T) {
	digits, neg, err := Decode([]byte("0012L"), format.FieldSignedNumeric)
	require.NoError(t, err)
	require.Equal(t, []byte("00123"), digits)
	require.True(t, neg)

	digits, neg, err = Decode([]byte("12s"), format.FieldSignedNumeric)
	require.NoError(t, err)
	require.Equal(t, []byte("123"), digits)
	require.True(t, neg)

	// negative zero decodes with the flag set
	digits, neg, err = Decode([]byte{NegativeZero}, format.FieldSignedNumeric)
	require.NoError(t, err)
	require.Equal(t, []byte("0"), digits)
	require.True(t, neg)

	_, _, err = Decode([]byte("1 3"), format.FieldSignedNumeric)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
	_, _, err = Decode([]byte("12 "), format.FieldSignedNumeric)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
	_, _, err = Decode(nil, format.FieldSignedNumeric)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}
