package serializer

import (
	"github.com/rs/zerolog"

	"github.com/kansasdcf/legacyrec/endian"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/internal/options"
	"github.com/kansasdcf/legacyrec/locale"
	"github.com/kansasdcf/legacyrec/value"
)

const (
	// Space pads text fields.
	Space byte = ' '
	// TrueByte is the final byte of a true boolean field.
	TrueByte byte = '1'
	// FalseByte fills a false boolean field and every byte of a true one except the last.
	FalseByte byte = '0'
)

// Serializer encodes and decodes field bytes for one culture.
type Serializer struct {
	cfg    locale.Config
	engine endian.EndianEngine
	logger zerolog.Logger
}

// Option configures a Serializer.
type Option = options.Option[*Serializer]

// WithLogger sets the logger used for lenient conversions.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(s *Serializer) {
		s.logger = logger
	})
}

// WithByteOrder sets the byte order of binary and float fields.
//
// The default is big-endian, the mainframe order.
func WithByteOrder(engine endian.EndianEngine) Option {
	return func(s *Serializer) error {
		if engine == nil {
			return errs.Argumentf("byte order", "must not be nil")
		}
		s.engine = engine

		return nil
	}
}

// New returns a Serializer for cfg.
func New(cfg locale.Config, opts ...Option) (*Serializer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Serializer{
		cfg:    cfg,
		engine: endian.GetBigEndianEngine(),
		logger: zerolog.Nop(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns the culture the serializer was built with.
func (s *Serializer) Config() locale.Config {
	return s.cfg
}

// MoveSource describes the field a moved value was read from.
type MoveSource struct {
	Type format.FieldType
	// DecimalDigits is the scale of a decimal or packed source.
	DecimalDigits int32
	// DisplayLength is the digit count of a numeric source. A COBOL move
	// into text zero-fills the digits to this width; 0 keeps the digits of
	// the value as they are.
	DisplayLength int
}

// Serialize encodes v into exactly byteCount bytes of field type ft.
//
// source is the field type v was read from; it selects the move rule when a
// number lands in a text field. Pass 0 when v did not come from a field.
// decimalDigits is the scale of decimal and packed targets.
func (s *Serializer) Serialize(v value.Value, byteCount int, ft, source format.FieldType, decimalDigits int32) ([]byte, error) {
	return s.SerializeMove(v, byteCount, ft, MoveSource{Type: source}, decimalDigits)
}

// SerializeMove is Serialize with the full description of the source field,
// as a MOVE between two fields needs it.
func (s *Serializer) SerializeMove(v value.Value, byteCount int, ft format.FieldType, src MoveSource, decimalDigits int32) ([]byte, error) {
	if byteCount <= 0 {
		return nil, errs.Argumentf("byte count", "must be positive, got %d", byteCount)
	}
	if decimalDigits < 0 {
		return nil, errs.Argumentf("decimal digits", "must not be negative, got %d", decimalDigits)
	}

	switch {
	case ft == format.FieldText || ft == format.FieldNumericEdited:
		return s.serializeText(v, byteCount, src), nil
	case ft == format.FieldBoolean:
		return serializeBool(v, byteCount), nil
	case ft.IsZoned():
		return s.serializeZoned(v, byteCount, ft, decimalDigits)
	case ft.IsPacked():
		return s.serializePacked(v, byteCount, ft, decimalDigits)
	case ft.IsBinary():
		return s.serializeBinary(v, byteCount, ft)
	case ft.IsFloat():
		return s.serializeFloat(v, byteCount, ft)
	case ft == format.FieldOpaque:
		return serializeOpaque(v, byteCount), nil
	default:
		return nil, errs.Argumentf("field type", "unsupported %s", ft)
	}
}

// Deserialize decodes b as a field of type ft.
//
// Text fields yield Text, booleans Bool, integer zoned and binary fields Int
// or Uint, zoned decimals Decimal, packed fields Packed, floats Float and
// opaque fields Bytes.
func (s *Serializer) Deserialize(b []byte, ft format.FieldType, decimalDigits int32) (value.Value, error) {
	if len(b) == 0 {
		return value.Value{}, errs.Argumentf("field bytes", "must not be empty")
	}
	if decimalDigits < 0 {
		return value.Value{}, errs.Argumentf("decimal digits", "must not be negative, got %d", decimalDigits)
	}

	switch {
	case ft == format.FieldText || ft == format.FieldNumericEdited:
		return value.Text(string(b)), nil
	case ft == format.FieldBoolean:
		return value.Bool(isTrue(b)), nil
	case ft.IsZoned():
		return s.deserializeZoned(b, ft, decimalDigits)
	case ft.IsPacked():
		return s.deserializePacked(b, ft, decimalDigits)
	case ft.IsBinary():
		return s.deserializeBinary(b, ft)
	case ft.IsFloat():
		return s.deserializeFloat(b, ft)
	case ft == format.FieldOpaque:
		return value.Bytes(b), nil
	default:
		return value.Value{}, errs.Argumentf("field type", "unsupported %s", ft)
	}
}

// isNull reports whether every byte is 0x00, the state of a field that was
// never initialized.
func isNull(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}

	return true
}

// fitLeft pads b on the left with pad, or keeps its last n bytes.
func fitLeft(b []byte, n int, pad byte) []byte {
	out := make([]byte, n)
	if len(b) >= n {
		copy(out, b[len(b)-n:])

		return out
	}
	fill := n - len(b)
	for i := 0; i < fill; i++ {
		out[i] = pad
	}
	copy(out[fill:], b)

	return out
}

// fitRight pads b on the right with pad, or keeps its first n bytes.
func fitRight(b []byte, n int, pad byte) []byte {
	out := make([]byte, n)
	c := copy(out, b)
	for i := c; i < n; i++ {
		out[i] = pad
	}

	return out
}
