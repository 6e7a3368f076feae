// Package legacyrec reads and writes the fixed-layout records of legacy
// mainframe programs.
//
// A record is a byte buffer described by a tree of elements: fields, groups,
// arrays (OCCURS) and redefines. Each field stores its value in one of the
// platform encodings: space-padded text, zoned decimal with an overpunched
// sign, packed decimal (COMP-3), big-endian binary or IEEE float.
//
// # Core Features
//
//   - Element trees with relative positions, so array occurrences and
//     redefines share one layout
//   - Serialization between logical values and stored bytes for every field type
//   - Exact decimal arithmetic for zoned and packed fields (shopspring/decimal)
//   - Legacy comparison rules for fields, groups, records and literals
//   - Culture-aware text moves (COBOL and ADSO rules) selected per call
//   - Compressed record images with checksums, kept in a bbolt store
//
// # Basic Usage
//
// Describing a layout and filling a record:
//
//	root, _ := element.NewGroup("CUSTOMER",
//	    element.MustField("CUST-ID", element.FieldSpec{Type: format.FieldUnsignedNumeric, Length: 6}),
//	    element.MustField("BALANCE", element.FieldSpec{Type: format.FieldPackedDecimal, Length: 4, DecimalDigits: 2}),
//	)
//
//	rec, _ := legacyrec.NewDefaultRecord(root)
//	_ = rec.SetByName("BALANCE", value.Text("-123.45"))
//	raw := rec.Bytes() // "000000" then 00 12 34 5D
//
// Converting a single field without a layout:
//
//	ser, _ := legacyrec.NewDefaultSerializer()
//	b, _ := ser.Serialize(value.Int(-42), 5, format.FieldSignedNumeric, 0, 0) // "0004K"
//
// # Package Structure
//
// This package provides top-level wrappers for the common cases. The
// element, record, serializer and compare packages hold the full API; image
// and store handle persisted record images.
package legacyrec

import (
	"github.com/kansasdcf/legacyrec/compare"
	"github.com/kansasdcf/legacyrec/element"
	"github.com/kansasdcf/legacyrec/internal/hash"
	"github.com/kansasdcf/legacyrec/locale"
	"github.com/kansasdcf/legacyrec/record"
	"github.com/kansasdcf/legacyrec/serializer"
)

// NewSerializer creates a field serializer for the given culture.
//
// Available options:
//   - serializer.WithLogger(logger)
//   - serializer.WithByteOrder(endian.GetLittleEndianEngine())
//
// Returns an error if cfg is invalid.
func NewSerializer(cfg locale.Config, opts ...serializer.Option) (*serializer.Serializer, error) {
	return serializer.New(cfg, opts...)
}

// NewDefaultSerializer creates a serializer for the invariant culture: "."
// decimal separator, "+" and "-" signs, COBOL text moves and big-endian
// binary fields.
func NewDefaultSerializer() (*serializer.Serializer, error) {
	return serializer.New(locale.Default())
}

// NewRecord allocates a record for the layout rooted at root.
//
// Every field starts at its typed initial value: spaces for text, zero for
// numbers.
func NewRecord(root *element.Element, ser *serializer.Serializer) (*record.Record, error) {
	return record.New(root, ser)
}

// NewDefaultRecord is NewRecord with NewDefaultSerializer.
func NewDefaultRecord(root *element.Element) (*record.Record, error) {
	ser, err := NewDefaultSerializer()
	if err != nil {
		return nil, err
	}

	return record.New(root, ser)
}

// DecodeRecord wraps data, which must be exactly the layout length, in a record.
func DecodeRecord(root *element.Element, ser *serializer.Serializer, data []byte) (*record.Record, error) {
	return record.FromBytes(root, ser, data)
}

// Compare orders x and y under the legacy comparison rules, using the
// serializer's culture for numeric text.
//
// Returns a ComparisonError when no rule applies to the operand pair.
func Compare(ser *serializer.Serializer, x, y compare.Operand) (compare.Ordering, error) {
	c, err := compare.New(ser)
	if err != nil {
		return compare.Equal, err
	}

	return c.Compare(x, y)
}

// NameID returns the lookup id records use for an element name.
//
// Names are matched without regard to case or surrounding spaces, so
// NameID("cust-id") == NameID("CUST-ID ").
func NameID(name string) uint64 {
	return hash.NameID(name)
}
