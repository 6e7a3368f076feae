// Package format defines the closed enumerations shared by every layer:
// field storage types, text move rules and record image compression.
package format

type (
	FieldType       uint8
	MoveRule        uint8
	CompressionType uint8
)

const (
	FieldText                  FieldType = 0x01 // PIC X, space padded.
	FieldNumericEdited         FieldType = 0x02 // Edited picture, stored as text.
	FieldBoolean               FieldType = 0x03 // Flag with a single sentinel byte.
	FieldSignedNumeric         FieldType = 0x04 // PIC S9(n), zoned, zero scale.
	FieldUnsignedNumeric       FieldType = 0x05 // PIC 9(n), zoned, zero scale.
	FieldSignedDecimal         FieldType = 0x06 // PIC S9(n)V9(m), zoned.
	FieldUnsignedDecimal       FieldType = 0x07 // PIC 9(n)V9(m), zoned.
	FieldPackedDecimal         FieldType = 0x08 // COMP-3 with C/D sign nybble.
	FieldUnsignedPackedDecimal FieldType = 0x09 // COMP-3 with F sign nybble.
	FieldBinaryShort           FieldType = 0x0A // 2-byte COMP.
	FieldBinaryInt             FieldType = 0x0B // 4-byte COMP.
	FieldBinaryLong            FieldType = 0x0C // 8-byte COMP.
	FieldReferencePointer      FieldType = 0x0D // 4-byte POINTER.
	FieldFloatSingle           FieldType = 0x0E // COMP-1.
	FieldFloatDouble           FieldType = 0x0F // COMP-2.
	FieldOpaque                FieldType = 0x10 // Uninterpreted bytes.

	// MoveCOBOL drops separator and sign from a numeric source and left-justifies the digits.
	MoveCOBOL MoveRule = 0x1
	// MoveADSO rounds a numeric source to an integer and right-justifies it with a leading sign.
	MoveADSO MoveRule = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// FieldTypes lists every field type in declaration order.
var FieldTypes = []FieldType{
	FieldText, FieldNumericEdited, FieldBoolean,
	FieldSignedNumeric, FieldUnsignedNumeric, FieldSignedDecimal, FieldUnsignedDecimal,
	FieldPackedDecimal, FieldUnsignedPackedDecimal,
	FieldBinaryShort, FieldBinaryInt, FieldBinaryLong, FieldReferencePointer,
	FieldFloatSingle, FieldFloatDouble, FieldOpaque,
}

func (f FieldType) String() string {
	switch f {
	case FieldText:
		return "Text"
	case FieldNumericEdited:
		return "NumericEdited"
	case FieldBoolean:
		return "Boolean"
	case FieldSignedNumeric:
		return "SignedNumeric"
	case FieldUnsignedNumeric:
		return "UnsignedNumeric"
	case FieldSignedDecimal:
		return "SignedDecimal"
	case FieldUnsignedDecimal:
		return "UnsignedDecimal"
	case FieldPackedDecimal:
		return "PackedDecimal"
	case FieldUnsignedPackedDecimal:
		return "UnsignedPackedDecimal"
	case FieldBinaryShort:
		return "BinaryShort"
	case FieldBinaryInt:
		return "BinaryInt"
	case FieldBinaryLong:
		return "BinaryLong"
	case FieldReferencePointer:
		return "ReferencePointer"
	case FieldFloatSingle:
		return "FloatSingle"
	case FieldFloatDouble:
		return "FloatDouble"
	case FieldOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// ParseFieldType resolves a name produced by FieldType.String.
func ParseFieldType(name string) (FieldType, bool) {
	for _, f := range FieldTypes {
		if f.String() == name {
			return f, true
		}
	}

	return 0, false
}

// IsNumeric reports whether values of this type take part in numeric comparison.
//
// NumericEdited, ReferencePointer and Opaque are stored numbers in some sense
// but compare as text.
func (f FieldType) IsNumeric() bool {
	switch f {
	case FieldSignedNumeric, FieldUnsignedNumeric, FieldSignedDecimal, FieldUnsignedDecimal,
		FieldPackedDecimal, FieldUnsignedPackedDecimal,
		FieldBinaryShort, FieldBinaryInt, FieldBinaryLong,
		FieldFloatSingle, FieldFloatDouble:
		return true
	default:
		return false
	}
}

// IsZoned reports whether the type stores one digit per byte.
func (f FieldType) IsZoned() bool {
	switch f {
	case FieldSignedNumeric, FieldUnsignedNumeric, FieldSignedDecimal, FieldUnsignedDecimal:
		return true
	default:
		return false
	}
}

// IsPacked reports whether the type stores two digits per byte.
func (f FieldType) IsPacked() bool {
	return f == FieldPackedDecimal || f == FieldUnsignedPackedDecimal
}

// IsBinary reports whether the type is a fixed-width two's-complement integer.
func (f FieldType) IsBinary() bool {
	switch f {
	case FieldBinaryShort, FieldBinaryInt, FieldBinaryLong, FieldReferencePointer:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type is an IEEE 754 value.
func (f FieldType) IsFloat() bool {
	return f == FieldFloatSingle || f == FieldFloatDouble
}

// IsSigned reports whether the type carries a sign in storage.
//
// ReferencePointer is an unsigned 32-bit address.
func (f FieldType) IsSigned() bool {
	switch f {
	case FieldSignedNumeric, FieldSignedDecimal, FieldPackedDecimal,
		FieldBinaryShort, FieldBinaryInt, FieldBinaryLong,
		FieldFloatSingle, FieldFloatDouble:
		return true
	default:
		return false
	}
}

// FixedWidth returns the storage width for types whose width is implied, or 0.
func (f FieldType) FixedWidth() int {
	switch f {
	case FieldBinaryShort:
		return 2
	case FieldBinaryInt, FieldReferencePointer, FieldFloatSingle:
		return 4
	case FieldBinaryLong, FieldFloatDouble:
		return 8
	default:
		return 0
	}
}

func (m MoveRule) String() string {
	switch m {
	case MoveCOBOL:
		return "COBOL"
	case MoveADSO:
		return "ADSO"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
