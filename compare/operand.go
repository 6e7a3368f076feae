package compare

import (
	"fmt"

	"github.com/kansasdcf/legacyrec/element"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/record"
)

// OperandKind identifies what an Operand was taken from.
type OperandKind uint8

const (
	KindNull OperandKind = iota
	KindField
	KindGroup
	KindRecord
	KindLiteral
)

func (k OperandKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindField:
		return "field"
	case KindGroup:
		return "group"
	case KindRecord:
		return "record"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Operand is one side of a comparison. It holds a snapshot of the bytes it
// was built from, so later writes to the record do not change it.
type Operand struct {
	kind   OperandKind
	ft     format.FieldType
	digits int32
	raw    []byte
}

// Null returns the null operand, which sorts before every other operand.
func Null() Operand {
	return Operand{kind: KindNull}
}

// Literal returns a text literal operand.
func Literal(s string) Operand {
	return Operand{kind: KindLiteral, ft: format.FieldText, raw: []byte(s)}
}

// Field returns a field operand over raw bytes of type ft with the given scale.
func Field(ft format.FieldType, decimalDigits int32, raw []byte) Operand {
	b := make([]byte, len(raw))
	copy(b, raw)

	return Operand{kind: KindField, ft: ft, digits: decimalDigits, raw: b}
}

// Element returns the operand for e in r: a field operand for fields and a
// group operand for groups, arrays and redefines.
func Element(r *record.Record, e *element.Element) (Operand, error) {
	raw, err := r.Raw(e)
	if err != nil {
		return Operand{}, err
	}
	if e.IsField() {
		spec := e.Spec()

		return Operand{kind: KindField, ft: spec.Type, digits: spec.DecimalDigits, raw: raw}, nil
	}

	return Operand{kind: KindGroup, ft: format.FieldText, raw: raw}, nil
}

// Record returns the operand for the whole of r.
func Record(r *record.Record) Operand {
	return Operand{kind: KindRecord, ft: format.FieldText, raw: r.Bytes()}
}

// Kind returns what the operand was taken from.
func (o Operand) Kind() OperandKind { return o.kind }

// FieldType returns the field type of a field operand, FieldText otherwise.
func (o Operand) FieldType() format.FieldType { return o.ft }

// IsNumeric reports whether o is a field of a numeric type.
func (o Operand) IsNumeric() bool {
	return o.kind == KindField && o.ft.IsNumeric()
}

func (o Operand) String() string {
	switch o.kind {
	case KindNull:
		return "null"
	case KindLiteral:
		return fmt.Sprintf("literal %q", o.raw)
	case KindField:
		return fmt.Sprintf("%s field [% x]", o.ft, o.raw)
	default:
		return fmt.Sprintf("%s %q", o.kind, o.raw)
	}
}

func (o Operand) isBlank() bool {
	for _, c := range o.raw {
		if c != ' ' {
			return false
		}
	}

	return true
}
