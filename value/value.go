// Package value defines Value, the closed set of logical values a field
// can be read as or written from.
//
// Conversions between kinds are explicit methods with defined failure
// modes instead of open-ended runtime type probing.
package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kansasdcf/legacyrec/packed"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindText
	KindBytes
	KindBool
	KindInt
	KindUint
	KindDecimal
	KindPacked
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindText:
		return "Text"
	case KindBytes:
		return "Bytes"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindDecimal:
		return "Decimal"
	case KindPacked:
		return "Packed"
	case KindFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// Value is one logical value. The zero Value has KindNone.
type Value struct {
	kind Kind
	text string
	raw  []byte
	i    int64
	u    uint64
	f    float64
	dec  decimal.Decimal
	pv   packed.Value
}

func Text(s string) Value             { return Value{kind: KindText, text: s} }
func Bool(b bool) Value               { return Value{kind: KindBool, u: boolBit(b)} }
func Int(i int64) Value               { return Value{kind: KindInt, i: i} }
func Uint(u uint64) Value             { return Value{kind: KindUint, u: u} }
func Float(f float64) Value           { return Value{kind: KindFloat, f: f} }
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }
func Packed(p packed.Value) Value     { return Value{kind: KindPacked, pv: p} }

// Bytes wraps a copy of b.
func Bytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)

	return Value{kind: KindBytes, raw: cp}
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether the value holds a number.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindInt, KindUint, KindDecimal, KindPacked, KindFloat:
		return true
	default:
		return false
	}
}

// AsText returns the text of a Text value.
func (v Value) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsBytes returns the bytes of a Bytes value; the slice must not be modified.
func (v Value) AsBytes() ([]byte, bool) { return v.raw, v.kind == KindBytes }

func (v Value) AsBool() (bool, bool)     { return v.u == 1, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsUint() (uint64, bool)   { return v.u, v.kind == KindUint }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsPacked() (packed.Value, bool) { return v.pv, v.kind == KindPacked }

// AsDecimal returns the value as a decimal for every numeric kind and Bool.
//
// Floats convert exactly from their binary value; NaN and infinities
// report false.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindDecimal:
		return v.dec, true
	case KindPacked:
		return v.pv.Decimal(), true
	case KindInt:
		return decimal.NewFromInt(v.i), true
	case KindUint:
		return decimal.NewFromUint64(v.u), true
	case KindBool:
		return decimal.NewFromInt(int64(v.u)), true
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return decimal.Zero, false
		}

		return decimal.NewFromFloat(v.f), true
	default:
		return decimal.Zero, false
	}
}

// AsFloat64 converts any numeric kind to float64.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind == KindFloat {
		return v.f, true
	}
	d, ok := v.AsDecimal()
	if !ok {
		return 0, false
	}
	f, _ := d.Float64()

	return f, true
}

// String renders the value for display and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return ""
	case KindText:
		return v.text
	case KindBytes:
		return fmt.Sprintf("% x", v.raw)
	case KindBool:
		return strconv.FormatBool(v.u == 1)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindPacked:
		return v.pv.String()
	default:
		return ""
	}
}

// Equal reports whether two values hold the same variant and content.
// Numbers of different kinds are equal when numerically equal.
func (v Value) Equal(o Value) bool {
	if v.IsNumeric() && o.IsNumeric() {
		if v.kind == KindFloat || o.kind == KindFloat {
			a, _ := v.AsFloat64()
			b, _ := o.AsFloat64()

			return a == b
		}
		a, _ := v.AsDecimal()
		b, _ := o.AsDecimal()

		return a.Equal(b)
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindBytes:
		return string(v.raw) == string(o.raw)
	case KindBool:
		return v.u == o.u
	default:
		return true
	}
}
