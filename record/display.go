package record

import (
	"strconv"
	"strings"

	"github.com/kansasdcf/legacyrec/element"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/locale"
	"github.com/kansasdcf/legacyrec/serializer"
	"github.com/kansasdcf/legacyrec/value"
)

// Display returns the text form of e.
//
// Numeric fields render their decoded value in the record's culture, with
// exactly DecimalDigits fractional digits. A numeric field whose bytes do
// not decode, and every other element, renders its raw bytes as text.
func (r *Record) Display(e *element.Element) (string, error) {
	raw, err := r.Raw(e)
	if err != nil {
		return "", err
	}
	if !e.IsField() || !e.FieldType().IsNumeric() {
		return string(raw), nil
	}
	v, err := r.Get(e)
	if err != nil {
		return string(raw), nil
	}

	return FormatValue(v, e.Spec().DecimalDigits, r.ser.Config()), nil
}

// FormatValue renders a numeric value with scale fractional digits using
// the separator and negative sign of cfg. Other values use their String form.
func FormatValue(v value.Value, scale int32, cfg locale.Config) string {
	var s string
	switch v.Kind() {
	case value.KindInt, value.KindUint:
		s = v.String()
	case value.KindFloat:
		f, _ := v.AsFloat()
		s = strconv.FormatFloat(f, 'f', -1, 64)
	case value.KindDecimal, value.KindPacked:
		d, _ := v.AsDecimal()
		s = d.StringFixed(scale)
	default:
		return v.String()
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if sep := cfg.DecimalSeparator(); sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	if negative {
		s = cfg.NegativeSign() + s
	}

	return s
}

// InitializeValues resets every field to its initial value: spaces for text,
// zero for numbers, false for booleans and 0x00 for opaque bytes.
//
// Every array occurrence is reset. Redefines are skipped; their bytes
// belong to the element they overlay.
func (r *Record) InitializeValues() error {
	return r.initialize(r.root)
}

func (r *Record) initialize(scope *element.Element) error {
	var err error
	scope.Walk(func(e *element.Element) bool {
		if err != nil {
			return false
		}
		switch e.Kind() {
		case element.KindRedefine:
			return false
		case element.KindArray:
			for i := 0; i < e.Occurs() && err == nil; i++ {
				var occ *element.Element
				if occ, err = e.Occurrence(i); err == nil {
					err = r.initialize(occ)
				}
			}

			return false
		case element.KindField:
			err = r.initializeField(e)
		}

		return true
	})

	return err
}

func (r *Record) initializeField(e *element.Element) error {
	ft := e.FieldType()
	switch {
	case ft == format.FieldText || ft == format.FieldNumericEdited:
		return r.buf.Fill(e.PositionInBuffer(), e.Length(), serializer.Space)
	case ft == format.FieldOpaque:
		return r.buf.Fill(e.PositionInBuffer(), e.Length(), 0x00)
	case ft == format.FieldBoolean:
		return r.Set(e, value.Bool(false))
	default:
		return r.Set(e, value.Int(0))
	}
}
