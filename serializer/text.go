package serializer

import (
	"strings"

	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/value"
)

func (s *Serializer) serializeText(v value.Value, n int, src MoveSource) []byte {
	numeric := src.Type.IsNumeric() || (src.Type == 0 && v.IsNumeric())
	if !numeric {
		return fitRight([]byte(textOf(v)), n, Space)
	}

	if s.cfg.MoveRule() == format.MoveADSO {
		if text, ok := s.adsoText(v); ok {
			return fitLeft([]byte(text), n, Space)
		}

		return fitRight([]byte(textOf(v)), n, Space)
	}

	digits := s.cobolDigits(v, src)
	if src.DisplayLength > 0 && isDigits(digits) {
		digits = string(fitLeft([]byte(digits), src.DisplayLength, '0'))
	}

	return fitRight([]byte(digits), n, Space)
}

// cobolDigits drops the sign and decimal separator of a number, leaving
// the digits as they would be stored in a zoned field.
func (s *Serializer) cobolDigits(v value.Value, src MoveSource) string {
	if text, ok := v.AsText(); ok {
		for _, token := range []string{s.cfg.NegativeSign(), s.cfg.PositiveSign(), s.cfg.DecimalSeparator()} {
			text = strings.ReplaceAll(text, token, "")
		}

		return text
	}

	d, ok := v.AsDecimal()
	if !ok {
		return textOf(v)
	}
	scale := int32(0)
	if pv, isPacked := v.AsPacked(); isPacked {
		scale = pv.Scale()
	} else if d.Exponent() < 0 {
		scale = -d.Exponent()
	}
	scale = max(scale, src.DecimalDigits)

	return strings.Replace(d.Abs().StringFixed(scale), ".", "", 1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// adsoText rounds a number to an integer and renders it with a leading
// negative sign.
func (s *Serializer) adsoText(v value.Value) (string, bool) {
	d, ok := v.AsDecimal()
	if !ok {
		text, isText := v.AsText()
		if !isText {
			return "", false
		}
		parsed, _, err := value.ParseNumber(strings.TrimSpace(text), s.cfg)
		if err != nil {
			return "", false
		}
		d = parsed
	}

	d = d.Round(0)
	if d.Sign() < 0 {
		return s.cfg.NegativeSign() + d.Abs().String(), true
	}

	return d.String(), true
}

func textOf(v value.Value) string {
	switch v.Kind() {
	case value.KindNone:
		return ""
	case value.KindBytes:
		raw, _ := v.AsBytes()

		return string(raw)
	default:
		return v.String()
	}
}

func serializeBool(v value.Value, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = FalseByte
	}
	if truthy(v) {
		out[n-1] = TrueByte
	}

	return out
}

func truthy(v value.Value) bool {
	if b, ok := v.AsBool(); ok {
		return b
	}
	if text, ok := v.AsText(); ok {
		switch strings.ToUpper(strings.TrimSpace(text)) {
		case "1", "Y", "T", "TRUE", "YES":
			return true
		default:
			return isTrue([]byte(text))
		}
	}
	if d, ok := v.AsDecimal(); ok {
		return !d.IsZero()
	}

	return false
}

// isTrue reports whether b holds the true sentinel exactly.
func isTrue(b []byte) bool {
	if len(b) == 0 || b[len(b)-1] != TrueByte {
		return false
	}
	for _, c := range b[:len(b)-1] {
		if c != FalseByte {
			return false
		}
	}

	return true
}

func serializeOpaque(v value.Value, n int) []byte {
	return fitRight([]byte(textOf(v)), n, 0x00)
}
