package value

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/locale"
)

// ParseNumber reads s as a decimal number in the given culture.
//
// Accepted: an optional leading sign token, digits with optional group
// separators between them, and at most one decimal separator. Spaces and
// any other character fail. negative is true whenever the negative token
// was present, so "-0" reports a negative zero.
func ParseNumber(s string, cfg locale.Config) (d decimal.Decimal, negative bool, err error) {
	if s == "" {
		return decimal.Zero, false, errs.Argumentf("text", "must not be empty")
	}

	body := s
	neg, pos := cfg.NegativeSign(), cfg.PositiveSign()
	first, second := neg, pos
	if len(pos) > len(neg) {
		first, second = pos, neg
	}
	switch {
	case strings.HasPrefix(body, first):
		negative = first == neg
		body = body[len(first):]
	case strings.HasPrefix(body, second):
		negative = second == neg
		body = body[len(second):]
	}

	var digits strings.Builder
	digits.Grow(len(body) + 1)
	sep, group := cfg.DecimalSeparator(), cfg.GroupSeparator()
	seenSep := false
	seenDigit := false
	prevDigit := false
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			digits.WriteByte(c)
			seenDigit, prevDigit = true, true
			i++
		case !seenSep && strings.HasPrefix(body[i:], sep):
			digits.WriteByte('.')
			seenSep, prevDigit = true, false
			i += len(sep)
		case group != "" && !seenSep && prevDigit && strings.HasPrefix(body[i:], group) && digitAt(body, i+len(group)):
			i += len(group)
		default:
			return decimal.Zero, false, errs.Formatf(0, []byte(s), "not a number")
		}
	}
	if !seenDigit {
		return decimal.Zero, false, errs.Formatf(0, []byte(s), "no digits")
	}

	text := digits.String()
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	d, perr := decimal.NewFromString(strings.TrimSuffix(text, "."))
	if perr != nil {
		return decimal.Zero, false, errs.Formatf(0, []byte(s), "not a number")
	}
	if negative {
		d = d.Neg()
	}

	return d, negative, nil
}

func digitAt(s string, i int) bool {
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}
