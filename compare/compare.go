// Package compare orders field, group, record and literal operands the way
// the legacy platform's relational conditions do.
//
// Rules, in order:
//
//  1. A null operand sorts first; two nulls are equal.
//  2. Fields of the same type compare numerically when both decode as
//     numbers, and as padded text otherwise.
//  3. Two numeric fields of different types compare as decimals; a blank
//     zoned field counts as zero.
//  4. When exactly one side is numeric, the other side is parsed strictly
//     as a number. If that fails, zoned fields compare as padded text and
//     every other numeric type reports ErrNoComparisonRule.
//  5. Everything else compares as padded text: numeric operands are padded
//     on the left with '0', others on the right with spaces.
//
// Compare(x, y) is always -Compare(y, x).
package compare

import (
	"bytes"
	"math"

	"github.com/rs/zerolog"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/internal/options"
	"github.com/kansasdcf/legacyrec/serializer"
	"github.com/kansasdcf/legacyrec/value"
)

// Ordering is the result of a comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch {
	case o < 0:
		return "less"
	case o > 0:
		return "greater"
	default:
		return "equal"
	}
}

// Comparer compares operands using one serializer's culture.
type Comparer struct {
	ser    *serializer.Serializer
	logger zerolog.Logger
}

// Option configures a Comparer.
type Option = options.Option[*Comparer]

// WithLogger sets the logger that traces text fallbacks.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *Comparer) {
		c.logger = logger
	})
}

// New returns a Comparer that decodes fields with ser.
func New(ser *serializer.Serializer, opts ...Option) (*Comparer, error) {
	if ser == nil {
		return nil, errs.Argumentf("serializer", "must not be nil")
	}
	c := &Comparer{ser: ser, logger: zerolog.Nop()}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Compare orders x against y.
func (c *Comparer) Compare(x, y Operand) (Ordering, error) {
	switch {
	case x.kind == KindNull && y.kind == KindNull:
		return Equal, nil
	case x.kind == KindNull:
		return Less, nil
	case y.kind == KindNull:
		return Greater, nil
	}

	if x.kind == KindField && y.kind == KindField && x.ft == y.ft {
		vx, okx := c.number(x)
		vy, oky := c.number(y)
		if okx && oky {
			return compareValues(vx, vy), nil
		}

		return c.compareText(x, y), nil
	}

	switch xn, yn := x.IsNumeric(), y.IsNumeric(); {
	case xn && yn:
		return c.compareNumeric(x, y)
	case xn:
		return c.compareMixed(x, y)
	case yn:
		o, err := c.compareMixed(y, x)

		return -o, err
	default:
		return c.compareText(x, y), nil
	}
}

// number decodes a numeric field, or strictly parses the text of any other
// operand.
func (c *Comparer) number(o Operand) (value.Value, bool) {
	if o.IsNumeric() {
		v, err := c.ser.Deserialize(o.raw, o.ft, o.digits)

		return v, err == nil
	}
	d, _, err := value.ParseNumber(string(o.raw), c.ser.Config())
	if err != nil {
		return value.Value{}, false
	}

	return value.Decimal(d), true
}

func (c *Comparer) compareNumeric(x, y Operand) (Ordering, error) {
	vx, err := c.numericOperand(x, y)
	if err != nil {
		return Equal, err
	}
	vy, err := c.numericOperand(y, x)
	if err != nil {
		return Equal, err
	}

	return compareValues(vx, vy), nil
}

func (c *Comparer) numericOperand(o, other Operand) (value.Value, error) {
	if o.ft.IsZoned() && o.isBlank() {
		return value.Int(0), nil
	}
	v, err := c.ser.Deserialize(o.raw, o.ft, o.digits)
	if err != nil {
		return value.Value{}, c.noRule(o, other, err)
	}

	return v, nil
}

// compareMixed orders numeric field n against non-numeric operand o.
func (c *Comparer) compareMixed(n, o Operand) (Ordering, error) {
	if vo, ok := c.number(o); ok {
		if vn, err := c.ser.Deserialize(n.raw, n.ft, n.digits); err == nil {
			return compareValues(vn, vo), nil
		}
	}

	if n.ft.IsZoned() {
		return c.compareText(n, o), nil
	}

	return Equal, c.noRule(n, o, nil)
}

func (c *Comparer) noRule(x, y Operand, cause error) error {
	ev := c.logger.Debug().Str("left", x.String()).Str("right", y.String())
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg("no comparison rule")

	return &errs.ComparisonError{Left: x.String(), Right: y.String()}
}

func (c *Comparer) compareText(x, y Operand) Ordering {
	n := max(len(x.raw), len(y.raw))

	return Ordering(bytes.Compare(padded(x, n), padded(y, n)))
}

func padded(o Operand, n int) []byte {
	if len(o.raw) == n {
		return o.raw
	}
	out := make([]byte, n)
	fill := n - len(o.raw)
	if o.IsNumeric() {
		for i := 0; i < fill; i++ {
			out[i] = '0'
		}
		copy(out[fill:], o.raw)

		return out
	}
	copy(out, o.raw)
	for i := len(o.raw); i < n; i++ {
		out[i] = ' '
	}

	return out
}

// compareValues compares two numeric values in their own kind when both
// share one, and as decimals otherwise.
func compareValues(x, y value.Value) Ordering {
	if x.Kind() == y.Kind() {
		switch x.Kind() {
		case value.KindInt:
			a, _ := x.AsInt()
			b, _ := y.AsInt()

			return order(a < b, a > b)
		case value.KindUint:
			a, _ := x.AsUint()
			b, _ := y.AsUint()

			return order(a < b, a > b)
		case value.KindPacked:
			a, _ := x.AsPacked()
			b, _ := y.AsPacked()

			return Ordering(a.Cmp(b))
		}
	}

	if x.Kind() == value.KindFloat || y.Kind() == value.KindFloat {
		a, _ := x.AsFloat64()
		b, _ := y.AsFloat64()

		return compareFloats(a, b)
	}

	a, _ := x.AsDecimal()
	b, _ := y.AsDecimal()

	return Ordering(a.Cmp(b))
}

// compareFloats orders NaN before every number and equal to itself.
func compareFloats(a, b float64) Ordering {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return Equal
	case an:
		return Less
	case bn:
		return Greater
	}

	return order(a < b, a > b)
}

func order(less, greater bool) Ordering {
	switch {
	case less:
		return Less
	case greater:
		return Greater
	default:
		return Equal
	}
}
