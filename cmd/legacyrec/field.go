package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kansasdcf/legacyrec/compare"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/record"
	"github.com/kansasdcf/legacyrec/value"
)

// fieldFlags are the flags shared by the field commands.
type fieldFlags struct {
	typeName string
	length   int
	scale    int32
}

func (f *fieldFlags) register(cmd *cobra.Command, withLength bool) {
	cmd.Flags().StringVarP(&f.typeName, "type", "t", "Text", "field type, e.g. PackedDecimal or SignedNumeric")
	cmd.Flags().Int32VarP(&f.scale, "scale", "s", 0, "decimal digits of decimal and packed fields")
	if withLength {
		cmd.Flags().IntVarP(&f.length, "length", "n", 0, "field length in bytes; defaults to the type's width or the value's length")
	}
}

// resolve returns the field type and the byte length for raw.
func (f *fieldFlags) resolve(raw, decimalSeparator string) (format.FieldType, int, error) {
	ft, err := parseFieldType(f.typeName)
	if err != nil {
		return 0, 0, err
	}
	n := f.length
	if n == 0 {
		n = ft.FixedWidth()
	}
	if n == 0 {
		n = defaultLength(ft, raw, decimalSeparator, f.scale)
	}
	if n <= 0 {
		return 0, 0, fmt.Errorf("--length is required for %s", ft)
	}

	return ft, n, nil
}

// defaultLength sizes a field to fit raw when no length is given.
func defaultLength(ft format.FieldType, raw, decimalSeparator string, scale int32) int {
	whole, _, _ := strings.Cut(raw, decimalSeparator)
	digits := 0
	for _, c := range whole {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	if ft == format.FieldSignedDecimal || ft == format.FieldUnsignedDecimal || ft.IsPacked() {
		digits += int(scale)
	}
	switch {
	case ft.IsPacked():
		return (digits + 2) / 2
	case ft.IsZoned():
		return digits
	case ft == format.FieldBoolean:
		return 1
	case ft == format.FieldOpaque:
		return len(raw) / 2
	default:
		return len(raw)
	}
}

// inputValue turns a command-line argument into the value to encode.
func inputValue(ft format.FieldType, raw string) (value.Value, error) {
	if ft == format.FieldOpaque {
		b, err := hex.DecodeString(raw)
		if err != nil {
			return value.Value{}, fmt.Errorf("opaque value must be hex: %w", err)
		}

		return value.Bytes(b), nil
	}

	return value.Text(raw), nil
}

func (a *app) encodeField(f *fieldFlags, raw string) (format.FieldType, []byte, error) {
	ft, n, err := f.resolve(raw, a.cfg.DecimalSeparator())
	if err != nil {
		return 0, nil, err
	}
	v, err := inputValue(ft, raw)
	if err != nil {
		return 0, nil, err
	}
	b, err := a.ser.Serialize(v, n, ft, 0, f.scale)
	if err != nil {
		return 0, nil, err
	}

	return ft, b, nil
}

func newEncodeCmd(a *app) *cobra.Command {
	f := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "encode VALUE",
		Short: "Encode a value as field bytes and print them as hex",
		Example: `  legacyrec encode --type PackedDecimal --scale 2 123.45
  legacyrec encode --type SignedNumeric --length 5 -- -42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := a.encodeField(f, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(hex.EncodeToString(b)))

			return nil
		},
	}
	f.register(cmd, true)

	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	f := &fieldFlags{}
	cmd := &cobra.Command{
		Use:     "decode HEX",
		Short:   "Decode hex field bytes and print the logical value",
		Example: `  legacyrec decode --type PackedDecimal --scale 2 12345C`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := parseFieldType(f.typeName)
			if err != nil {
				return err
			}
			b, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("field bytes must be hex: %w", err)
			}
			v, err := a.ser.Deserialize(b, ft, f.scale)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), displayValue(v, f.scale, a))

			return nil
		},
	}
	f.register(cmd, false)

	return cmd
}

func displayValue(v value.Value, scale int32, a *app) string {
	switch v.Kind() {
	case value.KindBytes:
		raw, _ := v.AsBytes()

		return strings.ToUpper(hex.EncodeToString(raw))
	case value.KindText:
		text, _ := v.AsText()

		return fmt.Sprintf("%q", text)
	default:
		return record.FormatValue(v, scale, a.cfg)
	}
}

func newCompareCmd(a *app) *cobra.Command {
	f := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "compare VALUE LITERAL",
		Short: "Compare a field holding VALUE against a text literal; prints -1, 0 or 1",
		Example: `  legacyrec compare --type UnsignedNumeric --length 3 7 7
  legacyrec compare --type UnsignedNumeric --length 3 7 " 7"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, b, err := a.encodeField(f, args[0])
			if err != nil {
				return err
			}
			o, err := a.comparer.Compare(compare.Field(ft, f.scale, b), compare.Literal(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), int(o))

			return nil
		},
	}
	f.register(cmd, true)

	return cmd
}
