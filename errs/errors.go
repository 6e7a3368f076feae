// Package errs defines the error taxonomy shared by the legacyrec packages.
//
// Every failure unwraps to one of the sentinel errors below so callers can
// branch with errors.Is. The struct types carry the context needed to
// diagnose a bad record: the offending bytes, the field type and a message.
package errs

import (
	"errors"
	"fmt"

	"github.com/kansasdcf/legacyrec/format"
)

var (
	// ErrInvalidFormat reports bytes or text that cannot be read as the requested logical type.
	ErrInvalidFormat = errors.New("legacyrec: invalid format")
	// ErrOutOfRange reports a decoded value that does not fit the target numeric type.
	ErrOutOfRange = errors.New("legacyrec: value out of range")
	// ErrInvalidArgument reports a nil or empty input where a value was required.
	ErrInvalidArgument = errors.New("legacyrec: invalid argument")
	// ErrNoComparisonRule reports two operands no comparison rule can order.
	ErrNoComparisonRule = errors.New("legacyrec: no comparison rule")

	ErrBufferFinalized  = errors.New("legacyrec: buffer already finalized")
	ErrBufferNotGrowing = errors.New("legacyrec: buffer is fixed size")
	ErrOutOfBounds      = errors.New("legacyrec: byte range out of bounds")
	ErrLengthMismatch   = errors.New("legacyrec: length mismatch")

	ErrInvalidLayout   = errors.New("legacyrec: invalid element layout")
	ErrElementNotFound = errors.New("legacyrec: element not found")
	ErrAmbiguousName   = errors.New("legacyrec: ambiguous element name")
	ErrNotAField       = errors.New("legacyrec: element is not a field")

	ErrInvalidImage     = errors.New("legacyrec: invalid record image")
	ErrChecksumMismatch = errors.New("legacyrec: record image checksum mismatch")
	ErrImageNotFound    = errors.New("legacyrec: record image not found")

	ErrInvalidConfig = errors.New("legacyrec: invalid config")
)

// FormatError reports bytes that cannot be interpreted as Type.
type FormatError struct {
	Type format.FieldType
	Data []byte
	Msg  string
}

// Formatf builds a FormatError for data.
func Formatf(ft format.FieldType, data []byte, msg string, args ...any) error {
	return &FormatError{Type: ft, Data: data, Msg: fmt.Sprintf(msg, args...)}
}

func (e *FormatError) Error() string {
	if e.Type == 0 {
		return fmt.Sprintf("%v: %s: % x", ErrInvalidFormat, e.Msg, e.Data)
	}

	return fmt.Sprintf("%v: %s: %s: % x", ErrInvalidFormat, e.Type, e.Msg, e.Data)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// RangeError reports a value that exceeds the range of the target type.
type RangeError struct {
	Type  format.FieldType
	Value string
	Msg   string
}

// Rangef builds a RangeError for a value rendered as text.
func Rangef(ft format.FieldType, value string, msg string, args ...any) error {
	return &RangeError{Type: ft, Value: value, Msg: fmt.Sprintf(msg, args...)}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s: %q %s", ErrOutOfRange, e.Type, e.Value, e.Msg)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ArgumentError reports a missing or empty argument.
type ArgumentError struct {
	Name string
	Msg  string
}

// Argumentf builds an ArgumentError for the named parameter.
func Argumentf(name string, msg string, args ...any) error {
	return &ArgumentError{Name: name, Msg: fmt.Sprintf(msg, args...)}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidArgument, e.Name, e.Msg)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// ComparisonError reports operands that fell through every comparison rule.
type ComparisonError struct {
	Left  string
	Right string
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("%v: %s vs %s", ErrNoComparisonRule, e.Left, e.Right)
}

func (e *ComparisonError) Unwrap() error {
	return ErrNoComparisonRule
}
