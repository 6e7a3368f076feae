// Package element models the layout of a fixed-format record as a tree of
// byte ranges.
//
// An Element never holds a value. It knows its offset inside its parent,
// its length and its storage type; the bytes live in a buffer.RawBuffer the
// record package pairs it with. Four kinds exist:
//
//   - Field: a leaf with a format.FieldType.
//   - Group: children laid out back to back.
//   - Array: one pattern element repeated Occurs times.
//   - Redefine: a second view over an earlier sibling's bytes.
//
// Trees are built bottom-up and are immutable once attached to a parent.
// Array occurrences and whole-template clones are deep copies shifted by a
// byte delta (Duplicate).
package element

import (
	"fmt"
	"strings"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/packed"
)

// Kind tags the variant of an Element.
type Kind uint8

const (
	KindField Kind = iota + 1
	KindGroup
	KindArray
	KindRedefine
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "Field"
	case KindGroup:
		return "Group"
	case KindArray:
		return "Array"
	case KindRedefine:
		return "Redefine"
	default:
		return "Unknown"
	}
}

// FieldSpec describes the storage of a Field.
type FieldSpec struct {
	Type format.FieldType
	// Length is the byte length. Zero takes the width implied by Type for
	// binary, float and boolean fields.
	Length int
	// DecimalDigits is the scale of decimal and packed fields.
	DecimalDigits int32
	// DisplayLength is the logical character width. Zero derives it from Type and Length.
	DisplayLength int
}

// Element is one node of a record layout.
type Element struct {
	kind        Kind
	name        string
	filler      bool
	spec        FieldSpec
	children    []*Element
	occurs      int
	target      *Element
	parent      *Element
	posInParent int
	length      int
	inArray     bool
}

// NewField returns a leaf element.
func NewField(name string, spec FieldSpec) (*Element, error) {
	if err := resolveSpec(&spec); err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}

	return &Element{kind: KindField, name: name, spec: spec, length: spec.Length}, nil
}

// MustField is NewField that panics, for static layouts.
func MustField(name string, spec FieldSpec) *Element {
	e, err := NewField(name, spec)
	if err != nil {
		panic(err)
	}

	return e
}

// NewFiller returns an unnamed text field of n bytes.
func NewFiller(n int) (*Element, error) {
	e, err := NewField("FILLER", FieldSpec{Type: format.FieldText, Length: n})
	if err != nil {
		return nil, err
	}
	e.filler = true

	return e, nil
}

func resolveSpec(spec *FieldSpec) error {
	if spec.Type.String() == "Unknown" {
		return fmt.Errorf("%w: unknown field type %d", errs.ErrInvalidLayout, spec.Type)
	}
	if spec.DecimalDigits < 0 {
		return fmt.Errorf("%w: negative decimal digits", errs.ErrInvalidLayout)
	}

	if w := spec.Type.FixedWidth(); w > 0 {
		if spec.Length == 0 {
			spec.Length = w
		}
		if spec.Length != w {
			return fmt.Errorf("%w: %s must be %d bytes, got %d", errs.ErrInvalidLayout, spec.Type, w, spec.Length)
		}
	}
	if spec.Type == format.FieldBoolean && spec.Length == 0 {
		spec.Length = 1
	}
	if spec.Length <= 0 {
		return fmt.Errorf("%w: %s needs a positive length", errs.ErrInvalidLayout, spec.Type)
	}

	switch spec.Type {
	case format.FieldSignedNumeric, format.FieldUnsignedNumeric:
		if spec.DecimalDigits != 0 {
			return fmt.Errorf("%w: %s has zero scale", errs.ErrInvalidLayout, spec.Type)
		}
	case format.FieldSignedDecimal, format.FieldUnsignedDecimal:
		if int(spec.DecimalDigits) > spec.Length {
			return fmt.Errorf("%w: scale %d exceeds %d digits", errs.ErrInvalidLayout, spec.DecimalDigits, spec.Length)
		}
	case format.FieldPackedDecimal, format.FieldUnsignedPackedDecimal:
		if int(spec.DecimalDigits) > packed.MaxDigits(spec.Length) {
			return fmt.Errorf("%w: scale %d exceeds %d digits", errs.ErrInvalidLayout, spec.DecimalDigits, packed.MaxDigits(spec.Length))
		}
	}

	if spec.DisplayLength == 0 {
		spec.DisplayLength = defaultDisplayLength(spec.Type, spec.Length)
	}

	return nil
}

func defaultDisplayLength(ft format.FieldType, n int) int {
	switch ft {
	case format.FieldPackedDecimal, format.FieldUnsignedPackedDecimal:
		return packed.MaxDigits(n)
	case format.FieldBinaryShort:
		return 5
	case format.FieldBinaryInt, format.FieldReferencePointer:
		return 10
	case format.FieldBinaryLong:
		return 19
	case format.FieldFloatSingle:
		return 7
	case format.FieldFloatDouble:
		return 15
	default:
		return n
	}
}

// NewGroup lays children out back to back.
//
// A Redefine child takes the offset of its target, which must be an earlier
// child, and adds no length.
func NewGroup(name string, children ...*Element) (*Element, error) {
	positions := make([]int, len(children))
	cursor := 0
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: group %s child %d is nil", errs.ErrInvalidLayout, name, i)
		}
		if c.parent != nil {
			return nil, fmt.Errorf("%w: %s already belongs to %s", errs.ErrInvalidLayout, c.name, c.parent.name)
		}
		if indexOf(children[:i], c) >= 0 {
			return nil, fmt.Errorf("%w: %s appears twice in group %s", errs.ErrInvalidLayout, c.name, name)
		}
		if c.kind == KindRedefine {
			idx := indexOf(children[:i], c.target)
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s redefines %s which is not an earlier sibling", errs.ErrInvalidLayout, c.name, c.target.name)
			}
			positions[i] = positions[idx]
		} else {
			positions[i] = cursor
			cursor += c.length
		}
	}
	if cursor == 0 {
		return nil, fmt.Errorf("%w: group %s is empty", errs.ErrInvalidLayout, name)
	}

	// Children are attached only once the whole group is known to be valid.
	g := &Element{kind: KindGroup, name: name, children: children, length: cursor}
	for i, c := range children {
		c.posInParent = positions[i]
		c.parent = g
	}

	return g, nil
}

func indexOf(list []*Element, e *Element) int {
	for i, c := range list {
		if c == e {
			return i
		}
	}

	return -1
}

// NewArray repeats pattern occurs times.
func NewArray(name string, pattern *Element, occurs int) (*Element, error) {
	if pattern == nil || pattern.parent != nil {
		return nil, fmt.Errorf("%w: array %s needs a detached pattern", errs.ErrInvalidLayout, name)
	}
	if occurs <= 0 {
		return nil, fmt.Errorf("%w: array %s occurs %d times", errs.ErrInvalidLayout, name, occurs)
	}

	a := &Element{kind: KindArray, name: name, occurs: occurs, length: pattern.length * occurs}
	pattern.parent = a
	pattern.Walk(func(e *Element) bool {
		e.inArray = true
		return true
	})
	a.children = []*Element{pattern}

	return a, nil
}

// NewRedefine returns a view over target's bytes interpreted as view.
//
// The result must be placed in the same group as target, after it.
func NewRedefine(name string, target, view *Element) (*Element, error) {
	if target == nil || view == nil || view.parent != nil {
		return nil, fmt.Errorf("%w: redefine %s needs a target and a detached view", errs.ErrInvalidLayout, name)
	}
	if view.length > target.length {
		return nil, fmt.Errorf("%w: %s is %d bytes, longer than %s (%d)", errs.ErrInvalidLayout, name, view.length, target.name, target.length)
	}

	r := &Element{kind: KindRedefine, name: name, target: target, length: view.length}
	view.parent = r
	r.children = []*Element{view}

	return r, nil
}

func (e *Element) Kind() Kind            { return e.kind }
func (e *Element) Name() string          { return e.name }
func (e *Element) IsFiller() bool        { return e.filler }
func (e *Element) IsInArray() bool       { return e.inArray }
func (e *Element) Parent() *Element      { return e.parent }
func (e *Element) Length() int           { return e.length }
func (e *Element) PositionInParent() int { return e.posInParent }

// PositionInBuffer returns the absolute offset of the element.
func (e *Element) PositionInBuffer() int {
	pos := 0
	for n := e; n != nil; n = n.parent {
		pos += n.posInParent
	}

	return pos
}

// Level returns the nesting depth, 1 for the root. An array pattern and a
// redefine view share the level of their wrapper.
func (e *Element) Level() int {
	level := 1
	for n := e; n.parent != nil; n = n.parent {
		if k := n.parent.kind; k != KindArray && k != KindRedefine {
			level++
		}
	}

	return level
}

// Spec returns the storage description of a Field.
func (e *Element) Spec() FieldSpec { return e.spec }

// IsField reports whether e is a leaf.
func (e *Element) IsField() bool { return e.kind == KindField }

// FieldType returns the storage type of a Field, or 0 for other kinds.
func (e *Element) FieldType() format.FieldType { return e.spec.Type }

// Children returns the child elements of a Group. Arrays and redefines
// report their single pattern or view.
func (e *Element) Children() []*Element { return e.children }

// Occurs returns the occurrence count of an Array, 1 for other kinds.
func (e *Element) Occurs() int {
	if e.kind == KindArray {
		return e.occurs
	}

	return 1
}

// ElementLength returns the length of one array occurrence.
func (e *Element) ElementLength() int {
	if e.kind == KindArray {
		return e.children[0].length
	}

	return e.length
}

// Pattern returns the repeated element of an Array.
func (e *Element) Pattern() *Element {
	if e.kind != KindArray {
		return nil
	}

	return e.children[0]
}

// View returns the reinterpreting element of a Redefine.
func (e *Element) View() *Element {
	if e.kind != KindRedefine {
		return nil
	}

	return e.children[0]
}

// Target returns the element a Redefine overlays.
func (e *Element) Target() *Element { return e.target }

// Occurrence returns occurrence i (0-based) of an Array, shifted by
// i*ElementLength from the array base.
func (e *Element) Occurrence(i int) (*Element, error) {
	if e.kind != KindArray {
		return nil, fmt.Errorf("%w: %s is not an array", errs.ErrInvalidArgument, e.name)
	}
	if i < 0 || i >= e.occurs {
		return nil, fmt.Errorf("%w: %s(%d) outside 0..%d", errs.ErrOutOfBounds, e.name, i, e.occurs-1)
	}

	return e.children[0].Duplicate(i * e.children[0].length), nil
}

// Duplicate deep-copies the subtree rooted at e with its offset moved by delta.
//
// The copy keeps e's parent so absolute positions still resolve, but the
// parent does not list it as a child.
func (e *Element) Duplicate(delta int) *Element {
	cp := e.clone(e.parent, nil)
	cp.posInParent += delta

	return cp
}

func (e *Element) clone(parent *Element, mapping map[*Element]*Element) *Element {
	if mapping == nil {
		mapping = make(map[*Element]*Element)
	}
	cp := *e
	cp.parent = parent
	mapping[e] = &cp
	if len(e.children) > 0 {
		cp.children = make([]*Element, len(e.children))
		for i, c := range e.children {
			cp.children[i] = c.clone(&cp, mapping)
		}
	}
	if t, ok := mapping[e.target]; ok && e.target != nil {
		cp.target = t
	}

	return &cp
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Path returns the dotted names from the root to e.
func (e *Element) Path() string {
	var names []string
	for n := e; n != nil; n = n.parent {
		if n.parent != nil && (n.parent.kind == KindArray || n.parent.kind == KindRedefine) {
			continue
		}
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return strings.Join(names, ".")
}

// Validate checks the length invariants of the whole subtree.
func (e *Element) Validate() error {
	var err error
	e.Walk(func(n *Element) bool {
		if err != nil {
			return false
		}
		err = n.validateNode()

		return err == nil
	})

	return err
}

func (e *Element) validateNode() error {
	switch e.kind {
	case KindField:
		if e.length != e.spec.Length || e.length <= 0 {
			return fmt.Errorf("%w: field %s length %d", errs.ErrInvalidLayout, e.name, e.length)
		}
	case KindGroup:
		sum := 0
		for _, c := range e.children {
			if c.kind != KindRedefine {
				if c.posInParent != sum {
					return fmt.Errorf("%w: %s starts at %d, expected %d", errs.ErrInvalidLayout, c.name, c.posInParent, sum)
				}
				sum += c.length
			}
		}
		if sum != e.length {
			return fmt.Errorf("%w: group %s children sum to %d, group is %d", errs.ErrInvalidLayout, e.name, sum, e.length)
		}
	case KindArray:
		if e.length != e.children[0].length*e.occurs {
			return fmt.Errorf("%w: array %s length %d != %d x %d", errs.ErrInvalidLayout, e.name, e.length, e.children[0].length, e.occurs)
		}
	case KindRedefine:
		if e.target == nil || e.length > e.target.length {
			return fmt.Errorf("%w: redefine %s exceeds its target", errs.ErrInvalidLayout, e.name)
		}
		if e.PositionInBuffer() != e.target.PositionInBuffer() {
			return fmt.Errorf("%w: redefine %s starts at %d, target at %d", errs.ErrInvalidLayout, e.name, e.PositionInBuffer(), e.target.PositionInBuffer())
		}
	}

	return nil
}

func (e *Element) String() string {
	return fmt.Sprintf("%s %s @%d+%d", e.kind, e.Path(), e.PositionInBuffer(), e.length)
}
