// Package record binds a layout tree to a buffer of record bytes.
//
// A Record owns one fixed RawBuffer whose length is the root element's
// length. Fields are read and written through a serializer.Serializer, so
// every value crossing the record goes through the same culture.
package record

import (
	"fmt"
	"strings"

	"github.com/kansasdcf/legacyrec/buffer"
	"github.com/kansasdcf/legacyrec/element"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/internal/hash"
	"github.com/kansasdcf/legacyrec/serializer"
	"github.com/kansasdcf/legacyrec/value"
)

// Record is a layout overlaid on record bytes.
//
// A Record is not safe for concurrent writes.
type Record struct {
	root  *element.Element
	buf   *buffer.RawBuffer
	ser   *serializer.Serializer
	index map[uint64][]*element.Element
}

// New returns a record for root with every field at its initial value, as
// after InitializeValues. Fillers hold spaces.
func New(root *element.Element, ser *serializer.Serializer) (*Record, error) {
	if root == nil || ser == nil {
		return nil, errs.Argumentf("record", "layout and serializer are required")
	}
	if root.Parent() != nil {
		return nil, fmt.Errorf("%w: %s is not a root element", errs.ErrInvalidArgument, root.Name())
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}

	r := &Record{
		root:  root,
		buf:   buffer.NewFixed(root.Length(), serializer.Space),
		ser:   ser,
		index: buildIndex(root),
	}
	if err := r.InitializeValues(); err != nil {
		return nil, err
	}

	return r, nil
}

// FromBytes returns a record for root holding a copy of data.
func FromBytes(root *element.Element, ser *serializer.Serializer, data []byte) (*Record, error) {
	r, err := New(root, ser)
	if err != nil {
		return nil, err
	}
	if err := r.SetBytes(data); err != nil {
		return nil, err
	}

	return r, nil
}

func buildIndex(root *element.Element) map[uint64][]*element.Element {
	index := make(map[uint64][]*element.Element)
	add := func(key string, e *element.Element) {
		id := hash.NameID(key)
		for _, seen := range index[id] {
			if seen == e {
				return
			}
		}
		index[id] = append(index[id], e)
	}
	root.Walk(func(e *element.Element) bool {
		if e.IsFiller() || e.Name() == "" {
			return true
		}
		add(e.Name(), e)
		// An array pattern or redefine view shares its wrapper's path, so it
		// is found by its own name only.
		if p := e.Parent(); p != nil && (p.Kind() == element.KindArray || p.Kind() == element.KindRedefine) {
			return true
		}
		parts := strings.Split(e.Path(), ".")
		for i := range parts {
			add(strings.Join(parts[i:], "."), e)
		}

		return true
	})

	return index
}

// Root returns the layout of the record.
func (r *Record) Root() *element.Element { return r.root }

// Len returns the record length in bytes.
func (r *Record) Len() int { return r.buf.Len() }

// Serializer returns the serializer fields are encoded with.
func (r *Record) Serializer() *serializer.Serializer { return r.ser }

// Bytes returns a copy of the record bytes.
func (r *Record) Bytes() []byte {
	out, _ := r.buf.Read(0, r.buf.Len())

	return out
}

// SetBytes replaces the record bytes; data must be exactly Len bytes.
func (r *Record) SetBytes(data []byte) error {
	return r.buf.WriteExact(0, r.buf.Len(), data)
}

// Clone returns an independent copy sharing the layout and serializer.
func (r *Record) Clone() *Record {
	return &Record{root: r.root, buf: r.buf.Clone(), ser: r.ser, index: r.index}
}

// Lookup finds an element by name or dotted path, ignoring case.
//
// Any dotted suffix of an element's path finds it, so names that occur more
// than once can be qualified with just enough of their path to be unique.
func (r *Record) Lookup(name string) (*element.Element, error) {
	matches := r.index[hash.NameID(name)]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", errs.ErrElementNotFound, name)
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.Path()
		}

		return nil, fmt.Errorf("%w: %q matches %s", errs.ErrAmbiguousName, name, strings.Join(paths, ", "))
	}
}

// LookupIn finds the first element named name within scope, scope included.
//
// scope may be an occurrence returned by Occurrence.
func (r *Record) LookupIn(scope *element.Element, name string) (*element.Element, error) {
	if err := r.owns(scope); err != nil {
		return nil, err
	}
	want := hash.NameID(name)
	var found *element.Element
	scope.Walk(func(e *element.Element) bool {
		if found != nil {
			return false
		}
		if !e.IsFiller() && hash.NameID(e.Name()) == want {
			found = e

			return false
		}

		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q in %s", errs.ErrElementNotFound, name, scope.Path())
	}

	return found, nil
}

// Occurrence returns occurrence i (0-based) of array.
func (r *Record) Occurrence(array *element.Element, i int) (*element.Element, error) {
	if err := r.owns(array); err != nil {
		return nil, err
	}

	return array.Occurrence(i)
}

// owns reports an error unless e belongs to this record's layout.
func (r *Record) owns(e *element.Element) error {
	if e == nil {
		return errs.Argumentf("element", "must not be nil")
	}
	n := e
	for n.Parent() != nil {
		n = n.Parent()
	}
	if n != r.root {
		return fmt.Errorf("%w: %s is not part of %s", errs.ErrInvalidArgument, e.Name(), r.root.Name())
	}

	return nil
}

// Raw returns a copy of the bytes under e.
func (r *Record) Raw(e *element.Element) ([]byte, error) {
	if err := r.owns(e); err != nil {
		return nil, err
	}

	return r.buf.Read(e.PositionInBuffer(), e.Length())
}

// SetRaw overwrites the bytes under e; data must be exactly e.Length bytes.
func (r *Record) SetRaw(e *element.Element, data []byte) error {
	if err := r.owns(e); err != nil {
		return err
	}

	return r.buf.WriteExact(e.PositionInBuffer(), e.Length(), data)
}

// Get decodes the value of e.
//
// Fields decode by their type. Groups, arrays and redefines read as text.
func (r *Record) Get(e *element.Element) (value.Value, error) {
	if err := r.owns(e); err != nil {
		return value.Value{}, err
	}
	b, err := r.buf.View(e.PositionInBuffer(), e.Length())
	if err != nil {
		return value.Value{}, err
	}
	if !e.IsField() {
		return value.Text(string(b)), nil
	}
	spec := e.Spec()
	v, err := r.ser.Deserialize(b, spec.Type, spec.DecimalDigits)
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", e.Path(), err)
	}

	return v, nil
}

// Set encodes v into e.
func (r *Record) Set(e *element.Element, v value.Value) error {
	return r.set(e, v, serializer.MoveSource{})
}

func (r *Record) set(e *element.Element, v value.Value, src serializer.MoveSource) error {
	if err := r.owns(e); err != nil {
		return err
	}
	ft, digits := format.FieldText, int32(0)
	if e.IsField() {
		spec := e.Spec()
		ft, digits = spec.Type, spec.DecimalDigits
	}
	b, err := r.ser.SerializeMove(v, e.Length(), ft, src, digits)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Path(), err)
	}

	return r.buf.WriteExact(e.PositionInBuffer(), e.Length(), b)
}

// GetByName is Lookup followed by Get.
func (r *Record) GetByName(name string) (value.Value, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return value.Value{}, err
	}

	return r.Get(e)
}

// SetByName is Lookup followed by Set.
func (r *Record) SetByName(name string, v value.Value) error {
	e, err := r.Lookup(name)
	if err != nil {
		return err
	}

	return r.Set(e, v)
}

// Move copies the value of src into dst the way a MOVE statement does:
// numbers moved into text fields follow the configured move rule. Under the
// COBOL rule the digits are zero-filled to the source's display length, so
// a 9(5) holding 42 moves as "00042".
func (r *Record) Move(dst, src *element.Element) error {
	v, err := r.Get(src)
	if err != nil {
		return err
	}
	source := serializer.MoveSource{Type: format.FieldText}
	if src.IsField() {
		spec := src.Spec()
		source = serializer.MoveSource{Type: spec.Type, DecimalDigits: spec.DecimalDigits, DisplayLength: spec.DisplayLength}
	}

	return r.set(dst, v, source)
}
