package element

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
)

// customerLayout builds
//
//	01 CUSTOMER.
//	   05 CUST-ID      PIC 9(5).
//	   05 CUST-NAME    PIC X(10).
//	   05 BALANCE      PIC S9(5)V99 COMP-3.
//	   05 ORDERS OCCURS 3.
//	      10 ORDER-NO  PIC 9(4).
//	      10 ORDER-AMT PIC S9(3)V99 COMP-3.
//	   05 FILLER       PIC X(2).
//	   05 NAME-PARTS REDEFINES CUST-NAME.
//	      10 FIRST     PIC X(4).
//	      10 LAST      PIC X(6).
func customerLayout(t *testing.T) (*Element, map[string]*Element) {
	t.Helper()

	f := map[string]*Element{}
	mk := func(name string, spec FieldSpec) *Element {
		e, err := NewField(name, spec)
		require.NoError(t, err)
		f[name] = e
		return e
	}

	orderGroup, err := NewGroup("ORDER",
		mk("ORDER-NO", FieldSpec{Type: format.FieldUnsignedNumeric, Length: 4}),
		mk("ORDER-AMT", FieldSpec{Type: format.FieldPackedDecimal, Length: 3, DecimalDigits: 2}),
	)
	require.NoError(t, err)
	orders, err := NewArray("ORDERS", orderGroup, 3)
	require.NoError(t, err)
	f["ORDERS"] = orders

	parts, err := NewGroup("NAME-PARTS-VIEW",
		mk("FIRST", FieldSpec{Type: format.FieldText, Length: 4}),
		mk("LAST", FieldSpec{Type: format.FieldText, Length: 6}),
	)
	require.NoError(t, err)

	name := mk("CUST-NAME", FieldSpec{Type: format.FieldText, Length: 10})
	redef, err := NewRedefine("NAME-PARTS", name, parts)
	require.NoError(t, err)
	f["NAME-PARTS"] = redef

	filler, err := NewFiller(2)
	require.NoError(t, err)

	root, err := NewGroup("CUSTOMER",
		mk("CUST-ID", FieldSpec{Type: format.FieldUnsignedNumeric, Length: 5}),
		name,
		mk("BALANCE", FieldSpec{Type: format.FieldPackedDecimal, Length: 4, DecimalDigits: 2}),
		orders,
		filler,
		redef,
	)
	require.NoError(t, err)

	return root, f
}

func TestLayout_Positions(t *testing.T) {
	root, f := customerLayout(t)

	require.NoError(t, root.Validate())
	require.Equal(t, 5+10+4+3*7+2, root.Length())
	require.Equal(t, KindGroup, root.Kind())
	require.Equal(t, 1, root.Level())

	require.Equal(t, 0, f["CUST-ID"].PositionInBuffer())
	require.Equal(t, 5, f["CUST-NAME"].PositionInBuffer())
	require.Equal(t, 15, f["BALANCE"].PositionInBuffer())
	require.Equal(t, 19, f["ORDERS"].PositionInBuffer())
	require.Equal(t, 21, f["ORDERS"].Length())
	require.Equal(t, 7, f["ORDERS"].ElementLength())
	require.Equal(t, 3, f["ORDERS"].Occurs())

	// redefine shares the start of its target and adds no length
	require.Equal(t, 5, f["NAME-PARTS"].PositionInBuffer())
	require.Equal(t, 5, f["FIRST"].PositionInBuffer())
	require.Equal(t, 9, f["LAST"].PositionInBuffer())
	require.Equal(t, f["CUST-NAME"], f["NAME-PARTS"].Target())
}

func TestLayout_Levels(t *testing.T) {
	root, f := customerLayout(t)

	require.Equal(t, 1, root.Level())
	require.Equal(t, 2, f["CUST-ID"].Level())
	require.Equal(t, 2, f["ORDERS"].Level())
	require.Equal(t, 2, f["ORDERS"].Pattern().Level())
	require.Equal(t, 3, f["ORDER-NO"].Level())
	require.Equal(t, 2, f["NAME-PARTS"].View().Level())
	require.Equal(t, 3, f["FIRST"].Level())
}

func TestLayout_Flags(t *testing.T) {
	root, f := customerLayout(t)

	require.True(t, f["ORDER-NO"].IsInArray())
	require.False(t, f["CUST-ID"].IsInArray())
	require.False(t, f["ORDERS"].IsInArray())

	fillers := 0
	root.Walk(func(e *Element) bool {
		if e.IsFiller() {
			fillers++
		}
		return true
	})
	require.Equal(t, 1, fillers)
}

func TestField_Defaults(t *testing.T) {
	tests := []struct {
		spec    FieldSpec
		length  int
		display int
	}{
		{FieldSpec{Type: format.FieldBinaryShort}, 2, 5},
		{FieldSpec{Type: format.FieldBinaryInt}, 4, 10},
		{FieldSpec{Type: format.FieldBinaryLong}, 8, 19},
		{FieldSpec{Type: format.FieldReferencePointer}, 4, 10},
		{FieldSpec{Type: format.FieldFloatSingle}, 4, 7},
		{FieldSpec{Type: format.FieldFloatDouble}, 8, 15},
		{FieldSpec{Type: format.FieldBoolean}, 1, 1},
		{FieldSpec{Type: format.FieldPackedDecimal, Length: 4}, 4, 7},
		{FieldSpec{Type: format.FieldText, Length: 12}, 12, 12},
		{FieldSpec{Type: format.FieldNumericEdited, Length: 9, DisplayLength: 9}, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Type.String(), func(t *testing.T) {
			e, err := NewField("F", tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.length, e.Length())
			require.Equal(t, tt.display, e.Spec().DisplayLength)
			require.True(t, e.IsField())
			require.Equal(t, tt.spec.Type, e.FieldType())
		})
	}
}

func TestField_Invalid(t *testing.T) {
	specs := []FieldSpec{
		{Type: format.FieldType(0)},
		{Type: format.FieldText},
		{Type: format.FieldBinaryInt, Length: 2},
		{Type: format.FieldSignedNumeric, Length: 3, DecimalDigits: 1},
		{Type: format.FieldSignedDecimal, Length: 3, DecimalDigits: 4},
		{Type: format.FieldPackedDecimal, Length: 2, DecimalDigits: 4},
		{Type: format.FieldText, Length: 3, DecimalDigits: -1},
	}
	for _, spec := range specs {
		_, err := NewField("BAD", spec)
		require.ErrorIs(t, err, errs.ErrInvalidLayout, "%+v", spec)
	}

	require.Panics(t, func() { MustField("BAD", FieldSpec{Type: format.FieldText}) })
}

func TestGroup_Invalid(t *testing.T) {
	a := MustField("A", FieldSpec{Type: format.FieldText, Length: 2})
	_, err := NewGroup("G1", a)
	require.NoError(t, err)

	// a already belongs to G1
	_, err = NewGroup("G2", a)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = NewGroup("G3", nil)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = NewGroup("EMPTY")
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	// redefine of an element that is not an earlier sibling
	b := MustField("B", FieldSpec{Type: format.FieldText, Length: 2})
	r, err := NewRedefine("R", b, MustField("V", FieldSpec{Type: format.FieldText, Length: 1}))
	require.NoError(t, err)
	_, err = NewGroup("G4", r, b)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestGroup_InvalidLeavesChildrenDetached(t *testing.T) {
	a := MustField("A", FieldSpec{Type: format.FieldText, Length: 2})
	b := MustField("B", FieldSpec{Type: format.FieldText, Length: 3})

	_, err := NewGroup("G", a, nil)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
	require.Nil(t, a.Parent())

	_, err = NewGroup("G", a, b, a)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
	require.Nil(t, a.Parent())
	require.Nil(t, b.Parent())

	g, err := NewGroup("G2", a, b)
	require.NoError(t, err)
	require.Same(t, g, a.Parent())
	require.Equal(t, 0, a.PositionInParent())
	require.Equal(t, 2, b.PositionInParent())
	require.Equal(t, 5, g.Length())
}

func TestRedefine_Invalid(t *testing.T) {
	target := MustField("T", FieldSpec{Type: format.FieldText, Length: 2})
	_, err := NewRedefine("R", target, MustField("V", FieldSpec{Type: format.FieldText, Length: 3}))
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = NewRedefine("R", nil, MustField("V", FieldSpec{Type: format.FieldText, Length: 1}))
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestArray_Invalid(t *testing.T) {
	_, err := NewArray("A", nil, 2)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)

	_, err = NewArray("A", MustField("X", FieldSpec{Type: format.FieldText, Length: 1}), 0)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestOccurrence(t *testing.T) {
	_, f := customerLayout(t)
	orders := f["ORDERS"]

	for i := range 3 {
		occ, err := orders.Occurrence(i)
		require.NoError(t, err)
		require.Equal(t, 19+i*7, occ.PositionInBuffer())

		no := occ.Children()[0]
		amt := occ.Children()[1]
		require.Equal(t, "ORDER-NO", no.Name())
		require.Equal(t, 19+i*7, no.PositionInBuffer())
		require.Equal(t, 19+i*7+4, amt.PositionInBuffer())
		require.True(t, amt.IsInArray())
		require.NoError(t, occ.Validate())
	}

	// the pattern itself is untouched
	require.Equal(t, 19, f["ORDER-NO"].PositionInBuffer())

	_, err := orders.Occurrence(3)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	_, err = f["CUST-ID"].Occurrence(0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestDuplicate_Template(t *testing.T) {
	root, f := customerLayout(t)

	cp := root.Duplicate(0)
	require.NoError(t, cp.Validate())
	require.Equal(t, root.Length(), cp.Length())

	// redefine target is remapped inside the copy
	var redef *Element
	cp.Walk(func(e *Element) bool {
		if e.Kind() == KindRedefine {
			redef = e
		}
		return true
	})
	require.NotNil(t, redef)
	require.NotSame(t, f["CUST-NAME"], redef.Target())
	require.Equal(t, "CUST-NAME", redef.Target().Name())
	require.Same(t, cp, redef.Target().Parent())

	shifted := f["BALANCE"].Duplicate(100)
	require.Equal(t, 115, shifted.PositionInBuffer())
}

func TestPath(t *testing.T) {
	_, f := customerLayout(t)

	require.Equal(t, "CUSTOMER.CUST-ID", f["CUST-ID"].Path())
	require.Equal(t, "CUSTOMER.ORDERS.ORDER-NO", f["ORDER-NO"].Path())
	require.Equal(t, "CUSTOMER.NAME-PARTS.FIRST", f["FIRST"].Path())
	require.Contains(t, f["BALANCE"].String(), "Field CUSTOMER.BALANCE @15+4")
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Field", KindField.String())
	require.Equal(t, "Redefine", KindRedefine.String())
	require.Equal(t, "Unknown", Kind(0).String())
}
