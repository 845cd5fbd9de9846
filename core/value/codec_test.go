package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellToField(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want TypedValue
	}{
		{"empty string", "", Null{}},
		{"whitespace only", "   ", Null{}},
		{"nil", nil, Null{}},
		{"true lowercase", "true", Boolean(true)},
		{"false mixed case", "FaLsE", Boolean(false)},
		{"native bool", true, Boolean(true)},
		{"integer string", "143", Integer(143)},
		{"padded integer string", " 42 ", Integer(42)},
		{"signed integer string", "-7", Integer(-7)},
		{"native float", 7.0, Integer(7)},
		{"native int64", int64(99), Integer(99)},
		{"plain text", "Widget", String("Widget")},
		{"text is trimmed", "  Widget ", String("Widget")},
		{"hex stays text", "0x1F", String("0x1F")},
		{"infinity stays text", "Infinity", String("Infinity")},
		{"array of ints", "[1,2,3]", Array{Integer(1), Integer(2), Integer(3)}},
		{"array of strings", "[handheld, synth]", Array{String("handheld"), String("synth")}},
		{"mixed array", "[a,true,5,]", Array{String("a"), Boolean(true), Integer(5), Null{}}},
		{"empty brackets hold one null", "[]", Array{Null{}}},
		{"blank brackets hold one null", "[ ]", Array{Null{}}},
		{"unbalanced bracket is text", "[abc", String("[abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellToField(tt.in))
		})
	}
}

// Integer-only coercion drops the fractional part of decimal input.
func TestCellToField_TruncatesDecimals(t *testing.T) {
	assert.Equal(t, Integer(12), CellToField("12.99"))
	assert.Equal(t, Integer(-3), CellToField("-3.5"))
	assert.Equal(t, Integer(0), CellToField(".5"))
	assert.Equal(t, Integer(1000), CellToField("1e3"))
	assert.Equal(t, Integer(4), CellToField(4.75))
}

// Commas inside array elements are not escaped; they always split.
func TestCellToField_ArrayHasNoEscaping(t *testing.T) {
	got := CellToField(`["a,b",c]`)
	assert.Equal(t, Array{String(`"a`), String(`b"`), String("c")}, got)
}

func TestFieldToCell(t *testing.T) {
	tests := []struct {
		name string
		in   TypedValue
		want Cell
	}{
		{"string", String("abc"), "abc"},
		{"integer", Integer(600), int64(600)},
		{"boolean", Boolean(false), false},
		{"null", Null{}, nil},
		{"array", Array{String("a"), String("b")}, "[a,b]"},
		{"array with null and bool", Array{Null{}, Boolean(true), Integer(-1)}, "[,true,-1]"},
		{"empty array", Array{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldToCell(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldToCell_Unsupported(t *testing.T) {
	_, err := FieldToCell(Unsupported{Tag: "doubleValue", Raw: 1.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)

	var uerr *UnsupportedFieldTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "doubleValue", uerr.Tag)

	_, err = FieldToCell(Array{String("a"), Unsupported{Tag: "mapValue"}})
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)
}

func TestRoundTrip_Scalars(t *testing.T) {
	cells := []Cell{"Gizmo", true, false, int64(7), nil}
	for _, c := range cells {
		got, err := FieldToCell(CellToField(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)

		again, err := FieldToCell(CellToField(got))
		require.NoError(t, err)
		assert.Equal(t, got, again, "round trip must be idempotent for %v", c)
	}
}

func TestRoundTrip_NumericStringBecomesNumber(t *testing.T) {
	got, err := FieldToCell(CellToField("10"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

// Arrays come back as their string rendering, not as a native slice.
func TestRoundTrip_ArrayIsLossy(t *testing.T) {
	field := CellToField("[1,2,3]")
	assert.Equal(t, Array{Integer(1), Integer(2), Integer(3)}, field)

	cell, err := FieldToCell(field)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", cell)
	assert.IsType(t, "", cell)

	spaced, err := FieldToCell(CellToField("[a, b]"))
	require.NoError(t, err)
	assert.Equal(t, "[a,b]", spaced)
}
