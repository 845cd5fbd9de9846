package schema_test

import (
	"testing"

	"sheet-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name*", "Name"},
		{"Tags~", "Tags"},
		{"Product Name", "Product_Name"},
		{"Product Full Name", "Product_Full_Name"},
		{"Unit  Price ($)", "Unit__Price_"},
		{"_id", "_id"},
		{"sku-code", "sku-code"},
		{"Café", "Caf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.Normalize(tt.in))
		})
	}
}

func TestDeriveColumns(t *testing.T) {
	cols := schema.DeriveColumns([]string{"_active", "_id", "Name*", "Tags~"})
	require.Len(t, cols, 4)

	var labels []string
	var mandatory, sync []bool
	for _, c := range cols {
		labels = append(labels, c.Label)
		mandatory = append(mandatory, c.IsMandatory)
		sync = append(sync, c.IsSync)
	}
	assert.Equal(t, []string{"_active", "_id", "Name", "Tags"}, labels)
	assert.Equal(t, []bool{false, false, true, false}, mandatory)
	assert.Equal(t, []bool{true, true, true, false}, sync)
}

func TestDeriveColumns_SkipsBlankHeadersAndTrims(t *testing.T) {
	cols := schema.DeriveColumns([]string{"", " Price* ", "   ", "Notes ~"})
	require.Len(t, cols, 2)
	assert.Equal(t, schema.Column{Label: "Price", IsMandatory: true, IsSync: true}, cols[0])
	assert.Equal(t, schema.Column{Label: "Notes_", IsMandatory: false, IsSync: false}, cols[1])
}

func TestDeriveColumns_KeepsDuplicates(t *testing.T) {
	cols := schema.DeriveColumns([]string{"Name", "Name*"})
	require.Len(t, cols, 2)

	idx, ok := schema.ColumnIndex(cols, "Name")
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "first match wins")
}

func TestColumnIndex(t *testing.T) {
	cols := schema.DeriveColumns([]string{"_active", "_id", "Product Name*"})

	idx, ok := schema.ColumnIndex(cols, "Product Name")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = schema.ColumnIndex(cols, "missing")
	assert.False(t, ok)
}

func TestMandatoryLabels(t *testing.T) {
	cols := schema.DeriveColumns([]string{"_active", "_id", "Name*", "Price", "Sku*"})
	assert.Equal(t, []string{"Name", "Sku"}, schema.MandatoryLabels(cols))
}

func TestMissingReserved(t *testing.T) {
	assert.Empty(t, schema.MissingReserved(schema.DeriveColumns([]string{"_id", "_active"})))
	assert.Equal(t, []string{"_active"}, schema.MissingReserved(schema.DeriveColumns([]string{"_id", "Name"})))
	assert.Equal(t, []string{"_id", "_active"}, schema.MissingReserved(schema.DeriveColumns([]string{"Name"})))
}

func TestColumn_Reserved(t *testing.T) {
	assert.True(t, schema.Column{Label: "_id"}.Reserved())
	assert.True(t, schema.Column{Label: "_active"}.Reserved())
	assert.False(t, schema.Column{Label: "Name"}.Reserved())
}
