package table_test

import (
	"testing"

	"sheet-sync/core/table"
	"sheet-sync/core/value"

	"github.com/stretchr/testify/assert"
)

func TestHeaderStrings(t *testing.T) {
	assert.Equal(t, []string{"_id", "42", "", "true"}, table.HeaderStrings([]value.Cell{"_id", float64(42), nil, true}))
}

func TestFromCellsAndCells(t *testing.T) {
	cells := [][]value.Cell{{"a"}, {"b"}}
	rows := table.FromCells(cells)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 3, rows[1].Number)

	g := &table.Grid{Rows: rows}
	assert.Equal(t, cells, g.Cells())
}

func TestConfig_IsValidSource(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{table.SourceCSV, true},
		{table.SourceSQL, true},
		{"xlsx", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Config{Source: tt.source}.IsValidSource())
		})
	}
}
