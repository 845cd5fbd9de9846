// Package table defines the local, tabular side of a sync pass.
//
// A Table is read as one consistent Grid per pass and written only by appending
// rows. Sources that can also replace their full content implement Rewriter,
// which is what table preparation needs.
package table

import (
	"context"
	"errors"

	"sheet-sync/core/utils"
	"sheet-sync/core/value"
)

// ErrNotRewritable is returned when an operation needs Rewriter and the table lacks it.
var ErrNotRewritable = errors.New("table does not support rewriting")

// Row is one content row with its 1-based position in the table (the header is row 1).
type Row struct {
	Number int
	Cells  []value.Cell
}

// Grid is a snapshot of a table: the raw header row and all content rows.
type Grid struct {
	Header []string
	Rows   []Row
}

// Table is a tabular data source.
type Table interface {
	// Name identifies the table. The normalised name is the remote collection.
	Name() string
	// Read materialises the current header and content rows.
	Read(ctx context.Context) (*Grid, error)
	// AppendRow adds one row after the last content row.
	AppendRow(ctx context.Context, cells []value.Cell) error
}

// Rewriter replaces a table's full content.
type Rewriter interface {
	Rewrite(ctx context.Context, grid *Grid) error
}

// HeaderStrings renders raw header cells as strings.
func HeaderStrings(cells []value.Cell) []string {
	header := make([]string, len(cells))
	for i, c := range cells {
		header[i] = utils.ToString(c)
	}
	return header
}

// Cells returns the rows' cells as a plain matrix.
func (g *Grid) Cells() [][]value.Cell {
	out := make([][]value.Cell, len(g.Rows))
	for i, r := range g.Rows {
		out[i] = r.Cells
	}
	return out
}

// FromCells builds content rows numbered from 2.
func FromCells(cells [][]value.Cell) []Row {
	rows := make([]Row, len(cells))
	for i, c := range cells {
		rows[i] = Row{Number: i + 2, Cells: c}
	}
	return rows
}
