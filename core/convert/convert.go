// Package convert maps between table rows and document field sets.
package convert

import (
	"errors"

	"sheet-sync/core/schema"
	"sheet-sync/core/utils"
	"sheet-sync/core/value"
)

// RowView keys a row's cells by column label. Cells missing from a short row
// read as "". When labels repeat, the first column wins.
func RowView(cells []value.Cell, columns []schema.Column) map[string]value.Cell {
	view := make(map[string]value.Cell, len(columns))
	for i, c := range columns {
		if _, seen := view[c.Label]; seen {
			continue
		}
		view[c.Label] = cellAt(cells, i)
	}
	return view
}

// RowToDocumentFields builds the document payload for one row.
// Only synced, non-reserved, labelled columns with a non-empty cell are included;
// empty cells are left out entirely so existing remote fields are not overwritten.
func RowToDocumentFields(cells []value.Cell, columns []schema.Column) value.Fields {
	fields := make(value.Fields)
	for i, c := range columns {
		if !c.IsSync || c.Label == "" || c.Reserved() {
			continue
		}
		cell := cellAt(cells, i)
		if utils.IsEmpty(cell) {
			continue
		}
		fields[c.Label] = value.CellToField(cell)
	}
	return fields
}

// DocumentToRow renders a remote document as a new table row.
// The row always has one cell per column: _active is true, _id is the identity,
// known fields are converted and everything else is "".
func DocumentToRow(identity string, fields value.Fields, columns []schema.Column) ([]value.Cell, error) {
	row := make([]value.Cell, 0, len(columns))
	for _, c := range columns {
		switch c.Label {
		case schema.ActiveLabel:
			row = append(row, true)
		case schema.IDLabel:
			row = append(row, identity)
		default:
			field, ok := fields[c.Label]
			if !ok {
				row = append(row, "")
				continue
			}
			cell, err := value.FieldToCell(field)
			if err != nil {
				var uerr *value.UnsupportedFieldTypeError
				if errors.As(err, &uerr) && uerr.Field == "" {
					uerr.Field = c.Label
				}
				return nil, err
			}
			row = append(row, cell)
		}
	}
	return row, nil
}

func cellAt(cells []value.Cell, i int) value.Cell {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
