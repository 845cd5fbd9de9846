package reconcile

import (
	"context"
	"fmt"

	"sheet-sync/core/schema"
	"sheet-sync/core/table"
)

// PrepareTable makes sure t has the reserved columns at the front of its header,
// moving their existing cells along. Tables must implement table.Rewriter.
func PrepareTable(ctx context.Context, t table.Table) ([]string, error) {
	rw, ok := t.(table.Rewriter)
	if !ok {
		return nil, fmt.Errorf("prepare %s: %w", t.Name(), table.ErrNotRewritable)
	}

	grid, err := t.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", t.Name(), err)
	}

	header, rows := schema.Prepare(grid.Header, grid.Cells())
	prepared := &table.Grid{Header: header, Rows: table.FromCells(rows)}
	if err := rw.Rewrite(ctx, prepared); err != nil {
		return nil, fmt.Errorf("failed to rewrite table %s: %w", t.Name(), err)
	}
	return header, nil
}
