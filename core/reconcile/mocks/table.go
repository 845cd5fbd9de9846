package mocks

import (
	"context"

	"sheet-sync/core/table"
	"sheet-sync/core/value"

	"github.com/stretchr/testify/mock"
)

// Table is a mock implementation of table.Table and table.Rewriter
type Table struct {
	mock.Mock
	TableName string
}

func (m *Table) Name() string {
	return m.TableName
}

func (m *Table) Read(ctx context.Context) (*table.Grid, error) {
	args := m.Called(ctx)
	if grid, ok := args.Get(0).(*table.Grid); ok {
		return grid, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Table) AppendRow(ctx context.Context, cells []value.Cell) error {
	args := m.Called(ctx, cells)
	return args.Error(0)
}

func (m *Table) Rewrite(ctx context.Context, grid *table.Grid) error {
	args := m.Called(ctx, grid)
	return args.Error(0)
}
