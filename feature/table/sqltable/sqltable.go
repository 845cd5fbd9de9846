package sqltable

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sheet-sync/core/database"
	"sheet-sync/core/table"
	"sheet-sync/core/value"

	"gorm.io/gorm"
)

const headerRow = 1

// ErrLayout means sheet_rows exists but lacks expected columns.
var ErrLayout = errors.New("sheet_rows has an unexpected layout")

// Table is one sheet in sheet_rows.
type Table struct {
	db    *gorm.DB
	sheet string
}

// Migrate creates or updates sheet_rows.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SheetRow{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// Open returns the sheet after checking the layout of sheet_rows.
func Open(db *gorm.DB, sheet string) (*Table, error) {
	missing, err := database.HasColumns(db, TableName, "id", "sheet", "row_num", "cells")
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", ErrLayout, missing)
	}
	return &Table{db: db, sheet: sheet}, nil
}

// Name returns the sheet name.
func (t *Table) Name() string {
	return t.sheet
}

// Read loads the header and every content row in row order.
func (t *Table) Read(ctx context.Context) (*table.Grid, error) {
	var rows []SheetRow
	err := t.db.WithContext(ctx).
		Where("sheet = ?", t.sheet).
		Order("row_num").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", t.sheet, err)
	}

	grid := &table.Grid{}
	for _, r := range rows {
		cells, err := decodeCells(r.Cells)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", t.sheet, r.RowNum, err)
		}
		if r.RowNum == headerRow {
			grid.Header = table.HeaderStrings(cells)
			continue
		}
		grid.Rows = append(grid.Rows, table.Row{Number: r.RowNum, Cells: cells})
	}
	return grid, nil
}

// AppendRow stores cells after the last row.
func (t *Table) AppendRow(ctx context.Context, cells []value.Cell) error {
	encoded, err := encodeCells(cells)
	if err != nil {
		return err
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last sql.NullInt64
		err := tx.Model(&SheetRow{}).
			Where("sheet = ?", t.sheet).
			Select("MAX(row_num)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("failed to find last row of %s: %w", t.sheet, err)
		}

		next := headerRow + 1
		if last.Valid && int(last.Int64) >= next {
			next = int(last.Int64) + 1
		}

		row := SheetRow{Sheet: t.sheet, RowNum: next, Cells: encoded}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to append to %s: %w", t.sheet, err)
		}
		return nil
	})
}

// Rewrite replaces all rows of the sheet. Content rows are renumbered from 2.
func (t *Table) Rewrite(ctx context.Context, grid *table.Grid) error {
	header := make([]value.Cell, len(grid.Header))
	for i, h := range grid.Header {
		header[i] = h
	}

	records := make([]SheetRow, 0, len(grid.Rows)+1)
	encoded, err := encodeCells(header)
	if err != nil {
		return err
	}
	records = append(records, SheetRow{Sheet: t.sheet, RowNum: headerRow, Cells: encoded})
	for i, r := range grid.Rows {
		encoded, err := encodeCells(r.Cells)
		if err != nil {
			return err
		}
		records = append(records, SheetRow{Sheet: t.sheet, RowNum: headerRow + 1 + i, Cells: encoded})
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet = ?", t.sheet).Delete(&SheetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.sheet, err)
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to write %s: %w", t.sheet, err)
		}
		return nil
	})
}

func encodeCells(cells []value.Cell) (string, error) {
	data, err := json.Marshal(cells)
	if err != nil {
		return "", fmt.Errorf("failed to encode cells: %w", err)
	}
	return string(data), nil
}

func decodeCells(data string) ([]value.Cell, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("malformed cells: %w", err)
	}

	cells := make([]value.Cell, len(raw))
	for i, v := range raw {
		switch n := v.(type) {
		case json.Number:
			if whole, err := n.Int64(); err == nil {
				cells[i] = whole
			} else if f, err := n.Float64(); err == nil {
				cells[i] = f
			} else {
				cells[i] = n.String()
			}
		case string, bool, nil:
			cells[i] = n
		default:
			// Nested values have no cell form.
			cells[i] = fmt.Sprint(n)
		}
	}
	return cells, nil
}

var (
	_ table.Table    = (*Table)(nil)
	_ table.Rewriter = (*Table)(nil)
)
