// Package csvtable is a table backed by a CSV file.
//
// Row 1 is the header and content rows are numbered from 2. Cells reading
// "true" or "false" (any case) load as booleans; every other cell stays a
// string and is coerced by the codec when it is synced. Appends add one
// record at the end of the file; Rewrite replaces the file through a rename.
package csvtable

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sheet-sync/core/table"
	"sheet-sync/core/utils"
	"sheet-sync/core/value"
)

// Table is a CSV file. Calls on one Table are serialised.
type Table struct {
	path string
	name string
	mu   sync.Mutex
}

// New creates a table over path. An empty name defaults to the file's base name.
func New(path, name string) *Table {
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &Table{path: path, name: name}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Path returns the file path.
func (t *Table) Path() string {
	return t.path
}

// Read loads the whole file. A missing or empty file reads as an empty grid.
func (t *Table) Read(ctx context.Context) (*table.Grid, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return &table.Grid{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	grid := &table.Grid{}
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", t.path, err)
		}
		if line == 0 {
			grid.Header = record
			continue
		}
		grid.Rows = append(grid.Rows, table.Row{Number: line + 1, Cells: decodeRecord(record)})
	}
	return grid, nil
}

// AppendRow writes one record at the end of the file.
func (t *Table) AppendRow(ctx context.Context, cells []value.Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureTrailingNewline(); err != nil {
		return err
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encodeRecord(cells)); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.path, err)
	}
	return nil
}

// Rewrite replaces the file with grid.
func (t *Table) Rewrite(ctx context.Context, grid *table.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(grid.Header); err != nil {
		return err
	}
	for _, row := range grid.Rows {
		if err := w.Write(encodeRecord(row.Cells)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), "."+filepath.Base(t.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", t.path, err)
	}
	return nil
}

// ensureTrailingNewline keeps appended records off the last line of a file
// that was saved without a final newline.
func (t *Table) ensureTrailingNewline() error {
	f, err := os.OpenFile(t.path, os.O_RDWR, 0)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.WriteAt([]byte("\n"), info.Size())
	return err
}

func decodeRecord(record []string) []value.Cell {
	cells := make([]value.Cell, len(record))
	for i, s := range record {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			cells[i] = true
		case "false":
			cells[i] = false
		default:
			cells[i] = s
		}
	}
	return cells
}

func encodeRecord(cells []value.Cell) []string {
	record := make([]string, len(cells))
	for i, c := range cells {
		record[i] = utils.ToString(c)
	}
	return record
}

var (
	_ table.Table    = (*Table)(nil)
	_ table.Rewriter = (*Table)(nil)
)
