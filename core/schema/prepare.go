package schema

import "strings"

// Prepare lays out a raw table so it carries both reserved columns:
// "_active" in position 0 and "_id" in position 1.
//
// An "_active" column is inserted in front unless the first header already
// normalises to it. An existing "_id" column is moved to position 1 together with
// its cells; otherwise an empty "_id" column is inserted there. Rows are returned
// padded to the header width where a column was inserted. The inputs are not modified.
func Prepare(header []string, rows [][]any) ([]string, [][]any) {
	h := append([]string(nil), header...)
	r := make([][]any, len(rows))
	for i, row := range rows {
		r[i] = append([]any(nil), row...)
	}

	if len(h) == 0 || Normalize(strings.TrimSpace(h[0])) != ActiveLabel {
		h = insertAt(h, 0, ActiveLabel)
		for i := range r {
			r[i] = insertCellAt(r[i], 0, "")
		}
	}

	idPos := -1
	for i, raw := range h {
		if Normalize(strings.TrimSpace(raw)) == IDLabel {
			idPos = i
			break
		}
	}

	switch {
	case idPos == 1:
	case idPos < 0:
		h = insertAt(h, 1, IDLabel)
		for i := range r {
			r[i] = insertCellAt(r[i], 1, "")
		}
	default:
		label := h[idPos]
		h = insertAt(removeAt(h, idPos), 1, label)
		for i := range r {
			var cell any = ""
			if idPos < len(r[i]) {
				cell = r[i][idPos]
				r[i] = removeCellAt(r[i], idPos)
			}
			r[i] = insertCellAt(r[i], 1, cell)
		}
	}

	return h, r
}

func insertAt(s []string, pos int, v string) []string {
	s = append(s, "")
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

func removeAt(s []string, pos int) []string {
	return append(s[:pos], s[pos+1:]...)
}

func insertCellAt(row []any, pos int, v any) []any {
	for len(row) < pos {
		row = append(row, "")
	}
	row = append(row, nil)
	copy(row[pos+1:], row[pos:])
	row[pos] = v
	return row
}

func removeCellAt(row []any, pos int) []any {
	return append(row[:pos], row[pos+1:]...)
}
