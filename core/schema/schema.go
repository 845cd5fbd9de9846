package schema

import (
	"regexp"
	"strings"
)

const (
	// IDLabel is the reserved identity column.
	IDLabel = "_id"
	// ActiveLabel is the reserved inclusion-flag column.
	ActiveLabel = "_active"

	mandatoryMarker = "*"
	noSyncMarker    = "~"
)

var disallowed = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Column describes one header position.
type Column struct {
	Label       string `json:"label"`
	IsMandatory bool   `json:"is_mandatory"`
	IsSync      bool   `json:"is_sync"`
}

// Reserved reports whether the column is _id or _active.
func (c Column) Reserved() bool {
	return c.Label == IDLabel || c.Label == ActiveLabel
}

// Normalize turns a raw header (or table name) into a label.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	return disallowed.ReplaceAllString(s, "")
}

// DeriveColumns builds the column list from a header row.
// Blank headers are skipped; the order of the rest is preserved.
// Duplicate labels are kept as-is.
func DeriveColumns(header []string) []Column {
	columns := make([]Column, 0, len(header))
	for _, raw := range header {
		h := strings.TrimSpace(raw)
		if h == "" {
			continue
		}
		columns = append(columns, Column{
			Label:       Normalize(h),
			IsMandatory: strings.HasSuffix(h, mandatoryMarker),
			IsSync:      !strings.HasSuffix(h, noSyncMarker),
		})
	}
	return columns
}

// ColumnIndex returns the position of the first column whose label equals the
// normalised form of label.
func ColumnIndex(columns []Column, label string) (int, bool) {
	want := Normalize(label)
	for i, c := range columns {
		if c.Label == want {
			return i, true
		}
	}
	return -1, false
}

// MandatoryLabels returns the labels of mandatory columns in header order.
func MandatoryLabels(columns []Column) []string {
	var labels []string
	for _, c := range columns {
		if c.IsMandatory {
			labels = append(labels, c.Label)
		}
	}
	return labels
}

// MissingReserved lists the reserved labels absent from columns, _id first.
func MissingReserved(columns []Column) []string {
	var missing []string
	for _, label := range []string{IDLabel, ActiveLabel} {
		if _, ok := ColumnIndex(columns, label); !ok {
			missing = append(missing, label)
		}
	}
	return missing
}
