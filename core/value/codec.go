package value

import (
	"regexp"
	"strconv"
	"strings"

	"sheet-sync/core/utils"
)

var arrayPattern = regexp.MustCompile(`^\[.*\]$`)

// CellToField converts one table cell to a document field.
func CellToField(raw Cell) TypedValue {
	switch v := raw.(type) {
	case nil:
		return Null{}
	case TypedValue:
		return v
	case string:
		return stringToField(v)
	case bool:
		return Boolean(v)
	default:
		if n, ok := utils.ToInt64(v); ok {
			return Integer(n)
		}
		return String(utils.ToString(v))
	}
}

func stringToField(s string) TypedValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null{}
	}

	switch strings.ToLower(s) {
	case "true":
		return Boolean(true)
	case "false":
		return Boolean(false)
	}

	if n, ok := parseNumeric(s); ok {
		return Integer(n)
	}

	if arrayPattern.MatchString(s) {
		pieces := strings.Split(s[1:len(s)-1], ",")
		arr := make(Array, 0, len(pieces))
		for _, p := range pieces {
			arr = append(arr, CellToField(p))
		}
		return arr
	}

	return String(s)
}

// parseNumeric accepts decimal numbers (sign, fraction and exponent allowed) and
// returns them truncated toward zero. Decimal input therefore loses its fraction.
func parseNumeric(s string) (int64, bool) {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "0x") || strings.Contains(s, "_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return utils.ToInt64(f)
}

// FieldToCell converts a document field back to a cell value.
// Integers come back as int64, arrays as their "[a,b]" string rendering.
func FieldToCell(field TypedValue) (Cell, error) {
	switch v := field.(type) {
	case String:
		return string(v), nil
	case Integer:
		return int64(v), nil
	case Boolean:
		return bool(v), nil
	case Null, nil:
		return nil, nil
	case Array:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			cell, err := FieldToCell(elem)
			if err != nil {
				return nil, err
			}
			parts = append(parts, utils.ToString(cell))
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	case Unsupported:
		return nil, &UnsupportedFieldTypeError{Tag: v.Tag}
	default:
		return nil, &UnsupportedFieldTypeError{Tag: Tag(field)}
	}
}
