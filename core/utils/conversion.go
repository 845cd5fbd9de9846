package utils

import (
	"fmt"
	"math"
	"strconv"
)

// ToInt64 converts numeric kinds to int64, truncating floats toward zero.
// ok is false for non-numeric values, non-finite floats and floats outside the int64 range.
func ToInt64(val any) (n int64, ok bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	default:
		return 0, false
	}
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// ToString renders a cell the way a spreadsheet displays it.
// Whole floats drop their fraction ("42", not "42.000000"); nil renders as "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		if n, ok := ToInt64(v); ok {
			return strconv.FormatInt(n, 10)
		}
		return fmt.Sprintf("%v", v)
	}
}

// IsEmpty reports whether a cell holds no value: nil or the empty string.
// Whitespace-only strings are not empty.
func IsEmpty(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// IsTrue reports whether val is exactly the boolean true.
// Strings such as "true" do not count.
func IsTrue(val any) bool {
	b, ok := val.(bool)
	return ok && b
}
