// Package value converts between table cells and typed document fields.
//
// A cell is whatever a table source hands back for one position of a row: a
// string, a boolean, a number or nil. A document field is a TypedValue, a closed
// set of variants (String, Integer, Boolean, Null, Array) plus Unsupported for
// remote types the codec cannot represent.
//
// # Conversion rules
//
// CellToField applies, in order:
//   - blank string -> Null
//   - "true"/"false" (any case) -> Boolean
//   - numeric string -> Integer (fraction truncated toward zero)
//   - "[...]" -> Array, split on "," with each piece converted recursively
//   - anything else -> String
//
// FieldToCell is the inverse for scalars. Arrays render back to a "[a,b]" string,
// not a native slice, so array round-trips are intentionally lossy.
//
// # Known limitations
//
// Array pieces are split on every comma; there is no escaping for commas inside
// elements and nested brackets are not parsed.
package value
