package value

// Cell is a raw table cell: string, bool, an integer or float kind, or nil.
type Cell = any

// TypedValue is a document field value. The set of implementations is closed.
type TypedValue interface {
	isTypedValue()
}

// String is a text field.
type String string

// Integer is a whole-number field.
type Integer int64

// Boolean is a true/false field.
type Boolean bool

// Null is an explicitly empty field.
type Null struct{}

// Array is an ordered list of fields.
type Array []TypedValue

// Unsupported carries a remote field whose type has no cell representation.
// Tag names the remote type, e.g. "doubleValue" or "mapValue".
type Unsupported struct {
	Tag string
	Raw any
}

func (String) isTypedValue()      {}
func (Integer) isTypedValue()     {}
func (Boolean) isTypedValue()     {}
func (Null) isTypedValue()        {}
func (Array) isTypedValue()       {}
func (Unsupported) isTypedValue() {}

// Fields maps a document field name to its value.
type Fields map[string]TypedValue

// Tag returns the wire tag of v ("stringValue", "integerValue", ...).
func Tag(v TypedValue) string {
	switch t := v.(type) {
	case String:
		return "stringValue"
	case Integer:
		return "integerValue"
	case Boolean:
		return "booleanValue"
	case Null, nil:
		return "nullValue"
	case Array:
		return "arrayValue"
	case Unsupported:
		return t.Tag
	default:
		return "unknown"
	}
}
