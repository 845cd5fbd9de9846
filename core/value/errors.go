package value

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFieldType is matched by every UnsupportedFieldTypeError.
var ErrUnsupportedFieldType = errors.New("unsupported field type")

// UnsupportedFieldTypeError reports a document field the codec cannot render as a cell.
type UnsupportedFieldTypeError struct {
	Field string
	Tag   string
}

func (e *UnsupportedFieldTypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: unsupported field type %q", e.Field, e.Tag)
	}
	return fmt.Sprintf("unsupported field type %q", e.Tag)
}

func (e *UnsupportedFieldTypeError) Is(target error) bool {
	return target == ErrUnsupportedFieldType
}
