package firestore

import (
	"fmt"
	"time"

	"sheet-sync/core/value"

	gfs "cloud.google.com/go/firestore"
)

func fromNative(v any) value.TypedValue {
	switch t := v.(type) {
	case nil:
		return value.Null{}
	case string:
		return value.String(t)
	case int64:
		return value.Integer(t)
	case bool:
		return value.Boolean(t)
	case []interface{}:
		arr := make(value.Array, 0, len(t))
		for _, elem := range t {
			arr = append(arr, fromNative(elem))
		}
		return arr
	case float64:
		return value.Unsupported{Tag: "doubleValue", Raw: t}
	case time.Time:
		return value.Unsupported{Tag: "timestampValue", Raw: t}
	case map[string]interface{}:
		return value.Unsupported{Tag: "mapValue", Raw: t}
	case []byte:
		return value.Unsupported{Tag: "bytesValue", Raw: t}
	case *gfs.DocumentRef:
		return value.Unsupported{Tag: "referenceValue", Raw: t}
	default:
		return value.Unsupported{Tag: fmt.Sprintf("%T", v), Raw: t}
	}
}

func toNative(v value.TypedValue) (any, error) {
	switch t := v.(type) {
	case value.String:
		return string(t), nil
	case value.Integer:
		return int64(t), nil
	case value.Boolean:
		return bool(t), nil
	case value.Null, nil:
		return nil, nil
	case value.Array:
		out := make([]interface{}, 0, len(t))
		for _, elem := range t {
			n, err := toNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case value.Unsupported:
		if t.Raw != nil {
			return t.Raw, nil
		}
		return nil, &value.UnsupportedFieldTypeError{Tag: t.Tag}
	default:
		return nil, &value.UnsupportedFieldTypeError{Tag: value.Tag(v)}
	}
}

func fieldsFromData(data map[string]interface{}) value.Fields {
	fields := make(value.Fields, len(data))
	for k, v := range data {
		fields[k] = fromNative(v)
	}
	return fields
}

func dataFromFields(fields value.Fields) (map[string]interface{}, error) {
	data := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		n, err := toNative(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		data[k] = n
	}
	return data, nil
}
