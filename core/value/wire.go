package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The wire encoding mirrors the Firestore REST representation: every field is an
// object with exactly one type tag, e.g. {"integerValue": "143"} or
// {"arrayValue": {"values": [{"stringValue": "a"}]}}.

type wireArray struct {
	Values []json.RawMessage `json:"values"`
}

// MarshalFields encodes fields in the wire representation.
func MarshalFields(fields Fields) ([]byte, error) {
	out := make(map[string]any, len(fields))
	for name, v := range fields {
		enc, err := encodeWire(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = enc
	}
	return json.Marshal(out)
}

// UnmarshalFields decodes fields from the wire representation.
// Unknown tags decode to Unsupported and keep their raw payload.
func UnmarshalFields(data []byte) (Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	fields := make(Fields, len(raw))
	for name, msg := range raw {
		v, err := decodeWire(msg)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = v
	}
	return fields, nil
}

func encodeWire(v TypedValue) (map[string]any, error) {
	switch t := v.(type) {
	case String:
		return map[string]any{"stringValue": string(t)}, nil
	case Integer:
		return map[string]any{"integerValue": strconv.FormatInt(int64(t), 10)}, nil
	case Boolean:
		return map[string]any{"booleanValue": bool(t)}, nil
	case Null, nil:
		return map[string]any{"nullValue": nil}, nil
	case Array:
		values := make([]map[string]any, 0, len(t))
		for _, elem := range t {
			enc, err := encodeWire(elem)
			if err != nil {
				return nil, err
			}
			values = append(values, enc)
		}
		return map[string]any{"arrayValue": map[string]any{"values": values}}, nil
	case Unsupported:
		if raw, ok := t.Raw.(json.RawMessage); ok {
			return map[string]any{t.Tag: raw}, nil
		}
		return map[string]any{t.Tag: t.Raw}, nil
	default:
		return nil, &UnsupportedFieldTypeError{Tag: Tag(v)}
	}
}

func decodeWire(msg json.RawMessage) (TypedValue, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return nil, fmt.Errorf("field value is not an object: %w", err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("field value must have exactly one type tag, got %d", len(obj))
	}

	for tag, payload := range obj {
		switch tag {
		case "stringValue":
			var s string
			if err := json.Unmarshal(payload, &s); err != nil {
				return nil, fmt.Errorf("stringValue: %w", err)
			}
			return String(s), nil
		case "integerValue":
			n, err := decodeInteger(payload)
			if err != nil {
				return nil, fmt.Errorf("integerValue: %w", err)
			}
			return Integer(n), nil
		case "booleanValue":
			var b bool
			if err := json.Unmarshal(payload, &b); err != nil {
				return nil, fmt.Errorf("booleanValue: %w", err)
			}
			return Boolean(b), nil
		case "nullValue":
			return Null{}, nil
		case "arrayValue":
			var arr wireArray
			if err := json.Unmarshal(payload, &arr); err != nil {
				return nil, fmt.Errorf("arrayValue: %w", err)
			}
			out := make(Array, 0, len(arr.Values))
			for _, elem := range arr.Values {
				v, err := decodeWire(elem)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		default:
			return Unsupported{Tag: tag, Raw: payload}, nil
		}
	}
	return nil, fmt.Errorf("field value has no type tag")
}

// decodeInteger accepts both the REST string form ("143") and a bare JSON number.
func decodeInteger(payload json.RawMessage) (int64, error) {
	var s string
	if err := json.Unmarshal(payload, &s); err == nil {
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	if err := json.Unmarshal(payload, &n); err != nil {
		return 0, err
	}
	return n, nil
}
