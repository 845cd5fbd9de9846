package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalFields(t *testing.T) {
	data := []byte(`{
		"productName": {"stringValue": "OP-1 Portable Synthesizer"},
		"price": {"integerValue": "143"},
		"inStock": {"booleanValue": true},
		"discontinued": {"nullValue": null},
		"categories": {"arrayValue": {"values": [{"stringValue": "handheld"}, {"stringValue": "synth"}]}},
		"weight": {"doubleValue": 0.5}
	}`)

	fields, err := UnmarshalFields(data)
	require.NoError(t, err)

	assert.Equal(t, String("OP-1 Portable Synthesizer"), fields["productName"])
	assert.Equal(t, Integer(143), fields["price"])
	assert.Equal(t, Boolean(true), fields["inStock"])
	assert.Equal(t, Null{}, fields["discontinued"])
	assert.Equal(t, Array{String("handheld"), String("synth")}, fields["categories"])

	weight, ok := fields["weight"].(Unsupported)
	require.True(t, ok)
	assert.Equal(t, "doubleValue", weight.Tag)
}

func TestUnmarshalFields_BareIntegerNumber(t *testing.T) {
	fields, err := UnmarshalFields([]byte(`{"n": {"integerValue": 12}}`))
	require.NoError(t, err)
	assert.Equal(t, Integer(12), fields["n"])
}

func TestUnmarshalFields_Invalid(t *testing.T) {
	_, err := UnmarshalFields([]byte(`{"n": {"stringValue": "a", "integerValue": "1"}}`))
	assert.Error(t, err)

	_, err = UnmarshalFields([]byte(`{"n": "plain"}`))
	assert.Error(t, err)

	_, err = UnmarshalFields([]byte(`not json`))
	assert.Error(t, err)
}

func TestMarshalFields_PreservesUnsupported(t *testing.T) {
	in, err := UnmarshalFields([]byte(`{"loc": {"geoPointValue": {"latitude": 1, "longitude": 2}}, "n": {"integerValue": "5"}}`))
	require.NoError(t, err)

	data, err := MarshalFields(in)
	require.NoError(t, err)

	var decoded map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `{"latitude": 1, "longitude": 2}`, string(decoded["loc"]["geoPointValue"]))
	assert.JSONEq(t, `"5"`, string(decoded["n"]["integerValue"]))

	out, err := UnmarshalFields(data)
	require.NoError(t, err)
	assert.Equal(t, Integer(5), out["n"])
}

func TestMarshalFields_Shapes(t *testing.T) {
	data, err := MarshalFields(Fields{
		"a": Array{Integer(1), Null{}},
		"b": Boolean(false),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"a": {"arrayValue": {"values": [{"integerValue": "1"}, {"nullValue": null}]}},
		"b": {"booleanValue": false}
	}`, string(data))
}
