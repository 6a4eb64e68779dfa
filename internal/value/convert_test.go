package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGoScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"nil", nil, Null{}},
		{"string", "x", String("x")},
		{"bool", true, Bool(true)},
		{"int", 3, Int(3)},
		{"int64", int64(-3), Int(-3)},
		{"uint8", uint8(200), Int(200)},
		{"uint64", uint64(math.MaxInt64), Int(math.MaxInt64)},
		{"json number", json.Number("12"), Int(12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromGoRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"float64", 3.14},
		{"float32", float32(1)},
		{"json float", json.Number("1.0")},
		{"uint64 overflow", uint64(math.MaxUint64)},
		{"non-string key", map[any]any{1: "x"}},
		{"nested float", map[string]any{"a": []any{1.5}}},
		{"struct", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromGo(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestToGoInvertsFromGo(t *testing.T) {
	obj := Object{
		"s": String("x"),
		"i": Int(1),
		"b": Bool(false),
		"n": Null{},
		"a": Array{Int(1), Object{"k": String("v")}},
	}
	back, err := FromGo(ToGo(obj))
	require.NoError(t, err)
	assert.Equal(t, obj, back)
}

func TestCloneIsDeep(t *testing.T) {
	obj := Object{"nested": Object{"a": Int(1)}, "list": Array{Int(1)}}
	clone := obj.Clone()

	clone["nested"].(Object)["a"] = Int(2)
	clone["list"].(Array)[0] = Int(9)

	assert.Equal(t, Int(1), obj["nested"].(Object)["a"])
	assert.Equal(t, Int(1), obj["list"].(Array)[0])
}

func TestObjectMarshalJSONSortsKeys(t *testing.T) {
	data, err := json.Marshal(ObjectOf(P("b", Int(1)), P("a", Null{})))
	require.NoError(t, err)
	assert.Equal(t, `{"a":null,"b":1}`, string(data))
}

func TestObjectUnmarshalJSON(t *testing.T) {
	var payload struct {
		Break Object `json:"break"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"break": {"code": "x", "new": null, "n": 2}}`), &payload))
	assert.Equal(t, ObjectOf(P("code", String("x")), P("new", Null{}), P("n", Int(2))), payload.Break)

	var obj Object
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &obj))
	assert.Error(t, json.Unmarshal([]byte(`{"f": 1.5}`), &obj))
}
