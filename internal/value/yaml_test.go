package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseYAMLNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return &n
}

func TestFromYAMLNodeDescriptor(t *testing.T) {
	got, err := FromYAMLNode(parseYAMLNode(t, `
code: java.field.removed
old: field Foo.bar
new: null
count: 2
hex: 0x10
flag: true
tags: [a, b]
`))
	require.NoError(t, err)
	assert.Equal(t, Object{
		"code":  String("java.field.removed"),
		"old":   String("field Foo.bar"),
		"new":   Null{},
		"count": Int(2),
		"hex":   Int(16),
		"flag":  Bool(true),
		"tags":  Array{String("a"), String("b")},
	}, got)
}

func TestFromYAMLNodeKeepsScalarText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"date", "old: 2020-01-01", String("2020-01-01")},
		{"timestamp", "old: 2001-12-14t21:59:43.10-05:00", String("2001-12-14t21:59:43.10-05:00")},
		{"quoted bool", `old: "yes"`, String("yes")},
		{"yaml 1.1 bool is a string", "old: yes", String("yes")},
		{"tilde", "old: ~", Null{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromYAMLNode(parseYAMLNode(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, Object{"old": tt.want}, got)
		})
	}
}

func TestFromYAMLNodeAliasesAndMerge(t *testing.T) {
	got, err := FromYAMLNode(parseYAMLNode(t, `
base: &base {code: x, old: a}
use: *base
merged:
  <<: *base
  old: b
`))
	require.NoError(t, err)
	base := Object{"code": String("x"), "old": String("a")}
	assert.Equal(t, Object{
		"base":   base,
		"use":    base,
		"merged": Object{"code": String("x"), "old": String("b")},
	}, got)
}

func TestFromYAMLNodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"float", "score: 1.5", "floats are forbidden"},
		{"nested float", "a: [1, 2.0]", `["a"]: [1]: floats are forbidden`},
		{"int overflow", "n: 99999999999999999999", "out of int64 range"},
		{"custom tag", "n: !thing x", "unsupported tag"},
		{"complex key", "? [a]\n: 1", "keys must be scalars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAMLNode(parseYAMLNode(t, tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
