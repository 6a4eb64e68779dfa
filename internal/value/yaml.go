package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAMLNode converts a parsed YAML node into a Value.
//
// Scalars are read from their source text by resolved tag. Timestamps and
// binary scalars stay strings with their exact text, so a descriptor field
// like "old: 2020-01-01" is kept as written. Floats are rejected.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.SequenceNode:
		arr := make(Array, len(n.Content))
		for i, elem := range n.Content {
			converted, err := FromYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case yaml.MappingNode:
		return fromYAMLMapping(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", n.Value)
		}
		return Int(i), nil
	case "!!float":
		return nil, fmt.Errorf("floats are forbidden: %s", n.Value)
	case "!!str", "!!timestamp", "!!binary":
		return String(n.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
	}
}

// fromYAMLMapping builds an object. Explicit keys win over keys merged in
// with "<<"; duplicate explicit keys are an error.
func fromYAMLMapping(n *yaml.Node) (Object, error) {
	obj := make(Object, len(n.Content)/2)
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: object keys must be scalars", k.Line)
		}
		if k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		if _, dup := obj[k.Value]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		converted, err := FromYAMLNode(v)
		if err != nil {
			return nil, fmt.Errorf("[%q]: %w", k.Value, err)
		}
		obj[k.Value] = converted
	}

	for _, m := range merges {
		sources := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			merged, err := FromYAMLNode(src)
			if err != nil {
				return nil, err
			}
			mergedObj, ok := merged.(Object)
			if !ok {
				return nil, fmt.Errorf("line %d: merge source must be an object", src.Line)
			}
			for k, v := range mergedObj {
				if _, set := obj[k]; !set {
					obj[k] = v
				}
			}
		}
	}
	return obj, nil
}
