package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

var errMultipleDocuments = errors.New("expected a single YAML document")

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

func (yamlCodec) Decode(data []byte) (config.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return config.Empty(), nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var w wireDocument
	if err := dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			// Comments only.
			return config.Empty(), nil
		}
		return config.Document{}, &DecodeError{Format: FormatYAML, Err: err}
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return config.Document{}, &DecodeError{Format: FormatYAML, Err: errMultipleDocuments}
	}

	return decodeWire(FormatYAML, w)
}

// Encode writes block-style YAML with a 2-space indent and no document
// start marker.
func (yamlCodec) Encode(doc config.Document) ([]byte, error) {
	node, err := encode(doc).yamlNode()
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlNode builds the output tree by hand so that wire keys keep byte order.
// Letting yaml.v3 sort the maps would apply its numeric-aware key ordering.
func (e encodedDocument) yamlNode() (*yaml.Node, error) {
	root := mappingNode()

	overrides := mappingNode()
	for _, k := range slices.Sorted(maps.Keys(e.VersionOverrides)) {
		if err := appendPair(overrides, k, e.VersionOverrides[k]); err != nil {
			return nil, err
		}
	}
	if err := appendNode(root, fieldVersionOverrides, overrides); err != nil {
		return nil, err
	}

	v2 := mappingNode()
	for _, k := range slices.Sorted(maps.Keys(e.AcceptedBreaksV2)) {
		groups := sequenceNode()
		for _, g := range e.AcceptedBreaksV2[k] {
			group := mappingNode()
			if err := appendPair(group, fieldJustification, g.Justification); err != nil {
				return nil, err
			}
			breaks := sequenceNode()
			for _, b := range g.Breaks {
				n, err := encodeNode(value.ToGo(b))
				if err != nil {
					return nil, err
				}
				breaks.Content = append(breaks.Content, n)
			}
			if err := appendNode(group, fieldBreaks, breaks); err != nil {
				return nil, err
			}
			groups.Content = append(groups.Content, group)
		}
		if err := appendNode(v2, k, groups); err != nil {
			return nil, err
		}
	}
	if err := appendNode(root, fieldAcceptedBreaksV2, v2); err != nil {
		return nil, err
	}
	return root, nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

// encodeNode lets yaml.v3 pick the scalar style, so strings that would
// resolve to another type come out quoted.
func encodeNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func appendPair(mapping *yaml.Node, key string, v any) error {
	n, err := encodeNode(v)
	if err != nil {
		return err
	}
	return appendNode(mapping, key, n)
}

func appendNode(mapping *yaml.Node, key string, v *yaml.Node) error {
	k, err := encodeNode(key)
	if err != nil {
		return err
	}
	mapping.Content = append(mapping.Content, k, v)
	return nil
}
