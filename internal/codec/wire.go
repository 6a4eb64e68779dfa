package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// Field names of the persisted layout.
const (
	fieldVersionOverrides = "versionOverrides"
	fieldAcceptedBreaks   = "acceptedBreaks"
	fieldAcceptedBreaksV2 = "acceptedBreaksV2"
	fieldJustification    = "justification"
	fieldBreaks           = "breaks"
)

// wireDocument is the decode shape. It accepts the legacy field.
type wireDocument struct {
	VersionOverrides map[string]string                 `yaml:"versionOverrides" json:"versionOverrides"`
	AcceptedBreaks   map[string][]wireDescriptor       `yaml:"acceptedBreaks" json:"acceptedBreaks"`
	AcceptedBreaksV2 map[string][]wireJustifiedBreaks `yaml:"acceptedBreaksV2" json:"acceptedBreaksV2"`
}

type wireJustifiedBreaks struct {
	Justification *string          `yaml:"justification" json:"justification"`
	Breaks        []wireDescriptor `yaml:"breaks" json:"breaks"`
}

// wireDescriptor holds one undecoded break descriptor. Conversion is deferred
// to decodeBreaks so errors carry the field path.
type wireDescriptor struct {
	node *yaml.Node
	raw  json.RawMessage
}

func (d *wireDescriptor) UnmarshalYAML(n *yaml.Node) error {
	d.node = n
	return nil
}

func (d *wireDescriptor) UnmarshalJSON(data []byte) error {
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// decode converts the descriptor. A YAML null never reaches UnmarshalYAML and
// is reported as Null.
func (d wireDescriptor) decode() (value.Value, error) {
	switch {
	case d.node != nil:
		return value.FromYAMLNode(d.node)
	case d.raw != nil:
		return value.ParseJSON(d.raw)
	default:
		return value.Null{}, nil
	}
}

var (
	errNotObject            = errors.New("break descriptor must be an object")
	errMissingJustification = errors.New("justification is required")
)

// fields validates the decoded shape and converts it to document inputs.
// Keys are visited in sorted order so the reported error is stable.
func (w wireDocument) fields() (config.Fields, error) {
	overrides := make(map[config.GroupNameVersion]string, len(w.VersionOverrides))
	for _, raw := range slices.Sorted(maps.Keys(w.VersionOverrides)) {
		key, err := config.ParseGroupNameVersion(raw)
		if err != nil {
			return config.Fields{}, fieldError(fmt.Sprintf("%s[%q]", fieldVersionOverrides, raw), err)
		}
		overrides[key] = w.VersionOverrides[raw]
	}

	legacy := make(map[config.GroupNameVersion][]config.AcceptedBreak, len(w.AcceptedBreaks))
	for _, raw := range slices.Sorted(maps.Keys(w.AcceptedBreaks)) {
		path := fmt.Sprintf("%s[%q]", fieldAcceptedBreaks, raw)
		key, err := config.ParseGroupNameVersion(raw)
		if err != nil {
			return config.Fields{}, fieldError(path, err)
		}
		breaks, err := decodeBreaks(path, w.AcceptedBreaks[raw])
		if err != nil {
			return config.Fields{}, err
		}
		legacy[key] = append(legacy[key], breaks...)
	}

	native := make(map[config.GroupNameVersion][]config.JustifiedBreak, len(w.AcceptedBreaksV2))
	for _, raw := range slices.Sorted(maps.Keys(w.AcceptedBreaksV2)) {
		path := fmt.Sprintf("%s[%q]", fieldAcceptedBreaksV2, raw)
		key, err := config.ParseGroupNameVersion(raw)
		if err != nil {
			return config.Fields{}, fieldError(path, err)
		}
		for i, group := range w.AcceptedBreaksV2[raw] {
			groupPath := fmt.Sprintf("%s[%d]", path, i)
			if group.Justification == nil {
				return config.Fields{}, fieldError(groupPath+"."+fieldJustification, errMissingJustification)
			}
			breaks, err := decodeBreaks(groupPath+"."+fieldBreaks, group.Breaks)
			if err != nil {
				return config.Fields{}, err
			}
			j := config.Justification(*group.Justification)
			for _, b := range breaks {
				native[key] = append(native[key], config.JustifiedBreak{Justification: j, Break: b})
			}
		}
	}

	return config.Fields{
		VersionOverrides:     config.NewVersionOverrideTable(overrides),
		LegacyAcceptedBreaks: config.NewLegacyAcceptedBreaks(legacy),
		AcceptedBreaksV2:     config.NewStore(native),
	}, nil
}

func decodeBreaks(path string, raw []wireDescriptor) ([]config.AcceptedBreak, error) {
	out := make([]config.AcceptedBreak, 0, len(raw))
	for i, descriptor := range raw {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		v, err := descriptor.decode()
		if err != nil {
			return nil, fieldError(itemPath, err)
		}
		obj, ok := v.(value.Object)
		if !ok {
			return nil, fieldError(itemPath, errNotObject)
		}
		b, err := config.NewAcceptedBreak(obj)
		if err != nil {
			return nil, fieldError(itemPath, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// decodeWire finishes a decode for either framing.
func decodeWire(format Format, w wireDocument) (config.Document, error) {
	f, err := w.fields()
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Format = format
			return config.Document{}, de
		}
		return config.Document{}, &DecodeError{Format: format, Err: err}
	}
	return config.New(f), nil
}

// encodedDocument is the encode shape. It never carries the legacy field and
// both maps are always present.
type encodedDocument struct {
	VersionOverrides map[string]string         `json:"versionOverrides"`
	AcceptedBreaksV2 map[string][]encodedGroup `json:"acceptedBreaksV2"`
}

type encodedGroup struct {
	Justification string         `json:"justification"`
	Breaks        []value.Object `json:"breaks"`
}

// encode flattens the effective state of doc. Within a key, pairs sharing a
// justification form one group; groups follow justification order and breaks
// follow canonical order.
func encode(doc config.Document) encodedDocument {
	out := encodedDocument{
		VersionOverrides: make(map[string]string),
		AcceptedBreaksV2: make(map[string][]encodedGroup),
	}

	overrides := doc.VersionOverrides()
	for _, key := range overrides.Keys() {
		v, _ := overrides.Get(key)
		out.VersionOverrides[key.String()] = v
	}

	store := doc.AcceptedBreaksV2()
	for _, key := range store.Keys() {
		var groups []encodedGroup
		for _, pair := range store.AcceptedBreaksFor(key).Items() {
			j := pair.Justification.String()
			if n := len(groups); n == 0 || groups[n-1].Justification != j {
				groups = append(groups, encodedGroup{Justification: j})
			}
			last := &groups[len(groups)-1]
			last.Breaks = append(last.Breaks, pair.Break.Descriptor())
		}
		out.AcceptedBreaksV2[key.String()] = groups
	}
	return out
}

// toValue converts the encode shape into a value tree for canonical hashing.
func (e encodedDocument) toValue() value.Object {
	overrides := make(value.Object, len(e.VersionOverrides))
	for k, v := range e.VersionOverrides {
		overrides[k] = value.String(v)
	}
	v2 := make(value.Object, len(e.AcceptedBreaksV2))
	for k, groups := range e.AcceptedBreaksV2 {
		arr := make(value.Array, len(groups))
		for i, g := range groups {
			breaks := make(value.Array, len(g.Breaks))
			for j, b := range g.Breaks {
				breaks[j] = b
			}
			arr[i] = value.ObjectOf(
				value.P(fieldJustification, value.String(g.Justification)),
				value.P(fieldBreaks, breaks),
			)
		}
		v2[k] = arr
	}
	return value.ObjectOf(
		value.P(fieldVersionOverrides, overrides),
		value.P(fieldAcceptedBreaksV2, v2),
	)
}
