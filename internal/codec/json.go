package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/breakledger/internal/config"
)

var errNotAnObject = errors.New("top level must be an object")

type jsonCodec struct{}

func (jsonCodec) Format() Format { return FormatJSON }

// Decode reads JSON through the CUE parser, which accepts trailing commas in
// objects and arrays, then decodes the normalised JSON strictly.
func (jsonCodec) Decode(data []byte) (config.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return config.Empty(), nil
	}

	v := cuecontext.New().CompileBytes(data, cue.Filename("config.json"))
	if err := v.Err(); err != nil {
		return config.Document{}, cueDecodeError(err)
	}
	if v.Kind() != cue.StructKind {
		return config.Document{}, &DecodeError{Format: FormatJSON, Err: errNotAnObject}
	}
	normalised, err := v.MarshalJSON()
	if err != nil {
		return config.Document{}, cueDecodeError(err)
	}

	dec := json.NewDecoder(bytes.NewReader(normalised))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var w wireDocument
	if err := dec.Decode(&w); err != nil {
		return config.Document{}, &DecodeError{Format: FormatJSON, Err: err}
	}
	return decodeWire(FormatJSON, w)
}

// Encode writes indented JSON without HTML escaping and with a trailing
// newline.
func (jsonCodec) Encode(doc config.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encode(doc)); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// cueDecodeError keeps the first CUE error and its position.
func cueDecodeError(err error) *DecodeError {
	de := &DecodeError{Format: FormatJSON, Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return de
	}
	first := errs[0]
	de.Err = first
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		de.Pos = positions[0]
	}
	return de
}
