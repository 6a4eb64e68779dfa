package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/breakledger/internal/config"
)

// Format names a persisted framing.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for formats and file extensions no codec
// handles.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Codec converts between a framing and config.Document.
type Codec interface {
	Format() Format

	// Decode parses data into a document. It is all-or-nothing: on error no
	// document is returned. Empty input decodes to config.Empty().
	Decode(data []byte) (config.Document, error)

	// Encode writes the effective state of doc. Output is deterministic.
	Encode(doc config.Document) ([]byte, error)
}

// YAML returns the YAML codec.
func YAML() Codec { return yamlCodec{} }

// JSON returns the JSON codec.
func JSON() Codec { return jsonCodec{} }

// ForFormat returns the codec for f.
func ForFormat(f Format) (Codec, error) {
	switch f {
	case FormatYAML:
		return YAML(), nil
	case FormatJSON:
		return JSON(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ForPath returns the codec for the file extension of path.
func ForPath(path string) (Codec, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return ForFormat(f)
}
