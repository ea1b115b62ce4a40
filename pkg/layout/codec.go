package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names a serialisation used at the session persistence boundary.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

var (
	errUnknownFormat = errors.New("layout: unknown format")
	errEmptyDocument = errors.New("layout: document is empty")
)

// ParseFormat resolves a format name or alias ("yml", "mp").
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w %q", errUnknownFormat, raw)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	format, err := ParseFormat(ext)
	if err != nil {
		return FormatJSON
	}
	return format
}

// Encode serialises the config in the requested format.
func Encode(format Format, cfg FormConfig) ([]byte, error) {
	return encode(format, cfg)
}

// Decode parses a config previously produced by Encode.
func Decode(format Format, data []byte) (FormConfig, error) {
	var cfg FormConfig
	if err := decode(format, data, &cfg); err != nil {
		return FormConfig{}, err
	}
	return cfg, nil
}

// EncodeValues serialises a values map in the requested format.
func EncodeValues(format Format, values Values) ([]byte, error) {
	return encode(format, values)
}

// DecodeValues parses a values map. YAML documents decode into the same
// scalar shapes JSON produces.
func DecodeValues(format Format, data []byte) (Values, error) {
	var values Values
	if err := decode(format, data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func encode(format Format, value any) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("layout: encode json: %w", err)
		}
		return out, nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return nil, fmt.Errorf("layout: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("layout: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		out, err := msgpack.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("layout: encode msgpack: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}

func decode(format Format, data []byte, target any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyDocument
	}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("layout: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("layout: decode yaml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, target); err != nil {
			return fmt.Errorf("layout: decode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
	return nil
}
