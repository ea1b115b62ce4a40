package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ImportError carries the schema issues that rejected an imported document.
type ImportError struct {
	Issues []validation.SchemaIssue
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return "orchestrator: invalid form config: " + strings.Join(parts, "; ")
}

// DetectFormat guesses the codec of data: JSON when it starts with an object,
// YAML for other text, msgpack for binary payloads.
func DetectFormat(data []byte) layout.Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		return layout.FormatJSON
	case utf8.Valid(trimmed):
		return layout.FormatYAML
	default:
		return layout.FormatMsgpack
	}
}

// ParseConfig checks data against the form config schema and decodes it. An
// empty format is detected from the payload. Schema findings and ids or
// field names used twice come back as an *ImportError.
func ParseConfig(data []byte, format layout.Format) (layout.FormConfig, error) {
	if format == "" {
		format = DetectFormat(data)
	}
	doc, err := schemaDocument(data, format)
	if err != nil {
		return layout.FormConfig{}, err
	}
	if issues := validation.ValidateDocument(doc); len(issues) > 0 {
		return layout.FormConfig{}, &ImportError{Issues: issues}
	}
	cfg, err := layout.Decode(format, data)
	if err != nil {
		return layout.FormConfig{}, fmt.Errorf("orchestrator: import: %w", err)
	}
	if err := builder.CheckUnique(cfg); err != nil {
		var dup *builder.DuplicateError
		if errors.As(err, &dup) {
			return layout.FormConfig{}, &ImportError{Issues: []validation.SchemaIssue{{
				Path:    dup.Path,
				Field:   strings.ReplaceAll(strings.TrimPrefix(dup.Path, "/"), "/", "."),
				Message: fmt.Sprintf("%s %q is already used", duplicateKind(dup), dup.Value),
			}}}
		}
		return layout.FormConfig{}, fmt.Errorf("orchestrator: import: %w", err)
	}
	return cfg, nil
}

func duplicateKind(dup *builder.DuplicateError) string {
	if errors.Is(dup, builder.ErrDuplicateName) {
		return "field name"
	}
	return "id"
}

// Import parses data and loads the result into the builder, replacing the
// live config. Structural findings do not block the import; callers run
// Validate afterwards.
func (o *Orchestrator) Import(data []byte, format layout.Format) (layout.FormConfig, error) {
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return layout.FormConfig{}, err
	}
	loaded, err := o.builder.Load(cfg)
	if err != nil {
		return layout.FormConfig{}, fmt.Errorf("orchestrator: import: %w", err)
	}
	return loaded, nil
}

// schemaDocument returns the JSON form of data for the schema check.
func schemaDocument(data []byte, format layout.Format) ([]byte, error) {
	switch format {
	case layout.FormatJSON:
		return data, nil
	case layout.FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("orchestrator: import: decode yaml: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: import: %w", err)
		}
		return out, nil
	case layout.FormatMsgpack:
		cfg, err := layout.Decode(format, data)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: import: %w", err)
		}
		return json.Marshal(cfg)
	default:
		return nil, fmt.Errorf("orchestrator: import: unknown format %q", format)
	}
}
