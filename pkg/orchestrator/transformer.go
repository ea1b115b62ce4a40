package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Transformer mutates a preview plan before it reaches a renderer.
// Implementations can relabel fields, rename options or rewrite captions.
type Transformer interface {
	Transform(ctx context.Context, plan *render.Plan) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, plan *render.Plan) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, plan *render.Plan) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, plan)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON
// document. Sections are addressed by id and fields by name:
//
//	{
//	  "title": "Contact",
//	  "submit": "Send",
//	  "sections": {"sec-details": {"label": "About you"}},
//	  "fields": {
//	    "topic": {"label": "Subject", "options": {"Sales": "Buying"}}
//	  }
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                   `json:"title"`
	Banner   string                   `json:"banner"`
	Submit   string                   `json:"submit"`
	Close    string                   `json:"close"`
	Sections map[string]sectionPreset `json:"sections"`
	Fields   map[string]fieldPreset   `json:"fields"`
}

type sectionPreset struct {
	Label string `json:"label"`
}

type fieldPreset struct {
	Label   string            `json:"label"`
	Options map[string]string `json:"options"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON preset document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the presets onto plan. Names missing from the plan are
// skipped, since a subset or an edited layout may have dropped them.
func (t *JSONPresetTransformer) Transform(ctx context.Context, plan *render.Plan) error {
	if plan == nil {
		return errors.New("json preset transformer: plan is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	plan.Title = override(plan.Title, doc.Title)
	plan.Banner = override(plan.Banner, doc.Banner)
	if plan.Submit != "" {
		plan.Submit = override(plan.Submit, doc.Submit)
	}
	plan.Close = override(plan.Close, doc.Close)

	for si := range plan.Sections {
		section := &plan.Sections[si]
		if preset, ok := doc.Sections[section.ID]; ok {
			section.Label = override(section.Label, preset.Label)
		}
		for ri := range section.Rows {
			cells := section.Rows[ri].Cells
			for ci := range cells {
				if preset, ok := doc.Fields[cells[ci].Name]; ok {
					applyFieldPreset(&cells[ci], preset)
				}
			}
		}
	}
	return nil
}

func applyFieldPreset(cell *render.FieldView, preset fieldPreset) {
	cell.Label = override(cell.Label, preset.Label)
	for i := range cell.Options {
		if label, ok := preset.Options[cell.Options[i].Value]; ok && cell.Options[i].Value != "" {
			cell.Options[i].Label = override(cell.Options[i].Label, label)
		}
	}
}

func override(current, next string) string {
	if strings.TrimSpace(next) == "" {
		return current
	}
	return next
}
