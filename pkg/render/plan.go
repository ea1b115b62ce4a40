package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const (
	// SelectPlaceholder labels the empty option prepended to select fields.
	SelectPlaceholder = "Select"
	// CloseLabel captions the button that dismisses a preview.
	CloseLabel = "Close"
	// TextareaRows is the default height of multi-line inputs.
	TextareaRows = 3
)

// Plan is the renderer-neutral description of a preview: what to draw and
// how each control behaves in the current mode.
type Plan struct {
	FormID       string        `json:"formId"`
	Title        string        `json:"title"`
	Mode         Mode          `json:"-"`
	ModeName     string        `json:"mode"`
	Banner       string        `json:"banner"`
	SubmissionID string        `json:"submissionId,omitempty"`
	ReadOnly     bool          `json:"readOnly"`
	Sections     []SectionPlan `json:"sections"`
	Submit       string        `json:"submit,omitempty"`
	Close        string        `json:"close"`
	Columns      int           `json:"columns"`
}

// SectionPlan is one rendered section.
type SectionPlan struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Rows  []RowPlan `json:"rows"`
}

// RowPlan is one 12-column grid line.
type RowPlan struct {
	ID    string      `json:"id"`
	Cells []FieldView `json:"cells"`
}

// FieldView is a single control with everything a renderer needs.
type FieldView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Label        string           `json:"label"`
	Type         layout.FieldType `json:"type"`
	Control      string           `json:"control"`
	Size         layout.FieldSize `json:"size"`
	Span         int              `json:"span"`
	Width        int              `json:"width"`
	Required     bool             `json:"required"`
	ShowRequired bool             `json:"showRequired"`
	LabelInline  bool             `json:"labelInline"`
	Disabled     bool             `json:"disabled"`
	ReadOnly     bool             `json:"readOnly"`
	Value        any              `json:"value,omitempty"`
	Text         string           `json:"text"`
	Checked      bool             `json:"checked,omitempty"`
	Rows         int              `json:"rows,omitempty"`
	Options      []Option         `json:"options,omitempty"`
}

// Option is one entry of a select control.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Fields flattens the plan in traversal order.
func (p Plan) Fields() []FieldView {
	var out []FieldView
	for _, section := range p.Sections {
		for _, row := range section.Rows {
			out = append(out, row.Cells...)
		}
	}
	return out
}

// Clone returns a copy of p that shares no slices with it.
func (p Plan) Clone() Plan {
	out := p
	if p.Sections == nil {
		return out
	}
	out.Sections = make([]SectionPlan, len(p.Sections))
	for si, section := range p.Sections {
		rows := make([]RowPlan, len(section.Rows))
		for ri, row := range section.Rows {
			cells := make([]FieldView, len(row.Cells))
			copy(cells, row.Cells)
			for ci := range cells {
				if cells[ci].Options != nil {
					cells[ci].Options = append([]Option(nil), cells[ci].Options...)
				}
			}
			rows[ri] = RowPlan{ID: row.ID, Cells: cells}
		}
		out.Sections[si] = SectionPlan{ID: section.ID, Label: section.Label, Rows: rows}
	}
	return out
}

// PlanOption customises BuildPlan.
type PlanOption func(*planConfig)

type planConfig struct {
	controls *widgets.Registry
}

// WithControls overrides the control registry used to pick inputs.
func WithControls(reg *widgets.Registry) PlanOption {
	return func(c *planConfig) {
		if reg != nil {
			c.controls = reg
		}
	}
}

var defaultControls = widgets.NewRegistry()

// BuildPlan lays cfg out for mode with values pre-filled. Sections are only
// planned when the config has them enabled.
func BuildPlan(cfg layout.FormConfig, mode Mode, values layout.Values, opts ...PlanOption) Plan {
	if mode == nil {
		mode = Create{}
	}
	conf := planConfig{controls: defaultControls}
	for _, opt := range opts {
		if opt != nil {
			opt(&conf)
		}
	}

	readOnly := ReadOnly(mode)
	plan := Plan{
		FormID:       cfg.ID,
		Title:        cfg.Label,
		Mode:         mode,
		ModeName:     ModeName(mode),
		Banner:       Describe(mode),
		SubmissionID: SubmissionID(mode),
		ReadOnly:     readOnly,
		Submit:       SubmitLabel(mode),
		Close:        CloseLabel,
		Columns:      layout.GridColumns,
		Sections:     []SectionPlan{},
	}
	if !cfg.SectionsEnabled {
		return plan
	}

	for _, section := range cfg.Sections {
		sp := SectionPlan{ID: section.ID, Label: section.Label, Rows: make([]RowPlan, 0, len(section.Rows))}
		for _, row := range section.Rows {
			rp := RowPlan{ID: row.ID, Cells: make([]FieldView, 0, len(row.Fields))}
			for _, field := range row.Fields {
				rp.Cells = append(rp.Cells, buildFieldView(field, mode, values, conf.controls))
			}
			sp.Rows = append(sp.Rows, rp)
		}
		plan.Sections = append(plan.Sections, sp)
	}
	return plan
}

func buildFieldView(field layout.Field, mode Mode, values layout.Values, controls *widgets.Registry) FieldView {
	readOnly := ReadOnly(mode)
	control := controls.ResolveOr(field, widgets.ControlText)
	value, hasValue := values[field.Name]

	view := FieldView{
		ID:           field.ID,
		Name:         field.Name,
		Label:        field.Label,
		Type:         field.Type,
		Control:      control,
		Size:         field.Size,
		Span:         field.Size.Span(),
		Width:        field.Size.Percent(),
		Required:     field.Required,
		ShowRequired: field.Required && !readOnly,
		LabelInline:  widgets.LabelInline(control),
		Disabled:     readOnly,
		ReadOnly:     isLayoutEdit(mode),
	}
	if hasValue {
		view.Value = value
		view.Text = ValueText(value)
	}

	switch control {
	case widgets.ControlCheckbox:
		view.Checked = Truthy(value)
	case widgets.ControlTextarea:
		view.Rows = TextareaRows
	case widgets.ControlSelect:
		view.Options = make([]Option, 0, len(field.Options)+1)
		view.Options = append(view.Options, Option{Value: "", Label: SelectPlaceholder, Selected: view.Text == ""})
		for _, opt := range field.Options {
			view.Options = append(view.Options, Option{Value: opt, Label: opt, Selected: hasValue && view.Text == opt})
		}
	}
	return view
}

func isLayoutEdit(mode Mode) bool {
	_, ok := mode.(LayoutEdit)
	return ok
}

// ValueText formats a stored value for display in an input.
func ValueText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Truthy interprets checkbox values coming from JSON, form posts or YAML.
func Truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1", "checked":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
