package html

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/render"
	theme "github.com/goliatone/go-theme"
)

type formView struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Mode         string        `json:"mode"`
	Banner       string        `json:"banner"`
	SubmissionID string        `json:"submissionId"`
	ReadOnly     bool          `json:"readOnly"`
	Action       string        `json:"action"`
	Method       string        `json:"method"`
	Submit       string        `json:"submit"`
	Close        string        `json:"close"`
	Sections     []sectionView `json:"sections"`
	FormErrors   []string      `json:"formErrors"`
	Hidden       []hiddenView  `json:"hidden"`
	Classes      classView     `json:"classes"`
	Theme        themeView     `json:"theme"`
	Stylesheets  []string      `json:"stylesheets"`
	InlineStyle  string        `json:"inlineStyle"`
	Empty        bool          `json:"empty"`
}

type sectionView struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Rows  []rowView `json:"rows"`
}

type rowView struct {
	ID    string      `json:"id"`
	Cells []fieldView `json:"cells"`
}

type fieldView struct {
	ControlID    string       `json:"controlId"`
	Name         string       `json:"name"`
	Label        string       `json:"label"`
	Control      string       `json:"control"`
	InputType    string       `json:"inputType"`
	Span         int          `json:"span"`
	Width        int          `json:"width"`
	ShowRequired bool         `json:"showRequired"`
	LabelInline  bool         `json:"labelInline"`
	Disabled     bool         `json:"disabled"`
	ReadOnly     bool         `json:"readOnly"`
	Text         string       `json:"text"`
	Checked      bool         `json:"checked"`
	Rows         int          `json:"rows"`
	Options      []optionView `json:"options"`
	Errors       []string     `json:"errors"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type classView struct {
	Form    string `json:"form"`
	Header  string `json:"header"`
	Banner  string `json:"banner"`
	Section string `json:"section"`
	Grid    string `json:"grid"`
	Field   string `json:"field"`
	Actions string `json:"actions"`
	Errors  string `json:"errors"`
}

type themeView struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant"`
	CSSVars map[string]string `json:"cssVars"`
}

func buildFormView(plan render.Plan, opts render.RenderOptions, policy *bluemonday.Policy, classes Classes) formView {
	errs := render.FieldErrors(opts.Errors)

	view := formView{
		ID:           plan.FormID,
		Title:        plainText(policy, plan.Title),
		Mode:         plan.ModeName,
		Banner:       plan.Banner,
		SubmissionID: plan.SubmissionID,
		ReadOnly:     plan.ReadOnly,
		Submit:       plan.Submit,
		Close:        plan.Close,
		Sections:     make([]sectionView, 0, len(plan.Sections)),
		FormErrors:   render.MergeFormErrors(nil, opts.FormErrors...),
		Classes:      classView(classes),
		Theme:        buildThemeView(opts.Theme),
		Empty:        len(plan.Sections) == 0,
	}
	for _, hidden := range render.PlanHiddenFields(plan, opts.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}

	for _, section := range plan.Sections {
		sv := sectionView{
			ID:    section.ID,
			Label: plainText(policy, section.Label),
			Rows:  make([]rowView, 0, len(section.Rows)),
		}
		for _, row := range section.Rows {
			rv := rowView{ID: row.ID, Cells: make([]fieldView, 0, len(row.Cells))}
			for _, cell := range row.Cells {
				rv.Cells = append(rv.Cells, buildFieldView(cell, errs[cell.Name], policy))
			}
			sv.Rows = append(sv.Rows, rv)
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func buildFieldView(cell render.FieldView, errs []string, policy *bluemonday.Policy) fieldView {
	fv := fieldView{
		ControlID:    controlID(cell.Name),
		Name:         cell.Name,
		Label:        plainText(policy, cell.Label),
		Control:      cell.Control,
		Span:         cell.Span,
		Width:        cell.Width,
		ShowRequired: cell.ShowRequired,
		LabelInline:  cell.LabelInline,
		Disabled:     cell.Disabled,
		ReadOnly:     cell.ReadOnly,
		Text:         cell.Text,
		Checked:      cell.Checked,
		Rows:         cell.Rows,
		Errors:       errs,
	}
	if kind, ok := strings.CutPrefix(cell.Control, "input:"); ok {
		fv.Control = "input"
		fv.InputType = kind
	}
	for _, opt := range cell.Options {
		fv.Options = append(fv.Options, optionView{Value: opt.Value, Label: plainText(policy, opt.Label), Selected: opt.Selected})
	}
	return fv
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	vars := make(map[string]string, len(cfg.CSSVars))
	for key, value := range cfg.CSSVars {
		vars[key] = value
	}
	return themeView{Name: cfg.Theme, Variant: cfg.Variant, CSSVars: vars}
}
