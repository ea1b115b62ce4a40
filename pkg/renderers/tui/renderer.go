package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// DateLayout is the accepted format for date fields.
const DateLayout = "2006-01-02"

// Renderer implements render.Renderer for terminal sessions. In writable
// modes it prompts for every field of the plan and returns the collected
// values; in read-only modes it prints them without prompting.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render walks the plan in section, row, field order.
func (r *Renderer) Render(ctx context.Context, plan render.Plan, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	plan = render.Prepare(plan, opts)
	state := NewState(nil, render.FieldErrors(opts.Errors))
	for _, cell := range plan.Fields() {
		if cell.Value != nil {
			state.Set(cell.Name, cell.Value)
		}
	}

	if err := r.info(ctx, plan.Title); err != nil {
		return nil, err
	}
	if err := r.info(ctx, plan.Banner); err != nil {
		return nil, err
	}
	for _, msg := range render.MergeFormErrors(nil, opts.FormErrors...) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return nil, err
		}
	}

	for _, cell := range plan.Fields() {
		if plan.ReadOnly {
			if err := r.info(ctx, fmt.Sprintf("%s: %s", cell.Label, displayValue(cell, state))); err != nil {
				return nil, err
			}
			continue
		}
		for _, msg := range state.ErrorsFor(cell.Name) {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
		}
		if err := r.promptCell(ctx, cell, state); err != nil {
			return nil, err
		}
	}

	values := map[string]any(state.Values())
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) promptCell(ctx context.Context, cell render.FieldView, state *State) error {
	switch cell.Control {
	case widgets.ControlCheckbox:
		return r.promptCheckbox(ctx, cell, state)
	case widgets.ControlSelect:
		return r.promptSelect(ctx, cell, state)
	case widgets.ControlTextarea:
		return r.promptText(ctx, cell, state, true)
	case widgets.ControlNumber:
		return r.promptNumber(ctx, cell, state)
	case widgets.ControlDate:
		return r.promptDate(ctx, cell, state)
	default:
		return r.promptText(ctx, cell, state, false)
	}
}

func (r *Renderer) promptText(ctx context.Context, cell render.FieldView, state *State, multiline bool) error {
	for {
		var (
			input string
			err   error
		)
		if multiline {
			input, err = r.driver.TextArea(ctx, TextAreaConfig{Message: promptLabel(cell), Default: cell.Text})
		} else {
			input, err = r.driver.Input(ctx, InputConfig{
				Message:   promptLabel(cell),
				Default:   cell.Text,
				Validator: requiredValidator(cell),
			})
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" && cell.ShowRequired {
			if err := r.invalid(ctx, render.RequiredMessage(cell.Label)); err != nil {
				return err
			}
			continue
		}
		state.Set(cell.Name, input)
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, cell render.FieldView, state *State) error {
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: promptLabel(cell),
			Default: cell.Text,
			Help:    "A number",
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if cell.ShowRequired {
				if err := r.invalid(ctx, render.RequiredMessage(cell.Label)); err != nil {
					return err
				}
				continue
			}
			state.Set(cell.Name, nil)
			return nil
		}
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			if err := r.invalid(ctx, fmt.Sprintf("%s must be a number", cell.Label)); err != nil {
				return err
			}
			continue
		}
		state.Set(cell.Name, n)
		return nil
	}
}

func (r *Renderer) promptDate(ctx context.Context, cell render.FieldView, state *State) error {
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: promptLabel(cell),
			Default: cell.Text,
			Help:    "YYYY-MM-DD",
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if cell.ShowRequired {
				if err := r.invalid(ctx, render.RequiredMessage(cell.Label)); err != nil {
					return err
				}
				continue
			}
			state.Set(cell.Name, nil)
			return nil
		}
		if _, err := time.Parse(DateLayout, input); err != nil {
			if err := r.invalid(ctx, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", cell.Label)); err != nil {
				return err
			}
			continue
		}
		state.Set(cell.Name, input)
		return nil
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, cell render.FieldView, state *State) error {
	for {
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: promptLabel(cell), Default: cell.Checked})
		if err != nil {
			return err
		}
		if !checked && cell.ShowRequired {
			if err := r.invalid(ctx, render.RequiredMessage(cell.Label)); err != nil {
				return err
			}
			continue
		}
		state.Set(cell.Name, checked)
		return nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, cell render.FieldView, state *State) error {
	labels := make([]string, len(cell.Options))
	def := 0
	for i, opt := range cell.Options {
		labels[i] = opt.Label
		if opt.Selected {
			def = i
		}
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: promptLabel(cell), Options: labels, DefaultIndex: def})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(cell.Options) {
			value = cell.Options[idx].Value
		}
		if value == "" && cell.ShowRequired {
			if err := r.invalid(ctx, render.RequiredMessage(cell.Label)); err != nil {
				return err
			}
			continue
		}
		state.Set(cell.Name, value)
		return nil
	}
}

func (r *Renderer) invalid(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func promptLabel(cell render.FieldView) string {
	label := cell.Label
	if label == "" {
		label = cell.Name
	}
	if cell.ShowRequired {
		label += " *"
	}
	return label
}

func requiredValidator(cell render.FieldView) func(string) error {
	if !cell.ShowRequired {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(render.RequiredMessage(cell.Label))
		}
		return nil
	}
}

func displayValue(cell render.FieldView, state *State) string {
	value, ok := state.Get(cell.Name)
	if cell.Control == widgets.ControlCheckbox {
		if ok && render.Truthy(value) {
			return "yes"
		}
		return "no"
	}
	text := render.ValueText(value)
	if !ok || strings.TrimSpace(text) == "" {
		return "-"
	}
	return text
}

func formEncode(values map[string]any) string {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, render.ValueText(value))
	}
	return form.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, render.ValueText(values[key]))
	}
	return b.String()
}
