package html_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	theme "github.com/goliatone/go-theme"
)

func TestRenderer_CreateMode(t *testing.T) {
	out := renderPlan(t, render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil), render.RenderOptions{})

	for _, want := range []string{
		`<h2>Contact Us</h2>`,
		`Mode: Create - Submit new form`,
		`data-mode="create"`,
		`<input type="hidden" name="_form" value="form-1">`,
		`<input type="hidden" name="_mode" value="create">`,
		`<fieldset id="sec-details" class="fb-section">`,
		`<div class="fb-field fb-col-6" data-width="50%">`,
		`<div class="fb-field fb-col-12" data-width="100%">`,
		`<input type="text" id="fb-full_name" name="full_name" value="" required>`,
		`<input type="number" id="fb-age" name="age" value="">`,
		`<input type="date" id="fb-visit" name="visit" value="">`,
		`<option value="" selected>Select</option>`,
		`<option value="Sales">Sales</option>`,
		`<textarea id="fb-message" name="message" rows="3" required></textarea>`,
		`<input type="checkbox" id="fb-consent" name="consent" value="true" required> I agree <span class="fb-required">*</span>`,
		`<button type="submit">Submit</button>`,
		`<button type="button" data-action="close">Close</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "_submission") {
		t.Errorf("create mode should not carry a submission id")
	}
}

func TestRenderer_ViewModeIsReadOnly(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.View{SubmissionID: "sub-1"}, testsupport.ContactValues())
	out := renderPlan(t, plan, render.RenderOptions{})

	for _, want := range []string{
		`Mode: View - Read only`,
		`<input type="hidden" name="_submission" value="sub-1">`,
		`<input type="text" id="fb-full_name" name="full_name" value="Ada Lovelace" disabled>`,
		`<input type="number" id="fb-age" name="age" value="36" disabled>`,
		`<option value="Support" selected>Support</option>`,
		`value="true" checked disabled> I agree</label>`,
		`<textarea id="fb-message" name="message" rows="3" disabled>Hello</textarea>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, `type="submit"`) {
		t.Errorf("view mode must not render a submit button")
	}
	if strings.Contains(out, "fb-required") {
		t.Errorf("view mode must not mark required fields")
	}
}

func TestRenderer_LayoutEditUsesReadonlyControls(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.LayoutEdit{SubmissionID: "sub-1"}, testsupport.ContactValues())
	out := renderPlan(t, plan, render.RenderOptions{})

	if !strings.Contains(out, `value="Ada Lovelace" disabled readonly>`) {
		t.Fatalf("expected readonly text input\n%s", out)
	}
	if !strings.Contains(out, `<button type="submit">Save Edited Layout</button>`) {
		t.Fatalf("expected layout-edit submit caption\n%s", out)
	}
}

func TestRenderer_SectionsDisabledRendersEmptyState(t *testing.T) {
	cfg := testsupport.ContactForm()
	cfg.SectionsEnabled = false

	out := renderPlan(t, render.BuildPlan(cfg, render.Create{}, nil), render.RenderOptions{})
	if strings.Contains(out, "<fieldset") {
		t.Fatalf("expected no sections\n%s", out)
	}
	if !strings.Contains(out, "No sections to display.") {
		t.Fatalf("expected empty state\n%s", out)
	}
}

func TestRenderer_SanitisesUserText(t *testing.T) {
	cfg := testsupport.ContactForm()
	cfg.Label = `<script>alert(1)</script>Survey`
	cfg.Sections[0].Rows[0].Fields[0].Label = `<b>Full</b> name`
	cfg.Sections[0].Rows[1].Fields[0].Options = []string{`<i>Sales</i>`}

	out := renderPlan(t, render.BuildPlan(cfg, render.Create{}, nil), render.RenderOptions{})

	if strings.Contains(out, "<b>") || strings.Contains(out, "<script>") || strings.Contains(out, "<i>") {
		t.Fatalf("expected markup to be stripped\n%s", out)
	}
	if !strings.Contains(out, `<h2>Survey</h2>`) {
		t.Fatalf("expected sanitised title\n%s", out)
	}
	if !strings.Contains(out, `>Full name <span class="fb-required">*</span></label>`) {
		t.Fatalf("expected sanitised label\n%s", out)
	}
}

func TestRenderer_FieldAndFormErrors(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil)
	out := renderPlan(t, plan, render.RenderOptions{
		Errors:     map[string][]string{"full_name": {"Full name is required", "Full name is required"}},
		FormErrors: []string{"Please fix the errors below"},
	})

	if got := strings.Count(out, `<p class="fb-errors">Full name is required</p>`); got != 1 {
		t.Fatalf("expected one deduplicated field error, got %d\n%s", got, out)
	}
	if !strings.Contains(out, `<li>Please fix the errors below</li>`) {
		t.Fatalf("expected form error\n%s", out)
	}
}

func TestRenderer_ThemeCSSVars(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil)
	out := renderPlan(t, plan, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--fb-primary": "#123456"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key
			},
		},
	})

	for _, want := range []string{
		`data-theme="acme"`,
		`data-variant="dark"`,
		`style="--fb-primary: #123456;"`,
		`<link rel="stylesheet" href="/themes/acme/formbuilder.stylesheet">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_SubsetAndHidden(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil)
	out := renderPlan(t, plan, render.RenderOptions{
		Subset: render.FieldSubset{Sections: []string{"sec-message"}},
		Hidden: map[string]string{"csrf": "token"},
	})

	if strings.Contains(out, "full_name") {
		t.Fatalf("expected details section to be filtered out\n%s", out)
	}
	if !strings.Contains(out, `name="message"`) {
		t.Fatalf("expected message section\n%s", out)
	}
	if !strings.Contains(out, `<input type="hidden" name="csrf" value="token">`) {
		t.Fatalf("expected extra hidden input\n%s", out)
	}
}

func TestRenderer_Localisation(t *testing.T) {
	plan := render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil)
	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "preview.create.submit" {
			return "Enviar", nil
		}
		return "", nil
	})

	out := renderPlan(t, plan, render.RenderOptions{Locale: "es", Translator: translator})
	if !strings.Contains(out, `<button type="submit">Enviar</button>`) {
		t.Fatalf("expected localised submit\n%s", out)
	}
}

func TestRenderer_OptionsAndStyles(t *testing.T) {
	renderer, err := html.New(
		html.WithAction("/submissions", "put"),
		html.WithDefaultStyles(),
		html.WithStylesheet("/assets/custom.css"),
		html.WithClasses(html.Classes{Form: "my-form fb-hack"}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), render.BuildPlan(testsupport.ContactForm(), render.Create{}, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		`action="/submissions" method="put"`,
		`class="my-form"`,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`.fb-col-12 {`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer, err := html.New(html.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), render.BuildPlan(layout.FormConfig{ID: "f"}, render.Create{}, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" || stub.name != "form" {
		t.Fatalf("unexpected stub usage: out=%q name=%q", out, stub.name)
	}
	if _, ok := stub.data.(map[string]any)["form"]; !ok {
		t.Fatalf("expected form view in template data")
	}
}

func TestRenderer_ThemePartialSelectsTemplate(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer, err := html.New(html.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = renderer.Render(context.Background(), render.Plan{}, render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{html.FormPartial: "compact"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stub.name != "compact" {
		t.Fatalf("expected theme partial to select template, got %q", stub.name)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, render.Plan{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func renderPlan(t *testing.T, plan render.Plan, opts render.RenderOptions) string {
	t.Helper()

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
	out, err := renderer.Render(testsupport.Context(), plan, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

type stubTemplateRenderer struct {
	name string
	data any
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	return "custom-output", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
