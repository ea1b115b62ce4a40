package orchestrator

import (
	"context"
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}
	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}
	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
		WithTheme("custom-theme", "custom-variant"),
	)

	if _, err := orch.Render(context.Background(), "", render.Plan{Title: "x"}, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != selection.Theme || cfg.Variant != selection.Variant {
		t.Fatalf("theme mismatch: got %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.Partials[html.FormPartial]; got != defaultThemeFallbacks()[html.FormPartial] {
		t.Fatalf("partials not merged with fallbacks, got %s", got)
	}
	if cfg.Tokens["brand"] != "#123456" {
		t.Fatalf("tokens not propagated")
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens")
	}
}

func TestOrchestrator_ExplicitThemeSkipsSelector(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme"}}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithRegistry(registry), WithThemeSelector(selector))
	explicit := &theme.RendererConfig{Theme: "mine"}
	if _, err := orch.Render(context.Background(), "capture", render.Plan{}, render.RenderOptions{Theme: explicit}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("expected selector to be skipped")
	}
	if renderer.options.Theme != explicit {
		t.Fatalf("expected explicit theme to be kept")
	}
}

func TestOrchestrator_ThemeSelectorError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("boom")}
	registry := render.NewRegistry()
	registry.MustRegister(&captureRenderer{})

	orch := New(WithRegistry(registry), WithThemeSelector(selector))
	if _, err := orch.Render(context.Background(), "", render.Plan{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected selector error")
	}
}

func TestManifestSelector_MergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			html.FormPartial: "acme-form",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				html.ThemeStylesheetAsset: "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.checkbox": "acme-dark-checkbox",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"formbuilder.script": "vendor.dark.js",
					},
				},
			},
		},
	}

	selector := NewManifestSelector(DefaultManifest(), manifest)
	selector.SetDefault("acme", "dark")

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := RendererConfig(selection)

	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials[html.FormPartial] != "acme-form" {
		t.Fatalf("expected base template override, got %s", cfg.Partials[html.FormPartial])
	}
	if cfg.Partials["forms.checkbox"] != "acme-dark-checkbox" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials["forms.checkbox"])
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if got := cfg.AssetURL("formbuilder.script"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL(html.ThemeStylesheetAsset); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %s", got)
	}

	if _, err := selector.Select("nope", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select("acme", "sepia"); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for variant, got %v", err)
	}
}

func TestManifestSelector_DefaultsToFirstManifest(t *testing.T) {
	selector := NewManifestSelector(DefaultManifest())
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "formbuilder" || selection.Variant != "" {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}
	cfg := RendererConfig(selection)
	if cfg.CSSVars["--fb-primary"] != "#2563eb" {
		t.Fatalf("unexpected css vars %v", cfg.CSSVars)
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, plan render.Plan, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(plan.Title), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
