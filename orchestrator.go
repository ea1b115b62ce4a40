package formbuilder

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// FormConfig is the root of a form layout.
type FormConfig = layout.FormConfig

// Values maps field names to submitted values.
type Values = layout.Values

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// Artifact is an exported submission ready to be written or downloaded.
type Artifact = orchestrator.Artifact

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a create preview of cfg with the named renderer. An
// empty name uses the orchestrator's default renderer.
func GenerateHTML(ctx context.Context, cfg FormConfig, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	options = append([]orchestrator.Option{
		orchestrator.WithBuilder(builder.NewSession(builder.WithInitialConfig(cfg))),
	}, options...)
	gen := orchestrator.New(options...)
	session, err := gen.OpenPreview(render.Create{})
	if err != nil {
		return nil, err
	}
	return gen.Render(ctx, rendererName, session.Plan(), RenderOptions{})
}

// GenerateHTMLFromDocument parses a JSON, YAML or msgpack form config and
// renders it like GenerateHTML.
func GenerateHTMLFromDocument(ctx context.Context, data []byte, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	cfg, err := orchestrator.ParseConfig(data, "")
	if err != nil {
		return nil, err
	}
	return GenerateHTML(ctx, cfg, rendererName, options...)
}

// ExportSubmission renders values entered into cfg as a downloadable
// document in the given format ("text" or "html").
func ExportSubmission(cfg FormConfig, values Values, format string, options ...orchestrator.Option) (Artifact, error) {
	gen := orchestrator.New(options...)
	id := gen.History().Add(cfg, values)
	return gen.Export(id, format)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests registers manifests with a ManifestSelector. The first
// manifest is the default theme.
func WithThemeManifests(manifests ...*theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemeSelector(orchestrator.NewManifestSelector(manifests...))
}
