package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

// Name identifies the renderer in a render.Registry.
const Name = "html"

const formTemplate = "form"

// FormPartial is the theme partial key naming the template Render executes
// instead of form.tpl.
const FormPartial = "forms.form"

// ThemeStylesheetAsset is the theme asset key linked after the configured
// stylesheets when the render options carry an asset resolver.
const ThemeStylesheetAsset = "formbuilder.stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	classes          Classes
	action           string
	method           string
	inlineStyles     bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the strict policy applied to labels and options.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithClasses overrides chrome classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithAction sets the form action and method. Method defaults to POST.
func WithAction(action, method string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
		if m := strings.ToUpper(strings.TrimSpace(method)); m != "" {
			cfg.method = m
		}
	}
}

// WithDefaultStyles inlines the bundled grid stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer draws a render.Plan as an HTML document fragment.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	policy      *bluemonday.Policy
	classes     Classes
	action      string
	method      string
	inlineStyle string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		classes:    defaultClasses(),
		method:     "POST",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = defaultTextPolicy()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		tpl, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		engine = tpl
	}

	r := &Renderer{
		templates:   engine,
		policy:      cfg.policy,
		classes:     cfg.classes,
		action:      cfg.action,
		method:      cfg.method,
		stylesheets: append([]string(nil), cfg.stylesheets...),
	}
	if cfg.inlineStyles {
		r.inlineStyle = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render applies the subset and localisation options, then executes form.tpl.
func (r *Renderer) Render(ctx context.Context, plan render.Plan, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}

	prepared := render.Prepare(plan, opts)
	view := buildFormView(prepared, opts, r.policy, r.classes)
	view.Action = r.action
	view.Method = r.method
	view.Stylesheets = themeStylesheets(r.stylesheets, opts)
	view.InlineStyle = r.inlineStyle

	data := map[string]any{"form": view}
	for name, fn := range render.TemplateFuncs(opts.Locale, opts.Translator, opts.OnMissing) {
		data[name] = fn
	}

	out, err := r.templates.RenderTemplate(themeTemplate(opts), data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(out), nil
}

func themeStylesheets(base []string, opts render.RenderOptions) []string {
	out := append([]string(nil), base...)
	if opts.Theme == nil || opts.Theme.AssetURL == nil {
		return out
	}
	if href := strings.TrimSpace(opts.Theme.AssetURL(ThemeStylesheetAsset)); href != "" {
		out = append(out, href)
	}
	return out
}

func themeTemplate(opts render.RenderOptions) string {
	if opts.Theme != nil {
		if name := strings.TrimSpace(opts.Theme.Partials[FormPartial]); name != "" {
			return name
		}
	}
	return formTemplate
}
