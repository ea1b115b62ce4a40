package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const defaultRendererName = html.Name

var (
	// ErrNoLayoutEdit is returned when a layout edit step runs before
	// BeginLayoutEdit.
	ErrNoLayoutEdit = errors.New("orchestrator: no layout edit in progress")
	// ErrSubmissionNotFound reports an unknown submission id.
	ErrSubmissionNotFound = render.ErrSubmissionNotFound
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilder injects the builder session holding the live config.
func WithBuilder(session *builder.Session) Option {
	return func(o *Orchestrator) {
		o.builder = session
	}
}

// WithHistory injects the submission store.
func WithHistory(store *history.Store) Option {
	return func(o *Orchestrator) {
		o.history = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without a name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger injects the logger shared with the default builder and store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValuesValidator replaces the typed values check run on Create and Edit
// submits. Pass nil to disable it.
func WithValuesValidator(fn render.ValuesValidator) Option {
	return func(o *Orchestrator) {
		o.validator = fn
		o.validatorSet = true
	}
}

// WithPlanTransformer registers a Transformer run against every plan before
// it reaches a renderer.
func WithPlanTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithExporters replaces the export format registry.
func WithExporters(registry *ExporterRegistry) Option {
	return func(o *Orchestrator) {
		o.exporters = registry
	}
}

// WithClock overrides the time stamped on exported documents.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator coordinates a builder session, its submission history and the
// renderers used to preview it. Missing dependencies are initialised with the
// built-in implementations so callers can start with a single constructor
// call.
type Orchestrator struct {
	builder         *builder.Session
	history         *history.Store
	registry        *render.Registry
	exporters       *ExporterRegistry
	defaultRenderer string
	logger          *slog.Logger
	validator       render.ValuesValidator
	validatorSet    bool
	transformers    []Transformer
	now             func() time.Time

	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string

	mu         sync.Mutex
	layoutEdit *layoutEdit
	initErr    error
}

type layoutEdit struct {
	submissionID string
	values       layout.Values
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.builder == nil {
		o.builder = builder.NewSession(builder.WithLogger(o.logger))
	}
	if o.history == nil {
		o.history = history.New(history.WithLogger(o.logger))
	}
	if !o.validatorSet {
		o.validator = openapi.Validator()
	}
	if o.exporters == nil {
		o.exporters = DefaultExporters()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// Builder returns the live builder session.
func (o *Orchestrator) Builder() *builder.Session {
	return o.builder
}

// History returns the submission store.
func (o *Orchestrator) History() *history.Store {
	return o.history
}

// Registry returns the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Exporters returns the export format registry.
func (o *Orchestrator) Exporters() *ExporterRegistry {
	return o.exporters
}

// Config returns a copy of the live builder config.
func (o *Orchestrator) Config() layout.FormConfig {
	return o.builder.State()
}

// Dispatch forwards action to the builder session.
func (o *Orchestrator) Dispatch(action builder.Action) (layout.FormConfig, error) {
	return o.builder.Dispatch(action)
}

// Undo reverts the last applied builder action.
func (o *Orchestrator) Undo() bool {
	return o.builder.Undo()
}

// Validate runs the settings and structural checks against the live config.
// An empty result means the form can be previewed.
func (o *Orchestrator) Validate() []validation.LayoutError {
	return validation.Validate(o.builder.State())
}

// OpenPreview starts a preview session. Create and LayoutEdit preview the
// live builder config; Edit and View preview the config stored with the
// submission.
func (o *Orchestrator) OpenPreview(mode render.Mode, opts ...render.SessionOption) (*render.Session, error) {
	var cfg layout.FormConfig
	switch m := mode.(type) {
	case render.Create, render.LayoutEdit:
		cfg = o.builder.State()
	case render.Edit, render.View:
		submission, ok := o.history.Get(render.SubmissionID(m))
		if !ok {
			return nil, fmt.Errorf("orchestrator: open preview: %w: %q", ErrSubmissionNotFound, render.SubmissionID(m))
		}
		cfg = submission.Config
	default:
		return nil, fmt.Errorf("orchestrator: open preview: %w", render.ErrUnknownMode)
	}

	sessionOpts := []render.SessionOption{render.WithSessionLogger(o.logger)}
	if o.validator != nil {
		sessionOpts = append(sessionOpts, render.WithValuesValidator(o.validator))
	}
	sessionOpts = append(sessionOpts, opts...)

	session, err := render.Open(cfg, mode, o.history, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: open preview: %w", err)
	}
	return session, nil
}

// BeginLayoutEdit loads the config stored with submission id into the
// builder so its structure can be changed. The builder switches to the
// create view type with sections enabled, and the submission's values are
// kept aside for PreviewLayoutEdit.
func (o *Orchestrator) BeginLayoutEdit(id string) (layout.FormConfig, error) {
	submission, ok := o.history.Get(id)
	if !ok {
		return layout.FormConfig{}, fmt.Errorf("orchestrator: begin layout edit: %w: %q", ErrSubmissionNotFound, id)
	}

	cfg := submission.Config.Clone()
	cfg.ViewType = layout.ViewTypeCreate
	cfg.SectionsEnabled = true
	loaded, err := o.builder.Load(cfg)
	if err != nil {
		return layout.FormConfig{}, fmt.Errorf("orchestrator: begin layout edit: %w", err)
	}

	o.mu.Lock()
	o.layoutEdit = &layoutEdit{submissionID: id, values: submission.Values.Clone()}
	o.mu.Unlock()

	o.logger.Debug("layout edit started", slog.String("submission", id))
	return loaded, nil
}

// LayoutEditTarget reports the submission being restructured, if any.
func (o *Orchestrator) LayoutEditTarget() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.layoutEdit == nil {
		return "", false
	}
	return o.layoutEdit.submissionID, true
}

// PreviewLayoutEdit opens a LayoutEdit preview of the live config showing
// the values of the submission passed to BeginLayoutEdit. A successful
// submit stores the layout and ends the layout edit.
func (o *Orchestrator) PreviewLayoutEdit(opts ...render.SessionOption) (*render.Session, error) {
	o.mu.Lock()
	edit := o.layoutEdit
	o.mu.Unlock()
	if edit == nil {
		return nil, ErrNoLayoutEdit
	}

	mode := render.LayoutEdit{SubmissionID: edit.submissionID, ExistingValues: edit.values.Clone()}
	opts = append([]render.SessionOption{render.WithLayoutSaved(func(id string) {
		o.finishLayoutEdit(id)
	})}, opts...)
	return o.OpenPreview(mode, opts...)
}

// FinishLayoutEdit forgets the submission passed to BeginLayoutEdit without
// storing anything.
func (o *Orchestrator) FinishLayoutEdit() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.layoutEdit != nil {
		o.logger.Debug("layout edit finished", slog.String("submission", o.layoutEdit.submissionID))
	}
	o.layoutEdit = nil
}

func (o *Orchestrator) finishLayoutEdit(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.layoutEdit != nil && o.layoutEdit.submissionID == id {
		o.layoutEdit = nil
		o.logger.Debug("layout edit saved", slog.String("submission", id))
	}
}

// DeleteSubmission removes submission id from history. A layout edit of that
// submission ends with it, so a later save cannot reach a deleted record.
func (o *Orchestrator) DeleteSubmission(id string) bool {
	if !o.history.Delete(id) {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.layoutEdit != nil && o.layoutEdit.submissionID == id {
		o.layoutEdit = nil
		o.logger.Debug("layout edit dropped", slog.String("submission", id))
	}
	return true
}

// ClearHistory empties the history and ends any layout edit.
func (o *Orchestrator) ClearHistory() {
	o.history.ClearAll()
	o.FinishLayoutEdit()
}

// Render draws plan with the named renderer, falling back to the default
// renderer when name is empty. Configured transformers run on a copy of the
// plan and the selected theme is attached to options unless the caller set
// one.
func (o *Orchestrator) Render(ctx context.Context, name string, plan render.Plan, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}

	plan = plan.Clone()
	if err := o.applyTransformers(ctx, &plan); err != nil {
		return nil, err
	}

	if options.Theme == nil {
		cfg, err := o.resolveTheme()
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, plan, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// ContentType returns the content type of the renderer Render would pick
// for name.
func (o *Orchestrator) ContentType(name string) (string, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, plan *render.Plan) error {
	for _, t := range o.transformers {
		if err := t.Transform(ctx, plan); err != nil {
			return fmt.Errorf("orchestrator: transform plan: %w", err)
		}
	}
	return nil
}
