package export

import (
	"embed"
	"fmt"
	"html"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const documentTemplate = "document"

// HTMLOption configures an HTMLExporter.
type HTMLOption func(*HTMLExporter)

// WithHTMLTemplates swaps the template bundle. It must contain document.tpl.
func WithHTMLTemplates(files fs.FS) HTMLOption {
	return func(e *HTMLExporter) {
		e.templateFS = files
	}
}

// WithHTMLTemplateRenderer injects a custom template engine.
func WithHTMLTemplateRenderer(renderer rendertemplate.TemplateRenderer) HTMLOption {
	return func(e *HTMLExporter) {
		e.templates = renderer
	}
}

// WithHTMLSanitizer replaces the strict policy applied to labels and values.
func WithHTMLSanitizer(policy *bluemonday.Policy) HTMLOption {
	return func(e *HTMLExporter) {
		if policy != nil {
			e.policy = policy
		}
	}
}

// HTMLExporter writes a print-ready HTML page.
type HTMLExporter struct {
	templateFS fs.FS
	templates  rendertemplate.TemplateRenderer
	policy     *bluemonday.Policy
}

// NewHTMLExporter builds an exporter backed by the embedded document template.
func NewHTMLExporter(opts ...HTMLOption) (*HTMLExporter, error) {
	e := &HTMLExporter{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.policy == nil {
		e.policy = bluemonday.StrictPolicy()
	}
	if e.templates == nil {
		files := e.templateFS
		if files == nil {
			sub, err := fs.Sub(embeddedTemplates, "templates")
			if err != nil {
				return nil, fmt.Errorf("export: templates: %w", err)
			}
			files = sub
		}
		engine, err := gotemplate.New(gotemplate.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("export: configure templates: %w", err)
		}
		e.templates = engine
	}
	return e, nil
}

func (e *HTMLExporter) Format() string      { return FormatHTML }
func (e *HTMLExporter) Extension() string   { return "html" }
func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

// Export strips markup from every label and value and renders the page.
func (e *HTMLExporter) Export(w io.Writer, doc Document) error {
	clean := e.sanitize(doc)
	generated := ""
	if !clean.GeneratedAt.IsZero() {
		generated = clean.GeneratedAt.Format(time.RFC1123)
	}
	_, err := e.templates.RenderTemplate(documentTemplate, map[string]any{
		"doc":       clean,
		"generated": generated,
	}, w)
	if err != nil {
		return fmt.Errorf("export: render html: %w", err)
	}
	return nil
}

// sanitize strips markup from titles and labels. Values are left as typed and
// escaped by the template, so "<none>" reads back as written.
func (e *HTMLExporter) sanitize(doc Document) Document {
	out := doc
	out.Title = e.text(doc.Title)
	out.Sections = make([]Section, len(doc.Sections))
	for si, section := range doc.Sections {
		rows := make([]Row, len(section.Rows))
		for ri, row := range section.Rows {
			cells := make([]Cell, len(row.Cells))
			for ci, cell := range row.Cells {
				cell.Label = e.text(cell.Label)
				cells[ci] = cell
			}
			rows[ri] = Row{Cells: cells}
		}
		out.Sections[si] = Section{Title: e.text(section.Title), Rows: rows}
	}
	return out
}

// text keeps the caller's fallback when sanitising leaves nothing behind.
func (e *HTMLExporter) text(raw string) string {
	cleaned := strings.TrimSpace(html.UnescapeString(e.policy.Sanitize(raw)))
	if cleaned == "" {
		return MissingValue
	}
	return cleaned
}
