package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers and exporters draw
// through. Implementations load named templates, render inline snippets and
// accept filters and globals registered after construction.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
