package render

import (
	"context"
)

// Renderer turns a preview plan into bytes (HTML, terminal prompts, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, plan Plan, options RenderOptions) ([]byte, error)
}
