package render

import (
	"context"
)

// Renderer draws a resolved Document into a byte representation (HTML, PDF).
// Implementations place every element exactly at its placement box and draw
// text at its stored font size; they never re-run layout or auto-fit.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document, options RenderOptions) ([]byte, error)
}
