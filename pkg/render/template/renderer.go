package template

import (
	"io"
)

// TemplateRenderer is the engine contract the preview backend renders its
// page markup through.
type TemplateRenderer interface {
	// RenderTemplate executes the named template file. The rendered text is
	// returned and copied to every writer in out.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and executes inline template source.
	RenderString(source string, data any, out ...io.Writer) (string, error)
	// RegisterFilter exposes fn to templates as a filter.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
