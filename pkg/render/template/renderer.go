package template

import (
	"io"
)

// TemplateRenderer is the seam the HTML renderer executes page templates
// through. Each render call returns the output and also writes it to every
// supplied writer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
