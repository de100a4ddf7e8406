package leadform

import (
	"io/fs"

	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or extend them and pass the result back through vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
