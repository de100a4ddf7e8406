// Package leadform is the entry point of the lead capture form: a form
// controller that validates nine company fields, sends them to the solution
// extraction service and keeps the markdown answer, plus the page and
// terminal front ends that drive it.
package leadform

import (
	"context"

	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/extraction"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

// FormData aliases model.FormData for callers of the root package.
type FormData = model.FormData

// FormErrors aliases model.FormErrors.
type FormErrors = model.FormErrors

// Snapshot aliases controller.Snapshot.
type Snapshot = controller.Snapshot

// NewController exposes the controller constructor from the top-level
// module.
func NewController(extractor controller.Extractor, options ...controller.Option) (*controller.Controller, error) {
	return controller.New(extractor, options...)
}

// NewExtractionClient exposes the extraction client constructor.
func NewExtractionClient(options ...extraction.Option) *extraction.Client {
	return extraction.NewClient(options...)
}

// RenderPage renders the landing page of a fresh form in locale. hidden
// fields, such as a CSRF token, are emitted inside the form.
func RenderPage(ctx context.Context, locale string, hidden []render.HiddenField, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.New(noopExtractor{}, controller.WithLocale(locale))
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, vanilla.PageData{
		Snapshot: ctrl.Snapshot(),
		Hidden:   render.MergeHiddenFields(nil, hidden...),
	})
}

type noopExtractor struct{}

func (noopExtractor) Extract(context.Context, extraction.Payload) (string, error) {
	return "", nil
}
