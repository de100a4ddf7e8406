package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/markdown"
	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
	rendertemplate "github.com/goliatone/go-leadform/pkg/render/template"
	"github.com/goliatone/go-leadform/pkg/render/template/gotemplate"
)

const (
	pageTemplate = "templates/page.tpl"
	formTemplate = "templates/form.tpl"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	translator       render.Translator
	markdown         *markdown.Renderer
	stylesheetURL    string
	scriptURL        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must provide templates/page.tpl and templates/form.tpl.
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

// WithTemplateRenderer injects a custom template renderer implementation.
// The built-in templates call translate(locale, key), so the renderer must
// provide that helper.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTranslator sets the message catalog. Defaults to the embedded one.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.translator = t
		}
	}
}

// WithMarkdown sets the renderer used for the response alert.
func WithMarkdown(md *markdown.Renderer) Option {
	return func(cfg *config) {
		if md != nil {
			cfg.markdown = md
		}
	}
}

// WithStylesheetURL links an external stylesheet instead of inlining the
// default one.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = strings.TrimSpace(url)
	}
}

// WithScriptURL adds the browser runtime script to the page.
func WithScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.scriptURL = strings.TrimSpace(url)
	}
}

// PageData is everything a page render needs beyond the renderer config.
type PageData struct {
	Snapshot controller.Snapshot
	// Hidden inputs such as the CSRF token.
	Hidden map[string]string
	// Action is the form post target. Defaults to "/".
	Action string
	// FieldAction is the URL prefix used by the runtime script for single
	// field edits. Defaults to "/fields/".
	FieldAction string
	Theme       *theme.RendererConfig
	Classes     ChromeClasses
}

// Renderer produces the landing page HTML.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	markdown      *markdown.Renderer
	stylesheetURL string
	scriptURL     string
	inlineCSS     string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	if cfg.translator == nil {
		catalog, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: load catalog: %w", err)
		}
		cfg.translator = catalog
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if cfg.markdown == nil {
		cfg.markdown = markdown.New()
	}

	return &Renderer{
		templates:     renderer,
		markdown:      cfg.markdown,
		stylesheetURL: cfg.stylesheetURL,
		scriptURL:     cfg.scriptURL,
		inlineCSS:     defaultStylesheet(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render returns the complete landing page.
func (r *Renderer) Render(ctx context.Context, data PageData) ([]byte, error) {
	return r.execute(ctx, pageTemplate, data)
}

// PartialForm returns only the <form> element, for callers embedding the
// form into their own page.
func (r *Renderer) PartialForm(ctx context.Context, data PageData) ([]byte, error) {
	return r.execute(ctx, formTemplate, data)
}

// ResponseHTML renders the markdown answer of snap, or "" when there is none.
func (r *Renderer) ResponseHTML(snap controller.Snapshot) (string, error) {
	if !snap.State.HasPayload {
		return "", nil
	}
	return r.markdown.Render(snap.State.Payload)
}

func (r *Renderer) execute(ctx context.Context, name string, data PageData) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view, err := r.viewModel(data)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(name, view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewModel(data PageData) (map[string]any, error) {
	snap := data.Snapshot
	locale := snap.Locale
	if locale == "" {
		locale = render.DefaultLocale
	}
	responseHTML, err := r.ResponseHTML(snap)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render response: %w", err)
	}

	fields := make([]map[string]any, 0, len(model.Definitions()))
	for _, def := range model.Definitions() {
		name := def.Field.String()
		inputType := "text"
		if def.Field == model.FieldEmail {
			inputType = "email"
		} else if def.Field == model.FieldPhone {
			inputType = "tel"
		}
		fields = append(fields, map[string]any{
			"name":            name,
			"id":              controlID(name),
			"error_id":        errorID(name),
			"type":            inputType,
			"label_key":       def.LabelKey,
			"placeholder_key": def.PlaceholderKey,
			"value":           snap.Data.Get(def.Field),
			"error":           snap.Errors.Get(def.Field),
			"required":        def.Required,
			"textarea":        def.Input == model.InputTextArea,
			"wide":            def.Wide,
		})
	}

	hidden := make([]map[string]any, 0, len(data.Hidden))
	for _, field := range render.SortedHiddenFields(data.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	action := strings.TrimSpace(data.Action)
	if action == "" {
		action = "/"
	}
	fieldAction := strings.TrimSpace(data.FieldAction)
	if fieldAction == "" {
		fieldAction = "/fields/"
	}

	themeCtx := buildThemeContext(data.Theme)

	return map[string]any{
		"locale": locale,
		"form": map[string]any{
			"action":        action,
			"field_action":  fieldAction,
			"status":        string(snap.Status),
			"hidden":        hidden,
			"fields":        fields,
			"response_html": responseHTML,
			"error":         snap.State.Error,
			"trigger": map[string]any{
				"label_key": snap.TriggerLabel,
				"disabled":  snap.TriggerDisabled,
			},
		},
		"theme":   themeCtx,
		"classes": data.Classes.resolve(),
		"assets": map[string]any{
			"stylesheet": themeAsset(data.Theme, ThemeAssetStylesheet, r.stylesheetURL),
			"script":     themeAsset(data.Theme, ThemeAssetScript, r.scriptURL),
			"inline_css": r.inlineCSS,
		},
	}, nil
}
