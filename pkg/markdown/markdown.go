// Package markdown turns the extraction service's markdown answer into HTML
// that is safe to place inside the landing page.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown into sanitized HTML. It is stateless and safe
// for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	extensions []goldmark.Extender
	hardWraps  bool
}

// WithExtensions replaces the default goldmark extensions (GFM, Linkify and
// TaskList).
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithHardWraps renders single newlines as <br>.
func WithHardWraps() Option {
	return func(o *options) {
		o.hardWraps = true
	}
}

// New constructs a Renderer.
func New(opts ...Option) *Renderer {
	cfg := options{
		extensions: []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if cfg.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(cfg.extensions...),
			goldmark.WithRendererOptions(rendererOptions...),
		),
		policy: sanitizer(),
	}
}

// Render converts markdown into sanitized HTML. Raw HTML inside the markdown
// is kept by goldmark and then filtered by the sanitizer.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return strings.TrimSpace(r.policy.SanitizeReader(&buf).String()), nil
}

// Sanitize applies the response policy to already rendered HTML.
func Sanitize(raw string) string {
	return sanitizer().Sanitize(raw)
}

var (
	policyOnce     sync.Once
	responsePolicy *bluemonday.Policy
	codeLanguage   = regexp.MustCompile(`^language-[a-zA-Z0-9_+-]+$`)
	alignment      = regexp.MustCompile(`^(left|right|center)$`)
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("align").Matching(alignment).OnElements("th", "td")
		policy.AllowAttrs("style").OnElements("th", "td")
		policy.AllowStyles("text-align").Matching(alignment).OnElements("th", "td")
		policy.AllowAttrs("class").Matching(codeLanguage).OnElements("code")
		policy.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
		policy.AllowAttrs("checked", "disabled").OnElements("input")
		policy.AllowElements("input")
		responsePolicy = policy
	})
	return responsePolicy
}
