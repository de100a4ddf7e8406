package template_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-leadform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tpl":    {Data: []byte("Olá, {{ name }}!")},
		"use-func.tpl": {Data: []byte("{{ shout(name) }}")},
		"numbers.tpl":  {Data: []byte("{{ count }}|{{ ratio }}|{% for id in ids %}{{ id }},{% endfor %}|{{ summary.total }}|{% if count > 2 %}yes{% endif %}")},
		"escape.tpl":   {Data: []byte("{{ html }}|{{ html|safe }}")},
	}
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := "Olá, Ada!"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RenderDetectsInlineContent(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-x" {
		t.Fatalf("unexpected inline render %q", got)
	}
}

func TestGoTemplateEngine_KeepsNumbers(t *testing.T) {
	engine := newEngine(t)

	type summary struct {
		Total int `json:"total"`
	}
	data := map[string]any{
		"count":   3,
		"ratio":   0.5,
		"ids":     []int{7, 8},
		"summary": summary{Total: 12},
	}
	got, err := engine.RenderTemplate("numbers", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "3|0.500000|7,8,|12|yes" {
		t.Fatalf("unexpected numeric render %q", got)
	}
}

func TestGoTemplateEngine_TemplateFunc(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS()),
		gotemplate.WithTemplateFunc(map[string]any{
			"shout": func(s string) string { return strings.ToUpper(s) + "!" },
			"skip":  "not a func",
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-func", map[string]any{"name": "Ada"}, w)
	})
	if result != "ADA!" {
		t.Fatalf("unexpected helper render %q", result)
	}
}

func TestGoTemplateEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("escape", map[string]any{"html": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "&lt;b&gt;x&lt;/b&gt;|<b>x</b>" {
		t.Fatalf("unexpected escaping %q", got)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
