package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-leadform/pkg/render/template"
)

// Option configures an Engine before its template set is built.
type Option func(*settings)

type settings struct {
	files   fs.FS
	ext     string
	helpers map[string]any
}

// WithFS sets the file system templates are loaded from.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithTemplateFunc exposes helpers to every template, for example
// {{ translate(locale, "page.title") }}. Non-function values are ignored.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(s *settings) {
		for name, fn := range funcs {
			name = strings.TrimSpace(name)
			if name == "" || reflect.ValueOf(fn).Kind() != reflect.Func {
				continue
			}
			if s.helpers == nil {
				s.helpers = make(map[string]any, len(funcs))
			}
			s.helpers[name] = fn
		}
	}
}

// Engine renders pongo2 templates from an fs.FS. Parsed templates are
// cached by path.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	s := settings{ext: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}

	set := pongo2.NewSet("leadform", pongo2.NewFSLoader(s.files))
	for name, fn := range s.helpers {
		set.Globals[name] = fn
	}

	return &Engine{
		set:   set,
		ext:   s.ext,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// Render treats name as inline template source when it contains pongo2
// delimiters and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if !strings.Contains(name, "{{") && !strings.Contains(name, "{%") {
		return e.RenderTemplate(name, data, out...)
	}
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(name)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RenderTemplate executes the template at name, adding the configured
// extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data, out)
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := contextFrom(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// contextFrom turns view data into a pongo2 context. Maps and slices are
// walked, scalars are kept as is and anything else goes through its JSON
// form so templates see the json tag names.
func contextFrom(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	value, err := contextValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template data must be an object, got %T", data)
	}
	ctx := make(pongo2.Context, len(m))
	for key, v := range m {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = v
		}
	}
	return ctx, nil
}

func contextValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return string(v), nil
	case json.Number:
		return numberValue(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func, reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value, nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return contextMap(rv)
		}
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := contextValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
	}
	return viaJSON(value)
}

func contextMap(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		item, err := contextValue(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[iter.Key().String()] = item
	}
	return out, nil
}

func viaJSON(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return contextValue(decoded)
}

func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
