package render

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the language the landing page ships in.
const DefaultLocale = "pt-BR"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// LocalesFS exposes the embedded message catalogs (one YAML file per locale).
func LocalesFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return embeddedLocales
	}
	return sub
}

// Catalog is an in-memory Translator backed by flattened YAML documents.
// Nested mappings become dotted keys: {fields: {company: {label: X}}} is
// looked up as "fields.company.label".
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog(defaultLocale string) *Catalog {
	defaultLocale = strings.TrimSpace(defaultLocale)
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &Catalog{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]string),
	}
}

// DefaultCatalog loads the embedded pt-BR and en catalogs.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(LocalesFS(), DefaultLocale)
}

// LoadCatalog reads every *.yaml file at the root of fsys. The file name
// without extension is the locale ("pt-BR.yaml" → "pt-BR").
func LoadCatalog(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	catalog := NewCatalog(defaultLocale)
	if err := catalog.AddFS(fsys); err != nil {
		return nil, err
	}
	if !catalog.Has(catalog.defaultLocale) {
		return nil, fmt.Errorf("render: default locale %q has no catalog", catalog.defaultLocale)
	}
	return catalog, nil
}

// AddFS merges every *.yaml file at the root of fsys, keyed by file name.
// Keys already present are overwritten, so a directory of overrides can be
// layered on top of the embedded catalogs.
func (c *Catalog) AddFS(fsys fs.FS) error {
	if fsys == nil {
		return fmt.Errorf("render: catalog fs is nil")
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("render: read catalog dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("render: read catalog %q: %w", name, err)
		}
		if err := c.Add(strings.TrimSuffix(name, ext), raw); err != nil {
			return err
		}
	}
	return nil
}

// Add merges a YAML document into the messages of locale.
func (c *Catalog) Add(locale string, raw []byte) error {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return fmt.Errorf("render: catalog locale is required")
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("render: parse catalog %q: %w", locale, err)
	}

	flat := make(map[string]string)
	flatten("", doc, flat)

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.messages[locale]
	if existing == nil {
		existing = make(map[string]string, len(flat))
		c.messages[locale] = existing
	}
	for key, value := range flat {
		existing[key] = value
	}
	return nil
}

func flatten(prefix string, node map[string]any, dest map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, dest)
		case nil:
			dest[full] = ""
		default:
			dest[full] = anyToString(typed)
		}
	}
}

// Translate implements Translator. Lookups fall back from the requested
// locale to its base language and finally to the default locale. When args
// are supplied the message is used as a fmt format string.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.lookupOrder(locale) {
		messages := c.messages[candidate]
		if msg, ok := messages[key]; ok && msg != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func (c *Catalog) lookupOrder(locale string) []string {
	order := make([]string, 0, 3)
	if resolved := c.matchLocked(locale); resolved != "" {
		order = append(order, resolved)
	}
	if len(order) == 0 || order[0] != c.defaultLocale {
		order = append(order, c.defaultLocale)
	}
	return order
}

// Has reports whether locale has a catalog.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[locale]
	return ok
}

// DefaultLocale returns the locale used when nothing else matches.
func (c *Catalog) DefaultLocale() string {
	if c == nil {
		return DefaultLocale
	}
	return c.defaultLocale
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// ResolveLocale picks the first candidate the catalog can serve, matching
// exact tags before base languages ("pt" matches "pt-BR"). The default
// locale is returned when no candidate matches.
func (c *Catalog) ResolveLocale(candidates ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range candidates {
		if resolved := c.matchLocked(candidate); resolved != "" {
			return resolved
		}
	}
	return c.defaultLocale
}

func (c *Catalog) matchLocked(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	for known := range c.messages {
		if strings.EqualFold(known, locale) {
			return known
		}
	}
	base := baseLanguage(locale)
	var matches []string
	for known := range c.messages {
		if strings.EqualFold(baseLanguage(known), base) {
			matches = append(matches, known)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

func baseLanguage(tag string) string {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if idx := strings.Index(tag, "-"); idx >= 0 {
		return strings.ToLower(tag[:idx])
	}
	return strings.ToLower(tag)
}

// ParseAcceptLanguage returns the language tags of an Accept-Language header
// ordered by descending quality. Wildcards and q=0 entries are dropped.
func ParseAcceptLanguage(header string) []string {
	type weighted struct {
		tag string
		q   float64
	}
	var tags []weighted
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, q := part, 1.0
		if idx := strings.Index(part, ";"); idx >= 0 {
			tag = strings.TrimSpace(part[:idx])
			param := strings.TrimSpace(part[idx+1:])
			if strings.HasPrefix(param, "q=") {
				if parsed, err := strconv.ParseFloat(strings.TrimPrefix(param, "q="), 64); err == nil {
					q = parsed
				}
			}
		}
		if tag == "" || tag == "*" || q <= 0 {
			continue
		}
		tags = append(tags, weighted{tag: tag, q: q})
	}
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].q > tags[j].q })

	out := make([]string, 0, len(tags))
	for _, entry := range tags {
		out = append(out, entry.tag)
	}
	return out
}
