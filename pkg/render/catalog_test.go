package render_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
)

func TestDefaultCatalogMessages(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "pt-BR"}, catalog.Locales())
	assert.Equal(t, "pt-BR", catalog.DefaultLocale())

	cases := map[string]string{
		"validation.required.company":     "Nome da empresa é obrigatório",
		"validation.invalid_format.phone": "Formato de telefone inválido",
		"validation.too_long.description": "A descrição deve ter no máximo 300 caracteres",
		"submit.send":                     "Enviar",
		"submit.resend":                   "Reenviar",
		"submit.waiting":                  "Aguardando resposta...",
	}
	for key, want := range cases {
		got, err := catalog.Translate("pt-BR", key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestDefaultCatalogCoversEveryField(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	for _, locale := range catalog.Locales() {
		for _, def := range model.Definitions() {
			_, err := catalog.Translate(locale, def.LabelKey)
			assert.NoError(t, err, "%s %s", locale, def.LabelKey)
			_, err = catalog.Translate(locale, def.PlaceholderKey)
			assert.NoError(t, err, "%s %s", locale, def.PlaceholderKey)
		}
	}
}

func TestCatalogFallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"pt-BR.yaml": {Data: []byte("greeting:\n  hello: Olá\n  only_pt: só aqui\ncount: \"%d itens\"\n")},
		"en.yaml":    {Data: []byte("greeting:\n  hello: Hello\n")},
		"notes.txt":  {Data: []byte("ignored")},
	}
	catalog, err := render.LoadCatalog(fsys, "pt-BR")
	require.NoError(t, err)

	got, err := catalog.Translate("en-US", "greeting.hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)

	got, err = catalog.Translate("en", "greeting.only_pt")
	require.NoError(t, err)
	assert.Equal(t, "só aqui", got)

	got, err = catalog.Translate("fr", "count", 3)
	require.NoError(t, err)
	assert.Equal(t, "3 itens", got)

	_, err = catalog.Translate("en", "greeting.unknown")
	assert.ErrorIs(t, err, render.ErrMissingTranslation)
}

func TestLoadCatalogRequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{"en.yaml": {Data: []byte("a: b\n")}}
	_, err := render.LoadCatalog(fsys, "pt-BR")
	assert.Error(t, err)
}

func TestCatalogAddFSOverrides(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	overrides := fstest.MapFS{"en.yaml": {Data: []byte("submit:\n  send: Get ideas\n")}}
	require.NoError(t, catalog.AddFS(overrides))

	got, err := catalog.Translate("en", "submit.send")
	require.NoError(t, err)
	assert.Equal(t, "Get ideas", got)

	got, err = catalog.Translate("en", "submit.resend")
	require.NoError(t, err)
	assert.Equal(t, "Send again", got)
}

func TestResolveLocale(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, "en", catalog.ResolveLocale("en-GB"))
	assert.Equal(t, "pt-BR", catalog.ResolveLocale("pt"))
	assert.Equal(t, "pt-BR", catalog.ResolveLocale("de", ""))
	assert.Equal(t, "en", catalog.ResolveLocale("de", "EN"))
}

func TestParseAcceptLanguage(t *testing.T) {
	got := render.ParseAcceptLanguage("en;q=0.5, pt-BR, fr;q=0, *;q=0.1, es;q=0.8")
	want := []string{"pt-BR", "es", "en"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("accept-language mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, render.ParseAcceptLanguage(""))
}

func TestTranslateHelpers(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, "Enviar", render.Translate(catalog, "pt-BR", "submit.send", "Send"))
	assert.Equal(t, "fallback", render.Translate(catalog, "pt-BR", "missing.key", "fallback"))
	assert.Equal(t, "fallback", render.Translate(nil, "pt-BR", "submit.send", "fallback"))
	assert.Equal(t, "missing.key", render.Translate(nil, "pt-BR", "missing.key", ""))

	got := render.TranslateFirst(catalog, "pt-BR", "", "validation.required.email", "validation.required.default")
	assert.Equal(t, "Campo obrigatório.", got)
}

func TestTemplateI18nFuncs(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	require.NoError(t, err)

	funcs := render.TemplateI18nFuncs(catalog, render.TemplateI18nConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)

	assert.Equal(t, "Send", translate("en", "submit.send"))
	assert.Equal(t, "Send", translate(map[string]any{"locale": "en"}, "submit.send"))
	assert.Equal(t, "unknown.key", translate("en", "unknown.key"))
	assert.Equal(t, "", translate("en", "  "))
	assert.Equal(t, "Enviar", translate(map[string]string{"locale": "pt-BR"}, "submit.send"))
}

func TestMapFormErrors(t *testing.T) {
	errs := model.NewFormErrors()
	errs.Set(model.FieldPhone, " Formato de telefone inválido ")
	errs.Set(model.FieldCompany, "Nome da empresa é obrigatório")

	mapping := render.MapFormErrors(errs, "boom", " boom ", "")
	want := render.ErrorMapping{
		Fields: map[string]string{
			"company": "Nome da empresa é obrigatório",
			"phone":   "Formato de telefone inválido",
		},
		Form: []string{"boom"},
	}
	if diff := cmp.Diff(want, mapping); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, render.MapFormErrors(model.NewFormErrors()).Empty())
	assert.Equal(t, []string{"a", "b"}, render.MergeFormErrors([]string{"a"}, "b", "a"))
}
