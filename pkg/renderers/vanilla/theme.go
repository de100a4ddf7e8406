package vanilla

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme asset keys resolved through RendererConfig.AssetURL.
const (
	ThemeAssetStylesheet = "leadform.stylesheet"
	ThemeAssetScript     = "leadform.script"
)

type themeContext struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	JSON         string            `json:"json,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	ctx.JSON = themeJSON(ctx)
	return ctx
}

func themeAsset(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return fallback
	}
	if resolved := strings.TrimSpace(cfg.AssetURL(key)); resolved != "" {
		return resolved
	}
	return fallback
}
