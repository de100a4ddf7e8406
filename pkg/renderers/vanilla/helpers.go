package vanilla

import (
	"encoding/json"
	"sort"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "lf-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

// sanitizeClassList drops the reserved lf- prefix from caller supplied class
// lists.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "lf-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func themeJSON(ctx themeContext) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
		CSSVars map[string]string `json:"cssVars,omitempty"`
	}{
		Name:    ctx.Name,
		Variant: ctx.Variant,
		Tokens:  ctx.Tokens,
		CSSVars: ctx.CSSVars,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
