package vanilla

import (
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelp keeps simple inline formatting from contract descriptions and
// strips everything else.
func sanitizeHelp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br")
		helpPolicy = policy
	})
	return helpPolicy
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "hp-" + trimmed
}

type themeContext struct {
	Name       string
	Variant    string
	Style      string
	Stylesheet string
}

func buildThemeContext(cfg *theme.RendererConfig, stylesheet string) themeContext {
	ctx := themeContext{Stylesheet: stylesheet}
	if cfg == nil {
		return ctx
	}
	ctx.Name = cfg.Theme
	ctx.Variant = cfg.Variant
	ctx.Style = cssVarsStyle(cfg.CSSVars)
	if ctx.Stylesheet == "" && cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(strings.TrimSpace(key), "--") {
			keys = append(keys, strings.TrimSpace(key))
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" || strings.ContainsAny(value, ";{}") {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}
