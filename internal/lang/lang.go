// Package lang resolves translation keys to localized display text. Catalogs
// are JSON files embedded at build time, one per locale, with nested sections
// flattened to dotted keys ("mute.already_muted"). Missing keys fall back to
// English, then to the key itself.
package lang

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is used when a requested locale has no catalog.
const DefaultLocale = "en"

var catalogs = map[string]map[string]string{}

func init() {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		panic(fmt.Sprintf("lang: failed to read locales: %v", err))
	}

	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("lang: failed to read catalog %s: %v", entry.Name(), err))
		}

		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			panic(fmt.Sprintf("lang: invalid catalog %s: %v", entry.Name(), err))
		}

		flat := map[string]string{}
		flatten("", nested, flat)
		catalogs[locale] = flat
	}
}

func flatten(prefix string, nested map[string]any, out map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// Locales returns the locales with a loaded catalog.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for l := range catalogs {
		out = append(out, l)
	}
	return out
}

// Supported reports whether a catalog exists for the locale.
func Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// T resolves key in the given locale, substituting {{name}} placeholders
// from vars.
func T(key, locale string, vars map[string]string) string {
	text, ok := catalogs[locale][key]
	if !ok {
		text, ok = catalogs[DefaultLocale][key]
	}
	if !ok {
		return key
	}

	for name, value := range vars {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}
