// Package localization provides the language packs for user-facing text.
// Packs are JSON files embedded at build time, one per language code.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

//go:embed langs/*.json
var langFS embed.FS

// DefaultLocale is the fallback language for missing keys and unknown locales.
const DefaultLocale = "en"

// Localizer resolves translation keys to localized strings.
type Localizer struct {
	translations map[string]map[string]string
}

// NewLocalizer loads every embedded language pack.
func NewLocalizer() (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := langFS.ReadDir("langs")
	if err != nil {
		return nil, fmt.Errorf("failed to read language packs: %w", err)
	}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := langFS.ReadFile(path.Join("langs", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read language pack %s: %w", entry.Name(), err)
		}
		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse language pack %s: %w", entry.Name(), err)
		}
		l.translations[lang] = translations
	}
	return l, nil
}

// Languages lists the loaded language codes.
func (l *Localizer) Languages() []string {
	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}

// GetString returns the localized string for a key, falling back to the
// default locale and finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	if translations, ok := l.translations[lang]; ok {
		if value, ok := translations[key]; ok {
			return value
		}
	}
	if lang != DefaultLocale {
		if translations, ok := l.translations[DefaultLocale]; ok {
			if value, ok := translations[key]; ok {
				return value
			}
		}
	}
	return key
}
