package i18n

import (
	"embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

var (
	names     = [...]string{"en", "ja", "de"}
	supported = []language.Tag{language.English, language.Japanese, language.German}
)

// Languages lists the built-in catalogs. English comes first and is the
// fallback.
func Languages() []string { return names[:] }

// Catalog loads the built-in catalog for lang ("en", "ja" or "de").
func Catalog(lang string) (MapResolver, error) {
	data, err := locales.ReadFile("locales/" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: no catalog for %q", lang)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("i18n: catalog %q: %w", lang, err)
	}
	return MapResolver(m), nil
}

// ForLanguage returns the catalog that best matches tag, an IETF BCP 47 tag
// or Accept-Language value such as "ja-JP" or "de-CH,de;q=0.9". Unmatched
// tags get English.
func ForLanguage(tag string) (MapResolver, error) {
	_, idx := language.MatchStrings(language.NewMatcher(supported), tag)
	return Catalog(names[idx])
}
