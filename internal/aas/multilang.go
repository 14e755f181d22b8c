package aas

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SupportedLanguages is the fixed set offered when adding entries to a
// MultiLanguageProperty. Adding a language outside this set, or one that
// is already present on the property, is rejected by the editor.
var SupportedLanguages = []string{"en", "de", "fr", "es", "it"}

// LanguageName returns a human-readable English name for a language code,
// falling back to the code itself if the tag does not parse.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// MissingLanguages returns the supported languages not yet present in the
// given entries, preserving SupportedLanguages order. An empty result
// means the add-language control has nothing to offer.
func MissingLanguages(entries []LangString) []string {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Language] = true
	}
	var out []string
	for _, lang := range SupportedLanguages {
		if !present[lang] {
			out = append(out, lang)
		}
	}
	return out
}

// HasLanguage reports whether entries already contain the language.
func HasLanguage(entries []LangString, lang string) bool {
	for _, e := range entries {
		if e.Language == lang {
			return true
		}
	}
	return false
}
