// Package content resolves section documents into the locale-specific
// content the public site renders.
package content

import (
	"gala/internal/domain"
	"gala/internal/jsontree"
)

// Resolve picks the content for lang out of doc. Localized documents yield
// their lang subtree, falling back to the fallback locale and then to the
// whole document. Flat documents are returned whole with an empty locale.
func Resolve(doc any, lang, fallback string) (any, string) {
	if !jsontree.Localized(doc) {
		return doc, ""
	}
	m := doc.(map[string]any)
	if v, ok := m[lang]; ok {
		return v, lang
	}
	if v, ok := m[fallback]; ok {
		return v, fallback
	}
	return doc, ""
}

// NormalizeLang maps an empty language to def and reports whether the
// result is supported.
func NormalizeLang(lang, def string) (string, bool) {
	if lang == "" {
		lang = def
	}
	return lang, domain.IsSupportedLocale(lang)
}
