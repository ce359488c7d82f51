package jsontree

// Localized reports whether doc is partitioned by locale: a top-level
// object carrying both "en" and "ru".
func Localized(doc any) bool {
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	_, en := m["en"]
	_, ru := m["ru"]
	return en && ru
}

// Scope returns the subtree edited for locale. Flat documents are returned
// whole. A localized document without that locale yields an empty object.
func Scope(doc any, locale string) any {
	if !Localized(doc) || locale == "" {
		return doc
	}
	if sub, ok := doc.(map[string]any)[locale]; ok {
		return sub
	}
	return map[string]any{}
}

// Unscope writes sub back into a copy of doc under locale, leaving other
// locales untouched. For flat documents sub replaces doc.
func Unscope(doc any, locale string, sub any) any {
	if !Localized(doc) || locale == "" {
		return sub
	}
	out := Clone(doc).(map[string]any)
	out[locale] = sub
	return out
}
