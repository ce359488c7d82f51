package schema

import (
	"encoding/json"
	"fmt"

	"gala/internal/domain"
	"gala/internal/jsontree"
)

// Validation error codes.
const (
	CodeRequired      = "required"
	CodeTypeMismatch  = "type_mismatch"
	CodeUnknownField  = "unknown_field"
	CodeNotLocalized  = "not_localized"
	CodeUnknownLocale = "unknown_locale"
)

// Validate checks doc against the schema registered for name. Unregistered
// names always pass.
func (r *Registry) Validate(name string, doc any) []domain.FieldError {
	s, ok := r.sections[name]
	if !ok {
		return nil
	}
	if !s.Localized {
		return validateNode(nil, s.Schema, doc)
	}

	m, ok := doc.(map[string]any)
	if !ok || !jsontree.Localized(doc) {
		return []domain.FieldError{{
			Code:    CodeNotLocalized,
			Field:   "",
			Message: fmt.Sprintf("Section '%s' must be an object with 'en' and 'ru' keys", name),
		}}
	}
	var errs []domain.FieldError
	for _, loc := range sortedKeys(m) {
		p := jsontree.Path{jsontree.Key(loc)}
		if !domain.IsSupportedLocale(loc) {
			errs = append(errs, domain.FieldError{Code: CodeUnknownLocale, Field: p.String(), Message: fmt.Sprintf("Unsupported locale '%s'", loc)})
			continue
		}
		errs = append(errs, validateNode(p, s.Schema, m[loc])...)
	}
	return errs
}

func validateNode(p jsontree.Path, n *Node, v any) []domain.FieldError {
	if n == nil || n.Type == TypeAny {
		return nil
	}
	field := p.String()
	mismatch := func() []domain.FieldError {
		return []domain.FieldError{{Code: CodeTypeMismatch, Field: field, Message: fmt.Sprintf("Field '%s' expected %s", display(field), n.Type)}}
	}

	switch n.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return mismatch()
		}
	case TypeNumber:
		switch v.(type) {
		case json.Number, float64, int, int64:
		default:
			return mismatch()
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch()
		}
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return mismatch()
		}
		var errs []domain.FieldError
		for i, item := range arr {
			errs = append(errs, validateNode(p.Child(jsontree.Index(i)), n.Items, item)...)
		}
		return errs
	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch()
		}
		var errs []domain.FieldError
		for _, k := range n.Required {
			if _, ok := m[k]; !ok {
				cp := p.Child(jsontree.Key(k)).String()
				errs = append(errs, domain.FieldError{Code: CodeRequired, Field: cp, Message: fmt.Sprintf("Field '%s' is required", cp)})
			}
		}
		for _, k := range sortedKeys(m) {
			cp := p.Child(jsontree.Key(k))
			child, known := n.Properties[k]
			if !known {
				if !n.allowsAdditional() {
					errs = append(errs, domain.FieldError{Code: CodeUnknownField, Field: cp.String(), Message: fmt.Sprintf("Field '%s' is not allowed", cp.String())})
				}
				continue
			}
			errs = append(errs, validateNode(cp, child, m[k])...)
		}
		return errs
	}
	return nil
}

func display(field string) string {
	if field == "" {
		return "(root)"
	}
	return field
}
