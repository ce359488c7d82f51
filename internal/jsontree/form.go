package jsontree

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// Field kinds produced by Render.
const (
	KindText     = "text"
	KindTextarea = "textarea"
	KindNumber   = "number"
	KindCheckbox = "checkbox"
	KindFieldset = "fieldset"
	KindList     = "list"
)

// Strings longer than this render as a textarea.
const textareaThreshold = 100

// Field is one node of a rendered form. Path addresses the node relative to
// the rendered root and is what an edit sends back.
type Field struct {
	Path     string  `json:"path"`
	Label    string  `json:"label"`
	Kind     string  `json:"kind"`
	Value    any     `json:"value,omitempty"`
	Children []Field `json:"children,omitempty"`
}

// Render builds the form descriptor for v. Object keys are emitted in sorted order.
func Render(v any) Field {
	return render(nil, "", v)
}

func render(p Path, label string, v any) Field {
	f := Field{Path: p.String(), Label: label}
	switch t := v.(type) {
	case map[string]any:
		f.Kind = KindFieldset
		for _, k := range sortedKeys(t) {
			f.Children = append(f.Children, render(p.Child(Key(k)), k, t[k]))
		}
	case []any:
		f.Kind = KindList
		for i, item := range t {
			f.Children = append(f.Children, render(p.Child(Index(i)), "Item "+strconv.Itoa(i+1), item))
		}
	case string:
		f.Kind = KindText
		if utf8.RuneCountInString(t) > textareaThreshold {
			f.Kind = KindTextarea
		}
		f.Value = t
	case json.Number, float64, int, int64:
		f.Kind = KindNumber
		f.Value = t
	case bool:
		f.Kind = KindCheckbox
		f.Value = t
	default:
		// null renders as an empty text input
		f.Kind = KindText
		f.Value = ""
	}
	return f
}
