package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMissing      = errors.New("no such node")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrOutOfRange   = errors.New("index out of range")
	ErrRoot         = errors.New("root cannot be deleted")
)

// PathError reports an edit that could not be applied at Path.
type PathError struct {
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	p := e.Path.String()
	if p == "" {
		p = "(root)"
	}
	return fmt.Sprintf("%s: %v", p, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Decode parses raw JSON keeping numbers as json.Number.
func Decode(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// Encode marshals v; object keys come out sorted.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Clone deep-copies a decoded JSON value.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[k] = Clone(c)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = Clone(c)
		}
		return out
	}
	return v
}

// Get returns the node at p.
func Get(root any, p Path) (any, error) {
	cur := root
	for i, seg := range p {
		next, err := step(cur, seg)
		if err != nil {
			return nil, &PathError{Path: p[:i+1], Err: err}
		}
		cur = next
	}
	return cur, nil
}

// Set returns a copy of root with the node at p replaced by val. Intermediate
// containers must already exist; a new key may be added to an existing object
// and an array may grow by one element when the index equals its length.
func Set(root any, p Path, val any) (any, error) {
	if len(p) == 0 {
		return Clone(val), nil
	}
	out := Clone(root)
	parent, err := Get(out, p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	last := p[len(p)-1]
	switch seg := last.(type) {
	case Key:
		m, ok := parent.(map[string]any)
		if !ok {
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %s is not an object", ErrTypeMismatch, kindOf(parent))}
		}
		m[string(seg)] = Clone(val)
	case Index:
		arr, ok := parent.([]any)
		if !ok {
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %s is not an array", ErrTypeMismatch, kindOf(parent))}
		}
		n := int(seg)
		switch {
		case n < len(arr):
			arr[n] = Clone(val)
		case n == len(arr):
			arr = append(arr, Clone(val))
			return replaceAt(out, p[:len(p)-1], arr)
		default:
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %d >= %d", ErrOutOfRange, n, len(arr))}
		}
	}
	return out, nil
}

// Delete returns a copy of root without the node at p. Array elements after
// the removed index shift down.
func Delete(root any, p Path) (any, error) {
	if len(p) == 0 {
		return nil, &PathError{Path: p, Err: ErrRoot}
	}
	out := Clone(root)
	parent, err := Get(out, p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	switch seg := p[len(p)-1].(type) {
	case Key:
		m, ok := parent.(map[string]any)
		if !ok {
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %s is not an object", ErrTypeMismatch, kindOf(parent))}
		}
		if _, ok := m[string(seg)]; !ok {
			return nil, &PathError{Path: p, Err: ErrMissing}
		}
		delete(m, string(seg))
	case Index:
		arr, ok := parent.([]any)
		if !ok {
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %s is not an array", ErrTypeMismatch, kindOf(parent))}
		}
		n := int(seg)
		if n >= len(arr) {
			return nil, &PathError{Path: p, Err: fmt.Errorf("%w: %d >= %d", ErrOutOfRange, n, len(arr))}
		}
		arr = append(arr[:n:n], arr[n+1:]...)
		return replaceAt(out, p[:len(p)-1], arr)
	}
	return out, nil
}

// replaceAt stores v at p inside root, which must already hold a container
// there. Used when a slice header changes.
func replaceAt(root any, p Path, v any) (any, error) {
	if len(p) == 0 {
		return v, nil
	}
	parent, err := Get(root, p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	switch seg := p[len(p)-1].(type) {
	case Key:
		parent.(map[string]any)[string(seg)] = v
	case Index:
		parent.([]any)[int(seg)] = v
	}
	return root, nil
}

func step(cur any, seg Segment) (any, error) {
	switch s := seg.(type) {
	case Key:
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an object", ErrTypeMismatch, kindOf(cur))
		}
		v, ok := m[string(s)]
		if !ok {
			return nil, ErrMissing
		}
		return v, nil
	case Index:
		arr, ok := cur.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an array", ErrTypeMismatch, kindOf(cur))
		}
		if int(s) >= len(arr) {
			return nil, fmt.Errorf("%w: %d >= %d", ErrOutOfRange, int(s), len(arr))
		}
		return arr[int(s)], nil
	}
	return nil, fmt.Errorf("unknown segment %T", seg)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
