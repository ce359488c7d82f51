package jsontree

import (
	"encoding/json"
	"fmt"
)

const (
	OpSet    = "set"
	OpDelete = "delete"
)

// Edit is a single path-addressed change.
type Edit struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// EditError wraps the failure of the edit at position Index.
type EditError struct {
	Index int
	Edit  Edit
	Err   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit %d (%s %s): %v", e.Index, e.Edit.Op, e.Edit.Path, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }

// Apply runs edits in order against the locale scope of doc and returns the
// new document. doc is never modified; any failing edit aborts the batch.
func Apply(doc any, locale string, edits []Edit) (any, error) {
	scope := Clone(Scope(doc, locale))
	for i, e := range edits {
		p, err := ParsePath(e.Path)
		if err != nil {
			return nil, &EditError{Index: i, Edit: e, Err: err}
		}
		switch e.Op {
		case OpSet:
			if len(e.Value) == 0 {
				return nil, &EditError{Index: i, Edit: e, Err: fmt.Errorf("set requires a value")}
			}
			val, err := Decode(e.Value)
			if err != nil {
				return nil, &EditError{Index: i, Edit: e, Err: err}
			}
			if scope, err = Set(scope, p, val); err != nil {
				return nil, &EditError{Index: i, Edit: e, Err: err}
			}
		case OpDelete:
			if scope, err = Delete(scope, p); err != nil {
				return nil, &EditError{Index: i, Edit: e, Err: err}
			}
		default:
			return nil, &EditError{Index: i, Edit: e, Err: fmt.Errorf("unknown op %q", e.Op)}
		}
	}
	return Unscope(doc, locale, scope), nil
}
