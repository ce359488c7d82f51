package jsontree

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func mustPath(t *testing.T, s string) Path {
	t.Helper()
	p, err := ParsePath(s)
	require.NoError(t, err)
	return p
}

func TestSetReplacesAndAdds(t *testing.T) {
	doc := mustDecode(t, `{"jobs":[{"title":"A"},{"title":"B"}]}`)

	out, err := Set(doc, mustPath(t, "jobs[1].title"), "Driller")
	require.NoError(t, err)
	out, err = Set(out, mustPath(t, "jobs[0].location"), "Ashgabat")
	require.NoError(t, err)

	want := mustDecode(t, `{"jobs":[{"title":"A","location":"Ashgabat"},{"title":"Driller"}]}`)
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	// original untouched
	assert.Equal(t, mustDecode(t, `{"jobs":[{"title":"A"},{"title":"B"}]}`), doc)
}

func TestSetAppendAtLength(t *testing.T) {
	doc := mustDecode(t, `{"jobs":[]}`)
	out, err := Set(doc, mustPath(t, "jobs[0]"), map[string]any{"title": "New"})
	require.NoError(t, err)
	assert.Equal(t, mustDecode(t, `{"jobs":[{"title":"New"}]}`), out)
}

func TestSetNoAutoVivification(t *testing.T) {
	doc := mustDecode(t, `{"jobs":[{"title":"A"}],"name":"x"}`)

	tests := []struct {
		path string
		err  error
	}{
		{"missing.title", ErrMissing},
		{"jobs[5]", ErrOutOfRange},
		{"jobs[2].title", ErrOutOfRange},
		{"name.first", ErrTypeMismatch},
		{"jobs.title", ErrTypeMismatch},
		{"name[0]", ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Set(doc, mustPath(t, tt.path), "v")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			var pe *PathError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestSetRootReplaces(t *testing.T) {
	out, err := Set(mustDecode(t, `{"a":1}`), nil, []any{"x"})
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, out)
}

func TestDelete(t *testing.T) {
	doc := mustDecode(t, `{"list":[1,2,3],"keep":true,"drop":null}`)

	out, err := Delete(doc, mustPath(t, "list[1]"))
	require.NoError(t, err)
	out, err = Delete(out, mustPath(t, "drop"))
	require.NoError(t, err)
	assert.Equal(t, mustDecode(t, `{"list":[1,3],"keep":true}`), out)

	_, err = Delete(doc, mustPath(t, "nope"))
	assert.ErrorIs(t, err, ErrMissing)
	_, err = Delete(doc, mustPath(t, "list[3]"))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Delete(doc, nil)
	assert.ErrorIs(t, err, ErrRoot)
}

func TestDecodeKeepsNumbers(t *testing.T) {
	v := mustDecode(t, `{"big":12345678901234567890}`)
	assert.Equal(t, json.Number("12345678901234567890"), v.(map[string]any)["big"])

	empty, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, empty)

	_, err = Decode([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestApplyScopedToLocaleKeepsOtherLocale(t *testing.T) {
	doc := mustDecode(t, `{"en":{"jobs":[]},"ru":{"jobs":[{"title":"Инженер"}]}}`)

	out, err := Apply(doc, "en", []Edit{
		{Op: OpSet, Path: "jobs[0]", Value: json.RawMessage(`{"title":"Engineer"}`)},
		{Op: OpSet, Path: "jobs[0].city", Value: json.RawMessage(`"Ashgabat"`)},
	})
	require.NoError(t, err)

	want := mustDecode(t, `{"en":{"jobs":[{"title":"Engineer","city":"Ashgabat"}]},"ru":{"jobs":[{"title":"Инженер"}]}}`)
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestApplyFlatIgnoresLocale(t *testing.T) {
	doc := mustDecode(t, `{"title":"Hi"}`)
	out, err := Apply(doc, "ru", []Edit{{Op: OpSet, Path: "title", Value: json.RawMessage(`"Hello"`)}})
	require.NoError(t, err)
	assert.Equal(t, mustDecode(t, `{"title":"Hello"}`), out)
}

func TestApplyAbortsBatch(t *testing.T) {
	doc := mustDecode(t, `{"a":1}`)
	_, err := Apply(doc, "", []Edit{
		{Op: OpSet, Path: "a", Value: json.RawMessage(`2`)},
		{Op: OpSet, Path: "b.c", Value: json.RawMessage(`3`)},
	})
	var ee *EditError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.Index)
	assert.ErrorIs(t, err, ErrMissing)
	assert.Equal(t, mustDecode(t, `{"a":1}`), doc)

	_, err = Apply(doc, "", []Edit{{Op: "move", Path: "a"}})
	assert.Error(t, err)
	_, err = Apply(doc, "", []Edit{{Op: OpSet, Path: "a"}})
	assert.Error(t, err)
}
