package jsontree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRenderKinds(t *testing.T) {
	long := strings.Repeat("x", 101)
	doc := mustDecode(t, `{"title":"Careers","body":"`+long+`","count":3,"open":false,"logo":null,"tags":["a","b"],"jobs":[{"title":"Engineer"}]}`)

	got := Render(doc)
	want := Field{Kind: KindFieldset, Children: []Field{
		{Path: "body", Label: "body", Kind: KindTextarea, Value: long},
		{Path: "count", Label: "count", Kind: KindNumber, Value: json.Number("3")},
		{Path: "jobs", Label: "jobs", Kind: KindList, Children: []Field{
			{Path: "jobs[0]", Label: "Item 1", Kind: KindFieldset, Children: []Field{
				{Path: "jobs[0].title", Label: "title", Kind: KindText, Value: "Engineer"},
			}},
		}},
		{Path: "logo", Label: "logo", Kind: KindText, Value: ""},
		{Path: "open", Label: "open", Kind: KindCheckbox, Value: false},
		{Path: "tags", Label: "tags", Kind: KindList, Children: []Field{
			{Path: "tags[0]", Label: "Item 1", Kind: KindText, Value: "a"},
			{Path: "tags[1]", Label: "Item 2", Kind: KindText, Value: "b"},
		}},
		{Path: "title", Label: "title", Kind: KindText, Value: "Careers"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTextareaThresholdCountsRunes(t *testing.T) {
	exactly := strings.Repeat("ж", 100)
	assert.Equal(t, KindText, Render(exactly).Kind)
	assert.Equal(t, KindTextarea, Render(exactly+"ж").Kind)
}

func TestRenderScopedLocale(t *testing.T) {
	doc := mustDecode(t, `{"en":{"title":"Hello"},"ru":{"title":"Привет"}}`)
	f := Render(Scope(doc, "ru"))
	assert.Equal(t, []Field{{Path: "title", Label: "title", Kind: KindText, Value: "Привет"}}, f.Children)

	assert.True(t, Localized(doc))
	assert.False(t, Localized(mustDecode(t, `{"en":{}}`)))
	assert.Equal(t, map[string]any{}, Scope(doc, "tk"))
}
