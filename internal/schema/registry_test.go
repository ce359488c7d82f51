package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gala/internal/jsontree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := jsontree.Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func TestLoadDefault(t *testing.T) {
	reg, err := LoadDefault("")
	require.NoError(t, err)
	assert.Contains(t, reg.Names(), "careers")
	s, ok := reg.Lookup("careers")
	require.True(t, ok)
	assert.True(t, s.Localized)
}

func TestLoadRejectsUnknownType(t *testing.T) {
	_, err := Load(strings.NewReader("sections:\n  x:\n    schema:\n      type: date\n"))
	assert.ErrorContains(t, err, "unknown type")

	_, err = Load(strings.NewReader("sections:\n  x:\n    bogus: 1\n"))
	assert.Error(t, err)
}

func TestLoadDefaultOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sections:
  careers:
    schema:
      type: array
  homepage:
    schema:
      type: object
      additional: false
      properties:
        hero: {type: string}
`), 0o644))

	reg, err := LoadDefault(path)
	require.NoError(t, err)
	s, _ := reg.Lookup("careers")
	assert.False(t, s.Localized)
	assert.Contains(t, reg.Names(), "banner_carousel")

	errs := reg.Validate("homepage", decode(t, `{"hero":"x","extra":1}`))
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUnknownField, errs[0].Code)
	assert.Equal(t, "extra", errs[0].Field)
}

func TestValidateCareers(t *testing.T) {
	reg, err := LoadDefault("")
	require.NoError(t, err)

	assert.Empty(t, reg.Validate("careers", decode(t, `{"en":{"jobs":[]},"ru":{"jobs":[]}}`)))
	assert.Empty(t, reg.Validate("careers", decode(t, `{"en":{"jobs":[{"id":1,"title":"Engineer"}]},"ru":{"jobs":[]},"tk":{"jobs":[]}}`)))

	errs := reg.Validate("careers", decode(t, `{"en":{"jobs":[{"title":5},{"description":"x"}]},"ru":{}}`))
	require.Len(t, errs, 3)
	assert.Equal(t, CodeTypeMismatch, errs[0].Code)
	assert.Equal(t, "en.jobs[0].title", errs[0].Field)
	assert.Equal(t, CodeRequired, errs[1].Code)
	assert.Equal(t, "en.jobs[1].title", errs[1].Field)
	assert.Equal(t, CodeRequired, errs[2].Code)
	assert.Equal(t, "ru.jobs", errs[2].Field)
}

func TestValidateLocalization(t *testing.T) {
	reg, err := LoadDefault("")
	require.NoError(t, err)

	errs := reg.Validate("careers", decode(t, `{"jobs":[]}`))
	require.Len(t, errs, 1)
	assert.Equal(t, CodeNotLocalized, errs[0].Code)

	errs = reg.Validate("careers", decode(t, `{"en":{"jobs":[]},"ru":{"jobs":[]},"de":{}}`))
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUnknownLocale, errs[0].Code)
	assert.Equal(t, "de", errs[0].Field)
}

func TestValidateUnregisteredIsFreeForm(t *testing.T) {
	assert.Empty(t, Empty().Validate("anything", decode(t, `[1,"two",null]`)))
}
