package service

import (
	"context"
	"encoding/json"
	"testing"

	"gala/internal/domain"
	"gala/internal/models"
	"gala/internal/repository"
	"gala/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(t *testing.T, docs map[string]string) *ContentService {
	t.Helper()
	return newContentServiceWithLocale(t, docs, "")
}

func newContentServiceWithLocale(t *testing.T, docs map[string]string, defaultLocale string) *ContentService {
	t.Helper()
	repo := repository.NewSectionRepository(testutil.NewDB(t))
	for name, doc := range docs {
		require.NoError(t, repo.Create(context.Background(), &models.Section{Section: name, Data: []byte(doc)}))
	}
	return NewContentService(repo, defaultLocale)
}

func TestContentGet(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t, map[string]string{
		"careers":    careersDoc,
		"navigation": `[{"href":"/"}]`,
	})

	ru, err := svc.Get(ctx, "careers", "RU")
	require.NoError(t, err)
	assert.Equal(t, "ru", ru.Locale)
	b, _ := json.Marshal(ru.Content)
	assert.JSONEq(t, `{"jobs":[{"id":1,"title":"Инженер"}]}`, string(b))

	// tk is supported but missing from the document
	tk, err := svc.Get(ctx, "careers", "tk")
	require.NoError(t, err)
	assert.Equal(t, "en", tk.Locale)

	def, err := svc.Get(ctx, "careers", "")
	require.NoError(t, err)
	assert.Equal(t, "en", def.Locale)

	flat, err := svc.Get(ctx, "navigation", "ru")
	require.NoError(t, err)
	assert.Empty(t, flat.Locale)
	assert.Equal(t, int64(1), flat.Version)

	_, err = svc.Get(ctx, "careers", "fr")
	requireKind(t, err, domain.KindBadRequest)

	_, err = svc.Get(ctx, "missing", "en")
	requireKind(t, err, domain.KindNotFound)
}

func TestContentGetMany(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t, map[string]string{
		"careers":    careersDoc,
		"navigation": `{"links":[]}`,
	})

	got, err := svc.GetMany(ctx, []string{"careers", " navigation ", "missing", ""}, "ru")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ru", got["careers"].Locale)
	assert.Contains(t, got, "navigation")

	_, err = svc.GetMany(ctx, []string{" "}, "en")
	requireKind(t, err, domain.KindBadRequest)
}

func TestContentGetConfiguredDefaultLocale(t *testing.T) {
	ctx := context.Background()
	svc := newContentServiceWithLocale(t, map[string]string{"careers": careersDoc}, "ru")

	def, err := svc.Get(ctx, "careers", "")
	require.NoError(t, err)
	assert.Equal(t, "ru", def.Locale)

	tk, err := svc.Get(ctx, "careers", "tk")
	require.NoError(t, err)
	assert.Equal(t, "ru", tk.Locale)
}
