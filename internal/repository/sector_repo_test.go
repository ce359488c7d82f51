package repository_test

import (
	"context"
	"testing"

	"gala/internal/models"
	"gala/internal/repository"
	"gala/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorDeleteItemCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSectorRepository(db)
	ctx := context.Background()

	item := &models.SectorItem{Label: "Energy", Type: "ENERGY"}
	require.NoError(t, repo.CreateItem(ctx, item))
	svc := &models.SectorItemService{Label: "Completion", SectorItemID: item.ID}
	require.NoError(t, repo.CreateService(ctx, svc))
	require.NoError(t, repo.CreateDetail(ctx, &models.SectorItemServiceDetails{Title: "Liner Hanger", SectorItemServiceID: svc.ID}))
	other := &models.SectorItem{Label: "Infra", Type: "INFRA"}
	require.NoError(t, repo.CreateItem(ctx, other))

	n, err := repo.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var services, details int64
	db.Model(&models.SectorItemService{}).Count(&services)
	db.Model(&models.SectorItemServiceDetails{}).Count(&details)
	assert.Zero(t, services)
	assert.Zero(t, details)

	items, err := repo.ListItems(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Infra", items[0].Label)
}

func TestSectorListItemsByType(t *testing.T) {
	repo := repository.NewSectorRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, &models.SectorItem{Label: "Energy", Type: "ENERGY"}))
	require.NoError(t, repo.CreateItem(ctx, &models.SectorItem{Label: "Roads", Type: "INFRA"}))

	infra, err := repo.ListItems(ctx, "INFRA")
	require.NoError(t, err)
	require.Len(t, infra, 1)
	assert.Equal(t, "Roads", infra[0].Label)
}

func TestSectorDeleteServiceCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSectorRepository(db)
	ctx := context.Background()

	item := &models.SectorItem{Label: "Energy", Type: "ENERGY"}
	require.NoError(t, repo.CreateItem(ctx, item))
	svc := &models.SectorItemService{Label: "Completion", SectorItemID: item.ID}
	require.NoError(t, repo.CreateService(ctx, svc))
	require.NoError(t, repo.CreateDetail(ctx, &models.SectorItemServiceDetails{Title: "Zonal Control", SectorItemServiceID: svc.ID}))

	n, err := repo.DeleteService(ctx, svc.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	details, err := repo.ListDetails(ctx, svc.ID)
	require.NoError(t, err)
	assert.Empty(t, details)

	got, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
}
