package service

import (
	"context"
	"testing"

	"gala/internal/domain"
	"gala/internal/repository"
	"gala/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintp(v uint) *uint { return &v }

func TestSectorHierarchy(t *testing.T) {
	ctx := context.Background()
	svc := NewSectorService(repository.NewSectorRepository(testutil.NewDB(t)))

	item, err := svc.CreateItem(ctx, SectorItemInput{Label: strp("Oil & Gas"), Type: strp("energy")})
	require.NoError(t, err)
	assert.Equal(t, domain.SectorTypeEnergy, item.Type)

	infra, err := svc.CreateItem(ctx, SectorItemInput{Label: strp("Roads"), Type: strp("INFRA")})
	require.NoError(t, err)

	service, err := svc.CreateService(ctx, SectorServiceInput{Label: strp("Completion"), SectorItemID: uintp(item.ID)})
	require.NoError(t, err)

	detail, err := svc.CreateDetail(ctx, SectorDetailInput{Title: strp("Liner Hanger"), SectorItemServiceID: uintp(service.ID)})
	require.NoError(t, err)

	energy, err := svc.ListItems(ctx, "ENERGY")
	require.NoError(t, err)
	require.Len(t, energy, 1)
	assert.Equal(t, item.ID, energy[0].ID)

	updated, err := svc.UpdateDetail(ctx, detail.ID, SectorDetailInput{TitleRu: strp("Подвеска хвостовика")})
	require.NoError(t, err)
	assert.Equal(t, "Liner Hanger", updated.Title)
	assert.Equal(t, "Подвеска хвостовика", updated.TitleRu)

	moved, err := svc.UpdateService(ctx, service.ID, SectorServiceInput{SectorItemID: uintp(infra.ID)})
	require.NoError(t, err)
	assert.Equal(t, infra.ID, moved.SectorItemID)

	require.NoError(t, svc.DeleteItem(ctx, infra.ID))
	_, err = svc.GetService(ctx, service.ID)
	requireKind(t, err, domain.KindNotFound)
	_, err = svc.GetDetail(ctx, detail.ID)
	requireKind(t, err, domain.KindNotFound)
}

func TestSectorValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewSectorService(repository.NewSectorRepository(testutil.NewDB(t)))

	_, err := svc.CreateItem(ctx, SectorItemInput{Label: strp(" ")})
	requireKind(t, err, domain.KindBadRequest)
	_, err = svc.CreateItem(ctx, SectorItemInput{Label: strp("X"), Type: strp("SPACE")})
	requireKind(t, err, domain.KindBadRequest)
	_, err = svc.ListItems(ctx, "space")
	requireKind(t, err, domain.KindBadRequest)

	_, err = svc.CreateService(ctx, SectorServiceInput{Label: strp("S")})
	requireKind(t, err, domain.KindBadRequest)
	_, err = svc.CreateService(ctx, SectorServiceInput{Label: strp("S"), SectorItemID: uintp(99)})
	requireKind(t, err, domain.KindBadRequest)
	_, err = svc.CreateDetail(ctx, SectorDetailInput{Title: strp("D"), SectorItemServiceID: uintp(99)})
	requireKind(t, err, domain.KindBadRequest)

	_, err = svc.UpdateItem(ctx, 99, SectorItemInput{})
	de := requireKind(t, err, domain.KindNotFound)
	assert.Equal(t, "Sector item not found", de.Message)
	requireKind(t, svc.DeleteService(ctx, 99), domain.KindNotFound)
	requireKind(t, svc.DeleteDetail(ctx, 99), domain.KindNotFound)
}
