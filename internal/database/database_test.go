package database

import (
	"context"
	"testing"
	"time"

	"gala/config"
	"gala/internal/domain"
	"gala/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(&config.DatabaseConfig{
		Driver:          "sqlite",
		DSN:             "file:" + t.Name() + "?mode=memory&cache=shared",
		MaxIdleConns:    1,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	cfg := config.AdminSeedConfig{Email: "Admin@TurkmenGala.com", Password: "admin123", Name: "Admin User"}

	require.NoError(t, SeedAdmin(ctx, db, cfg, zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, db, cfg, zap.NewNop()))

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@turkmengala.com", admins[0].Email)
	assert.Equal(t, domain.RoleSuperAdmin, admins[0].Role)
	assert.True(t, admins[0].IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("admin123")))
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, SeedAdmin(context.Background(), db, config.AdminSeedConfig{}, zap.NewNop()))
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Zero(t, count)
}

func TestSeedSectors(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	n, err := SeedSectors(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	var details []models.SectorItemServiceDetails
	require.NoError(t, db.Order("id").Find(&details).Error)
	require.Len(t, details, 9)
	assert.Equal(t, "Liner Hanger", details[0].Title)
	assert.NotEmpty(t, details[7].PdfURL)

	_, err = SeedSectors(ctx, db)
	assert.ErrorIs(t, err, ErrAlreadySeeded)
}
