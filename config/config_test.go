package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("UPLOAD_DRIVER", "")
	t.Setenv("TOKEN_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Upload.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "en", cfg.Sections.DefaultLocale)
	assert.Equal(t, 10, cfg.Upload.MaxImageMB)
	assert.Equal(t, int64(16383*16383), cfg.Upload.MaxPixels)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ORIGIN", "https://a.example, https://b.example")
	t.Setenv("SECTIONS_REQUIRE_VERSION", "true")
	t.Setenv("TOKEN_EXPIRY", "2h")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg := Load()
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Sections.RequireVersion)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Database.Driver = "sqlite"
	cfg.Upload.Driver = "local"
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	cfg.Upload.Driver = "cloudinary"
	cfg.Cloudinary = CloudinaryConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "cloudinary credentials")
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := Load()
	cfg.Database.Driver = "sqlite"
	cfg.Upload.Driver = "local"
	cfg.Server.Env = "production"
	cfg.JWT.Secret = "change-me-in-production"
	assert.ErrorContains(t, cfg.Validate(), "SECRET_KEY must be changed")
}

func TestValidateRejectsUnsupportedDefaultLocale(t *testing.T) {
	t.Setenv("DEFAULT_LOCALE", "de")
	cfg := Load()
	cfg.Database.Driver = "sqlite"
	cfg.Upload.Driver = "local"
	assert.ErrorContains(t, cfg.Validate(), "DEFAULT_LOCALE")

	cfg.Sections.DefaultLocale = "ru"
	cfg.Upload.MaxPixels = 0
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_MAX_PIXELS")
}
