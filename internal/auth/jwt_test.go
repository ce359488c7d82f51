package auth

import (
	"testing"
	"time"

	"gala/config"
	"gala/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "gala"}
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testCfg()
	tok, err := GenerateToken(cfg, domain.KindAdmin, 7, "admin@turkmengala.com", domain.RoleSuperAdmin)
	require.NoError(t, err)

	claims, err := ParseToken(cfg, domain.KindAdmin, tok)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.ID)
	assert.Equal(t, "admin@turkmengala.com", claims.Email)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
}

func TestParseRejectsWrongKind(t *testing.T) {
	cfg := testCfg()
	tok, err := GenerateToken(cfg, domain.KindUser, 1, "u@example.com", "")
	require.NoError(t, err)
	_, err = ParseToken(cfg, domain.KindAdmin, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	cfg := testCfg()
	expired := *cfg
	expired.Expiry = -time.Minute
	tok, err := GenerateToken(&expired, domain.KindAdmin, 1, "a@b.c", "")
	require.NoError(t, err)
	_, err = ParseToken(cfg, domain.KindAdmin, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := *cfg
	other.Secret = "other"
	tok, err = GenerateToken(&other, domain.KindAdmin, 1, "a@b.c", "")
	require.NoError(t, err)
	_, err = ParseToken(cfg, domain.KindAdmin, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(cfg, domain.KindAdmin, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
