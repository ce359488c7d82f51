package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "gala.db"))
	t.Setenv("UPLOAD_DRIVER", "local")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLIAdminAndSeed(t *testing.T) {
	useTempDB(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = execute(t, "admin", "create", "--email", "ops@example.com", "--password", "secret99", "--name", "Ops")
	require.NoError(t, err)
	assert.Contains(t, out, "ops@example.com, super_admin")

	_, err = execute(t, "admin", "create", "--email", "ops@example.com", "--password", "secret99")
	assert.Error(t, err)

	out, err = execute(t, "seed", "sectors")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	out, err = execute(t, "seed", "sectors")
	require.NoError(t, err)
	assert.Contains(t, out, "already present")
}

func TestCLISections(t *testing.T) {
	useTempDB(t)

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	out, err := execute(t, "sections", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SECTION")

	_, err = execute(t, "sections", "export", "careers")
	assert.ErrorContains(t, err, "Section not found")

	_, err = execute(t, "sections", "export")
	assert.Error(t, err)
}
