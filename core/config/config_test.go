package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "csv", cfg.Table.Source)
	assert.Equal(t, "sheet.csv", cfg.Table.Path)
	assert.Equal(t, "firestore", cfg.Sync.Backend)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
	assert.Equal(t, 200, cfg.Sync.RetryBaseMillis)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_EnvFileAndYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_MAX_RETRIES=5\nTABLE_SOURCE=sql\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("sync:\n  backend: objectstore\n  collection: catalog\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SYNC_MAX_RETRIES")
		os.Unsetenv("TABLE_SOURCE")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, "sql", cfg.Table.Source)
	assert.Equal(t, "objectstore", cfg.Sync.Backend)
	assert.Equal(t, "catalog", cfg.Sync.Collection)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: \"9000\"\n"), 0o644))
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
}
