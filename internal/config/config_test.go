package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, filepath.Join(home, ".moneyflow"), cfg.Data.Directory)
	assert.Equal(t, filepath.Join(home, ".moneyflow", "token.json"), cfg.Sync.TokenFile)
}

func TestLoadFromFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".moneyflow")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"log:\n  level: debug\n  format: json\ndata:\n  directory: /tmp/mfdata\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/mfdata", cfg.Data.Directory)
}

func TestEnvOverridesFile(t *testing.T) {
	isolateHome(t)
	t.Setenv("MONEYFLOW_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestClientSecretOnlyFromEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("MONEYFLOW_SYNC_CLIENT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Sync.ClientSecret)
}

func TestInvalidLogFormatRejected(t *testing.T) {
	isolateHome(t)
	t.Setenv("MONEYFLOW_LOG_FORMAT", "xml")

	_, err := Load()
	assert.Error(t, err)
}
