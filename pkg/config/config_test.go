package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKeyPrecedence(t *testing.T) {
	cfg := &Config{SigningKey: "from-config"}

	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv(KeyEnvVar, "from-env")
		assert.Equal(t, []byte("from-flag"), cfg.ResolveKey("from-flag"))
	})

	t.Run("env wins over config", func(t *testing.T) {
		t.Setenv(KeyEnvVar, "from-env")
		assert.Equal(t, []byte("from-env"), cfg.ResolveKey(""))
	})

	t.Run("config wins over default", func(t *testing.T) {
		t.Setenv(KeyEnvVar, "")
		assert.Equal(t, []byte("from-config"), cfg.ResolveKey(""))
	})

	t.Run("development default", func(t *testing.T) {
		t.Setenv(KeyEnvVar, "")
		assert.Equal(t, []byte(DefaultKey), Default().ResolveKey(""))
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rmod.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"modules_dir": "dist/modules", "signing_key": "s3cret"}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dist/modules", cfg.ModulesDir)
	assert.Equal(t, "s3cret", cfg.SigningKey)
	// unset fields fall back to defaults
	assert.Equal(t, Default().IndexPath, cfg.IndexPath)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}
