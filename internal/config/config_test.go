package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /tmp/test.db\nepic_mode: gap-fill\ncolor: false\nlog_use_cases: true\n",
	), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "gap-fill", cfg.EpicMode)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
	assert.True(t, cfg.LogUseCases)
}

func TestLoadFromMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [nope"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestResolveDBPathPrecedence(t *testing.T) {
	t.Setenv("PLANSCOPE_DB", "/env/path.db")
	cfg := &Config{DBPath: "/config/path.db"}

	path, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/env/path.db", path, "env var wins")

	t.Setenv("PLANSCOPE_DB", "")
	path, err = cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/config/path.db", path)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path, err = (&Config{}).ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, AppDir, "planscope.db"), path)
}
