package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TREESEL_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)

	assert.False(t, c.Selection.Single)
	assert.Equal(t, ModeAuto, c.UI.Mode)
	assert.True(t, c.UI.ShowItems)
	assert.Equal(t, 4, c.Load.Workers)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "treesel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
selection:
  single: true
ui:
  mode: simple
  show_items: false
load:
  workers: 2
log:
  level: debug
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.True(t, c.Selection.Single)
	assert.Equal(t, ModeSimple, c.UI.Mode)
	assert.False(t, c.UI.ShowItems)
	assert.Equal(t, 2, c.Load.Workers)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoad_HomeConfig(t *testing.T) {
	isolate(t)

	dir := filepath.Join(os.Getenv("HOME"), ".config", "treesel")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  mode: tui\n"), 0o600))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeTUI, c.UI.Mode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TREESEL_UI_MODE", "simple")
	t.Setenv("TREESEL_SELECTION_SINGLE", "true")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModeSimple, c.UI.Mode)
	assert.True(t, c.Selection.Single)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file must exist", func(t *testing.T) {
		isolate(t)

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("config env var must point at a file", func(t *testing.T) {
		isolate(t)
		t.Setenv("TREESEL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("unknown ui mode", func(t *testing.T) {
		isolate(t)
		t.Setenv("TREESEL_UI_MODE", "fancy")

		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("unknown log level", func(t *testing.T) {
		isolate(t)
		t.Setenv("TREESEL_LOG_LEVEL", "loud")

		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("workers must be positive", func(t *testing.T) {
		isolate(t)
		t.Setenv("TREESEL_LOAD_WORKERS", "0")

		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})
}
