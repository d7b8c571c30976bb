package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	m, err := NewManagerWithFile(path)
	require.NoError(t, err)
	return m, path
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	m, path := newTestManager(t)

	require.NoError(t, m.Load())

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), SchemaFileName))
	cfg := m.Get()
	assert.Equal(t, DefaultConfig().Capture, cfg.Capture)
	assert.NotEmpty(t, cfg.Database.Path, "database path is filled from XDG")
}

func TestManager_LoadReadsFile(t *testing.T) {
	m, path := newTestManager(t)
	content := "[capture]\nformat = \"pdf\"\noverlap_fraction = 0.3\n\n[selection]\nrepeat = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, FormatPDF, cfg.Capture.Format)
	assert.Equal(t, 0.3, cfg.Capture.OverlapFraction)
	assert.True(t, cfg.Selection.Repeat)
	assert.Equal(t, defaultSettleDelayMs, cfg.Capture.SettleDelayMs, "unset keys keep defaults")
}

func TestManager_EnvOverridesFile(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.WriteFile(path, []byte("[capture]\nformat = \"png\"\n"), 0o644))
	t.Setenv("AREASHOT_CAPTURE_FORMAT", "jpeg")
	t.Setenv("AREASHOT_LOG_LEVEL", "debug")

	require.NoError(t, m.Load())

	assert.Equal(t, FormatJPEG, m.Get().Capture.Format)
	assert.Equal(t, "debug", m.Get().Logging.Level)
}

func TestManager_LoadRejectsInvalidFile(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.WriteFile(path, []byte("[output]\njpeg_quality = 0\n"), 0o644))

	err := m.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.jpeg_quality")
}

func TestManager_SetPersistsAndValidates(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, m.Load())

	require.NoError(t, m.Set("selection.scroll_speed", "24"))
	assert.Equal(t, 24.0, m.Get().Selection.ScrollSpeed)

	reloaded, err := NewManagerWithFile(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 24.0, reloaded.Get().Selection.ScrollSpeed)

	err = m.Set("selection.scroll_speed", "0")
	require.Error(t, err)
	assert.Equal(t, 24.0, m.Get().Selection.ScrollSpeed, "rejected values are reverted")

	assert.Error(t, m.Set("selection.nope", "1"))
}

func TestManager_KeysAreSorted(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	keys := m.Keys()

	assert.Contains(t, keys, "capture.format")
	assert.Contains(t, keys, "browser.shortcut")
	assert.IsIncreasing(t, keys)
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, DefaultConfig().Selection, m.Get().Selection)
}

func TestSchema_UsesTOMLNames(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)

	assert.Contains(t, string(data), "overlap_fraction")
	assert.Contains(t, string(data), "areashot")
}
