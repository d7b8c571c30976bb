package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/infrastructure/config"
)

func setXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_PICTURES_DIR", filepath.Join(root, "pictures"))
	return root
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewApp_OpensHistoryOnFirstUse(t *testing.T) {
	root := setXDG(t)
	path := writeConfig(t, root, "[database]\npath = \""+filepath.Join(root, "h.db")+"\"\n")

	app, err := NewApp(context.Background(), Options{ConfigFile: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NotNil(t, app.Captures)
	assert.NoFileExists(t, filepath.Join(root, "h.db"))

	uc, err := app.RequireHistory()
	require.NoError(t, err)

	out, err := uc.Execute(app.Ctx(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Captures)
	assert.FileExists(t, filepath.Join(root, "h.db"))
}

func TestNewApp_HistoryDisabled(t *testing.T) {
	root := setXDG(t)
	path := writeConfig(t, root, "[history]\nenabled = false\n")

	app, err := NewApp(context.Background(), Options{ConfigFile: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.Captures)
	_, err = app.RequireHistory()
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	root := setXDG(t)
	path := writeConfig(t, root, "[capture]\noverlap_fraction = 2.0\n")

	_, err := NewApp(context.Background(), Options{ConfigFile: path})

	assert.Error(t, err)
}

func TestNewLogger_LevelOverride(t *testing.T) {
	logger, cleanup, err := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, "debug")
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logger, cleanup, err := newLogger(config.LoggingConfig{
		Level:         "info",
		Format:        "json",
		LogDir:        dir,
		EnableFileLog: true,
		MaxSizeMB:     1,
	}, "")
	require.NoError(t, err)

	logger.Info().Msg("hello file")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "areashot.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestConfigMapping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Capture.SettleDelayMs = 300
	cfg.Capture.SingleSettleDelayMs = 120
	cfg.Capture.OverlapFraction = 0.25
	cfg.Selection.TickIntervalMs = 20
	cfg.Browser.Shortcut = "ctrl+shift+x"
	cfg.Browser.NavigateTimeoutSec = 12
	cfg.Output.JPEGQuality = 70

	comp := CompositorConfig(cfg)
	assert.Equal(t, 300*time.Millisecond, comp.SettleDelay)
	assert.Equal(t, 120*time.Millisecond, comp.SingleSettleDelay)
	assert.InDelta(t, 0.25, comp.OverlapFraction, 1e-9)

	sel := SelectionConfig(cfg)
	assert.Equal(t, 20*time.Millisecond, sel.TickInterval)
	assert.Equal(t, cfg.Selection.EdgeThreshold, sel.EdgeThreshold)

	opts, err := BrowserOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, entity.Shortcut{Ctrl: true, Shift: true, Key: "X"}, opts.Shortcut)
	assert.Equal(t, 12*time.Second, opts.NavigateTimeout)

	assert.Equal(t, 70, EncoderOptions(cfg).JPEGQuality)
}

func TestBrowserOptions_BadShortcut(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Browser.Shortcut = "S"

	_, err := BrowserOptions(cfg)

	assert.ErrorContains(t, err, "browser.shortcut")
}

func TestOutputFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Capture.Format = config.FormatJPEG
	assert.Equal(t, entity.FormatJPEG, OutputFormat(cfg))

	cfg.Capture.Format = "webp"
	assert.Equal(t, entity.FormatPNG, OutputFormat(cfg))
}
