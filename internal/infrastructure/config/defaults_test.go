package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, validateConfig(cfg))

	assert.Equal(t, 0.2, cfg.Capture.OverlapFraction)
	assert.Equal(t, 250, cfg.Capture.SettleDelayMs)
	assert.Equal(t, 200, cfg.Capture.SingleSettleDelayMs)
	assert.Equal(t, 60.0, cfg.Selection.EdgeThreshold)
	assert.Equal(t, 18.0, cfg.Selection.ScrollSpeed)
	assert.Equal(t, 16, cfg.Selection.TickIntervalMs)
	assert.Equal(t, 10.0, cfg.Selection.MinSize)
	assert.Equal(t, "Alt+Shift+S", cfg.Browser.Shortcut)
	assert.Equal(t, FormatPNG, cfg.Capture.Format)
	assert.True(t, cfg.Capture.CopyToClipboard)
}

func TestGetPicturesDir_PrefersXDG(t *testing.T) {
	t.Setenv("XDG_PICTURES_DIR", "/srv/pics")

	dir, err := GetPicturesDir()

	require.NoError(t, err)
	assert.Equal(t, "/srv/pics", dir)
}
