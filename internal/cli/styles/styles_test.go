package styles

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/domain/build"
	"github.com/bnema/areashot/internal/domain/entity"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{15 * 24 * time.Hour, "2w ago"},
		{65 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestCaptureRow(t *testing.T) {
	row := CaptureRow(&entity.CaptureRecord{
		PageURL:      "https://example.com/",
		OutputWidth:  1200,
		OutputHeight: 3400,
		Tiles:        6,
		Format:       entity.FormatPNG,
		FilePath:     "/home/u/Pictures/areashot/shot.png",
		Status:       entity.CaptureSucceeded,
		CreatedAt:    time.Now(),
	})

	require.Len(t, row, len(CaptureTableColumns()))
	assert.Equal(t, "https://example.com/", row[1])
	assert.Equal(t, "1200x3400", row[2])
	assert.Equal(t, "6", row[3])
	assert.Equal(t, "shot.png", row[5])
	assert.Equal(t, "succeeded", row[6])
}

func TestCaptureRow_FailedCaptureHasPlaceholders(t *testing.T) {
	row := CaptureRow(&entity.CaptureRecord{Status: entity.CaptureFailed, CreatedAt: time.Now()})

	assert.Equal(t, "-", row[2])
	assert.Equal(t, "-", row[5])
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "1.5K", formatInt(1500))
	assert.Equal(t, "2M", formatInt(2000000))
}

func TestConfigRenderer_RenderEntriesGroupsSections(t *testing.T) {
	r := NewConfigRenderer(NewTheme())

	out := r.RenderEntries([]ConfigEntry{
		{Key: "capture.format", Value: "png"},
		{Key: "capture.overlap_fraction", Value: 0.1},
		{Key: "history.enabled", Value: true},
	})

	assert.Contains(t, out, "[capture]")
	assert.Contains(t, out, "[history]")
	assert.Contains(t, out, `"png"`)
	assert.Contains(t, out, "overlap_fraction")
}

func TestConfigRenderer_RenderOpening(t *testing.T) {
	r := NewConfigRenderer(NewTheme())

	out := r.RenderOpening("/tmp/areashot/config.toml", "vim")
	assert.Contains(t, out, "Opening")
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "vim")
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestConfirmModel(t *testing.T) {
	m := NewConfirm(NewTheme(), "Delete all captures?")
	assert.False(t, m.Done())

	m, _ = m.Update(keyMsg("y"))
	assert.True(t, m.Done())
	assert.True(t, m.Result())

	m = NewConfirm(NewTheme(), "Delete all captures?")
	m, _ = m.Update(keyMsg("enter"))
	assert.True(t, m.Done())
	assert.False(t, m.Result(), "enter keeps the default No")
}

func TestAboutRenderer(t *testing.T) {
	out := NewAboutRenderer(NewTheme()).Render(build.Info{Version: "v1.2.3", Commit: "abcdef0"})

	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abcdef0")
	assert.Contains(t, out, build.RepoURL())
}

func keyMsg(k string) tea.KeyMsg {
	if k == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
