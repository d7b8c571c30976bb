package filesystem

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/domain/entity"
)

type stubEncoder struct {
	payload string
	err     error
}

func (s stubEncoder) Encode(w io.Writer, _ image.Image, _ entity.OutputFormat) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.payload)
	return err
}

func TestAdapter_SaveWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	a := New(stubEncoder{payload: "data"})

	path, err := a.Save(context.Background(), dir, "shot", image.NewRGBA(image.Rect(0, 0, 1, 1)), entity.FormatJPEG)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot.jpg"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestAdapter_SaveNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.png"), []byte("old"), 0o644))
	a := New(stubEncoder{payload: "new"})

	path, err := a.Save(context.Background(), dir, "shot", image.NewRGBA(image.Rect(0, 0, 1, 1)), entity.FormatPNG)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot-1.png"), path)
	old, _ := os.ReadFile(filepath.Join(dir, "shot.png"))
	assert.Equal(t, "old", string(old))
}

func TestAdapter_SaveEncodeFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	a := New(stubEncoder{err: errors.New("bad image")})

	_, err := a.Save(context.Background(), dir, "shot", image.NewRGBA(image.Rect(0, 0, 1, 1)), entity.FormatPNG)

	require.Error(t, err)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/Pictures")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures"), got)

	got, err = expandHome("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}
