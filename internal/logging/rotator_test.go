package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingFile_RotatesBySize(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenRotatingFile(RotateOptions{Dir: dir, MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	line := []byte(strings.Repeat("x", 600*1024))
	_, err = f.Write(line)
	require.NoError(t, err)
	_, err = f.Write(line)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "current file plus one backup")

	info, err := os.Stat(filepath.Join(dir, "areashot.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(line)), info.Size())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "warn", ParseLevel("warning").String())
	assert.Equal(t, "info", ParseLevel("nonsense").String())
}
