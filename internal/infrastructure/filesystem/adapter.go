// Package filesystem writes encoded captures to disk.
package filesystem

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
	// maxSuffix bounds the "-N" suffixes tried when a name is taken.
	maxSuffix = 100
)

// Adapter implements port.ImageStore on the OS filesystem.
type Adapter struct {
	encoder port.ImageEncoder
}

var _ port.ImageStore = (*Adapter)(nil)

// New creates a new filesystem adapter.
func New(encoder port.ImageEncoder) *Adapter {
	return &Adapter{encoder: encoder}
}

// Save encodes img into dir/name.<ext> and returns the path written.
// The file appears atomically; an existing file is never overwritten.
func (a *Adapter) Save(ctx context.Context, dir, name string, img image.Image, format entity.OutputFormat) (string, error) {
	log := logging.FromContext(ctx)

	dir, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path, err := a.freePath(dir, name, format.Extension())
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := a.encoder.Encode(tmp, img, format); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return "", fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	tmpPath = ""

	log.Debug().Str("path", path).Str("format", string(format)).Msg("capture written")
	return path, nil
}

func (a *Adapter) freePath(dir, name, ext string) (string, error) {
	path := filepath.Join(dir, name+ext)
	for i := 1; i <= maxSuffix; i++ {
		exists, err := Exists(path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, i, ext))
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// Exists reports whether path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func expandHome(dir string) (string, error) {
	if dir == "~" || len(dir) > 1 && dir[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, dir[1:]), nil
	}
	return dir, nil
}
