package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultFileName is the log file name used when RotateOptions.Name is empty.
const DefaultFileName = "areashot.log"

// RotateOptions configures a RotatingFile.
type RotateOptions struct {
	Dir        string
	Name       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RotatingFile is an io.WriteCloser that rolls the log file over by size.
type RotatingFile struct {
	mu   sync.Mutex
	opts RotateOptions
	file *os.File
	size int64
}

// OpenRotatingFile opens (or creates) the current log file in opts.Dir.
func OpenRotatingFile(opts RotateOptions) (*RotatingFile, error) {
	if opts.Name == "" {
		opts.Name = DefaultFileName
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &RotatingFile{opts: opts}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the current log file path.
func (r *RotatingFile) Path() string {
	return filepath.Join(r.opts.Dir, r.opts.Name)
}

func (r *RotatingFile) maxBytes() int64 {
	return int64(r.opts.MaxSizeMB) * 1024 * 1024
}

func (r *RotatingFile) open() error {
	path := r.Path()
	if info, err := os.Stat(path); err == nil {
		r.size = info.Size()
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.file = file
	return nil
}

func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.size+int64(len(p)) > r.maxBytes() {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
	}
	r.file = nil

	backup := r.Path() + "." + time.Now().Format("2006-01-02-15-04-05")
	if err := os.Rename(r.Path(), backup); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.opts.Compress {
		if err := gzipFile(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backup, err)
		} else if err := os.Remove(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backup, err)
		}
	}

	r.prune(time.Now())
	r.size = 0
	return r.open()
}

// prune removes backups past MaxAgeDays, then the oldest beyond MaxBackups.
func (r *RotatingFile) prune(now time.Time) {
	entries, err := os.ReadDir(r.opts.Dir)
	if err != nil {
		return
	}

	maxAge := time.Duration(r.opts.MaxAgeDays) * 24 * time.Hour
	var backups []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), r.opts.Name+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if maxAge > 0 && now.Sub(info.ModTime()) > maxAge {
			removeQuietly(filepath.Join(r.opts.Dir, info.Name()))
			continue
		}
		backups = append(backups, info)
	}

	if r.opts.MaxBackups <= 0 || len(backups) <= r.opts.MaxBackups {
		return
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime().Before(backups[j].ModTime())
	})
	for _, info := range backups[:len(backups)-r.opts.MaxBackups] {
		removeQuietly(filepath.Join(r.opts.Dir, info.Name()))
	}
}

// Close closes the current log file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
	}
}
