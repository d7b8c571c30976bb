// Package clipboard provides image clipboard adapters: the page's own async
// clipboard, wl-clipboard (Wayland) and xclip (X11).
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

const pngMIME = "image/png"

// ErrNoTool is returned when no clipboard tool is installed for the session.
var ErrNoTool = errors.New("no clipboard tool available (install wl-clipboard or xclip)")

// lookPath and getenv are swapped in tests.
var (
	lookPath = exec.LookPath
	getenv   = os.Getenv
)

// Adapter implements port.ImageClipboard using system clipboard tools.
// Uses wl-copy for Wayland, falls back to xclip for X11.
type Adapter struct {
	copyCmd string
	args    []string
}

var _ port.ImageClipboard = (*Adapter)(nil)

// New creates a new clipboard adapter.
// Detects Wayland vs X11 and selects the appropriate tool.
func New() *Adapter {
	a := &Adapter{}

	if getenv("WAYLAND_DISPLAY") != "" {
		if path, err := lookPath("wl-copy"); err == nil {
			a.copyCmd = path
			a.args = []string{"--type", pngMIME}
		}
	}

	if a.copyCmd == "" && getenv("DISPLAY") != "" {
		if path, err := lookPath("xclip"); err == nil {
			a.copyCmd = path
			a.args = []string{"-selection", "clipboard", "-t", pngMIME, "-i"}
		}
	}

	return a
}

// Available reports whether a tool was found.
func (a *Adapter) Available() bool {
	return a.copyCmd != ""
}

// Name implements port.ImageClipboard.
func (a *Adapter) Name() string {
	if a.copyCmd == "" {
		return "system"
	}
	return filepath.Base(a.copyCmd)
}

// WriteImage pipes PNG bytes into the clipboard tool.
func (a *Adapter) WriteImage(ctx context.Context, png []byte) error {
	log := logging.FromContext(ctx)

	if a.copyCmd == "" {
		log.Error().Err(ErrNoTool).Msg("clipboard write failed")
		return fmt.Errorf("%w: %w", entity.ErrClipboardWriteFailed, ErrNoTool)
	}

	cmd := exec.CommandContext(ctx, a.copyCmd, a.args...)
	cmd.Stdin = bytes.NewReader(png)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Error().Err(err).Str("tool", a.copyCmd).Str("stderr", stderr.String()).Msg("clipboard write failed")
		return fmt.Errorf("%w: %s: %w", entity.ErrClipboardWriteFailed, a.Name(), err)
	}

	log.Debug().Str("tool", a.copyCmd).Int("bytes", len(png)).Msg("clipboard write success")
	return nil
}
