package cli

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/application/usecase"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/infrastructure/browser"
	"github.com/bnema/areashot/internal/infrastructure/cache"
	"github.com/bnema/areashot/internal/infrastructure/clipboard"
	"github.com/bnema/areashot/internal/infrastructure/config"
	"github.com/bnema/areashot/internal/infrastructure/filesystem"
	"github.com/bnema/areashot/internal/infrastructure/imaging"
	"github.com/bnema/areashot/internal/infrastructure/notification"
	"github.com/bnema/areashot/internal/logging"
)

const (
	defaultToastMs      = 3000
	mediaFrameCacheSize = 32
)

// Session is one browser tab wired to the capture use cases.
type Session struct {
	Tab     *browser.Tab
	Capture *usecase.CaptureRegionUseCase
	Select  *usecase.SelectRegionUseCase

	compositor *usecase.Compositor
	selection  *usecase.SelectionManager
}

// OpenSession opens pageURL in a browser tab and builds the capture
// pipeline on top of it. The caller must Close the session.
func (a *App) OpenSession(ctx context.Context, pageURL string) (*Session, error) {
	cfg := a.Manager.Get()
	ctx = logging.WithURL(ctx, pageURL)

	opts, err := BrowserOptions(cfg)
	if err != nil {
		return nil, err
	}

	tab, err := browser.Open(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}

	scroll := usecase.NewScrollController(tab)
	compositor := usecase.NewCompositor(CompositorConfig(cfg), scroll, tab, usecase.NewMediaOverlay(tab, cache.NewLRU[string, image.Image](mediaFrameCacheSize)))
	selection := usecase.NewSelectionManager(SelectionConfig(cfg), scroll, tab)

	encoder := imaging.NewEncoder(EncoderOptions(cfg))
	capture := usecase.NewCaptureRegionUseCase(
		compositor,
		clipboardChain(ctx, cfg.Clipboard, tab),
		notifier(ctx, cfg.Notifications, tab),
		encoder,
		filesystem.New(encoder),
		a.Captures,
	)

	return &Session{
		Tab:        tab,
		Capture:    capture,
		Select:     usecase.NewSelectRegionUseCase(selection, tab, capture),
		compositor: compositor,
		selection:  selection,
	}, nil
}

// Apply pushes reloaded tiling and gesture settings into the running session.
func (s *Session) Apply(cfg *config.Config) {
	s.compositor.SetConfig(CompositorConfig(cfg))
	s.selection.SetConfig(SelectionConfig(cfg))
}

// FullPage returns the whole document as a capture rectangle.
func (s *Session) FullPage(ctx context.Context) (entity.DocumentRect, error) {
	vp, err := s.Tab.Viewport(ctx)
	if err != nil {
		return entity.DocumentRect{}, fmt.Errorf("read viewport: %w", err)
	}
	ext, err := s.Tab.RootExtent(ctx)
	if err != nil {
		return entity.DocumentRect{}, fmt.Errorf("read page extent: %w", err)
	}
	return entity.DocumentRect{
		Width:  vp.Width + ext.Max.X,
		Height: vp.Height + ext.Max.Y,
	}, nil
}

// Close closes the browser tab.
func (s *Session) Close() {
	s.Tab.Close()
}

// BrowserOptions maps the [browser] section to launch options.
func BrowserOptions(cfg *config.Config) (browser.Options, error) {
	b := cfg.Browser
	opts := browser.Options{
		RemoteURL:       b.RemoteURL,
		ExecPath:        b.ExecPath,
		UserDataDir:     b.UserDataDir,
		Headless:        b.Headless,
		Width:           b.WindowWidth,
		Height:          b.WindowHeight,
		NavigateTimeout: time.Duration(b.NavigateTimeoutSec) * time.Second,
	}
	if b.Shortcut != "" {
		sc, err := entity.ParseShortcut(b.Shortcut)
		if err != nil {
			return opts, fmt.Errorf("browser.shortcut: %w", err)
		}
		opts.Shortcut = sc
	}
	return opts, nil
}

// CompositorConfig maps the [capture] section to tiling settings.
func CompositorConfig(cfg *config.Config) usecase.CompositorConfig {
	return usecase.CompositorConfig{
		OverlapFraction:   cfg.Capture.OverlapFraction,
		SettleDelay:       time.Duration(cfg.Capture.SettleDelayMs) * time.Millisecond,
		SingleSettleDelay: time.Duration(cfg.Capture.SingleSettleDelayMs) * time.Millisecond,
	}
}

// SelectionConfig maps the [selection] section to gesture settings.
func SelectionConfig(cfg *config.Config) usecase.SelectionConfig {
	return usecase.SelectionConfig{
		EdgeThreshold: cfg.Selection.EdgeThreshold,
		ScrollSpeed:   cfg.Selection.ScrollSpeed,
		TickInterval:  time.Duration(cfg.Selection.TickIntervalMs) * time.Millisecond,
		MinSize:       cfg.Selection.MinSize,
	}
}

// EncoderOptions maps the [output] section to encoder settings.
func EncoderOptions(cfg *config.Config) imaging.Options {
	return imaging.Options{
		JPEGQuality: cfg.Output.JPEGQuality,
		PDFDPI:      cfg.Output.PDFDPI,
	}
}

// OutputFormat returns the configured file format.
func OutputFormat(cfg *config.Config) entity.OutputFormat {
	format, err := entity.ParseOutputFormat(string(cfg.Capture.Format))
	if err != nil {
		return entity.FormatPNG
	}
	return format
}

// clipboardChain orders the page clipboard and the system tools. The page
// clipboard is tried first with clipboard.page_first, last otherwise.
func clipboardChain(ctx context.Context, cfg config.ClipboardConfig, tab *browser.Tab) port.ImageClipboard {
	page := browser.NewPageClipboard(tab)

	var system port.ImageClipboard
	if cfg.System {
		if tool := clipboard.New(); tool.Available() {
			system = tool
		} else {
			logging.FromContext(ctx).Debug().Msg("no system clipboard tool found")
		}
	}

	if cfg.PageFirst {
		return clipboard.NewChain(page, system)
	}
	return clipboard.NewChain(system, page)
}

// notifier combines the page toast and desktop notifications.
func notifier(ctx context.Context, cfg config.NotificationsConfig, tab *browser.Tab) port.Notifier {
	var targets notification.Multi
	if cfg.PageToast {
		timeout := cfg.TimeoutMs
		if timeout <= 0 {
			timeout = defaultToastMs
		}
		targets = append(targets, browser.NewToast(tab, timeout))
	}
	if cfg.Desktop {
		if desktop := notification.NewDesktopNotifier(ctx, int32(cfg.TimeoutMs)); desktop.Supported() {
			targets = append(targets, desktop)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	return notification.Quiet{Next: targets, ErrorsOnly: cfg.ErrorsOnly}
}
