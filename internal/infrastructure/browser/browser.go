// Package browser drives a Chromium tab over the DevTools protocol and
// exposes it through the application page ports.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

const (
	defaultNavigateTimeout = 30 * time.Second
	eventBuffer            = 256
)

// ErrTabClosed is returned once the browser tab has gone away.
var ErrTabClosed = errors.New("browser tab closed")

// Options selects and configures the browser.
type Options struct {
	// RemoteURL attaches to a running browser. Empty launches a new one.
	RemoteURL   string
	ExecPath    string
	UserDataDir string
	Headless    bool
	Width       int
	Height      int
	// Shortcut starts a selection from the keyboard inside the page.
	Shortcut        entity.Shortcut
	NavigateTimeout time.Duration
}

func (o Options) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, o.RemoteURL)
	}
	return chromedp.NewExecAllocator(ctx, o.execOptions()...)
}

func (o Options) execOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !o.Headless {
		opts = append(opts, chromedp.Flag("headless", false), chromedp.Flag("hide-scrollbars", false))
	}
	if o.Width > 0 && o.Height > 0 {
		opts = append(opts, chromedp.WindowSize(o.Width, o.Height))
	}
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	if o.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(o.UserDataDir))
	}
	return opts
}

// Open starts (or attaches to) a browser, opens a tab on url and installs
// the page script. Close releases the tab and, for a launched browser,
// the browser process.
func Open(ctx context.Context, url string, opts Options) (*Tab, error) {
	ctx = logging.WithComponent(ctx, "browser")
	log := logging.FromContext(ctx)

	allocCtx, allocCancel := opts.allocator(ctx)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) { log.Debug().Msgf(format, args...) }),
		chromedp.WithErrorf(func(format string, args ...any) { log.Warn().Msgf(format, args...) }),
	)

	t := newTab(tabCtx, func() {
		tabCancel()
		allocCancel()
	})
	chromedp.ListenTarget(tabCtx, t.onTargetEvent)

	timeout := opts.NavigateTimeout
	if timeout <= 0 {
		timeout = defaultNavigateTimeout
	}

	script := installScript(opts.Shortcut)
	err := chromedp.Run(tabCtx,
		runtime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx)
			return err
		}),
		emulation.SetFocusEmulationEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			grantClipboard(ctx)
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if url == "" {
				return nil
			}
			navCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return chromedp.Navigate(url).Do(navCtx)
		}),
	)
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("open %s: %w", url, err)
	}

	// about:blank never ran the new-document script.
	if err := t.install(ctx, script); err != nil {
		t.Close()
		return nil, fmt.Errorf("install page script: %w", err)
	}
	t.script = script

	log.Info().Str("url", url).Bool("remote", opts.RemoteURL != "").Msg("browser tab ready")
	return t, nil
}

// grantClipboard lets page.js write images without a user gesture. Browsers
// that refuse keep working; the system clipboard is the fallback.
func grantClipboard(ctx context.Context) {
	c := chromedp.FromContext(ctx)
	if c == nil || c.Browser == nil {
		return
	}
	perms := []cdpbrowser.PermissionType{
		cdpbrowser.PermissionTypeClipboardReadWrite,
		cdpbrowser.PermissionTypeClipboardSanitizedWrite,
	}
	if err := cdpbrowser.GrantPermissions(perms).Do(cdp.WithExecutor(ctx, c.Browser)); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("clipboard permission not granted")
	}
}
