package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

var _ port.Page = (*Tab)(nil)

// Tab is one browser tab implementing every page port.
type Tab struct {
	ctx    context.Context
	cancel context.CancelFunc
	script string
	events chan entity.InputEvent

	mu           sync.Mutex
	overlayShown bool
	closeOnce    sync.Once
}

func newTab(ctx context.Context, cancel context.CancelFunc) *Tab {
	return &Tab{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan entity.InputEvent, eventBuffer),
	}
}

// Close closes the tab.
func (t *Tab) Close() {
	t.closeOnce.Do(t.cancel)
}

// Done is closed once the tab has gone away.
func (t *Tab) Done() <-chan struct{} {
	return t.ctx.Done()
}

func (t *Tab) onTargetEvent(ev any) {
	switch ev := ev.(type) {
	case *runtime.EventBindingCalled:
		if ev.Name != bindingName {
			return
		}
		input, err := decodeEvent(ev.Payload)
		if err != nil {
			logging.FromContext(t.ctx).Debug().Err(err).Msg("ignoring page event")
			return
		}
		t.push(input)
	case *page.EventFrameNavigated:
		// A navigation drops the overlay with the old document.
		if ev.Frame != nil && ev.Frame.ParentID == "" && t.takeOverlay() {
			t.push(entity.InputEvent{Kind: entity.EventKeyDown, Key: entity.KeyEscape})
		}
	}
}

// push must not block: it runs on the chromedp event loop.
func (t *Tab) push(ev entity.InputEvent) {
	select {
	case t.events <- ev:
	default:
		logging.FromContext(t.ctx).Warn().Stringer("event", ev.Kind).Msg("page event queue full, dropping event")
	}
}

func (t *Tab) takeOverlay() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	shown := t.overlayShown
	t.overlayShown = false
	return shown
}

// run executes actions on this tab under the caller's ctx.
func (t *Tab) run(ctx context.Context, actions ...chromedp.Action) error {
	c := chromedp.FromContext(t.ctx)
	if c == nil || c.Target == nil {
		return ErrTabClosed
	}
	if err := t.ctx.Err(); err != nil {
		return ErrTabClosed
	}

	// Keep the caller's logger and deadline, but die with the tab too.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(t.ctx, cancel)
	defer stop()

	exec := cdp.WithExecutor(ctx, c.Target)
	for _, a := range actions {
		if err := a.Do(exec); err != nil {
			if t.ctx.Err() != nil {
				return ErrTabClosed
			}
			return err
		}
	}
	return nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// eval evaluates one page.js call, reinstalling the script once if the
// document replaced it.
func (t *Tab) eval(ctx context.Context, expr string, out any) error {
	err := t.run(ctx, chromedp.Evaluate(expr, out, awaitPromise))
	if err == nil || errors.Is(err, ErrTabClosed) {
		return err
	}

	var present bool
	if checkErr := t.run(ctx, chromedp.Evaluate("!!window.__areashot", &present)); checkErr != nil || present {
		return err
	}
	if installErr := t.install(ctx, t.script); installErr != nil {
		return fmt.Errorf("%w (reinstall failed: %v)", err, installErr)
	}
	return t.run(ctx, chromedp.Evaluate(expr, out, awaitPromise))
}

func (t *Tab) install(ctx context.Context, script string) error {
	return t.run(ctx, chromedp.Evaluate(script, nil))
}

type extentJS struct {
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (e extentJS) extent() port.ScrollExtent {
	return port.ScrollExtent{Max: entity.ScrollPosition{X: e.MaxX, Y: e.MaxY}}
}

// ReadScroll implements port.ScrollHost.
func (t *Tab) ReadScroll(ctx context.Context) (port.ScrollReadings, error) {
	var out struct {
		X []*float64 `json:"x"`
		Y []*float64 `json:"y"`
	}
	if err := t.eval(ctx, call("readScroll"), &out); err != nil {
		return port.ScrollReadings{}, fmt.Errorf("read scroll: %w", err)
	}
	return port.ScrollReadings{X: out.X, Y: out.Y}, nil
}

// ScrollExtent implements port.ScrollHost.
func (t *Tab) ScrollExtent(ctx context.Context) (port.ScrollExtent, error) {
	var out extentJS
	if err := t.eval(ctx, call("extent"), &out); err != nil {
		return port.ScrollExtent{}, fmt.Errorf("read scroll extent: %w", err)
	}
	return out.extent(), nil
}

// RootExtent implements port.ScrollHost.
func (t *Tab) RootExtent(ctx context.Context) (port.ScrollExtent, error) {
	var out extentJS
	if err := t.eval(ctx, call("rootExtent"), &out); err != nil {
		return port.ScrollExtent{}, fmt.Errorf("read root extent: %w", err)
	}
	return out.extent(), nil
}

// ApplyScroll implements port.ScrollHost.
func (t *Tab) ApplyScroll(ctx context.Context, m port.ScrollMechanism, to, delta entity.ScrollPosition) error {
	var ok bool
	if err := t.eval(ctx, call("applyScroll", int(m), to.X, to.Y, delta.X, delta.Y), &ok); err != nil {
		return fmt.Errorf("scroll (%s): %w", m, err)
	}
	return nil
}

// ScrollContainers implements port.ScrollHost.
func (t *Tab) ScrollContainers(ctx context.Context) ([]port.ScrollContainer, error) {
	var out []struct {
		ID        string  `json:"id"`
		Tag       string  `json:"tag"`
		Area      float64 `json:"area"`
		OverflowX float64 `json:"overflowX"`
		OverflowY float64 `json:"overflowY"`
	}
	if err := t.eval(ctx, call("scrollContainers"), &out); err != nil {
		return nil, fmt.Errorf("list scroll containers: %w", err)
	}

	containers := make([]port.ScrollContainer, 0, len(out))
	for _, c := range out {
		containers = append(containers, port.ScrollContainer{
			ID:       c.ID,
			Tag:      c.Tag,
			Area:     c.Area,
			Overflow: entity.ScrollPosition{X: c.OverflowX, Y: c.OverflowY},
		})
	}
	return containers, nil
}

// UseScrollTarget implements port.ScrollHost.
func (t *Tab) UseScrollTarget(ctx context.Context, id string) error {
	var ok bool
	if err := t.eval(ctx, call("useTarget", id), &ok); err != nil {
		return fmt.Errorf("select scroll target %q: %w", id, err)
	}
	return nil
}

type viewportJS struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	OriginX      float64 `json:"originX"`
	OriginY      float64 `json:"originY"`
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
	DPR          float64 `json:"dpr"`
}

func (v viewportJS) viewport() entity.Viewport {
	return entity.Viewport{
		Width:            v.Width,
		Height:           v.Height,
		DevicePixelRatio: v.DPR,
		WindowWidth:      v.WindowWidth,
		WindowHeight:     v.WindowHeight,
		OriginX:          v.OriginX,
		OriginY:          v.OriginY,
	}
}

// Viewport implements port.FrameCapturer.
func (t *Tab) Viewport(ctx context.Context) (entity.Viewport, error) {
	var out viewportJS
	if err := t.eval(ctx, call("viewport"), &out); err != nil {
		return entity.Viewport{}, fmt.Errorf("read viewport: %w", err)
	}
	return out.viewport(), nil
}

// CaptureFrame implements port.FrameCapturer. Page toasts are removed
// first so feedback never appears in a capture.
func (t *Tab) CaptureFrame(ctx context.Context) (entity.Frame, error) {
	var quieted bool
	if err := t.eval(ctx, call("quiet"), &quieted); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("could not clear page toasts")
	}

	var data []byte
	err := t.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		data, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithFromSurface(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return entity.Frame{}, fmt.Errorf("capture screenshot: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return entity.Frame{}, fmt.Errorf("read screenshot size: %w", err)
	}
	return entity.Frame{Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// MediaElements implements port.MediaSource.
func (t *Tab) MediaElements(ctx context.Context) ([]port.MediaElement, error) {
	var out []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
		Box  struct {
			Left   float64 `json:"left"`
			Top    float64 `json:"top"`
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"box"`
	}
	if err := t.eval(ctx, call("mediaElements"), &out); err != nil {
		return nil, fmt.Errorf("list media elements: %w", err)
	}

	elements := make([]port.MediaElement, 0, len(out))
	for _, m := range out {
		elements = append(elements, port.MediaElement{
			ID:   m.ID,
			Kind: port.MediaKind(m.Kind),
			Box:  entity.ViewportRect{Left: m.Box.Left, Top: m.Box.Top, Width: m.Box.Width, Height: m.Box.Height},
		})
	}
	return elements, nil
}

// MediaFrame implements port.MediaSource.
func (t *Tab) MediaFrame(ctx context.Context, id string) ([]byte, error) {
	var dataURL string
	if err := t.eval(ctx, call("mediaFrame", id), &dataURL); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrOverlayElementUnreadable, err)
	}
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrOverlayElementUnreadable, err)
	}
	return data, nil
}

// Show implements port.SelectionOverlay.
func (t *Tab) Show(ctx context.Context) error {
	var ok bool
	if err := t.eval(ctx, call("show"), &ok); err != nil {
		return fmt.Errorf("show overlay: %w", err)
	}
	t.mu.Lock()
	t.overlayShown = true
	t.mu.Unlock()
	return nil
}

// Render implements port.SelectionOverlay.
func (t *Tab) Render(ctx context.Context, box entity.ViewportRect) error {
	var ok bool
	if err := t.eval(ctx, call("render", box.Left, box.Top, box.Width, box.Height), &ok); err != nil {
		return fmt.Errorf("render selection: %w", err)
	}
	return nil
}

// Hide implements port.SelectionOverlay. The promise resolves after the
// page has painted a frame without the overlay.
func (t *Tab) Hide(ctx context.Context) error {
	t.takeOverlay()
	var ok bool
	if err := t.eval(ctx, call("hide"), &ok); err != nil {
		return fmt.Errorf("hide overlay: %w", err)
	}
	return nil
}

// Next implements port.InputSource.
func (t *Tab) Next(ctx context.Context) (entity.InputEvent, error) {
	select {
	case ev := <-t.events:
		return ev, nil
	case <-ctx.Done():
		return entity.InputEvent{}, ctx.Err()
	case <-t.ctx.Done():
		return entity.InputEvent{}, ErrTabClosed
	}
}

// URL implements port.Page.
func (t *Tab) URL(ctx context.Context) (string, error) {
	var url string
	if err := t.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return url, nil
}

// Navigate loads url in the tab.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	t.takeOverlay()
	if err := t.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}
