// Package porttest provides an in-memory page that renders a synthetic document.
package porttest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
)

var _ port.Page = (*Page)(nil)

// DocumentPixel is the colour of the document at a device-pixel coordinate.
// Every pixel is distinct within a 4096×4096 device-pixel document.
func DocumentPixel(x, y int) color.RGBA {
	return color.RGBA{
		R: uint8(x),
		G: uint8(y),
		B: uint8((x>>8)&0x0f | (y>>8)<<4),
		A: 0xff,
	}
}

// ScrollbarColor fills frame pixels outside the content area.
var ScrollbarColor = color.RGBA{R: 0xc1, G: 0xc1, B: 0xc1, A: 0xff}

// Page is a scrollable synthetic document.
type Page struct {
	mu sync.Mutex

	DocWidth, DocHeight float64
	View                entity.Viewport
	Pos                 entity.ScrollPosition

	// Blocked mechanisms succeed without moving the page.
	Blocked map[port.ScrollMechanism]bool
	// Failing mechanisms return their error.
	Failing map[port.ScrollMechanism]error
	// Frozen pages ignore every scroll mechanism.
	Frozen bool
	// LeadingUndefined nil readings precede the real one on each axis.
	LeadingUndefined int

	// FailCaptureAt makes the n-th CaptureFrame call (1-based) fail.
	FailCaptureAt int
	// FrameScale overrides the captured frame size relative to the viewport.
	FrameScale func(call int) float64

	// Scrollbar is the CSS width of a classic vertical scrollbar. Frames
	// cover it; View stays the content area.
	Scrollbar float64
	// Origin offsets the content area inside the window, as for an inner
	// scroller. Frames show window chrome above and left of it.
	Origin entity.ViewportPoint

	Containers []port.ScrollContainer
	RootSlack  entity.ScrollPosition

	Media       []port.MediaElement
	MediaFrames map[string][]byte

	PageURL string

	// OnNext sees every input event as Next hands it out.
	OnNext func(entity.InputEvent)

	activeTarget string
	failReads    int
	captures     int
	mediaReads   int
	applied      []port.ScrollMechanism
	scrolls      []entity.ScrollPosition
	rendered     []entity.ViewportRect
	shown        int
	hidden       int
	events       chan entity.InputEvent
}

// NewPage creates a page of the given document size and viewport.
func NewPage(docWidth, docHeight float64, vp entity.Viewport) *Page {
	return &Page{
		DocWidth:    docWidth,
		DocHeight:   docHeight,
		View:        vp,
		Blocked:     map[port.ScrollMechanism]bool{},
		Failing:     map[port.ScrollMechanism]error{},
		MediaFrames: map[string][]byte{},
		PageURL:     "https://example.test/",
		events:      make(chan entity.InputEvent, 256),
	}
}

func (p *Page) extent() port.ScrollExtent {
	return port.ScrollExtent{Max: entity.ScrollPosition{
		X: math.Max(0, p.DocWidth-p.View.Width),
		Y: math.Max(0, p.DocHeight-p.View.Height),
	}}
}

// FailNextReads makes the next n ReadScroll calls fail.
func (p *Page) FailNextReads(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failReads = n
}

// Position returns the current scroll offset.
func (p *Page) Position() entity.ScrollPosition {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Pos
}

// SetPosition moves the page without going through a mechanism.
func (p *Page) SetPosition(pos entity.ScrollPosition) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Pos = p.extent().Clamp(pos)
}

// Applied returns the mechanisms attempted so far.
func (p *Page) Applied() []port.ScrollMechanism {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]port.ScrollMechanism(nil), p.applied...)
}

// ScrollHistory returns every position the page moved to.
func (p *Page) ScrollHistory() []entity.ScrollPosition {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.ScrollPosition(nil), p.scrolls...)
}

// Captures returns how many frames were requested.
func (p *Page) Captures() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.captures
}

// Rendered returns every selection box drawn.
func (p *Page) Rendered() []entity.ViewportRect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.ViewportRect(nil), p.rendered...)
}

// MediaReads returns how many MediaFrame calls were made.
func (p *Page) MediaReads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mediaReads
}

// OverlayCounts returns how often the overlay was shown and hidden.
func (p *Page) OverlayCounts() (shown, hidden int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown, p.hidden
}

// ActiveTarget returns the scroll target chosen through UseScrollTarget.
func (p *Page) ActiveTarget() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeTarget
}

// Push queues an input event.
func (p *Page) Push(events ...entity.InputEvent) {
	for _, ev := range events {
		p.events <- ev
	}
}

// ReadScroll implements port.ScrollHost.
func (p *Page) ReadScroll(ctx context.Context) (port.ScrollReadings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failReads > 0 {
		p.failReads--
		return port.ScrollReadings{}, errors.New("scroll position unreadable")
	}

	x, y := p.Pos.X, p.Pos.Y
	stale := -1.0
	readings := port.ScrollReadings{}
	for i := 0; i < p.LeadingUndefined; i++ {
		readings.X = append(readings.X, nil)
		readings.Y = append(readings.Y, nil)
	}
	readings.X = append(readings.X, &x, &stale)
	readings.Y = append(readings.Y, &y, &stale)
	return readings, nil
}

// ScrollExtent implements port.ScrollHost.
func (p *Page) ScrollExtent(ctx context.Context) (port.ScrollExtent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.extent(), nil
}

// RootExtent implements port.ScrollHost.
func (p *Page) RootExtent(ctx context.Context) (port.ScrollExtent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Containers != nil {
		return port.ScrollExtent{Max: p.RootSlack}, nil
	}
	return p.extent(), nil
}

// ApplyScroll implements port.ScrollHost.
func (p *Page) ApplyScroll(ctx context.Context, m port.ScrollMechanism, to, delta entity.ScrollPosition) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.applied = append(p.applied, m)
	if err := p.Failing[m]; err != nil {
		return err
	}
	if p.Frozen || p.Blocked[m] {
		return nil
	}

	next := to
	if m == port.ScrollRelative {
		next = entity.ScrollPosition{X: p.Pos.X + delta.X, Y: p.Pos.Y + delta.Y}
	}
	p.Pos = p.extent().Clamp(next)
	p.scrolls = append(p.scrolls, p.Pos)
	return nil
}

// ScrollContainers implements port.ScrollHost.
func (p *Page) ScrollContainers(ctx context.Context) ([]port.ScrollContainer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]port.ScrollContainer(nil), p.Containers...), nil
}

// UseScrollTarget implements port.ScrollHost.
func (p *Page) UseScrollTarget(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeTarget = id
	return nil
}

// Viewport implements port.FrameCapturer.
func (p *Page) Viewport(ctx context.Context) (entity.Viewport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	vp := p.View
	vp.OriginX, vp.OriginY = p.Origin.X, p.Origin.Y
	if p.Scrollbar > 0 {
		vp.WindowWidth = p.Origin.X + vp.Width + p.Scrollbar
		vp.WindowHeight = p.Origin.Y + vp.Height
	}
	return vp, nil
}

// CaptureFrame implements port.FrameCapturer. The frame shows the document
// from the current scroll position at the device pixel ratio.
func (p *Page) CaptureFrame(ctx context.Context) (entity.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.captures++
	if p.FailCaptureAt > 0 && p.captures == p.FailCaptureAt {
		return entity.Frame{}, errors.New("capture rejected")
	}

	dpr := p.View.Ratio()
	left := entity.ToDevice(p.Origin.X, dpr)
	top := entity.ToDevice(p.Origin.Y, dpr)
	content := image.Rect(left, top, left+entity.ToDevice(p.View.Width, dpr), top+entity.ToDevice(p.View.Height, dpr))
	w := entity.ToDevice(p.Origin.X+p.View.Width+p.Scrollbar, dpr)
	h := content.Max.Y
	ox := entity.ToDevice(p.Pos.X, dpr)
	oy := entity.ToDevice(p.Pos.Y, dpr)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !image.Pt(x, y).In(content) {
				img.SetRGBA(x, y, ScrollbarColor)
				continue
			}
			img.SetRGBA(x, y, DocumentPixel(ox+x-left, oy+y-top))
		}
	}

	var out image.Image = img
	if p.FrameScale != nil {
		if s := p.FrameScale(p.captures); s > 0 && s != 1 {
			out = nearestScale(img, s)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return entity.Frame{}, err
	}
	b := out.Bounds()
	return entity.Frame{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

func nearestScale(src *image.RGBA, s float64) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Round(float64(b.Dx())*s)), int(math.Round(float64(b.Dy())*s))))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.SetRGBA(x, y, src.RGBAAt(int(float64(x)/s), int(float64(y)/s)))
		}
	}
	return dst
}

// MediaElements implements port.MediaSource.
func (p *Page) MediaElements(ctx context.Context) ([]port.MediaElement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]port.MediaElement(nil), p.Media...), nil
}

// MediaFrame implements port.MediaSource.
func (p *Page) MediaFrame(ctx context.Context, id string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mediaReads++
	data, ok := p.MediaFrames[id]
	if !ok {
		return nil, errors.New("tainted canvas")
	}
	return data, nil
}

// Show implements port.SelectionOverlay.
func (p *Page) Show(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown++
	return nil
}

// Render implements port.SelectionOverlay.
func (p *Page) Render(ctx context.Context, box entity.ViewportRect) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rendered = append(p.rendered, box)
	return nil
}

// Hide implements port.SelectionOverlay.
func (p *Page) Hide(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden++
	return nil
}

// Next implements port.InputSource.
func (p *Page) Next(ctx context.Context) (entity.InputEvent, error) {
	select {
	case ev := <-p.events:
		if p.OnNext != nil {
			p.OnNext(ev)
		}
		return ev, nil
	case <-ctx.Done():
		return entity.InputEvent{}, ctx.Err()
	}
}

// URL implements port.Page.
func (p *Page) URL(ctx context.Context) (string, error) {
	return p.PageURL, nil
}

// SolidPNG encodes a w×h image of one colour.
func SolidPNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
