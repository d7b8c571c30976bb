package usecase

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/application/port/porttest"
	"github.com/bnema/areashot/internal/domain/entity"
)

func newCompositor(page *porttest.Page) *Compositor {
	cfg := CompositorConfig{OverlapFraction: entity.DefaultOverlapFraction}
	return NewCompositor(cfg, NewScrollController(page), page, NewMediaOverlay(page, nil))
}

// mapCache is an unbounded port.Cache for tests.
type mapCache[K comparable, V any] struct {
	items map[K]V
}

func newMapCache[K comparable, V any]() *mapCache[K, V] {
	return &mapCache[K, V]{items: map[K]V{}}
}

func (c *mapCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache[K, V]) Set(key K, value V) {
	c.items[key] = value
}

func (c *mapCache[K, V]) Remove(key K) {
	delete(c.items, key)
}

func (c *mapCache[K, V]) Len() int {
	return len(c.items)
}

func (c *mapCache[K, V]) Clear() {
	c.items = map[K]V{}
}

// requireDocumentCrop checks every output pixel against the synthetic document.
func requireDocumentCrop(t *testing.T, out *image.RGBA, originX, originY int) {
	t.Helper()
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := porttest.DocumentPixel(originX+x, originY+y)
			if got := out.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompositor_SingleViewportCrop(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 2000, entity.Viewport{Width: 1200, Height: 800, DevicePixelRatio: 1})
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Left: 100, Top: 100, Width: 400, Height: 300}, nil)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), out.Bounds())
	assert.Equal(t, 1, stats.Tiles)
	assert.Equal(t, 1, page.Captures())
	assert.Empty(t, page.ScrollHistory(), "a visible target is captured in place")
	requireDocumentCrop(t, out, 100, 100)
}

func TestCompositor_SingleViewportOffscreenScrollsFirst(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 2000, entity.Viewport{Width: 1200, Height: 800, DevicePixelRatio: 1})
	c := newCompositor(page)

	out, _, err := c.Capture(ctx, entity.DocumentRect{Left: 0, Top: 1500, Width: 300, Height: 200}, nil)

	require.NoError(t, err)
	requireDocumentCrop(t, out, 0, 1500)
	assert.Equal(t, entity.ScrollPosition{}, page.Position())
}

func TestCompositor_TallTargetStitchesWithoutSeams(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 1500, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	c := newCompositor(page)

	var progress [][2]int
	out, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 1000, Height: 1500}, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 1500), out.Bounds())
	assert.Equal(t, 6, stats.Tiles, "3 rows by 2 columns")
	require.Len(t, progress, 6)
	assert.Equal(t, [2]int{6, 6}, progress[5])
	// The last row asks for 1280 but the page clamps at 700.
	requireDocumentCrop(t, out, 0, 0)
}

func TestCompositor_DeviceScale(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(500, 1000, entity.Viewport{Width: 500, Height: 400, DevicePixelRatio: 2})
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Left: 10, Top: 50, Width: 300, Height: 700}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2.0, stats.Scale)
	assert.Equal(t, image.Rect(0, 0, 600, 1400), out.Bounds())
	requireDocumentCrop(t, out, 20, 100)
}

func TestCompositor_ScrollbarDoesNotSkewScale(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1185, 3000, entity.Viewport{Width: 1185, Height: 800, DevicePixelRatio: 1})
	page.Scrollbar = 15
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Left: 100, Top: 100, Width: 400, Height: 300}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1.0, stats.Scale)
	assert.Equal(t, image.Rect(0, 0, 400, 300), out.Bounds())
	requireDocumentCrop(t, out, 100, 100)
}

func TestCompositor_ScrollbarFullWidthTiles(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(385, 1200, entity.Viewport{Width: 385, Height: 500, DevicePixelRatio: 2})
	page.Scrollbar = 15
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 385, Height: 1200}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2.0, stats.Scale)
	assert.Equal(t, image.Rect(0, 0, 770, 2400), out.Bounds())
	assert.Zero(t, stats.Skipped)
	// No scrollbar strip leaks into the output.
	requireDocumentCrop(t, out, 0, 0)
}

func TestCompositor_InnerScrollerOffsetsTiles(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(600, 2000, entity.Viewport{Width: 600, Height: 400, DevicePixelRatio: 1})
	// The scroller sits below a header and beside a sidebar.
	page.Origin = entity.ViewportPoint{X: 250, Y: 80}
	page.Scrollbar = 15
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Left: 50, Top: 100, Width: 500, Height: 1200}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1.0, stats.Scale)
	assert.Zero(t, stats.Skipped)
	assert.Equal(t, image.Rect(0, 0, 500, 1200), out.Bounds())
	requireDocumentCrop(t, out, 50, 100)
}

func TestCompositor_RestoresScrollAfterSuccess(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 4000, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	page.SetPosition(entity.ScrollPosition{Y: 123})
	c := newCompositor(page)

	_, _, err := c.Capture(ctx, entity.DocumentRect{Top: 500, Width: 600, Height: 2000}, nil)

	require.NoError(t, err)
	assert.Equal(t, entity.ScrollPosition{Y: 123}, page.Position())
}

func TestCompositor_TileFailureAbortsAndRestores(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 4000, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	page.SetPosition(entity.ScrollPosition{Y: 77})
	page.FailCaptureAt = 2
	c := newCompositor(page)

	out, _, err := c.Capture(ctx, entity.DocumentRect{Width: 600, Height: 2000}, nil)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, entity.ErrTileCaptureFailed)
	var captureErr *entity.CaptureError
	require.ErrorAs(t, err, &captureErr)
	assert.Equal(t, 1, captureErr.Tile)
	assert.Equal(t, entity.ScrollPosition{Y: 77}, page.Position())
	assert.Equal(t, 2, page.Captures(), "no tiles after the failure")
}

func TestCompositor_CancelledContextStillRestores(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	page := porttest.NewPage(1000, 4000, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	page.SetPosition(entity.ScrollPosition{Y: 40})
	c := newCompositor(page)
	c.sleep = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}

	_, _, err := c.Capture(ctx, entity.DocumentRect{Width: 600, Height: 2000}, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, entity.ScrollPosition{Y: 40}, page.Position())
}

func TestCompositor_OneCaptureAtATime(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 1000, entity.Viewport{Width: 1000, Height: 800})
	c := newCompositor(page)
	require.True(t, c.sem.TryAcquire(1))
	defer c.sem.Release(1)

	_, _, err := c.Capture(ctx, entity.DocumentRect{Width: 100, Height: 100}, nil)

	assert.ErrorIs(t, err, entity.ErrCaptureInProgress)
	assert.Zero(t, page.Captures())
}

func TestCompositor_EmptyTarget(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 1000, entity.Viewport{Width: 1000, Height: 800})

	_, _, err := newCompositor(page).Capture(ctx, entity.DocumentRect{Width: 100}, nil)

	assert.ErrorIs(t, err, entity.ErrEmptyTarget)
}

func TestCompositor_BlockedScrollDegradesGracefully(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 3000, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	page.Frozen = true
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 1000, Height: 3000}, nil)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 3000), out.Bounds())
	assert.Positive(t, stats.BlockedMoves)
	assert.Positive(t, stats.Skipped)
	// What was reachable is still exact.
	assert.Equal(t, porttest.DocumentPixel(5, 700), out.RGBAAt(5, 700))
}

func TestCompositor_NormalisesChangedFrameSize(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(400, 900, entity.Viewport{Width: 400, Height: 300, DevicePixelRatio: 1})
	page.FrameScale = func(call int) float64 {
		if call > 1 {
			return 2
		}
		return 1
	}
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 400, Height: 900}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1.0, stats.Scale)
	assert.Equal(t, image.Rect(0, 0, 400, 900), out.Bounds())
}

func TestCompositor_PaintsMediaOverlays(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 800, entity.Viewport{Width: 1200, Height: 800, DevicePixelRatio: 1})
	red := color.RGBA{R: 0xff, A: 0xff}
	page.Media = []port.MediaElement{
		{ID: "v1", Kind: port.MediaVideo, Box: entity.ViewportRect{Left: 10, Top: 10, Width: 20, Height: 20}},
		{ID: "tainted", Kind: port.MediaCanvas, Box: entity.ViewportRect{Left: 50, Top: 50, Width: 20, Height: 20}},
		{ID: port.InternalElementPrefix + "canvas", Kind: port.MediaCanvas, Box: entity.ViewportRect{Left: 80, Top: 80, Width: 10, Height: 10}},
	}
	page.MediaFrames["v1"] = porttest.SolidPNG(4, 4, red)
	page.MediaFrames[port.InternalElementPrefix+"canvas"] = porttest.SolidPNG(4, 4, red)
	c := newCompositor(page)

	out, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 100, Height: 100}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Overlays)
	painted := out.RGBAAt(20, 20)
	assert.GreaterOrEqual(t, painted.R, uint8(0xf0))
	assert.LessOrEqual(t, painted.G, uint8(0x0f))
	assert.Equal(t, porttest.DocumentPixel(60, 60), out.RGBAAt(60, 60), "unreadable element left untouched")
	assert.Equal(t, porttest.DocumentPixel(85, 85), out.RGBAAt(85, 85), "internal elements are never painted")
}

func TestCompositor_ReusesMediaFramesAcrossTiles(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1000, 1500, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
	page.Media = []port.MediaElement{
		{ID: "v1", Kind: port.MediaVideo, Box: entity.ViewportRect{Left: 10, Top: 10, Width: 20, Height: 20}},
	}
	page.MediaFrames["v1"] = porttest.SolidPNG(4, 4, color.RGBA{G: 0xff, A: 0xff})

	frames := newMapCache[string, image.Image]()
	frames.Set("stale", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c := NewCompositor(CompositorConfig{OverlapFraction: entity.DefaultOverlapFraction},
		NewScrollController(page), page, NewMediaOverlay(page, frames))

	_, stats, err := c.Capture(ctx, entity.DocumentRect{Width: 1000, Height: 1500}, nil)

	require.NoError(t, err)
	require.Greater(t, stats.Tiles, 1)
	assert.Equal(t, stats.Tiles, stats.Overlays)
	assert.Equal(t, 1, page.MediaReads(), "one read per element per capture")
	_, stale := frames.Get("stale")
	assert.False(t, stale, "frames from an earlier capture are dropped")

	_, _, err = c.Capture(ctx, entity.DocumentRect{Width: 100, Height: 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.MediaReads())
}
