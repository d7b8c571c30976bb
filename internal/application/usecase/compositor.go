package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/semaphore"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// CompositorConfig tunes tiled capture.
type CompositorConfig struct {
	// OverlapFraction is the share of the viewport consecutive tiles overlap by.
	OverlapFraction float64
	// SettleDelay is the wait after each tile scroll.
	SettleDelay time.Duration
	// SingleSettleDelay is the wait when the target fits one viewport.
	SingleSettleDelay time.Duration
}

// DefaultCompositorConfig returns the stock tiling settings.
func DefaultCompositorConfig() CompositorConfig {
	return CompositorConfig{
		OverlapFraction:   entity.DefaultOverlapFraction,
		SettleDelay:       250 * time.Millisecond,
		SingleSettleDelay: 200 * time.Millisecond,
	}
}

// ProgressFunc observes tile progress.
type ProgressFunc func(done, total int)

// Compositor captures a document rectangle of any size by scrolling the
// page through a grid and stitching the frames into one raster.
type Compositor struct {
	mu     sync.RWMutex
	cfg    CompositorConfig
	scroll *ScrollController
	frames port.FrameCapturer
	media  *MediaOverlay
	sem    *semaphore.Weighted
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewCompositor creates a compositor. media may be nil to skip the overlay pass.
func NewCompositor(cfg CompositorConfig, scroll *ScrollController, frames port.FrameCapturer, media *MediaOverlay) *Compositor {
	return &Compositor{
		cfg:    cfg,
		scroll: scroll,
		frames: frames,
		media:  media,
		sem:    semaphore.NewWeighted(1),
		sleep:  sleepContext,
	}
}

// SetConfig replaces the tiling settings for later captures.
func (c *Compositor) SetConfig(cfg CompositorConfig) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

func (c *Compositor) config() CompositorConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Capture returns a raster of exactly target at device resolution. Tiles are
// captured one after another; the page's scroll position is restored before
// returning, whether the capture succeeded or not. No partial image is
// returned on failure.
func (c *Compositor) Capture(ctx context.Context, target entity.DocumentRect, progress ProgressFunc) (*image.RGBA, entity.CaptureStats, error) {
	log := logging.FromContext(ctx)
	var stats entity.CaptureStats

	if target.IsEmpty() {
		return nil, stats, entity.ErrEmptyTarget
	}
	if !c.sem.TryAcquire(1) {
		return nil, stats, entity.ErrCaptureInProgress
	}
	defer c.sem.Release(1)

	vp, err := c.frames.Viewport(ctx)
	if err != nil {
		return nil, stats, &entity.CaptureError{Op: "viewport", Tile: -1, Err: err}
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, stats, &entity.CaptureError{Op: "viewport", Tile: -1, Err: fmt.Errorf("invalid viewport %.0fx%.0f", vp.Width, vp.Height)}
	}

	original, err := c.scroll.Position(ctx)
	if err != nil {
		return nil, stats, &entity.CaptureError{Op: "scroll", Tile: -1, Err: err}
	}
	defer c.restore(ctx, original)

	if c.media != nil {
		c.media.Reset()
	}

	cfg := c.config()
	grid := entity.PlanTileGrid(target, vp, cfg.OverlapFraction)
	cells := grid.Cells()
	stats.Tiles = len(cells)

	settle := cfg.SettleDelay
	if len(cells) == 1 {
		settle = cfg.SingleSettleDelay
	}

	log.Debug().
		Int("rows", grid.Rows).
		Int("cols", grid.Cols).
		Float64("step_x", grid.StepX).
		Float64("step_y", grid.StepY).
		Msg("capture grid planned")

	var (
		out            *image.RGBA
		scaleX, scaleY float64
		frameSize      image.Point
	)
	for i, cell := range cells {
		if err := c.moveTo(ctx, grid, cell, original, vp, &stats); err != nil {
			return nil, stats, &entity.CaptureError{Op: "scroll", Tile: i, Err: err}
		}

		if err := c.sleep(ctx, settle); err != nil {
			return nil, stats, &entity.CaptureError{Op: "settle", Tile: i, Err: err}
		}

		frame, err := c.frames.CaptureFrame(ctx)
		if err != nil {
			return nil, stats, &entity.CaptureError{Op: "capture", Tile: i, Err: fmt.Errorf("%w: %w", entity.ErrTileCaptureFailed, err)}
		}

		img, err := decodeFrame(frame)
		if err != nil {
			return nil, stats, &entity.CaptureError{Op: "decode", Tile: i, Err: fmt.Errorf("%w: %w", entity.ErrTileCaptureFailed, err)}
		}

		if out == nil {
			frameSize = img.Bounds().Size()
			scaleX, scaleY = deviceScale(frameSize, vp)
			stats.Scale = scaleX
			out = image.NewRGBA(image.Rectangle{Max: target.DeviceSize(scaleX, scaleY)})
		} else if img.Bounds().Size() != frameSize {
			log.Debug().
				Int("tile", i).
				Int("width", img.Bounds().Dx()).
				Int("height", img.Bounds().Dy()).
				Msg("frame size changed, normalising to first frame")
			img = scaleTo(img, frameSize)
		}

		if c.media != nil {
			stats.Overlays += c.media.Augment(ctx, img, scaleX, scaleY)
		}

		achieved, err := c.scroll.Position(ctx)
		if err != nil {
			return nil, stats, &entity.CaptureError{Op: "scroll", Tile: i, Err: err}
		}

		placement, ok := entity.PlaceTile(grid, cell, achieved, vp, scaleX, scaleY)
		if !ok {
			stats.Skipped++
			log.Debug().
				Int("tile", i).
				Float64("x", achieved.X).
				Float64("y", achieved.Y).
				Msg("tile covers nothing at achieved position, skipped")
		} else {
			draw.Draw(out, placement.Dst, img, placement.Src.Min, draw.Src)
		}

		if progress != nil {
			progress(i+1, len(cells))
		}
	}

	log.Debug().
		Int("tiles", stats.Tiles).
		Int("skipped", stats.Skipped).
		Int("overlays", stats.Overlays).
		Int("width", out.Bounds().Dx()).
		Int("height", out.Bounds().Dy()).
		Msg("capture composited")
	return out, stats, nil
}

// moveTo scrolls to a cell. A blocked scroll is not fatal: placement uses
// whatever position was reached. A single-viewport target that is already
// fully visible is captured where it is.
func (c *Compositor) moveTo(ctx context.Context, grid entity.TileGrid, cell entity.TileCell, current entity.ScrollPosition, vp entity.Viewport, stats *entity.CaptureStats) error {
	if grid.Len() == 1 {
		box := grid.Target.ToViewport(current)
		if box.Left >= 0 && box.Top >= 0 && box.Right() <= vp.Width && box.Bottom() <= vp.Height {
			return nil
		}
	}

	_, err := c.scroll.ScrollTo(ctx, cell.ScrollTarget)
	if errors.Is(err, entity.ErrScrollBlocked) {
		stats.BlockedMoves++
		logging.FromContext(ctx).Debug().
			Int("row", cell.Row).
			Int("col", cell.Col).
			Msg("tile scroll blocked, using reached position")
		return nil
	}
	return err
}

// restore returns the page to where it was, even when ctx is already cancelled.
func (c *Compositor) restore(ctx context.Context, original entity.ScrollPosition) {
	ctx = context.WithoutCancel(ctx)
	achieved, err := c.scroll.ScrollTo(ctx, original)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Float64("x", achieved.X).
			Float64("y", achieved.Y).
			Msg("failed to restore scroll position")
	}
}

// deviceScale measures device pixels per CSS pixel from the frame against
// the window it covers, falling back to the viewport's ratio for an empty frame.
func deviceScale(frame image.Point, vp entity.Viewport) (float64, float64) {
	if frame.X <= 0 || frame.Y <= 0 {
		return vp.Ratio(), vp.Ratio()
	}
	w, h := vp.Window()
	return float64(frame.X) / w, float64(frame.Y) / h
}

func decodeFrame(frame entity.Frame) (*image.RGBA, error) {
	if len(frame.Data) == 0 {
		return nil, errors.New("empty frame")
	}
	img, _, err := image.Decode(bytes.NewReader(frame.Data))
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

func scaleTo(src *image.RGBA, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
