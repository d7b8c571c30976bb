package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// MediaOverlay paints video and canvas frames, which screenshots of the
// page surface miss, onto a captured frame. It is best effort: unreadable
// elements are skipped.
type MediaOverlay struct {
	source port.MediaSource
	// frames holds decoded frames by element id for the current capture, so
	// an element spanning several tiles shows the same frame in each.
	frames port.Cache[string, image.Image]
}

// NewMediaOverlay creates an augmenter reading from source. frames may be nil
// to read every element on every tile.
func NewMediaOverlay(source port.MediaSource, frames port.Cache[string, image.Image]) *MediaOverlay {
	return &MediaOverlay{source: source, frames: frames}
}

// Reset forgets the frames of the previous capture.
func (m *MediaOverlay) Reset() {
	if m.frames != nil {
		m.frames.Clear()
	}
}

// Augment draws every readable media element onto frame at its viewport box
// scaled to device pixels, and returns how many were drawn.
func (m *MediaOverlay) Augment(ctx context.Context, frame *image.RGBA, scaleX, scaleY float64) int {
	log := logging.FromContext(ctx)

	elements, err := m.source.MediaElements(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("media elements unavailable, overlay skipped")
		return 0
	}

	drawn := 0
	for _, el := range elements {
		if strings.HasPrefix(el.ID, port.InternalElementPrefix) {
			continue
		}

		dst := el.Box.ToDevice(scaleX, scaleY)
		if dst.Intersect(frame.Bounds()).Empty() {
			continue
		}

		img, err := m.read(ctx, el.ID)
		if err != nil {
			log.Debug().Err(err).Str("element", el.ID).Str("kind", string(el.Kind)).Msg("media element skipped")
			continue
		}

		xdraw.CatmullRom.Scale(frame, dst, img, img.Bounds(), xdraw.Over, nil)
		drawn++
	}
	return drawn
}

func (m *MediaOverlay) read(ctx context.Context, id string) (image.Image, error) {
	if m.frames != nil {
		if img, ok := m.frames.Get(id); ok {
			return img, nil
		}
	}
	img, err := m.decode(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.frames != nil {
		m.frames.Set(id, img)
	}
	return img, nil
}

func (m *MediaOverlay) decode(ctx context.Context, id string) (image.Image, error) {
	data, err := m.source.MediaFrame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrOverlayElementUnreadable, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", entity.ErrOverlayElementUnreadable, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty frame", entity.ErrOverlayElementUnreadable)
	}
	return img, nil
}
