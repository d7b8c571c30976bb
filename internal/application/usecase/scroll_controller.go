package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

const (
	// scrollTolerance is how close a position must be to count as reached or unmoved.
	scrollTolerance = 1.0
	// rootOverflowThreshold is the overflow past which the page root counts as scrollable.
	rootOverflowThreshold = 10.0
)

// ScrollController moves the page through an ordered list of scroll mechanisms
// and reports the position it actually reached.
type ScrollController struct {
	host       port.ScrollHost
	mechanisms []port.ScrollMechanism
}

// NewScrollController creates a controller over host using the default mechanism order.
func NewScrollController(host port.ScrollHost) *ScrollController {
	return &ScrollController{
		host:       host,
		mechanisms: port.ScrollMechanisms,
	}
}

// Position returns the active target's scroll offset, taking the first
// defined reading on each axis and defaulting to 0.
func (c *ScrollController) Position(ctx context.Context) (entity.ScrollPosition, error) {
	readings, err := c.host.ReadScroll(ctx)
	if err != nil {
		return entity.ScrollPosition{}, fmt.Errorf("read scroll position: %w", err)
	}
	return entity.ScrollPosition{
		X: firstDefined(readings.X),
		Y: firstDefined(readings.Y),
	}, nil
}

func firstDefined(values []*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// ScrollTo moves to target, clamped to the reachable extent.
// It returns the achieved position, with ErrScrollBlocked when nothing moved.
func (c *ScrollController) ScrollTo(ctx context.Context, target entity.ScrollPosition) (entity.ScrollPosition, error) {
	start, err := c.Position(ctx)
	if err != nil {
		return entity.ScrollPosition{}, err
	}
	extent, err := c.host.ScrollExtent(ctx)
	if err != nil {
		return start, fmt.Errorf("read scroll extent: %w", err)
	}
	return c.attempt(ctx, start, extent.Clamp(target))
}

// ScrollBy moves relative to the current position.
func (c *ScrollController) ScrollBy(ctx context.Context, delta entity.ScrollPosition) (entity.ScrollPosition, error) {
	start, err := c.Position(ctx)
	if err != nil {
		return entity.ScrollPosition{}, err
	}
	extent, err := c.host.ScrollExtent(ctx)
	if err != nil {
		return start, fmt.Errorf("read scroll extent: %w", err)
	}
	target := entity.ScrollPosition{X: start.X + delta.X, Y: start.Y + delta.Y}
	return c.attempt(ctx, start, extent.Clamp(target))
}

// attempt runs each mechanism until one reaches target or measurably moves the page.
func (c *ScrollController) attempt(ctx context.Context, start, target entity.ScrollPosition) (entity.ScrollPosition, error) {
	log := logging.FromContext(ctx)

	if start.Near(target, scrollTolerance) {
		return start, nil
	}

	achieved := start
	for _, m := range c.mechanisms {
		if err := ctx.Err(); err != nil {
			return achieved, err
		}

		if err := c.host.ApplyScroll(ctx, m, target, target.Sub(achieved)); err != nil {
			log.Debug().Err(err).Stringer("mechanism", m).Msg("scroll mechanism failed")
			continue
		}

		pos, err := c.Position(ctx)
		if err != nil {
			log.Debug().Err(err).Stringer("mechanism", m).Msg("scroll position unreadable")
			continue
		}
		achieved = pos

		if pos.Near(target, scrollTolerance) || !pos.Near(start, scrollTolerance) {
			log.Trace().
				Stringer("mechanism", m).
				Float64("x", pos.X).
				Float64("y", pos.Y).
				Msg("scrolled")
			return pos, nil
		}
	}

	log.Debug().
		Float64("target_x", target.X).
		Float64("target_y", target.Y).
		Float64("x", achieved.X).
		Float64("y", achieved.Y).
		Msg("no scroll mechanism moved the page")
	return achieved, entity.ErrScrollBlocked
}

// CanScroll reports whether the active target can still move in dir.
func (c *ScrollController) CanScroll(ctx context.Context, dir entity.Direction) (bool, error) {
	pos, err := c.Position(ctx)
	if err != nil {
		return false, err
	}
	extent, err := c.host.ScrollExtent(ctx)
	if err != nil {
		return false, fmt.Errorf("read scroll extent: %w", err)
	}

	switch dir {
	case entity.DirectionLeft:
		return pos.X-extent.Min.X >= scrollTolerance, nil
	case entity.DirectionRight:
		return extent.Max.X-pos.X >= scrollTolerance, nil
	case entity.DirectionUp:
		return pos.Y-extent.Min.Y >= scrollTolerance, nil
	case entity.DirectionDown:
		return extent.Max.Y-pos.Y >= scrollTolerance, nil
	default:
		return false, nil
	}
}

// FindScrollTarget picks the element scrolling should drive and activates it.
// The page root wins when its content overflows; otherwise the largest
// overflowing inner container does. The zero container means the root.
func (c *ScrollController) FindScrollTarget(ctx context.Context) (port.ScrollContainer, error) {
	log := logging.FromContext(ctx)

	root, err := c.host.RootExtent(ctx)
	if err != nil {
		return port.ScrollContainer{}, fmt.Errorf("read root extent: %w", err)
	}

	chosen := port.ScrollContainer{ID: port.RootScrollTarget}
	overflow := root.Overflow()
	if overflow.X <= rootOverflowThreshold && overflow.Y <= rootOverflowThreshold {
		containers, err := c.host.ScrollContainers(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("listing scroll containers failed, using page root")
		}
		for _, candidate := range containers {
			if candidate.Overflow.X <= 0 && candidate.Overflow.Y <= 0 {
				continue
			}
			if candidate.Area > chosen.Area {
				chosen = candidate
			}
		}
	}

	if err := c.host.UseScrollTarget(ctx, chosen.ID); err != nil {
		return port.ScrollContainer{}, fmt.Errorf("activate scroll target: %w", err)
	}

	if chosen.ID != port.RootScrollTarget {
		log.Debug().Str("tag", chosen.Tag).Float64("area", chosen.Area).Msg("using inner scroll container")
	}
	return chosen, nil
}
