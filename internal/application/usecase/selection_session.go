package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// SelectionConfig tunes the drag gesture.
type SelectionConfig struct {
	// EdgeThreshold is the distance from a viewport edge that triggers auto-scroll.
	EdgeThreshold float64
	// ScrollSpeed is the auto-scroll distance per tick.
	ScrollSpeed float64
	// TickInterval is the auto-scroll timer period.
	TickInterval time.Duration
	// MinSize is the smallest width and height worth capturing.
	MinSize float64
}

// DefaultSelectionConfig returns the stock gesture settings.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		EdgeThreshold: 60,
		ScrollSpeed:   18,
		TickInterval:  16 * time.Millisecond,
		MinSize:       10,
	}
}

func (c SelectionConfig) withDefaults() SelectionConfig {
	d := DefaultSelectionConfig()
	if c.EdgeThreshold <= 0 {
		c.EdgeThreshold = d.EdgeThreshold
	}
	if c.ScrollSpeed <= 0 {
		c.ScrollSpeed = d.ScrollSpeed
	}
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.MinSize <= 0 {
		c.MinSize = d.MinSize
	}
	return c
}

// autoScroller is one running timer goroutine.
type autoScroller struct {
	stop chan struct{}
	done chan struct{}
}

func (a *autoScroller) wait() {
	if a != nil {
		<-a.done
	}
}

// SelectionSession tracks one drag gesture. The anchor is kept in document
// space so the selection stays on the same content while the page scrolls.
type SelectionSession struct {
	mu sync.Mutex

	cfg      SelectionConfig
	scroll   *ScrollController
	overlay  port.SelectionOverlay
	viewport entity.Viewport

	state    entity.SelectionState
	anchor   entity.DocumentPoint
	pointer  entity.ViewportPoint
	velocity entity.Velocity

	autoscroll *autoScroller
}

// NewSelectionSession creates an idle session. The overlay must already be shown.
func NewSelectionSession(cfg SelectionConfig, scroll *ScrollController, overlay port.SelectionOverlay, vp entity.Viewport) *SelectionSession {
	return &SelectionSession{
		cfg:      cfg.withDefaults(),
		scroll:   scroll,
		overlay:  overlay,
		viewport: vp,
		state:    entity.SelectionIdle,
	}
}

// State returns the current phase.
func (s *SelectionSession) State() entity.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Velocity returns the current auto-scroll velocity.
func (s *SelectionSession) Velocity() entity.Velocity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocity
}

// AutoScrolling reports whether the timer goroutine is running.
func (s *SelectionSession) AutoScrolling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoscroll != nil
}

// Dispatch applies one input event. Once the session reaches a terminal
// state any auto-scroll timer has exited before Dispatch returns.
func (s *SelectionSession) Dispatch(ctx context.Context, ev entity.InputEvent) (entity.SelectionResult, error) {
	s.mu.Lock()
	result, stopped, err := s.transition(ctx, ev)
	s.mu.Unlock()

	stopped.wait()
	return result, err
}

// Cancel ends the session without output. It is safe to call more than once.
func (s *SelectionSession) Cancel(ctx context.Context) {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	stopped := s.cancelLocked(ctx)
	s.mu.Unlock()

	stopped.wait()
}

func (s *SelectionSession) transition(ctx context.Context, ev entity.InputEvent) (entity.SelectionResult, *autoScroller, error) {
	log := logging.FromContext(ctx)

	if s.state.Terminal() {
		return entity.SelectionResult{State: s.state}, nil, entity.ErrSessionClosed
	}

	if ev.IsEscape() {
		log.Debug().Stringer("from", s.state).Msg("selection cancelled by escape")
		stopped := s.cancelLocked(ctx)
		return entity.SelectionResult{State: s.state}, stopped, nil
	}

	switch s.state {
	case entity.SelectionIdle:
		if ev.Kind == entity.EventPointerDown && ev.Button == entity.PrimaryButton {
			return s.beginLocked(ctx, s.viewport.Local(ev.Point))
		}

	case entity.SelectionDragging:
		switch ev.Kind {
		case entity.EventPointerMove:
			return s.moveLocked(ctx, s.viewport.Local(ev.Point))
		case entity.EventPointerUp:
			return s.finishLocked(ctx, s.viewport.Local(ev.Point))
		}
	}

	return entity.SelectionResult{State: s.state}, nil, nil
}

func (s *SelectionSession) beginLocked(ctx context.Context, at entity.ViewportPoint) (entity.SelectionResult, *autoScroller, error) {
	pos, err := s.scroll.Position(ctx)
	if err != nil {
		return entity.SelectionResult{State: s.state}, nil, err
	}

	s.anchor = entity.ToDocument(at, pos)
	s.pointer = at
	s.state = entity.SelectionDragging
	s.renderLocked(ctx, pos)

	logging.FromContext(ctx).Debug().
		Float64("x", s.anchor.X).
		Float64("y", s.anchor.Y).
		Msg("selection started")
	return entity.SelectionResult{State: s.state}, nil, nil
}

func (s *SelectionSession) moveLocked(ctx context.Context, at entity.ViewportPoint) (entity.SelectionResult, *autoScroller, error) {
	s.pointer = at

	pos, err := s.scroll.Position(ctx)
	if err != nil {
		return entity.SelectionResult{State: s.state}, nil, err
	}
	s.renderLocked(ctx, pos)

	stopped := s.steerLocked(ctx)
	return entity.SelectionResult{State: s.state}, stopped, nil
}

func (s *SelectionSession) finishLocked(ctx context.Context, at entity.ViewportPoint) (entity.SelectionResult, *autoScroller, error) {
	log := logging.FromContext(ctx)

	s.pointer = at
	stopped := s.detachLocked()

	pos, err := s.scroll.Position(ctx)
	if err != nil {
		s.cancelLocked(ctx)
		return entity.SelectionResult{State: s.state}, stopped, err
	}

	rect := entity.SpanDocument(s.anchor, entity.ToDocument(at, pos))
	if !rect.MeetsMinimum(s.cfg.MinSize) {
		log.Debug().
			Float64("width", rect.Width).
			Float64("height", rect.Height).
			Msg("selection discarded below minimum size")
		s.cancelLocked(ctx)
		return entity.SelectionResult{State: s.state}, stopped, nil
	}

	if err := s.overlay.Hide(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to hide selection overlay")
	}
	s.state = entity.SelectionCompleted

	log.Debug().
		Float64("left", rect.Left).
		Float64("top", rect.Top).
		Float64("width", rect.Width).
		Float64("height", rect.Height).
		Msg("selection completed")
	return entity.SelectionResult{State: s.state, Rect: rect, Scroll: pos}, stopped, nil
}

func (s *SelectionSession) cancelLocked(ctx context.Context) *autoScroller {
	stopped := s.detachLocked()
	if err := s.overlay.Hide(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to hide selection overlay")
	}
	s.state = entity.SelectionCancelled
	return stopped
}

// renderLocked draws the live box for the given scroll position.
func (s *SelectionSession) renderLocked(ctx context.Context, pos entity.ScrollPosition) {
	rect := entity.SpanDocument(s.anchor, entity.ToDocument(s.pointer, pos))
	if err := s.overlay.Render(ctx, s.viewport.ToWindow(rect.ToViewport(pos))); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("failed to render selection box")
	}
}

// steerLocked recomputes the per-axis velocity from the pointer's edge proximity
// and starts or stops the timer. A running timer only gets its velocity replaced.
func (s *SelectionSession) steerLocked(ctx context.Context) *autoScroller {
	v := entity.Velocity{
		X: s.axisVelocity(ctx, s.pointer.X, s.viewport.Width, entity.DirectionLeft, entity.DirectionRight),
		Y: s.axisVelocity(ctx, s.pointer.Y, s.viewport.Height, entity.DirectionUp, entity.DirectionDown),
	}
	s.velocity = v

	if v.IsZero() {
		return s.detachLocked()
	}
	if s.autoscroll == nil {
		a := &autoScroller{stop: make(chan struct{}), done: make(chan struct{})}
		s.autoscroll = a
		go s.runAutoScroll(ctx, a)
	}
	return nil
}

func (s *SelectionSession) axisVelocity(ctx context.Context, at, extent float64, back, forward entity.Direction) float64 {
	var dir entity.Direction
	var sign float64
	switch {
	case at < s.cfg.EdgeThreshold:
		dir, sign = back, -1
	case at > extent-s.cfg.EdgeThreshold:
		dir, sign = forward, 1
	default:
		return 0
	}

	can, err := s.scroll.CanScroll(ctx, dir)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Stringer("direction", dir).Msg("scroll capability unknown")
		return 0
	}
	if !can {
		return 0
	}
	return sign * s.cfg.ScrollSpeed
}

// detachLocked stops the timer goroutine. The caller waits on the returned
// scroller after releasing the lock.
func (s *SelectionSession) detachLocked() *autoScroller {
	s.velocity = entity.Velocity{}
	a := s.autoscroll
	if a == nil {
		return nil
	}
	s.autoscroll = nil
	close(a.stop)
	return a
}

func (s *SelectionSession) runAutoScroll(ctx context.Context, a *autoScroller) {
	defer close(a.done)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.autoscroll == a {
				s.autoscroll = nil
				s.velocity = entity.Velocity{}
			}
			s.mu.Unlock()
			return
		case <-ticker.C:
			if !s.tick(ctx, a) {
				return
			}
		}
	}
}

// tick scrolls once by the current velocity and re-renders the box.
// It returns false once the timer should exit.
func (s *SelectionSession) tick(ctx context.Context, a *autoScroller) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.autoscroll != a || s.state != entity.SelectionDragging {
		return false
	}

	before, err := s.scroll.Position(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("auto-scroll position unreadable")
		s.autoscroll = nil
		s.velocity = entity.Velocity{}
		return false
	}

	achieved, err := s.scroll.ScrollBy(ctx, entity.ScrollPosition{X: s.velocity.X, Y: s.velocity.Y})
	if err != nil && !errors.Is(err, entity.ErrScrollBlocked) {
		logging.FromContext(ctx).Debug().Err(err).Msg("auto-scroll failed")
		s.autoscroll = nil
		s.velocity = entity.Velocity{}
		return false
	}

	moved := achieved.Sub(before)
	if math.Abs(moved.X) < scrollTolerance {
		s.velocity.X = 0
	}
	if math.Abs(moved.Y) < scrollTolerance {
		s.velocity.Y = 0
	}

	s.renderLocked(ctx, achieved)

	if s.velocity.IsZero() {
		logging.FromContext(ctx).Trace().Msg("auto-scroll reached its limit")
		s.autoscroll = nil
		return false
	}
	return true
}
