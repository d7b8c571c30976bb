package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// selectionPage is the page surface a selection needs.
type selectionPage interface {
	port.SelectionOverlay
	Viewport(ctx context.Context) (entity.Viewport, error)
}

// SelectionManager owns the single active selection session.
type SelectionManager struct {
	mu     sync.Mutex
	cfg    SelectionConfig
	scroll *ScrollController
	page   selectionPage
	active *SelectionSession
}

// NewSelectionManager creates a manager with no active session.
func NewSelectionManager(cfg SelectionConfig, scroll *ScrollController, page selectionPage) *SelectionManager {
	return &SelectionManager{
		cfg:    cfg,
		scroll: scroll,
		page:   page,
	}
}

// SetConfig replaces the gesture settings for sessions started afterwards.
func (m *SelectionManager) SetConfig(cfg SelectionConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Active returns the running session, or nil.
func (m *SelectionManager) Active() *SelectionSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Start is the selection-start signal: it tears down any active session,
// picks the scroll target, shows the overlay and begins a new session.
func (m *SelectionManager) Start(ctx context.Context) (*SelectionSession, error) {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	previous := m.active
	m.active = nil
	cfg := m.cfg
	m.mu.Unlock()

	if previous != nil {
		log.Debug().Msg("replacing active selection session")
		previous.Cancel(ctx)
	}

	if _, err := m.scroll.FindScrollTarget(ctx); err != nil {
		log.Warn().Err(err).Msg("scroll target detection failed, using page root")
	}

	// Read after picking the target: an inner scroller has its own box.
	vp, err := m.page.Viewport(ctx)
	if err != nil {
		return nil, fmt.Errorf("read viewport: %w", err)
	}

	if err := m.page.Show(ctx); err != nil {
		return nil, fmt.Errorf("show selection overlay: %w", err)
	}

	session := NewSelectionSession(cfg, m.scroll, m.page, vp)

	m.mu.Lock()
	m.active = session
	m.mu.Unlock()

	log.Debug().Float64("viewport_width", vp.Width).Float64("viewport_height", vp.Height).Msg("selection session started")
	return session, nil
}

// Dispatch routes one event. EventStart (re)starts a session; other events go
// to the active session, or fail with ErrSessionClosed when there is none.
func (m *SelectionManager) Dispatch(ctx context.Context, ev entity.InputEvent) (entity.SelectionResult, error) {
	if ev.Kind == entity.EventStart {
		if _, err := m.Start(ctx); err != nil {
			return entity.SelectionResult{State: entity.SelectionIdle}, err
		}
		return entity.SelectionResult{State: entity.SelectionIdle}, nil
	}

	session := m.Active()
	if session == nil {
		return entity.SelectionResult{State: entity.SelectionIdle}, entity.ErrSessionClosed
	}

	result, err := session.Dispatch(ctx, ev)
	if result.State.Terminal() {
		m.mu.Lock()
		if m.active == session {
			m.active = nil
		}
		m.mu.Unlock()
	}
	return result, err
}

// Cancel tears down the active session, if any.
func (m *SelectionManager) Cancel(ctx context.Context) {
	m.mu.Lock()
	session := m.active
	m.active = nil
	m.mu.Unlock()

	if session != nil {
		session.Cancel(ctx)
	}
}
