package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/application/port/porttest"
	"github.com/bnema/areashot/internal/domain/entity"
)

func newManager(page *porttest.Page) *SelectionManager {
	cfg := DefaultSelectionConfig()
	cfg.TickInterval = time.Hour
	return NewSelectionManager(cfg, NewScrollController(page), page)
}

func TestSelectionManager_StartReplacesActiveSession(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 3000, entity.Viewport{Width: 1200, Height: 800})
	m := newManager(page)

	first, err := m.Start(ctx)
	require.NoError(t, err)
	_, err = first.Dispatch(ctx, down(100, 100))
	require.NoError(t, err)

	second, err := m.Start(ctx)
	require.NoError(t, err)

	assert.Equal(t, entity.SelectionCancelled, first.State())
	assert.Equal(t, entity.SelectionIdle, second.State())
	assert.Same(t, second, m.Active())

	shown, hidden := page.OverlayCounts()
	assert.Equal(t, 2, shown)
	assert.Equal(t, 1, hidden)
}

func TestSelectionManager_DispatchRoutesToActiveSession(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 3000, entity.Viewport{Width: 1200, Height: 800})
	m := newManager(page)

	_, err := m.Dispatch(ctx, down(100, 100))
	assert.ErrorIs(t, err, entity.ErrSessionClosed, "no session before the start signal")

	_, err = m.Dispatch(ctx, entity.InputEvent{Kind: entity.EventStart})
	require.NoError(t, err)
	require.NotNil(t, m.Active())

	_, err = m.Dispatch(ctx, down(100, 100))
	require.NoError(t, err)
	result, err := m.Dispatch(ctx, up(500, 400))
	require.NoError(t, err)

	assert.Equal(t, entity.SelectionCompleted, result.State)
	assert.Equal(t, entity.DocumentRect{Left: 100, Top: 100, Width: 400, Height: 300}, result.Rect)
	assert.Nil(t, m.Active(), "finished sessions are released")
}

func TestSelectionManager_CancelTearsDown(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(1200, 3000, entity.Viewport{Width: 1200, Height: 800})
	m := newManager(page)

	session, err := m.Start(ctx)
	require.NoError(t, err)

	m.Cancel(ctx)

	assert.Equal(t, entity.SelectionCancelled, session.State())
	assert.Nil(t, m.Active())
}

func TestSelectionManager_InnerScrollerCoordinates(t *testing.T) {
	ctx := testContext(t)
	page := porttest.NewPage(600, 2000, entity.Viewport{Width: 600, Height: 400, DevicePixelRatio: 1})
	page.Origin = entity.ViewportPoint{X: 250, Y: 80}
	page.SetPosition(entity.ScrollPosition{Y: 300})
	m := newManager(page)

	_, err := m.Start(ctx)
	require.NoError(t, err)

	// Window points; the scroller's content box starts at (250,80).
	_, err = m.Dispatch(ctx, down(330, 200))
	require.NoError(t, err)
	result, err := m.Dispatch(ctx, up(450, 380))
	require.NoError(t, err)

	require.Equal(t, entity.SelectionCompleted, result.State)
	assert.Equal(t, entity.DocumentRect{Left: 80, Top: 420, Width: 120, Height: 180}, result.Rect)

	rendered := page.Rendered()
	require.NotEmpty(t, rendered)
	assert.Equal(t, entity.ViewportRect{Left: 330, Top: 200}, rendered[0], "the box is drawn in window coordinates")
}
