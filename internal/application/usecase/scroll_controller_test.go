package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/application/port/porttest"
	"github.com/bnema/areashot/internal/domain/entity"
)

func newScrollPage() *porttest.Page {
	return porttest.NewPage(1000, 3000, entity.Viewport{Width: 1000, Height: 800, DevicePixelRatio: 1})
}

func TestScrollController_ScrollTo(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(p *porttest.Page)
		target      entity.ScrollPosition
		want        entity.ScrollPosition
		wantErr     error
		wantApplied []port.ScrollMechanism
	}{
		{
			name:        "first mechanism reaches target",
			target:      entity.ScrollPosition{Y: 640},
			want:        entity.ScrollPosition{Y: 640},
			wantApplied: []port.ScrollMechanism{port.ScrollRelative},
		},
		{
			name: "blocked mechanism falls through",
			setup: func(p *porttest.Page) {
				p.Blocked[port.ScrollRelative] = true
			},
			target:      entity.ScrollPosition{Y: 640},
			want:        entity.ScrollPosition{Y: 640},
			wantApplied: []port.ScrollMechanism{port.ScrollRelative, port.ScrollAbsolute},
		},
		{
			name: "throwing mechanisms are skipped",
			setup: func(p *porttest.Page) {
				p.Failing[port.ScrollRelative] = errors.New("sandboxed")
				p.Failing[port.ScrollAbsolute] = errors.New("sandboxed")
			},
			target:      entity.ScrollPosition{Y: 100},
			want:        entity.ScrollPosition{Y: 100},
			wantApplied: []port.ScrollMechanism{port.ScrollRelative, port.ScrollAbsolute, port.ScrollRootOffset},
		},
		{
			name: "frozen page reports blocked",
			setup: func(p *porttest.Page) {
				p.Frozen = true
			},
			target:      entity.ScrollPosition{Y: 640},
			want:        entity.ScrollPosition{},
			wantErr:     entity.ErrScrollBlocked,
			wantApplied: port.ScrollMechanisms,
		},
		{
			name:        "target past the end is clamped",
			target:      entity.ScrollPosition{X: 50, Y: 5000},
			want:        entity.ScrollPosition{Y: 2200},
			wantApplied: []port.ScrollMechanism{port.ScrollRelative},
		},
		{
			name:        "already in place does nothing",
			target:      entity.ScrollPosition{X: 0.5, Y: -4},
			want:        entity.ScrollPosition{},
			wantApplied: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			page := newScrollPage()
			if tt.setup != nil {
				tt.setup(page)
			}

			got, err := NewScrollController(page).ScrollTo(ctx, tt.target)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantApplied, page.Applied())
		})
	}
}

func TestScrollController_ScrollByIsRelative(t *testing.T) {
	ctx := testContext(t)
	page := newScrollPage()
	page.SetPosition(entity.ScrollPosition{Y: 300})

	got, err := NewScrollController(page).ScrollBy(ctx, entity.ScrollPosition{Y: 18})

	require.NoError(t, err)
	assert.Equal(t, entity.ScrollPosition{Y: 318}, got)
}

func TestScrollController_ScrollByAtLimitIsNoop(t *testing.T) {
	ctx := testContext(t)
	page := newScrollPage()
	page.SetPosition(entity.ScrollPosition{Y: 2200})

	got, err := NewScrollController(page).ScrollBy(ctx, entity.ScrollPosition{Y: 18})

	require.NoError(t, err)
	assert.Equal(t, entity.ScrollPosition{Y: 2200}, got)
	assert.Empty(t, page.Applied())
}

func TestScrollController_PositionTakesFirstDefinedReading(t *testing.T) {
	ctx := testContext(t)
	page := newScrollPage()
	page.LeadingUndefined = 2
	page.SetPosition(entity.ScrollPosition{Y: 420})

	got, err := NewScrollController(page).Position(ctx)

	require.NoError(t, err)
	assert.Equal(t, entity.ScrollPosition{Y: 420}, got)
}

func TestScrollController_CanScroll(t *testing.T) {
	ctx := testContext(t)
	page := newScrollPage()
	c := NewScrollController(page)

	up, err := c.CanScroll(ctx, entity.DirectionUp)
	require.NoError(t, err)
	down, err := c.CanScroll(ctx, entity.DirectionDown)
	require.NoError(t, err)
	right, err := c.CanScroll(ctx, entity.DirectionRight)
	require.NoError(t, err)

	assert.False(t, up)
	assert.True(t, down)
	assert.False(t, right, "document is exactly one viewport wide")

	page.SetPosition(entity.ScrollPosition{Y: 2200})
	down, err = c.CanScroll(ctx, entity.DirectionDown)
	require.NoError(t, err)
	assert.False(t, down)
}

func TestScrollController_FindScrollTarget(t *testing.T) {
	t.Run("scrollable root wins", func(t *testing.T) {
		ctx := testContext(t)
		page := newScrollPage()

		got, err := NewScrollController(page).FindScrollTarget(ctx)

		require.NoError(t, err)
		assert.Equal(t, port.RootScrollTarget, got.ID)
		assert.Equal(t, port.RootScrollTarget, page.ActiveTarget())
	})

	t.Run("largest overflowing container when root is static", func(t *testing.T) {
		ctx := testContext(t)
		page := newScrollPage()
		page.RootSlack = entity.ScrollPosition{Y: 4}
		page.Containers = []port.ScrollContainer{
			{ID: "a", Tag: "div", Area: 90000, Overflow: entity.ScrollPosition{Y: 500}},
			{ID: "b", Tag: "main", Area: 400000, Overflow: entity.ScrollPosition{Y: 1200}},
			{ID: "c", Tag: "section", Area: 900000},
		}

		got, err := NewScrollController(page).FindScrollTarget(ctx)

		require.NoError(t, err)
		assert.Equal(t, "b", got.ID)
		assert.Equal(t, "b", page.ActiveTarget())
	})

	t.Run("falls back to root without candidates", func(t *testing.T) {
		ctx := testContext(t)
		page := newScrollPage()
		page.Containers = []port.ScrollContainer{}

		got, err := NewScrollController(page).FindScrollTarget(ctx)

		require.NoError(t, err)
		assert.Equal(t, port.RootScrollTarget, got.ID)
	})
}
