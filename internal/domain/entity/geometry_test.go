package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToViewport_RoundTripsToDocument(t *testing.T) {
	points := []ViewportPoint{{0, 0}, {12.5, 400}, {-30, 1199.75}, {1e6, -1e6}}
	scrolls := []ScrollPosition{{0, 0}, {0, 640}, {250.5, 1280}, {-3, 7}}

	for _, p := range points {
		for _, s := range scrolls {
			assert.Equal(t, p, ToViewport(ToDocument(p, s), s), "point %v scroll %v", p, s)
		}
	}
}

func TestToDevice(t *testing.T) {
	tests := []struct {
		name string
		css  float64
		dpr  float64
		want int
	}{
		{name: "unit ratio", css: 400, dpr: 1, want: 400},
		{name: "retina", css: 400, dpr: 2, want: 800},
		{name: "fractional ratio rounds", css: 333, dpr: 1.5, want: 500},
		{name: "fractional css rounds half up", css: 10.25, dpr: 2, want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDevice(tt.css, tt.dpr))
		})
	}
}

func TestSpanDocument_NormalisesCorners(t *testing.T) {
	a := DocumentPoint{X: 500, Y: 100}
	b := DocumentPoint{X: 100, Y: 400}

	r := SpanDocument(a, b)

	assert.Equal(t, DocumentRect{Left: 100, Top: 100, Width: 400, Height: 300}, r)
	assert.Equal(t, r, SpanDocument(b, a))
	assert.Equal(t, 500.0, r.Right())
	assert.Equal(t, 400.0, r.Bottom())
}

func TestDocumentRect_MeetsMinimum(t *testing.T) {
	tests := []struct {
		name string
		rect DocumentRect
		want bool
	}{
		{name: "exact minimum", rect: DocumentRect{Width: 10, Height: 10}, want: true},
		{name: "narrow", rect: DocumentRect{Width: 9.5, Height: 200}, want: false},
		{name: "short", rect: DocumentRect{Width: 200, Height: 3}, want: false},
		{name: "empty", rect: DocumentRect{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rect.MeetsMinimum(10))
		})
	}
}

func TestDocumentRect_ToViewportFollowsScroll(t *testing.T) {
	r := DocumentRect{Left: 100, Top: 900, Width: 50, Height: 60}

	got := r.ToViewport(ScrollPosition{X: 20, Y: 800})

	assert.Equal(t, ViewportRect{Left: 80, Top: 100, Width: 50, Height: 60}, got)
}

func TestViewportRect_Intersects(t *testing.T) {
	vp := Viewport{Width: 1200, Height: 800}

	assert.True(t, ViewportRect{Left: -10, Top: -10, Width: 20, Height: 20}.Intersects(vp))
	assert.False(t, ViewportRect{Left: 1200, Top: 0, Width: 20, Height: 20}.Intersects(vp))
	assert.False(t, ViewportRect{Left: 0, Top: -30, Width: 20, Height: 30}.Intersects(vp))
	assert.False(t, ViewportRect{Left: 10, Top: 10, Width: 0, Height: 30}.Intersects(vp))
}

func TestViewportRect_ToDevice(t *testing.T) {
	r := ViewportRect{Left: 10, Top: 20, Width: 30, Height: 40}

	assert.Equal(t, image.Rect(20, 40, 80, 120), r.ToDevice(2, 2))
}

func TestViewport_Ratio(t *testing.T) {
	assert.Equal(t, 1.0, Viewport{}.Ratio())
	assert.Equal(t, 2.0, Viewport{DevicePixelRatio: 2}.Ratio())
}

func TestViewport_Window(t *testing.T) {
	w, h := Viewport{Width: 800, Height: 600}.Window()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)

	w, h = Viewport{Width: 785, Height: 600, WindowWidth: 800, WindowHeight: 600}.Window()
	assert.Equal(t, 800.0, w, "frames cover the scrollbar too")
	assert.Equal(t, 600.0, h)
}

func TestScrollPosition_Near(t *testing.T) {
	p := ScrollPosition{X: 100, Y: 200}

	assert.True(t, p.Near(ScrollPosition{X: 100.8, Y: 199.2}, 1))
	assert.False(t, p.Near(ScrollPosition{X: 102, Y: 200}, 1))
}
