// Package entity defines domain entities for region capture.
package entity

import (
	"image"
	"math"
)

// ViewportPoint is a CSS pixel position relative to the visible window.
// It shifts whenever the page scrolls.
type ViewportPoint struct {
	X, Y float64
}

// DocumentPoint is a CSS pixel position relative to the scrollable content.
// It is invariant under scrolling.
type DocumentPoint struct {
	X, Y float64
}

// ScrollPosition is the document-space offset of the active scroll target.
type ScrollPosition struct {
	X, Y float64
}

// Sub returns the per-axis difference p - o.
func (p ScrollPosition) Sub(o ScrollPosition) ScrollPosition {
	return ScrollPosition{X: p.X - o.X, Y: p.Y - o.Y}
}

// Near reports whether both axes are within tolerance of o.
func (p ScrollPosition) Near(o ScrollPosition, tolerance float64) bool {
	return math.Abs(p.X-o.X) <= tolerance && math.Abs(p.Y-o.Y) <= tolerance
}

// ToDocument converts a viewport point to document space.
func ToDocument(p ViewportPoint, scroll ScrollPosition) DocumentPoint {
	return DocumentPoint{X: p.X + scroll.X, Y: p.Y + scroll.Y}
}

// ToViewport converts a document point to viewport space.
func ToViewport(p DocumentPoint, scroll ScrollPosition) ViewportPoint {
	return ViewportPoint{X: p.X - scroll.X, Y: p.Y - scroll.Y}
}

// ToDevice scales a CSS length to device pixels, rounding to the nearest pixel.
func ToDevice(css, devicePixelRatio float64) int {
	return int(math.Round(css * devicePixelRatio))
}

// ViewportRect is a rectangle in viewport space. Width and Height are never negative.
type ViewportRect struct {
	Left, Top, Width, Height float64
}

// DocumentRect is a rectangle in document space. Width and Height are never negative.
type DocumentRect struct {
	Left, Top, Width, Height float64
}

// SpanDocument returns the rectangle spanned by two corners, in any order.
func SpanDocument(a, b DocumentPoint) DocumentRect {
	return DocumentRect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// TopLeft returns the origin corner.
func (r DocumentRect) TopLeft() DocumentPoint {
	return DocumentPoint{X: r.Left, Y: r.Top}
}

// Right returns the exclusive right edge.
func (r DocumentRect) Right() float64 { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r DocumentRect) Bottom() float64 { return r.Top + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r DocumentRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MeetsMinimum reports whether both dimensions reach minSize.
func (r DocumentRect) MeetsMinimum(minSize float64) bool {
	return !r.IsEmpty() && r.Width >= minSize && r.Height >= minSize
}

// ToViewport converts the rectangle to viewport space for rendering.
func (r DocumentRect) ToViewport(scroll ScrollPosition) ViewportRect {
	return ViewportRect{
		Left:   r.Left - scroll.X,
		Top:    r.Top - scroll.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}

// DeviceSize returns the rectangle's dimensions in device pixels.
func (r DocumentRect) DeviceSize(scaleX, scaleY float64) image.Point {
	return image.Pt(ToDevice(r.Width, scaleX), ToDevice(r.Height, scaleY))
}

// Right returns the exclusive right edge.
func (r ViewportRect) Right() float64 { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r ViewportRect) Bottom() float64 { return r.Top + r.Height }

// Intersects reports whether the rectangle overlaps a viewport of the given size.
func (r ViewportRect) Intersects(vp Viewport) bool {
	return r.Width > 0 && r.Height > 0 &&
		r.Left < vp.Width && r.Right() > 0 &&
		r.Top < vp.Height && r.Bottom() > 0
}

// ToDevice converts the rectangle to device pixels.
func (r ViewportRect) ToDevice(scaleX, scaleY float64) image.Rectangle {
	x0 := ToDevice(r.Left, scaleX)
	y0 := ToDevice(r.Top, scaleY)
	return image.Rect(x0, y0, x0+ToDevice(r.Width, scaleX), y0+ToDevice(r.Height, scaleY))
}

// Viewport describes the visible window in CSS pixels.
type Viewport struct {
	// Width and Height are the content area, without scrollbars.
	Width, Height    float64
	DevicePixelRatio float64
	// WindowWidth and WindowHeight are the area a frame covers, scrollbars
	// included. Zero means the same as the content area.
	WindowWidth, WindowHeight float64
	// OriginX and OriginY locate the content area inside the window. They
	// are zero for the page root and the client box of an inner scroller.
	OriginX, OriginY float64
}

// Local converts a window point to the content area's coordinates.
func (v Viewport) Local(p ViewportPoint) ViewportPoint {
	return ViewportPoint{X: p.X - v.OriginX, Y: p.Y - v.OriginY}
}

// ToWindow converts a content-area rectangle back to window coordinates.
func (v Viewport) ToWindow(r ViewportRect) ViewportRect {
	r.Left += v.OriginX
	r.Top += v.OriginY
	return r
}

// Window returns the CSS size a captured frame covers.
func (v Viewport) Window() (width, height float64) {
	width, height = v.OriginX+v.Width, v.OriginY+v.Height
	if v.WindowWidth > 0 {
		width = v.WindowWidth
	}
	if v.WindowHeight > 0 {
		height = v.WindowHeight
	}
	return width, height
}

// Ratio returns the device pixel ratio, defaulting to 1.
func (v Viewport) Ratio() float64 {
	if v.DevicePixelRatio <= 0 {
		return 1
	}
	return v.DevicePixelRatio
}

// Fits reports whether r fits entirely within one viewport.
func (v Viewport) Fits(r DocumentRect) bool {
	return r.Width <= v.Width && r.Height <= v.Height
}
