package entity

import (
	"image"
	"math"
)

// DefaultOverlapFraction is the share of the viewport that consecutive tiles overlap by.
const DefaultOverlapFraction = 0.2

// TileGrid is the derived grid of scroll positions covering a capture target.
// It is computed fresh for every capture and never stored.
type TileGrid struct {
	Target   DocumentRect
	Rows     int
	Cols     int
	StepX    float64
	StepY    float64
	OverlapX float64
	OverlapY float64
}

// TileCell is one grid position.
type TileCell struct {
	Row, Col int
	// Offset is the cell origin relative to the target's top-left corner.
	Offset DocumentPoint
	// ScrollTarget is the requested scroll position for this cell.
	ScrollTarget ScrollPosition
}

// TilePlacement maps a region of one captured frame to the output raster.
// Both rectangles are in device pixels and have identical sizes.
type TilePlacement struct {
	Src image.Rectangle
	Dst image.Rectangle
}

// PlanTileGrid computes rows and columns for target at the given viewport size.
// A grid for a target that fits in one viewport has a single cell.
func PlanTileGrid(target DocumentRect, vp Viewport, overlapFraction float64) TileGrid {
	if overlapFraction < 0 || overlapFraction >= 1 {
		overlapFraction = DefaultOverlapFraction
	}

	grid := TileGrid{Target: target}
	if vp.Width <= 0 || vp.Height <= 0 || target.IsEmpty() {
		return grid
	}

	if vp.Fits(target) {
		grid.Rows, grid.Cols = 1, 1
		grid.StepX, grid.StepY = vp.Width, vp.Height
		return grid
	}

	grid.OverlapX = math.Floor(vp.Width * overlapFraction)
	grid.OverlapY = math.Floor(vp.Height * overlapFraction)
	grid.StepX = vp.Width - grid.OverlapX
	grid.StepY = vp.Height - grid.OverlapY
	grid.Cols = int(math.Ceil(target.Width / grid.StepX))
	grid.Rows = int(math.Ceil(target.Height / grid.StepY))
	return grid
}

// Len returns the number of cells.
func (g TileGrid) Len() int {
	return g.Rows * g.Cols
}

// Cells returns the grid cells in row-major order.
func (g TileGrid) Cells() []TileCell {
	cells := make([]TileCell, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			offset := DocumentPoint{X: float64(col) * g.StepX, Y: float64(row) * g.StepY}
			cells = append(cells, TileCell{
				Row:    row,
				Col:    col,
				Offset: offset,
				ScrollTarget: ScrollPosition{
					X: g.Target.Left + offset.X,
					Y: g.Target.Top + offset.Y,
				},
			})
		}
	}
	return cells
}

// PlaceTile computes which part of a frame captured at the achieved scroll
// position belongs in the output, and where. The achieved position, not the
// requested one, drives the math, so clamped or blocked scrolls never produce
// seams or duplicated rows. ok is false when the frame covers nothing of the cell.
func PlaceTile(g TileGrid, cell TileCell, achieved ScrollPosition, vp Viewport, scaleX, scaleY float64) (TilePlacement, bool) {
	x0, x1, okX := coveredSpan(cell.ScrollTarget.X, achieved.X, vp.Width, g.Target.Right())
	y0, y1, okY := coveredSpan(cell.ScrollTarget.Y, achieved.Y, vp.Height, g.Target.Bottom())
	if !okX || !okY {
		return TilePlacement{}, false
	}

	dst := image.Rect(
		ToDevice(x0-g.Target.Left, scaleX),
		ToDevice(y0-g.Target.Top, scaleY),
		ToDevice(x1-g.Target.Left, scaleX),
		ToDevice(y1-g.Target.Top, scaleY),
	)
	if dst.Empty() {
		return TilePlacement{}, false
	}

	srcMin := image.Pt(
		ToDevice(vp.OriginX+x0-achieved.X, scaleX),
		ToDevice(vp.OriginY+y0-achieved.Y, scaleY),
	)
	src := image.Rectangle{Min: srcMin, Max: srcMin.Add(dst.Size())}
	return TilePlacement{Src: src, Dst: dst}, true
}

// coveredSpan intersects what the frame shows along one axis, [achieved, achieved+extent),
// with what the cell still needs, [requested, limit).
func coveredSpan(requested, achieved, extent, limit float64) (start, end float64, ok bool) {
	start = math.Max(requested, achieved)
	end = math.Min(achieved+extent, limit)
	return start, end, end > start
}
