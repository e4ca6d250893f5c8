package overlay

import "math"

// Rect is an axis-aligned rectangle in viewport coordinates. For the
// terminal host one unit is one cell; values stay float64 so repeated
// recalculation never accumulates rounding error.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether the point lies inside r. The top/left edges are
// inclusive and the bottom/right edges exclusive, so adjacent rectangles
// never both claim the same cell.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// clamp bounds value to [lo, hi]. When lo > hi the upper bound wins, which
// keeps an oversized panel pinned against the far margin instead of
// producing a value outside both bounds.
func clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}
