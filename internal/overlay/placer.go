package overlay

import (
	"math"
	"slices"
)

// Metrics are the fixed spacing constants of the placement pipeline.
type Metrics struct {
	// Gap separates the panel from the anchor edge.
	Gap float64
	// Margin is the minimum distance between the panel and any viewport edge.
	Margin float64
	// ArrowSize is the extent of the arrow glyph. Half of it is added to the
	// gap when the arrow is shown.
	ArrowSize float64
	// ArrowInset keeps the arrow away from the panel's own corners.
	ArrowInset float64
}

var (
	// DefaultMetrics are pixel-scale metrics for hosts that measure in pixels.
	DefaultMetrics = Metrics{Gap: 8, Margin: 8, ArrowSize: 10, ArrowInset: 8}

	// CellMetrics suit a terminal, where one unit is one cell. The two-cell
	// arrow allowance leaves one free row or column for the glyph.
	CellMetrics = Metrics{Gap: 0, Margin: 1, ArrowSize: 2, ArrowInset: 1}
)

// Placement is the computed position of an open panel.
type Placement struct {
	Top  float64
	Left float64
	Side Side
	// Arrow is the arrow offset in panel-local coordinates: a left offset for
	// top/bottom placements and a top offset for left/right placements. It is
	// meaningful only when HasArrow is set.
	Arrow    float64
	HasArrow bool
}

// ArrowLeft returns the arrow's horizontal offset for top/bottom placements.
func (p Placement) ArrowLeft() (float64, bool) {
	if !p.HasArrow || !p.Side.Vertical() {
		return 0, false
	}
	return p.Arrow, true
}

// ArrowTop returns the arrow's vertical offset for left/right placements.
func (p Placement) ArrowTop() (float64, bool) {
	if !p.HasArrow || p.Side.Vertical() {
		return 0, false
	}
	return p.Arrow, true
}

// Placer chooses a side and computes coordinates for one panel
// configuration. The zero value places with zero metrics over all sides.
type Placer struct {
	Metrics   Metrics
	ShowArrow bool
	// Sides restricts the candidates of the fit heuristic. Nil means
	// AllSides. An explicit preference is never restricted.
	Sides []Side
}

// Place chooses the side and computes the placement in one step.
func (p Placer) Place(preferred Side, anchor Rect, panel, viewport Size) Placement {
	side := p.Choose(preferred, anchor, panel.Width, panel.Height, viewport.Width, viewport.Height)
	return p.Calculate(side, anchor, panel, viewport)
}

// Choose returns the side the panel should be placed on.
//
// An explicit preference always wins without any fit check. Otherwise the
// candidate sides are ranked by available space, largest first, with equal
// spaces kept in enumeration order. The first side whose space holds the
// panel's extent on that axis plus the gap (and half the arrow) is chosen;
// when none fits, the side with the most space is used and overflow is
// accepted.
func (p Placer) Choose(preferred Side, anchor Rect, panelW, panelH, viewportW, viewportH float64) Side {
	if preferred != SideAuto {
		return preferred
	}

	ranked := p.candidates()
	space := func(s Side) float64 {
		switch s {
		case SideTop:
			return anchor.Top
		case SideBottom:
			return viewportH - anchor.Bottom()
		case SideLeft:
			return anchor.Left
		default:
			return viewportW - anchor.Right()
		}
	}
	slices.SortStableFunc(ranked, func(a, b Side) int {
		sa, sb := space(a), space(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})

	allowance := p.Metrics.Gap + p.arrowAllowance()
	for _, side := range ranked {
		extent := panelW
		if side.Vertical() {
			extent = panelH
		}
		if space(side) >= extent+allowance {
			return side
		}
	}
	return ranked[0]
}

// Calculate computes panel coordinates and the arrow offset for side.
//
// The panel is centered on the anchor along the perpendicular axis and
// offset from the anchor edge along the placement axis; both coordinates are
// clamped to keep Margin from the viewport edges. Nothing is rounded here.
func (p Placer) Calculate(side Side, anchor Rect, panel, viewport Size) Placement {
	if !side.concrete() {
		contractViolation("calculate called with side %v", side)
		side = fallbackSide
	}

	m := p.Metrics
	offset := m.Gap + p.arrowAllowance()
	out := Placement{Side: side, HasArrow: p.ShowArrow}

	if side.Vertical() {
		out.Left = clamp(anchor.CenterX()-panel.Width/2, m.Margin, viewport.Width-m.Margin-panel.Width)
		if side == SideTop {
			out.Top = anchor.Top - panel.Height - offset
		} else {
			out.Top = anchor.Bottom() + offset
		}
		out.Top = clamp(out.Top, m.Margin, viewport.Height-m.Margin-panel.Height)
		if p.ShowArrow {
			out.Arrow = p.arrowOffset(anchor.CenterX()-out.Left, panel.Width)
		}
		return out
	}

	out.Top = clamp(anchor.CenterY()-panel.Height/2, m.Margin, viewport.Height-m.Margin-panel.Height)
	if side == SideLeft {
		out.Left = anchor.Left - panel.Width - offset
	} else {
		out.Left = anchor.Right() + offset
	}
	out.Left = clamp(out.Left, m.Margin, viewport.Width-m.Margin-panel.Width)
	if p.ShowArrow {
		out.Arrow = p.arrowOffset(anchor.CenterY()-out.Top, panel.Height)
	}
	return out
}

// arrowOffset converts the anchor center (already panel-local) into the
// arrow's leading-edge offset, kept inside the panel's rounded corners.
// A panel too short for both insets gets the arrow centered on it, and one
// shorter than the arrow itself gets offset 0.
func (p Placer) arrowOffset(center, extent float64) float64 {
	m := p.Metrics
	lo, hi := m.ArrowInset, extent-m.ArrowInset-m.ArrowSize
	if hi < lo {
		return math.Max((extent-m.ArrowSize)/2, 0)
	}
	return clamp(center-m.ArrowSize/2, lo, hi)
}

func (p Placer) arrowAllowance() float64 {
	if !p.ShowArrow {
		return 0
	}
	return p.Metrics.ArrowSize / 2
}

func (p Placer) candidates() []Side {
	sides := p.Sides
	if len(sides) == 0 {
		sides = AllSides
	}
	out := make([]Side, 0, len(sides))
	for _, s := range AllSides {
		if slices.Contains(sides, s) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		contractViolation("no concrete candidate sides in %v", sides)
		out = append(out, fallbackSide)
	}
	return out
}
