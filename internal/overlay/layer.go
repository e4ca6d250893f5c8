package overlay

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var arrowGlyphs = map[Side]string{
	SideTop:    "▼",
	SideBottom: "▲",
	SideLeft:   "▶",
	SideRight:  "◀",
}

// Layer is the single top-level surface panels are painted onto. It holds
// a copy of the finished base view, so nothing in the base (pane borders,
// clipped regions) can hide or shift a panel.
type Layer struct {
	width  int
	height int
	lines  []string
}

// NewLayer starts a layer over base, normalized to width×height cells.
func NewLayer(base string, width, height int) *Layer {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return &Layer{width: width, height: height, lines: lines}
}

// Paint draws an open popover's rendered panel at its placement. A popover
// without a placement is skipped: it is measured but never shown at a
// guessed position. Coordinates are rounded here and only here.
func (l *Layer) Paint(p *Popover, view string, theme Theme) {
	placement, ok := p.Result()
	if !ok {
		return
	}
	top := int(math.Round(placement.Top))
	left := int(math.Round(placement.Left))
	l.blit(view, top, left)

	if !placement.HasArrow {
		return
	}
	size, ok := p.Panel().Size()
	if !ok {
		return
	}
	fill := theme.Background
	if p.ArrowOverTitle() {
		fill = theme.TitleBackground
	}
	glyph := lipgloss.NewStyle().Foreground(fill).Render(arrowGlyphs[placement.Side])

	along := int(math.Floor(placement.Arrow + p.placer.Metrics.ArrowSize/2))
	w, h := int(size.Width), int(size.Height)
	switch placement.Side {
	case SideBottom:
		l.blit(glyph, top-1, left+min(along, w-1))
	case SideTop:
		l.blit(glyph, top+h, left+min(along, w-1))
	case SideLeft:
		l.blit(glyph, top+min(along, h-1), left+w)
	case SideRight:
		l.blit(glyph, top+min(along, h-1), left-1)
	}
}

// String returns the composed surface.
func (l *Layer) String() string {
	return strings.Join(l.lines, "\n")
}

func (l *Layer) blit(block string, top, left int) {
	for i, line := range strings.Split(block, "\n") {
		row := top + i
		if row < 0 || row >= l.height {
			continue
		}
		l.lines[row] = spliceLine(l.lines[row], line, left, l.width)
	}
}

// spliceLine writes over onto base starting at column col, clipped to
// width. Both strings may carry ANSI styling.
func spliceLine(base, over string, col, width int) string {
	if col >= width {
		return base
	}
	overWidth := ansi.StringWidth(over)
	if col < 0 {
		over = ansi.TruncateLeft(over, -col, "")
		overWidth += col
		col = 0
	}
	if overWidth <= 0 {
		return base
	}
	if col+overWidth > width {
		over = ansi.Truncate(over, width-col, "")
		overWidth = width - col
	}

	baseWidth := ansi.StringWidth(base)
	var b strings.Builder
	b.WriteString(ansi.Truncate(base, col, ""))
	if baseWidth < col {
		b.WriteString(strings.Repeat(" ", col-baseWidth))
	}
	b.WriteString(ansi.ResetStyle)
	b.WriteString(over)
	b.WriteString(ansi.ResetStyle)
	if baseWidth > col+overWidth {
		b.WriteString(ansi.TruncateLeft(base, col+overWidth, ""))
	}
	return b.String()
}
