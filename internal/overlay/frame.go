package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Theme colors a Frame and its arrow.
type Theme struct {
	Border          lipgloss.Color
	Foreground      lipgloss.Color
	Background      lipgloss.Color
	TitleForeground lipgloss.Color
	TitleBackground lipgloss.Color
}

// DefaultTheme is a dark panel with a lighter title band.
var DefaultTheme = Theme{
	Border:          lipgloss.Color("240"),
	Foreground:      lipgloss.Color("250"),
	Background:      lipgloss.Color("236"),
	TitleForeground: lipgloss.Color("255"),
	TitleBackground: lipgloss.Color("238"),
}

// Frame is the bordered panel chrome used by popovers: an optional title
// band over a body. It measures itself every time it renders, so it can be
// handed to a Popover as its Panel.
type Frame struct {
	Theme Theme
	// MaxHeightPercent caps the frame height to a share of the viewport
	// height. Zero disables the cap.
	MaxHeightPercent float64
	// MinWidth is the minimum inner width in cells.
	MinWidth int

	title string
	body  string

	view      string
	size      Size
	measured  bool
	titleRows int
	titleID   string
}

// NewFrame returns an empty, unmeasured frame.
func NewFrame(theme Theme) *Frame {
	return &Frame{Theme: theme}
}

// SetContent replaces the title and body. An empty title removes the title
// region.
func (f *Frame) SetContent(title, body string) {
	f.title = title
	f.body = body
}

// Render draws the frame for the given viewport and records its size.
func (f *Frame) Render(viewport Size) string {
	titleLines := splitLines(f.title)
	bodyLines := splitLines(f.body)

	inner := f.MinWidth
	for _, line := range append(append([]string(nil), titleLines...), bodyLines...) {
		inner = max(inner, lipgloss.Width(line))
	}
	inner += 2 // horizontal padding

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.Theme.Border).
		BorderBackground(f.Theme.Background)

	if f.MaxHeightPercent > 0 && viewport.Height > 0 {
		maxRows := int(viewport.Height*f.MaxHeightPercent/100) - box.GetVerticalFrameSize() - len(titleLines)
		if maxRows < 1 {
			maxRows = 1
		}
		if len(bodyLines) > maxRows {
			bodyLines = bodyLines[:maxRows]
		}
	}

	sections := make([]string, 0, 2)
	if len(titleLines) > 0 {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Width(inner).
			Foreground(f.Theme.TitleForeground).
			Background(f.Theme.TitleBackground)
		sections = append(sections, titleStyle.Render(strings.Join(titleLines, "\n")))
	}
	if len(bodyLines) > 0 {
		bodyStyle := lipgloss.NewStyle().
			Padding(0, 1).
			Width(inner).
			Foreground(f.Theme.Foreground).
			Background(f.Theme.Background)
		sections = append(sections, bodyStyle.Render(strings.Join(bodyLines, "\n")))
	}

	f.view = box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	f.titleRows = len(titleLines)
	f.size = Size{Width: float64(lipgloss.Width(f.view)), Height: float64(lipgloss.Height(f.view))}
	f.measured = true
	return f.view
}

// View returns the last rendered frame.
func (f *Frame) View() string {
	return f.view
}

// Size implements Panel.
func (f *Frame) Size() (Size, bool) {
	return f.size, f.measured
}

// Unmeasure forgets the last render, as when the panel leaves the screen.
func (f *Frame) Unmeasure() {
	f.measured = false
	f.view = ""
	f.size = Size{}
}

// TitleRegion returns the title band in frame-local coordinates, including
// the top border above it.
func (f *Frame) TitleRegion() (Rect, bool) {
	if !f.measured || f.titleRows == 0 {
		return Rect{}, false
	}
	return Rect{Top: 0, Left: 0, Width: f.size.Width, Height: float64(f.titleRows + 1)}, true
}

// TitleID returns the title region's identity, assigning it on first use.
func (f *Frame) TitleID() string {
	if f.titleID == "" {
		f.titleID = "popover-title-" + uuid.NewString()
	}
	return f.titleID
}

// Title returns the current title text.
func (f *Frame) Title() string {
	return f.title
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
