package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/listings/internal/overlay"
)

const (
	// navPadding is the blank column before the first tab.
	navPadding  = 1
	actAsPrompt = "Act as: "
)

// renderNav draws the tab strip (or the act-as prompt) on the left and the
// user button on the right.
func (m *Model) renderNav(width int) string {
	var left string
	if m.mode == modeActAs {
		left = titleStyle.Render(actAsPrompt) + m.actAs.View()
	} else {
		tabs := make([]string, 0, len(navTabs))
		for i, tab := range navTabs {
			style := tabStyle
			if i == m.tab {
				style = activeTab
			}
			tabs = append(tabs, style.Render(tab.label))
		}
		left = strings.Join(tabs, "")
	}
	left = strings.Repeat(" ", navPadding) + left

	button := buttonStyle
	if m.focus == focusUserButton || m.menuOpen {
		button = focusedButton
	}
	rendered := button.Render(m.userButtonLabel())
	room := max(0, width-lipgloss.Width(rendered)-1)
	left = truncate(left, max(0, room-1))
	gap := strings.Repeat(" ", max(0, room-lipgloss.Width(left)))
	return navStyle.Render(padBlock(left+gap+rendered, width, NavHeight))
}

func (m *Model) userButtonLabel() string {
	user := m.session.Effective()
	name := user.Name
	if strings.TrimSpace(name) == "" {
		name = user.Email
	}
	if _, acting := m.session.Acting(); acting {
		name += " (acting)"
	}
	return name + " ▾"
}

// userButtonRect is the button's cell rectangle: one cell in from the right
// edge of the nav bar.
func (m *Model) userButtonRect() overlay.Rect {
	width := lipgloss.Width(m.userButtonLabel()) + buttonStyle.GetHorizontalPadding()
	left := max(0, m.width-width-1)
	return overlay.Rect{Top: 0, Left: float64(left), Width: float64(width), Height: 1}
}

// actAsFieldRect is the act-as input's rectangle, including the cursor cell.
func (m *Model) actAsFieldRect() overlay.Rect {
	left := navPadding + lipgloss.Width(actAsPrompt)
	return overlay.Rect{Top: 0, Left: float64(left), Width: float64(ActAsInputWidth + 1), Height: 1}
}
