package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleMouse routes mouse input. Presses reach the overlay document first
// so an open panel can close on an outside click; the click then still
// lands on whatever is under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.handleWheel(msg, -1)
	case tea.MouseButtonWheelDown:
		return m.handleWheel(msg, 1)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x, y := float64(msg.X), float64(msg.Y)
	m.doc.PointerDown(x, y)

	if m.suggestionsOpen() && m.suggest.Contains(x, y) {
		start, end := m.suggestionWindow()
		if row := panelRowAt(m.suggest, msg.Y, end-start); row >= 0 {
			return m.pickSuggestion(start + row)
		}
		return m, nil
	}
	if m.menuOpen && m.userMenu.Contains(x, y) {
		items := m.userMenuItems()
		if row := panelRowAt(m.userMenu, msg.Y, len(items)); row >= 0 {
			m.menuCursor = row
			return m.activateMenuItem(row)
		}
		return m, nil
	}
	if m.infoOpen && m.info.Contains(x, y) {
		return m, nil
	}
	if m.userButtonRect().Contains(x, y) {
		m.focus = focusUserButton
		m.toggleUserMenu()
		return m, nil
	}
	if m.mode == modeActAs {
		return m, nil
	}
	if msg.Y < NavHeight {
		if tab, ok := m.tabAt(msg.X); ok {
			return m, m.setTab(tab)
		}
		return m, nil
	}
	if index, ok := m.listingAt(msg.X, msg.Y); ok {
		return m, m.setCursor(index)
	}
	return m, nil
}

// handleWheel scrolls whichever pane is under the pointer.
func (m *Model) handleWheel(msg tea.MouseMsg, delta int) (tea.Model, tea.Cmd) {
	layout := m.calculateLayout()
	if msg.Y < layout.ContentTop || msg.Y >= layout.ContentTop+layout.ContentHeight {
		return m, nil
	}
	if !m.activeTab().report && msg.X < layout.LeftWidth {
		m.scrollList(delta)
		return m, nil
	}
	before := m.viewport.YOffset
	if delta < 0 {
		m.viewport.ScrollUp(-delta * 3)
	} else {
		m.viewport.ScrollDown(delta * 3)
	}
	if m.viewport.YOffset != before {
		m.doc.Scroll()
	}
	return m, nil
}

// listingAt maps a screen cell to a visible listing index.
func (m *Model) listingAt(x, y int) (int, bool) {
	if m.activeTab().report {
		return 0, false
	}
	layout := m.calculateLayout()
	originX, originY, width := layout.listOrigin()
	if x < originX || x >= originX+width {
		return 0, false
	}
	if y < originY || y >= originY+layout.ListRows {
		return 0, false
	}
	index := m.listOffset + y - originY
	if index >= len(m.visible) {
		return 0, false
	}
	return index, true
}

// tabAt maps a nav bar column to a tab index.
func (m *Model) tabAt(x int) (int, bool) {
	left := navPadding
	for i, tab := range navTabs {
		width := lipgloss.Width(tab.label) + tabStyle.GetHorizontalPadding()
		if x >= left && x < left+width {
			return i, true
		}
		left += width
	}
	return 0, false
}
