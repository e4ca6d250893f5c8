package app

import tea "github.com/charmbracelet/bubbletea"

// handleBrowseKey routes key presses in browse mode through the keybinding
// table.
func (m *Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	if m.focus == focusUserButton && (key == "enter" || key == " ") {
		m.toggleUserMenu()
		return m, nil
	}

	switch m.actionForKey(key) {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.status = ""
		}
		return m, nil
	case actionCursorUp:
		return m, m.moveCursor(-1)
	case actionCursorDown:
		return m, m.moveCursor(1)
	case actionJumpTop:
		return m, m.setCursor(0)
	case actionJumpBottom:
		return m, m.setCursor(len(m.visible) - 1)
	case actionInfo:
		m.toggleInfo()
		return m, nil
	case actionUserMenu:
		m.toggleUserMenu()
		return m, nil
	case actionTabNext:
		return m, m.setTab((m.tab + 1) % len(navTabs))
	case actionTabPrev:
		return m, m.setTab((m.tab + len(navTabs) - 1) % len(navTabs))
	case actionTabMine:
		return m, m.setTab(0)
	case actionTabAll:
		return m, m.setTab(1)
	case actionTabTeam:
		return m, m.setTab(2)
	case actionTabReports:
		return m, m.setTab(3)
	case actionDetailPageUp:
		m.viewport.PageUp()
		m.doc.Scroll()
		return m, nil
	case actionDetailPageDown:
		m.viewport.PageDown()
		m.doc.Scroll()
		return m, nil
	case actionDetailHalfUp:
		m.viewport.HalfPageUp()
		m.doc.Scroll()
		return m, nil
	case actionDetailHalfDown:
		m.viewport.HalfPageDown()
		m.doc.Scroll()
		return m, nil
	}
	return m, nil
}

// moveCursor moves the listing selection by delta rows.
func (m *Model) moveCursor(delta int) tea.Cmd {
	return m.setCursor(m.cursor + delta)
}

// setCursor selects the listing at index, scrolling the pane to keep it
// visible. The info panel follows the selection.
func (m *Model) setCursor(index int) tea.Cmd {
	if len(m.visible) == 0 {
		return nil
	}
	index = clamp(index, 0, len(m.visible)-1)
	m.focus = focusList
	if index == m.cursor {
		return nil
	}
	m.cursor = index
	m.pointRowHandle()
	if m.adjustListOffset(m.calculateLayout().ListRows) {
		m.doc.Scroll()
	}
	if m.infoOpen {
		m.info.Recalculate()
	}
	return m.showSelectedListing()
}

// adjustListOffset keeps the cursor inside the visible window and reports
// whether the window moved.
func (m *Model) adjustListOffset(rows int) bool {
	before := m.listOffset
	if rows <= 0 {
		m.listOffset = 0
		return before != m.listOffset
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+rows {
		m.listOffset = m.cursor - rows + 1
	}
	m.listOffset = clamp(m.listOffset, 0, max(0, len(m.visible)-rows))
	return before != m.listOffset
}

// scrollList scrolls the listings pane without moving the selection.
func (m *Model) scrollList(delta int) {
	rows := m.calculateLayout().ListRows
	next := clamp(m.listOffset+delta, 0, max(0, len(m.visible)-rows))
	if next == m.listOffset {
		return
	}
	m.listOffset = next
	m.doc.Scroll()
}

// setTab switches the nav tab. Floating panels tied to the old tab close.
func (m *Model) setTab(index int) tea.Cmd {
	if index == m.tab {
		return nil
	}
	m.tab = index
	m.infoOpen = false
	m.showHelp = false
	m.listOffset = 0
	m.refreshListings()
	m.status = navTabs[index].label
	return m.showSelectedListing()
}
