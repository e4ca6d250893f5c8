package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := statusStyle
	if m.session != nil {
		if _, acting := m.session.Acting(); acting {
			style = actingStatus
		}
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	switch {
	case m.suggestionsOpen():
		return []string{"Matching users", "↑/↓ move", "Enter/Tab pick", "Esc close"}
	case m.mode == modeActAs:
		return []string{"Act as", "type email or name", "Enter confirm", "Esc cancel"}
	case m.menuOpen:
		return []string{"User menu", "↑/↓ move", "Enter choose", "Esc close"}
	}
	help := []string{
		m.primaryActionKey(actionCursorUp, "↑") + "/" + m.primaryActionKey(actionCursorDown, "↓") + " move",
		m.primaryActionKey(actionTabNext, "Tab") + " next tab",
		"1-4 tabs",
		m.primaryActionKey(actionInfo, "i") + " info",
		m.primaryActionKey(actionUserMenu, "u") + " user menu",
		"PgUp/PgDn details",
		m.primaryActionKey(actionHelp, "?") + " help",
		m.primaryActionKey(actionQuit, "q") + " quit",
	}
	if m.infoOpen {
		help = append([]string{"Listing info", "Esc close"}, help...)
	}
	return help
}

func (m *Model) statusContextSegments() []string {
	parts := make([]string, 0, 3)
	if m.session == nil {
		return parts
	}
	parts = append(parts, m.session.User().Label())
	if acting, ok := m.session.Acting(); ok {
		parts = append(parts, "acting as "+acting.Label())
	}
	if summary := m.listingMetricsSummary(); summary != "" {
		parts = append(parts, summary)
	}
	return parts
}

func (m *Model) statusMessageSegment() string {
	return strings.TrimSpace(m.status)
}

func (m *Model) renderHelp(width, height int) string {
	lines := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		"Listings",
		"  " + padKeys(m.allActionKeys(actionCursorUp, "↑, k")) + "Move selection up",
		"  " + padKeys(m.allActionKeys(actionCursorDown, "↓, j")) + "Move selection down",
		"  " + padKeys(m.allActionKeys(actionJumpTop, "g")) + "Jump to first listing",
		"  " + padKeys(m.allActionKeys(actionJumpBottom, "Shift+G")) + "Jump to last listing",
		"  " + padKeys(m.allActionKeys(actionInfo, "i, Enter")) + "Toggle info panel",
		"  " + padKeys(m.allActionKeys(actionDetailPageUp, "PgUp")) + "Scroll details up",
		"  " + padKeys(m.allActionKeys(actionDetailPageDown, "PgDn")) + "Scroll details down",
		"",
		"Navigation",
		"  " + padKeys(m.allActionKeys(actionTabNext, "Tab")) + "Next tab",
		"  " + padKeys(m.allActionKeys(actionTabPrev, "Shift+Tab")) + "Previous tab",
		"  " + padKeys("1, 2, 3, 4") + "Jump to tab",
		"  " + padKeys(m.allActionKeys(actionUserMenu, "u")) + "User menu",
		"  " + padKeys(m.allActionKeys(actionHelp, "?")) + "Toggle help",
		"  " + padKeys(m.allActionKeys(actionQuit, "q")) + "Quit",
		"",
		"Panels",
		"  " + padKeys("Esc") + "Close the open panel",
		"  " + padKeys("Click outside") + "Close the open panel",
		"",
		"Act As (admins)",
		"  " + padKeys("Type") + "Search users by email or name",
		"  " + padKeys("↑/↓") + "Move suggestion",
		"  " + padKeys("Enter, Tab") + "Pick suggestion",
		"  " + padKeys("Esc") + "Close suggestions, then cancel",
		"",
		"Press ? to return.",
	}

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}

func padKeys(keys string) string {
	const column = 24
	if w := lipgloss.Width(keys); w < column {
		return keys + strings.Repeat(" ", column-w)
	}
	return keys + " "
}
